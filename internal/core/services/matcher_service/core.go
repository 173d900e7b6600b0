package matcher_service

import (
	"context"
	"strings"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type MatcherService struct {
	classifierPort out.ClassifierPort
	logger         out.LoggerPort
}

func NewMatcherService(classifierPort out.ClassifierPort, logger out.LoggerPort) *MatcherService {
	return &MatcherService{
		classifierPort: classifierPort,
		logger:         logger.WithModule("MatcherService"),
	}
}

// Match converts a symptom description into a subset of the roster.
// AI failures never reach the caller: they degrade to KeywordMatch.
func (s *MatcherService) Match(ctx context.Context, query string, mode domain.SearchMode, roster []domain.Specialist) domain.MatchResult {
	normalized := NormalizeQuery(query)

	if normalized == "" {
		return result(domain.MatchKindAll, roster, nil)
	}

	if mode == domain.SearchModeKeyword {
		debug := domain.NewDebugInfo("matcher.keyword.match")
		matched := KeywordMatch(normalized, roster)
		debug.Elapse()
		return result(domain.MatchKindKeyword, matched, []domain.DebugInfo{debug})
	}

	return s.matchWithClassifier(ctx, normalized, roster)
}

func (s *MatcherService) matchWithClassifier(ctx context.Context, query string, roster []domain.Specialist) domain.MatchResult {
	debugInfo := make([]domain.DebugInfo, 0, 2)

	classify := domain.NewDebugInfo("matcher.ai.classify")
	matched, err := s.classify(ctx, query, roster)
	classify.Elapse()

	if err == nil {
		debugInfo = append(debugInfo, classify)
		s.logger.Debug("matcher.ai.matched", out.LogFields{
			"query":   query,
			"matched": len(matched),
		})
		return result(domain.MatchKindAI, matched, debugInfo)
	}

	classify.AddOption("error", string(domain.ErrorTypeOf(err)))
	debugInfo = append(debugInfo, classify)

	s.logger.Warn("matcher.ai.failed", out.LogFields{
		"query":     query,
		"errorType": domain.ErrorTypeOf(err),
		"error":     err.Error(),
	})

	fallback := domain.NewDebugInfo("matcher.fallback.match")
	matched = KeywordMatch(query, roster)
	fallback.Elapse()
	debugInfo = append(debugInfo, fallback)

	return result(domain.MatchKindFallback, matched, debugInfo)
}

func (s *MatcherService) classify(ctx context.Context, query string, roster []domain.Specialist) ([]domain.Specialist, error) {
	if s.classifierPort == nil {
		return nil, domain.NewNotConfiguredError("classifier is not configured")
	}

	prompt, err := BuildTriagePrompt(query, roster)
	if err != nil {
		return nil, err
	}

	text, err := s.classifierPort.Classify(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewMalformedError("classifier returned empty text", nil)
	}

	ids, err := ParseClassifierIDs(text)
	if err != nil {
		return nil, err
	}

	// Пустой массив это валидный ответ "совпадений нет", а не ошибка
	if len(ids) == 0 {
		return []domain.Specialist{}, nil
	}

	return FilterByIDs(roster, ids), nil
}

func result(kind domain.MatchKind, specialists []domain.Specialist, debugInfo []domain.DebugInfo) domain.MatchResult {
	if specialists == nil {
		specialists = []domain.Specialist{}
	}
	return domain.MatchResult{
		Kind:        kind,
		Specialists: specialists,
		Label:       domain.ResultLabel(kind, len(specialists)),
		Debug:       debugInfo,
	}
}
