package intake_service

import (
	"context"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type Kind string

const (
	KindVoice Kind = "voice"
	KindImage Kind = "image"
)

const keystrokeDelay = 50 * time.Millisecond

type phase struct {
	status string
	wait   time.Duration
}

type flow struct {
	phases []phase
	text   string
}

var flows = map[Kind]flow{
	KindVoice: {
		phases: []phase{
			{status: "Listening...", wait: 1500 * time.Millisecond},
			{status: "Transcribing...", wait: 500 * time.Millisecond},
		},
		text: "I've had a really bad migraine since this morning",
	},
	KindImage: {
		phases: []phase{
			{status: "Scanning Image...", wait: 1500 * time.Millisecond},
			{status: "Analyzing...", wait: 800 * time.Millisecond},
		},
		text: "Red itchy rash on left arm",
	},
}

func ParseKind(raw string) (Kind, error) {
	kind := Kind(raw)
	if _, ok := flows[kind]; !ok {
		return "", domain.NewValidationError("unknown intake kind: " + raw)
	}
	return kind, nil
}

// Delayer pauses between steps. Tests inject one that returns immediately.
type Delayer interface {
	Delay(ctx context.Context, d time.Duration) error
}

type SleepDelayer struct{}

func (SleepDelayer) Delay(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Update is one observable step of a simulated intake.
type Update struct {
	Status string              `json:"status,omitempty"`
	Text   string              `json:"text"`
	Done   bool                `json:"done"`
	Result *domain.MatchResult `json:"result,omitempty"`
}

type Matcher interface {
	Match(ctx context.Context, query string, mode domain.SearchMode, roster []domain.Specialist) domain.MatchResult
}

type RosterSource interface {
	Specialists() []domain.Specialist
}

type IntakeService struct {
	matcher Matcher
	roster  RosterSource
	delayer Delayer
	logger  out.LoggerPort
}

func NewIntakeService(matcher Matcher, roster RosterSource, delayer Delayer, logger out.LoggerPort) *IntakeService {
	if delayer == nil {
		delayer = SleepDelayer{}
	}
	return &IntakeService{
		matcher: matcher,
		roster:  roster,
		delayer: delayer,
		logger:  logger.WithModule("IntakeService"),
	}
}

// Run plays the demo flow: status phases, then the transcript one character at
// a time, then a search in the given mode. Every step is passed to emit.
func (s *IntakeService) Run(ctx context.Context, kind Kind, mode domain.SearchMode, emit func(Update)) (domain.MatchResult, error) {
	f, ok := flows[kind]
	if !ok {
		return domain.MatchResult{}, domain.NewValidationError("unknown intake kind: " + string(kind))
	}
	if emit == nil {
		emit = func(Update) {}
	}

	for _, p := range f.phases {
		emit(Update{Status: p.status})
		if err := s.delayer.Delay(ctx, p.wait); err != nil {
			return domain.MatchResult{}, err
		}
	}

	runes := []rune(f.text)
	for i := range runes {
		emit(Update{Text: string(runes[:i+1])})
		if err := s.delayer.Delay(ctx, keystrokeDelay); err != nil {
			return domain.MatchResult{}, err
		}
	}

	result := s.matcher.Match(ctx, f.text, mode, s.roster.Specialists())

	s.logger.Info("intake.completed", out.LogFields{
		"kind":    kind,
		"mode":    mode,
		"matches": result.Count(),
	})

	emit(Update{Text: f.text, Done: true, Result: &result})
	return result, nil
}
