package session_service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

var ErrBadToken = errors.New("invalid token")

type AdminAccount struct {
	Username string
	Password string
}

type SessionService struct {
	verifier CredentialVerifier
	admin    AdminAccount
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   out.LoggerPort
}

func NewSessionService(verifier CredentialVerifier, admin AdminAccount, secret string, ttl time.Duration, logger out.LoggerPort) *SessionService {
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	return &SessionService{
		verifier: verifier,
		admin:    admin,
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger.WithModule("SessionService"),
	}
}

// Authenticate matches the roster first, then the privileged account.
// Only the username is case-normalised.
func (s *SessionService) Authenticate(username, secret string, roster []domain.Specialist) (*domain.Principal, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	for _, specialist := range roster {
		if specialist.Username == username && s.verifier.Verify(specialist.Password, secret) {
			s.logger.Info("session.login.doctor", out.LogFields{
				"username": username,
			})
			return &domain.Principal{
				Role:         domain.RoleDoctor,
				Name:         specialist.Name,
				SpecialistID: specialist.ID,
			}, nil
		}
	}

	if s.admin.Username != "" && username == s.admin.Username && s.verifier.Verify(s.admin.Password, secret) {
		s.logger.Info("session.login.admin", out.LogFields{})
		return &domain.Principal{Role: domain.RoleAdmin, Name: "Admin"}, nil
	}

	s.logger.Info("session.login.rejected", out.LogFields{
		"username": username,
	})
	return nil, domain.NewUnauthorizedError("Invalid credentials")
}

type Claims struct {
	Role         domain.Role       `json:"role"`
	Name         string            `json:"name"`
	SpecialistID json_types.FlexID `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

func (s *SessionService) IssueToken(principal domain.Principal) (string, error) {
	now := s.now()
	c := Claims{
		Role:         principal.Role,
		Name:         principal.Name,
		SpecialistID: principal.SpecialistID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *SessionService) ParseToken(raw string) (*domain.Principal, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return &domain.Principal{
		Role:         c.Role,
		Name:         c.Name,
		SpecialistID: c.SpecialistID,
	}, nil
}
