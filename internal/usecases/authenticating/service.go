package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

const DefaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	IssueToken(subject string, role domain.Role, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	cfg config.Auth
	now func() time.Time
}

func NewService(cfg config.Auth) *Service {
	if cfg.Secret == "" {
		logrus.Warn("AUTH_SECRET vazio: nenhum token será aceito")
	}

	return &Service{
		cfg: cfg,
		now: time.Now,
	}
}

// IssueToken gera um token HS256 para operadores e automações da API administrativa
func (s *Service) IssueToken(subject string, role domain.Role, ttl time.Duration) (string, error) {
	if s.cfg.Secret == "" {
		return "", ErrMissingSecret
	}
	if subject == "" {
		return "", ErrMissingSubject
	}
	if role != domain.RoleAdmin && role != domain.RoleOperator {
		return "", fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	now := s.now()
	claims := domain.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if s.cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
