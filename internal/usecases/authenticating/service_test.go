package authenticating

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

func TestService_IssueAndValidate(t *testing.T) {
	svc := NewService(config.Auth{Secret: "segredo-de-teste"})

	token, err := svc.IssueToken("ops-bot", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-bot", claims.Subject)
	assert.True(t, claims.IsAdmin())
}

func TestService_ValidateToken(t *testing.T) {
	issuedAt := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "Token expirado",
			token: func(t *testing.T) string {
				svc := NewService(config.Auth{Secret: "segredo"})
				svc.now = func() time.Time { return issuedAt.Add(-2 * time.Hour) }
				tok, err := svc.IssueToken("ops", domain.RoleAdmin, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrExpiredToken,
		},
		{
			name: "Assinado com outro segredo",
			token: func(t *testing.T) string {
				tok, err := NewService(config.Auth{Secret: "outro"}).IssueToken("ops", domain.RoleAdmin, time.Hour)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "Algoritmo none é rejeitado",
			token: func(t *testing.T) string {
				claims := domain.Claims{Role: domain.RoleAdmin}
				tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return tok
			},
			wantErr: ErrInvalidToken,
		},
		{
			name:    "Texto qualquer",
			token:   func(t *testing.T) string { return "nao-e-um-jwt" },
			wantErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(config.Auth{Secret: "segredo"})
			svc.now = func() time.Time { return issuedAt }

			claims, err := svc.ValidateToken(tt.token(t))
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, IsAuthorizationError(err))
		})
	}
}

func TestService_IssueToken_Validation(t *testing.T) {
	_, err := NewService(config.Auth{}).IssueToken("ops", domain.RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSecret)

	svc := NewService(config.Auth{Secret: "segredo"})

	_, err = svc.IssueToken("", domain.RoleAdmin, time.Hour)
	assert.ErrorIs(t, err, ErrMissingSubject)

	_, err = svc.IssueToken("ops", domain.Role("root"), time.Hour)
	assert.ErrorIs(t, err, ErrInvalidRole)

	tok, err := svc.IssueToken("ops", domain.RoleOperator, 0)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(tok)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin())
	assert.WithinDuration(t, claims.IssuedAt.Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Second)
}
