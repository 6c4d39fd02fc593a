package authenticating

import (
	"errors"
)

var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrMissingSecret  = errors.New("segredo de assinatura não configurado")
	ErrInvalidRole    = errors.New("perfil inválido")
	ErrMissingSubject = errors.New("identificação do portador ausente")
)

// IsAuthorizationError verifica se o erro está relacionado a problemas de autorização
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken)
}
