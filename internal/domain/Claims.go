package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
)

// Claims são os dados carregados no token de acesso da API administrativa
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
