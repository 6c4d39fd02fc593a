package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador interno das linhas sincronizadas
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 21)
}

// MustGenerateID é GenerateID para caminhos onde a falha do gerador é irrecuperável
func MustGenerateID() string {
	return gonanoid.MustGenerate(characters, 21)
}
