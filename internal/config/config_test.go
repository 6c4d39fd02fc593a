package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountTokens(t *testing.T) {
	tokens := ParseAccountTokens([]string{
		"acc-1=token-a",
		" acc-2 = token-b ",
		"sem-token=",
		"invalido",
		"",
	})

	assert.Equal(t, map[string]string{
		"acc-1": "token-a",
		"acc-2": "token-b",
	}, tokens)
}

func TestFinalize(t *testing.T) {
	cfg := &Config{
		Database: Database{
			Driver:   "postgres",
			User:     "sync",
			Password: "secret",
			URL:      "db:5432/traffic",
		},
		Meta: Meta{
			BaseURL:       "https://graph.facebook.com",
			Version:       "v22.0",
			AccountTokens: []string{"acc-1=tok"},
		},
	}

	cfg.finalize()

	assert.Equal(t, "postgres://sync:secret@db:5432/traffic", cfg.Database.DSN)
	assert.Equal(t, "https://graph.facebook.com/v22.0", cfg.Meta.URL)
	assert.Equal(t, "tok", cfg.Meta.TokensByAccount["acc-1"])
}
