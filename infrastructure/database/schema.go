package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
)

//go:embed schema.sql
var Schema string

// ApplySchema cria tipos, tabelas e índices que ainda não existem
func ApplySchema(ctx context.Context, conn postgres.Queryer) error {
	if _, err := conn.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("erro ao aplicar esquema: %w", err)
	}

	logrus.Info("Esquema do banco aplicado com sucesso")
	return nil
}
