package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "syncctl",
		Short: "Executa unidades de sincronização de anúncios sob demanda",
		Long: `syncctl roda uma única unidade de trabalho do motor de sincronização:
entidades de uma conta, métricas de um intervalo, consolidação de uma filial,
um job agendado ou a limpeza das métricas por hora.

Exemplo:
  syncctl insights acc_123 --since 2025-03-01 --until 2025-03-07 --granularity DAILY`,
		SilenceUsage: true,
	}

	root.AddCommand(
		entitiesCmd(),
		insightsCmd(),
		rollupCmd(),
		cronCmd(),
		cleanupCmd(),
		tokenCmd(),
		migrateCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "erro: %v\n", err)
		fmt.Fprintf(os.Stderr, "causa: %v\n", errors.Cause(err))
		os.Exit(1)
	}
}
