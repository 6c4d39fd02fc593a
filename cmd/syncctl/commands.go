package main

import (
	"context"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-engine/internal/app"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/scheduler"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// withApp carrega a configuração, monta o motor e garante o fechamento ao final
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) (any, error)) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "carregando configuração")
	}
	log.Configure(cfg.App.LogLevel)

	ctx, correlationID := log.WithCorrelationID(cmd.Context())
	log.L.WithField("correlation_id", correlationID).WithField("command", cmd.Name()).Info("Iniciando comando")

	a, err := app.New(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "inicializando aplicação")
	}
	defer a.Close()
	a.Start(ctx)

	out, err := fn(ctx, a)
	if err != nil {
		return err
	}
	return printJSON(out)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "escrevendo resultado")
}

func parseRange(since, until string) (domain.DateRange, error) {
	s, err := utils.ParseDate(since)
	if err != nil {
		return domain.DateRange{}, errors.Wrap(err, "--since")
	}
	u, err := utils.ParseDate(until)
	if err != nil {
		return domain.DateRange{}, errors.Wrap(err, "--until")
	}
	r, err := domain.NewDateRange(*s, *u)
	return r, errors.WithStack(err)
}

func entitiesCmd() *cobra.Command {
	var full bool
	var tiers []string

	cmd := &cobra.Command{
		Use:   "entities <account-id>",
		Short: "Sincroniza campanhas, conjuntos, criativos e anúncios de uma conta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := entitysync.Options{ForceFullSync: full}
			for _, t := range tiers {
				tier, ok := domain.ParseEntityTier(t)
				if !ok {
					return errors.Errorf("camada inválida %q", t)
				}
				opts.Tiers = append(opts.Tiers, tier)
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) (any, error) {
				res, err := a.Entities.SyncAccount(ctx, args[0], opts)
				return res, errors.Wrapf(err, "sincronizando entidades da conta %s", args[0])
			})
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "Ignora o último synced_at e faz a passada completa (com tombstone)")
	cmd.Flags().StringSliceVar(&tiers, "tier", nil, "Camadas a sincronizar: campaigns, ad_groups, ad_creatives, ads")
	return cmd
}

func insightsCmd() *cobra.Command {
	var since, until, granularity string
	var ads []string
	var skipBreakdowns bool

	cmd := &cobra.Command{
		Use:   "insights <account-id>",
		Short: "Sincroniza métricas diárias ou por hora de uma conta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := parseRange(since, until)
			if err != nil {
				return err
			}
			g, err := domain.ParseGranularity(granularity)
			if err != nil {
				return errors.WithStack(err)
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) (any, error) {
				res, err := a.Insights.Sync(ctx, insightsync.Request{
					AccountID:      args[0],
					DateRange:      dateRange,
					Granularity:    g,
					AdExternalIDs:  ads,
					SkipBreakdowns: skipBreakdowns,
				})
				return res, errors.Wrapf(err, "sincronizando métricas da conta %s", args[0])
			})
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Data inicial YYYY-MM-DD (obrigatório)")
	cmd.Flags().StringVar(&until, "until", "", "Data final YYYY-MM-DD (obrigatório)")
	cmd.Flags().StringVar(&granularity, "granularity", string(domain.GranularityDaily), "DAILY ou HOURLY")
	cmd.Flags().StringSliceVar(&ads, "ad", nil, "IDs externos de anúncios (ignora o filtro de status no DAILY)")
	cmd.Flags().BoolVar(&skipBreakdowns, "skip-breakdowns", false, "Não busca quebras por dispositivo, idade/gênero e região")
	_ = cmd.MarkFlagRequired("since")
	_ = cmd.MarkFlagRequired("until")
	return cmd
}

func rollupCmd() *cobra.Command {
	var since, until string

	cmd := &cobra.Command{
		Use:   "rollup <branch-id>",
		Short: "Recalcula a consolidação diária de uma filial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateRange, err := parseRange(since, until)
			if err != nil {
				return err
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) (any, error) {
				n, err := a.Rollups.RecomputeRange(ctx, args[0], dateRange)
				if err != nil {
					return nil, errors.Wrapf(err, "consolidando filial %s", args[0])
				}
				return map[string]any{"branch_id": args[0], "date_range": dateRange, "rows": n}, nil
			})
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Data inicial YYYY-MM-DD (obrigatório)")
	cmd.Flags().StringVar(&until, "until", "", "Data final YYYY-MM-DD (obrigatório)")
	_ = cmd.MarkFlagRequired("since")
	_ = cmd.MarkFlagRequired("until")
	return cmd
}

func cronCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "cron <daily|hourly|retention>",
		Short:     "Executa um job agendado agora, aguardando o fim",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(scheduler.JobDaily), string(scheduler.JobHourly), string(scheduler.JobRetention)},
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := scheduler.ParseJobType(args[0])
			if err != nil {
				return errors.WithStack(err)
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) (any, error) {
				if err := a.Scheduler.Run(ctx, job); err != nil {
					return nil, errors.Wrapf(err, "executando job %s", job)
				}
				return a.Scheduler.GetStatus(), nil
			})
		},
	}
}

func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove métricas por hora anteriores a ontem",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) (any, error) {
				n, err := a.Insights.CleanupHourly(ctx, time.Now())
				if err != nil {
					return nil, errors.Wrap(err, "limpando métricas por hora")
				}
				return map[string]any{"deleted": n}, nil
			})
		},
	}
}

// tokenCmd só precisa do segredo, sem banco
func tokenCmd() *cobra.Command {
	var subject, role string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Gera um token de acesso para a API administrativa",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return errors.Wrap(err, "carregando configuração")
			}

			token, err := authenticating.NewService(cfg.Auth).IssueToken(subject, domain.Role(role), ttl)
			if err != nil {
				return errors.Wrap(err, "gerando token")
			}
			return printJSON(map[string]any{"token": token, "expires_in": ttl.String()})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "syncctl", "Identificação do portador")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAdmin), "Perfil: admin ou operator")
	cmd.Flags().DurationVar(&ttl, "ttl", authenticating.DefaultTokenTTL, "Validade do token")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o esquema do banco (tipos, tabelas e índices)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return errors.Wrap(err, "carregando configuração")
			}
			log.Configure(cfg.App.LogLevel)

			conn, err := postgres.NewConnection(cmd.Context(), cfg.Database)
			if err != nil {
				return errors.Wrap(err, "conectando ao PostgreSQL")
			}
			defer conn.Close()

			return errors.WithStack(database.ApplySchema(cmd.Context(), conn))
		},
	}
}
