package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/internal/api"
	"github.com/vfg2006/traffic-sync-engine/internal/app"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine, err := app.New(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao inicializar a aplicação")
	}
	defer engine.Close()

	engine.Start(ctx)

	if err := engine.Scheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização")
	} else {
		logrus.Info("Agendador de sincronização iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: engine.Authenticator,
		Entities:      engine.Entities,
		Insights:      engine.Insights,
		Rollups:       engine.Rollups,
		Scheduler:     engine.Scheduler,
		RateLimiter:   engine.RateLimiter,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}
