package insightsync

import (
	"errors"

	"github.com/vfg2006/traffic-sync-engine/internal/credential"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

var (
	ErrAccountNotFound    = domain.ErrAccountNotFound
	ErrNoActiveCredential = credential.ErrNoActiveCredential
	ErrInvalidDateRange   = domain.ErrInvalidDateRange

	// Erros de escrita interrompem a passada; falhas de busca não
	ErrWriteInsights   = errors.New("erro ao gravar métricas")
	ErrWriteBreakdowns = errors.New("erro ao gravar quebras de métricas")
)
