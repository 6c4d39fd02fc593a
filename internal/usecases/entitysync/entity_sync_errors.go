package entitysync

import (
	"fmt"

	"github.com/vfg2006/traffic-sync-engine/internal/credential"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
)

var (
	ErrAccountNotFound    = domain.ErrAccountNotFound
	ErrNoActiveCredential = credential.ErrNoActiveCredential
)

// TierError indica o nível em que a passada parou. Os níveis anteriores já foram gravados.
type TierError struct {
	Tier domain.EntityTier
	Err  error
}

func (e *TierError) Error() string {
	return fmt.Sprintf("falha ao sincronizar %s: %v", e.Tier, e.Err)
}

func (e *TierError) Unwrap() error {
	return e.Err
}
