package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/traffic-sync-engine/internal/metrics"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

const (
	DefaultThresholdPercent = 70.0
	DefaultCooldown         = 30 * time.Second
)

// Clock permite simular o tempo nos testes
type Clock interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type Config struct {
	ThresholdPercent float64
	Cooldown         time.Duration
}

// State é o último uso reportado de uma conta
type State struct {
	Utilization float64   `json:"utilization"`
	PausedUntil time.Time `json:"paused_until"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Limiter guarda em memória o uso de API por conta e segura chamadas
// enquanto a conta estiver em pausa. Nunca rejeita: apenas atrasa.
type Limiter struct {
	mu     sync.Mutex
	states map[string]State
	cfg    Config
	clock  Clock
}

type Option func(*Limiter)

func WithClock(clock Clock) Option {
	return func(l *Limiter) {
		l.clock = clock
	}
}

func New(cfg Config, opts ...Option) *Limiter {
	if cfg.ThresholdPercent <= 0 {
		cfg.ThresholdPercent = DefaultThresholdPercent
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}

	l := &Limiter{
		states: make(map[string]State),
		cfg:    cfg,
		clock:  realClock{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RecordUsage registra o percentual de uso reportado pela plataforma.
// O último relatório sobrescreve o anterior, inclusive removendo uma pausa pendente.
func (l *Limiter) RecordUsage(accountID string, utilizationPercent float64) {
	now := l.clock.Now()
	state := State{
		Utilization: utilizationPercent,
		UpdatedAt:   now,
	}

	if utilizationPercent >= l.cfg.ThresholdPercent {
		state.PausedUntil = now.Add(l.cfg.Cooldown)
		metrics.RateLimitPauses.Inc()
		log.L.WithFields(log.Fields{
			"account_id":  accountID,
			"utilization": utilizationPercent,
			"cooldown":    l.cfg.Cooldown.String(),
		}).Warn("Uso de API acima do limite, conta em pausa")
	}

	l.mu.Lock()
	l.states[accountID] = state
	l.mu.Unlock()

	metrics.PlatformUsage.WithLabelValues(accountID).Set(utilizationPercent)
}

// WaitIfNeeded bloqueia pelo tempo restante da pausa da conta, se houver
func (l *Limiter) WaitIfNeeded(ctx context.Context, accountID string) error {
	l.mu.Lock()
	state, ok := l.states[accountID]
	l.mu.Unlock()
	if !ok {
		return nil
	}

	remaining := state.PausedUntil.Sub(l.clock.Now())
	if remaining <= 0 {
		return nil
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": accountID,
		"wait":       remaining.String(),
	}).Info("Aguardando resfriamento do limite de requisições")

	metrics.RateLimitWait.Observe(remaining.Seconds())

	return l.clock.Sleep(ctx, remaining)
}

func (l *Limiter) State(accountID string) (State, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[accountID]
	return state, ok
}

// Snapshot retorna uma cópia do estado de todas as contas
func (l *Limiter) Snapshot() map[string]State {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]State, len(l.states))
	for k, v := range l.states {
		out[k] = v
	}
	return out
}
