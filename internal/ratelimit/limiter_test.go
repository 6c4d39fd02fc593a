package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiter_WaitIfNeeded(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(l *Limiter, c *fakeClock)
		wantSleep []time.Duration
	}{
		{
			name:      "conta sem uso registrado não espera",
			setup:     func(l *Limiter, c *fakeClock) {},
			wantSleep: nil,
		},
		{
			name: "uso abaixo do limite não espera",
			setup: func(l *Limiter, c *fakeClock) {
				l.RecordUsage("acc", 69.9)
			},
			wantSleep: nil,
		},
		{
			name: "uso no limite espera o resfriamento completo",
			setup: func(l *Limiter, c *fakeClock) {
				l.RecordUsage("acc", 70)
			},
			wantSleep: []time.Duration{30 * time.Second},
		},
		{
			name: "espera apenas o tempo restante",
			setup: func(l *Limiter, c *fakeClock) {
				l.RecordUsage("acc", 95)
				c.advance(12 * time.Second)
			},
			wantSleep: []time.Duration{18 * time.Second},
		},
		{
			name: "pausa expirada não espera",
			setup: func(l *Limiter, c *fakeClock) {
				l.RecordUsage("acc", 95)
				c.advance(31 * time.Second)
			},
			wantSleep: nil,
		},
		{
			name: "relatório posterior abaixo do limite remove a pausa",
			setup: func(l *Limiter, c *fakeClock) {
				l.RecordUsage("acc", 95)
				c.advance(time.Second)
				l.RecordUsage("acc", 10)
			},
			wantSleep: nil,
		},
		{
			name: "pausa de outra conta não afeta",
			setup: func(l *Limiter, c *fakeClock) {
				l.RecordUsage("outra", 99)
			},
			wantSleep: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			limiter := New(Config{ThresholdPercent: 70, Cooldown: 30 * time.Second}, WithClock(clock))
			tt.setup(limiter, clock)

			err := limiter.WaitIfNeeded(context.Background(), "acc")
			require.NoError(t, err)
			assert.Equal(t, tt.wantSleep, clock.slept)
		})
	}
}

func TestLimiter_ContextCancelled(t *testing.T) {
	clock := newFakeClock()
	limiter := New(Config{}, WithClock(clock))
	limiter.RecordUsage("acc", 100)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.WaitIfNeeded(ctx, "acc")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLimiter_Defaults(t *testing.T) {
	clock := newFakeClock()
	limiter := New(Config{}, WithClock(clock))
	limiter.RecordUsage("acc", 70)

	state, ok := limiter.State("acc")
	require.True(t, ok)
	assert.Equal(t, clock.Now().Add(DefaultCooldown), state.PausedUntil)
	assert.Len(t, limiter.Snapshot(), 1)
}

func TestRealClock_Sleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := realClock{}.Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, realClock{}.Sleep(context.Background(), time.Millisecond))
}
