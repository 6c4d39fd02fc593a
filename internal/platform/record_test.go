package platform_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/internal/platform/mocks"
	"go.uber.org/mock/gomock"
)

func TestRecord_Accessors(t *testing.T) {
	r := platform.Record{
		platform.KeySpend:       "12.34",
		platform.KeyImpressions: "1000",
		platform.KeyClicks:      float64(7),
		platform.KeyHour:        3,
		platform.KeyName:        "Anúncio",
		platform.KeyExternalID:  int64(42),
		platform.KeyUpdatedTime: "2025-03-10T11:30:00-0300",
		platform.KeyDate:        "2025-03-10",
	}

	spend, ok := r.Decimal(platform.KeySpend)
	require.True(t, ok)
	assert.Equal(t, "12.34", spend.String())

	impressions, ok := r.Int(platform.KeyImpressions)
	require.True(t, ok)
	assert.Equal(t, int64(1000), impressions)

	clicks, ok := r.Int(platform.KeyClicks)
	require.True(t, ok)
	assert.Equal(t, int64(7), clicks)

	hour, ok := r.Int(platform.KeyHour)
	require.True(t, ok)
	assert.Equal(t, int64(3), hour)

	assert.Equal(t, "Anúncio", r.String(platform.KeyName))
	assert.Equal(t, "42", r.String(platform.KeyExternalID))
	assert.Equal(t, "", r.String("inexistente"))

	updated := r.Time(platform.KeyUpdatedTime)
	require.NotNil(t, updated)
	assert.True(t, updated.Equal(time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)))

	date, ok := r.Date(platform.KeyDate)
	require.True(t, ok)
	assert.Equal(t, "2025-03-10", date.Format(time.DateOnly))

	_, ok = r.Decimal(platform.KeyReach)
	assert.False(t, ok)
}

func TestRegistry_For(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	adapter := mocks.NewMockAdapter(ctrl)
	adapter.EXPECT().Platform().Return(domain.PlatformMeta)

	registry := platform.NewRegistry(adapter)

	got, err := registry.For(domain.PlatformMeta)
	require.NoError(t, err)
	assert.Equal(t, adapter, got)

	got, err = registry.For("")
	require.NoError(t, err)
	assert.Equal(t, adapter, got)

	_, err = registry.For("tiktok")
	assert.True(t, errors.Is(err, platform.ErrUnsupportedPlatform))
}
