package meta_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/metaclient/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"go.uber.org/mock/gomock"
)

func TestFetchAds_RenomeiaChaves(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().
		GetAds(gomock.Any(), "123", "tok", nil, nil, []string{"s1"}).
		Return([]metadomain.Ad{
			{
				ID:              "a1",
				Name:            "Anúncio",
				CampaignID:      "c1",
				AdSetID:         "s1",
				EffectiveStatus: "ACTIVE",
				Creative:        &metadomain.AdCreativeRef{ID: "cr1"},
				Raw:             []byte(`{"id":"a1"}`),
			},
			{ID: "a2", AdSetID: "s1"},
		}, nil)

	integrator := meta.New(client)
	records, err := integrator.FetchAds(context.Background(), "123", "tok", nil, nil, []string{"s1"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "s1", records[0].String(platform.KeyAdGroupID))
	assert.Equal(t, "cr1", records[0].String(platform.KeyCreativeID))
	assert.Equal(t, `{"id":"a1"}`, records[0][platform.KeyRaw])
	_, hasCreative := records[1][platform.KeyCreativeID]
	assert.False(t, hasCreative)
	assert.Nil(t, records[1][platform.KeyRaw])
}

func TestFetchInsights(t *testing.T) {
	dateRange := domain.DateRange{
		Since: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		req      platform.InsightsRequest
		response []metadomain.Insight
		validate func(t *testing.T, params url.Values, records []platform.Record)
	}{
		{
			name: "diário com filtro de anúncios",
			req: platform.InsightsRequest{
				AccountExternalID: "123",
				Token:             "tok",
				DateRange:         dateRange,
				Granularity:       domain.GranularityDaily,
				AdIDs:             []string{"a1", "a2"},
			},
			response: []metadomain.Insight{{
				CampaignID:  "c1",
				AdSetID:     "s1",
				AdID:        "a1",
				Objective:   "OUTCOME_LEADS",
				DateStart:   "2025-03-10",
				Spend:       "12.34",
				Impressions: "1000",
				Actions:     []metadomain.Action{{ActionType: "lead", Value: "7"}, {ActionType: "offsite_conversion.fb_pixel_purchase", Value: "2"}},
			}},
			validate: func(t *testing.T, params url.Values, records []platform.Record) {
				assert.Equal(t, "ad", params.Get("level"))
				assert.Equal(t, "1", params.Get("time_increment"))
				assert.Equal(t, `{"since":"2025-03-10","until":"2025-03-11"}`, params.Get("time_range"))
				assert.Empty(t, params.Get("breakdowns"))
				assert.JSONEq(t, `[{"field":"ad.id","operator":"IN","value":["a1","a2"]}]`, params.Get("filtering"))

				require.Len(t, records, 1)
				r := records[0]
				assert.Equal(t, "s1", r.String(platform.KeyAdGroupID))
				assert.Equal(t, "2025-03-10", r.String(platform.KeyDate))
				assert.Equal(t, int64(7), r[platform.KeyResults])
				assert.Equal(t, int64(2), r[platform.KeyConversions])
				_, hasHour := r[platform.KeyHour]
				assert.False(t, hasHour)
			},
		},
		{
			name: "por hora lê a faixa horária",
			req: platform.InsightsRequest{
				AccountExternalID: "123",
				Token:             "tok",
				DateRange:         domain.SingleDay(dateRange.Since),
				Granularity:       domain.GranularityHourly,
			},
			response: []metadomain.Insight{
				{AdID: "a1", DateStart: "2025-03-10", HourlyStats: "14:00:00 - 14:59:59", Spend: "1"},
				{AdID: "a1", DateStart: "2025-03-10", HourlyStats: "inválido", Spend: "1"},
			},
			validate: func(t *testing.T, params url.Values, records []platform.Record) {
				assert.Equal(t, "hourly_stats_aggregated_by_advertiser_time_zone", params.Get("breakdowns"))
				require.Len(t, records, 1)
				assert.Equal(t, 14, records[0][platform.KeyHour])
			},
		},
		{
			name: "quebra por idade e gênero",
			req: platform.InsightsRequest{
				AccountExternalID: "123",
				Token:             "tok",
				DateRange:         dateRange,
				Granularity:       domain.GranularityDaily,
				Breakdown:         domain.BreakdownAgeGender,
			},
			response: []metadomain.Insight{{AdID: "a1", DateStart: "2025-03-10", Age: "25-34", Gender: "female"}},
			validate: func(t *testing.T, params url.Values, records []platform.Record) {
				assert.Equal(t, "age,gender", params.Get("breakdowns"))
				require.Len(t, records, 1)
				assert.Equal(t, "25-34", records[0].String(platform.KeyAge))
				assert.Equal(t, "female", records[0].String(platform.KeyGender))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var captured url.Values
			client := mocks.NewMockClient(ctrl)
			client.EXPECT().
				GetInsights(gomock.Any(), "123", "tok", gomock.Any()).
				DoAndReturn(func(_ context.Context, _, _ string, params url.Values) ([]metadomain.Insight, error) {
					captured = params
					return tt.response, nil
				})

			records, err := meta.New(client).FetchInsights(context.Background(), tt.req)
			require.NoError(t, err)
			tt.validate(t, captured, records)
		})
	}
}

func TestFetchInsights_QuebraPorHoraNaoSuportada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)

	_, err := meta.New(client).FetchInsights(context.Background(), platform.InsightsRequest{
		Granularity: domain.GranularityHourly,
		Breakdown:   domain.BreakdownDevice,
	})
	assert.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockClient(ctrl)
	client.EXPECT().GetMe(gomock.Any(), "tok").Return(&metadomain.Me{ID: "1", Name: "Loja"}, nil)
	client.EXPECT().GetMe(gomock.Any(), "ruim").Return(nil, platform.ErrTokenExpired)

	integrator := meta.New(client)

	info, err := integrator.ValidateToken(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &platform.TokenInfo{ExternalID: "1", Name: "Loja"}, info)

	_, err = integrator.ValidateToken(context.Background(), "ruim")
	assert.True(t, errors.Is(err, platform.ErrTokenExpired))
}
