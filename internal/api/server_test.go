package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/internal/api"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/ratelimit"
	"github.com/vfg2006/traffic-sync-engine/internal/scheduler"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/authenticating"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync"
	entitymocks "github.com/vfg2006/traffic-sync-engine/internal/usecases/entitysync/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync"
	insightmocks "github.com/vfg2006/traffic-sync-engine/internal/usecases/insightsync/mocks"
	rollupmocks "github.com/vfg2006/traffic-sync-engine/internal/usecases/rollup/mocks"
	"github.com/vfg2006/traffic-sync-engine/pkg/apiErrors"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeRunner struct {
	triggered []scheduler.JobType
	err       error
}

func (f *fakeRunner) TriggerManualSync(job scheduler.JobType) error {
	if f.err != nil {
		return f.err
	}
	f.triggered = append(f.triggered, job)
	return nil
}

func (f *fakeRunner) GetStatus() map[string]any {
	return map[string]any{"sync_enabled": true}
}

type apiFixture struct {
	entities *entitymocks.MockEntitySyncer
	insights *insightmocks.MockInsightSyncer
	rollups  *rollupmocks.MockAggregator
	runner   *fakeRunner
	limiter  *ratelimit.Limiter
	auth     *authenticating.Service
	handler  http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)

	f := &apiFixture{
		entities: entitymocks.NewMockEntitySyncer(ctrl),
		insights: insightmocks.NewMockInsightSyncer(ctrl),
		rollups:  rollupmocks.NewMockAggregator(ctrl),
		runner:   &fakeRunner{},
		limiter:  ratelimit.New(ratelimit.Config{ThresholdPercent: 70, Cooldown: time.Minute}),
		auth:     authenticating.NewService(config.Auth{Secret: "segredo-de-teste"}),
	}
	f.handler = api.NewHandler(api.Services{
		Authenticator: f.auth,
		Entities:      f.entities,
		Insights:      f.insights,
		Rollups:       f.rollups,
		Scheduler:     f.runner,
		RateLimiter:   f.limiter,
	})
	return f
}

func (f *apiFixture) do(t *testing.T, method, path, body string, role domain.Role) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))

	if role != "" {
		token, err := f.auth.IssueToken("ops", role, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr.Code
}

func TestAPI_PublicRoutes(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/healthcheck", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "traffic_rate_limit_pauses_total")
}

func TestAPI_Authorization(t *testing.T) {
	tests := []struct {
		name   string
		header string
		role   domain.Role
		status int
		code   string
	}{
		{name: "Sem cabeçalho", status: http.StatusUnauthorized, code: apiErrors.ErrInvalidToken},
		{name: "Sem Bearer", header: "Token abc", status: http.StatusUnauthorized, code: apiErrors.ErrInvalidToken},
		{name: "Token inválido", header: "Bearer abc", status: http.StatusUnauthorized, code: apiErrors.ErrInvalidToken},
		{name: "Perfil operador", role: domain.RoleOperator, status: http.StatusForbidden, code: apiErrors.ErrInsufficientPrivilege},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)

			var rec *httptest.ResponseRecorder
			if tt.role != "" {
				rec = f.do(t, http.MethodGet, "/v1/cron/status", "", tt.role)
			} else {
				req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
				if tt.header != "" {
					req.Header.Set("Authorization", tt.header)
				}
				rec = httptest.NewRecorder()
				f.handler.ServeHTTP(rec, req)
			}

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestAPI_SyncEntities(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		setup  func(f *apiFixture)
		status int
		code   string
	}{
		{
			name: "Sincronização completa forçada",
			body: `{"force_full_sync": true, "tiers": ["campaigns", "ads"]}`,
			setup: func(f *apiFixture) {
				f.entities.EXPECT().
					SyncAccount(gomock.Any(), "acc-1", entitysync.Options{
						ForceFullSync: true,
						Tiers:         []domain.EntityTier{domain.TierCampaigns, domain.TierAds},
					}).
					Return(&entitysync.Result{AccountID: "acc-1"}, nil)
			},
			status: http.StatusOK,
		},
		{
			name: "Corpo vazio usa padrões",
			setup: func(f *apiFixture) {
				f.entities.EXPECT().
					SyncAccount(gomock.Any(), "acc-1", entitysync.Options{}).
					Return(&entitysync.Result{AccountID: "acc-1"}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "Camada desconhecida",
			body:   `{"tiers": ["keywords"]}`,
			setup:  func(f *apiFixture) {},
			status: http.StatusBadRequest,
			code:   apiErrors.ErrInvalidRequest,
		},
		{
			name: "Conta inexistente",
			setup: func(f *apiFixture) {
				f.entities.EXPECT().SyncAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(nil, entitysync.ErrAccountNotFound)
			},
			status: http.StatusNotFound,
			code:   apiErrors.ErrAccountNotFound,
		},
		{
			name: "Conta sem credencial",
			setup: func(f *apiFixture) {
				f.entities.EXPECT().SyncAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(nil, entitysync.ErrNoActiveCredential)
			},
			status: http.StatusUnprocessableEntity,
			code:   apiErrors.ErrNoActiveCredential,
		},
		{
			name: "Falha em uma camada",
			setup: func(f *apiFixture) {
				f.entities.EXPECT().SyncAccount(gomock.Any(), "acc-1", gomock.Any()).
					Return(nil, &entitysync.TierError{Tier: domain.TierAdGroups, Err: errors.New("timeout")})
			},
			status: http.StatusBadGateway,
			code:   apiErrors.ErrTierFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)
			tt.setup(f)

			rec := f.do(t, http.MethodPost, "/v1/sync/accounts/acc-1/entities", tt.body, domain.RoleAdmin)

			assert.Equal(t, tt.status, rec.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, rec))
			}
		})
	}
}

func TestAPI_SyncInsights(t *testing.T) {
	t.Run("Intervalo válido", func(t *testing.T) {
		f := newAPIFixture(t)

		f.insights.EXPECT().
			Sync(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req insightsync.Request) (*insightsync.Result, error) {
				assert.Equal(t, "acc-1", req.AccountID)
				assert.Equal(t, domain.GranularityHourly, req.Granularity)
				assert.Equal(t, "2025-03-01..2025-03-02", req.DateRange.String())
				assert.Equal(t, []string{"ad_1"}, req.AdExternalIDs)
				assert.True(t, req.SkipBreakdowns)
				return &insightsync.Result{AccountID: "acc-1", RowsWritten: 48}, nil
			})

		rec := f.do(t, http.MethodPost, "/v1/sync/accounts/acc-1/insights",
			`{"since":"2025-03-01","until":"2025-03-02","granularity":"HOURLY","ad_ids":["ad_1"],"skip_breakdowns":true}`,
			domain.RoleAdmin)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "acc-1")
	})

	validation := []struct {
		name string
		body string
		code string
	}{
		{name: "Sem datas", body: `{}`, code: apiErrors.ErrMissingRequiredData},
		{name: "Data mal formatada", body: `{"since":"01/03/2025","until":"2025-03-02"}`, code: apiErrors.ErrInvalidFormat},
		{name: "Intervalo invertido", body: `{"since":"2025-03-05","until":"2025-03-02"}`, code: apiErrors.ErrInvalidDateRange},
		{name: "Granularidade inválida", body: `{"since":"2025-03-01","until":"2025-03-02","granularity":"WEEKLY"}`, code: apiErrors.ErrInvalidRequest},
		{name: "JSON inválido", body: `{"since":`, code: apiErrors.ErrInvalidFormat},
	}

	for _, tt := range validation {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t)

			rec := f.do(t, http.MethodPost, "/v1/sync/accounts/acc-1/insights", tt.body, domain.RoleAdmin)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestAPI_RebuildRollup(t *testing.T) {
	f := newAPIFixture(t)

	f.rollups.EXPECT().
		RecomputeRange(gomock.Any(), "branch-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, r domain.DateRange) (int, error) {
			assert.Equal(t, "2025-03-01..2025-03-03", r.String())
			return 3, nil
		})

	rec := f.do(t, http.MethodPost, "/v1/rollups/branch-1/rebuild?since=2025-03-01&until=2025-03-03", "", domain.RoleAdmin)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["rows"])

	rec = f.do(t, http.MethodPost, "/v1/rollups/branch-1/rebuild", "", domain.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_CronJobs(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/v1/cron/daily", "", domain.RoleAdmin)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []scheduler.JobType{scheduler.JobDaily}, f.runner.triggered)

	rec = f.do(t, http.MethodPost, "/v1/cron/weekly", "", domain.RoleAdmin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.runner.err = scheduler.ErrJobRunning
	rec = f.do(t, http.MethodPost, "/v1/cron/hourly", "", domain.RoleAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, apiErrors.ErrSyncRunning, errorCode(t, rec))

	rec = f.do(t, http.MethodGet, "/v1/cron/status", "", domain.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sync_enabled")
}

func TestAPI_RateLimitStatus(t *testing.T) {
	f := newAPIFixture(t)
	f.limiter.RecordUsage("act_1", 85)

	rec := f.do(t, http.MethodGet, "/v1/ratelimit", "", domain.RoleAdmin)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Accounts map[string]ratelimit.State `json:"accounts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(85), body.Accounts["act_1"].Utilization)
	assert.False(t, body.Accounts["act_1"].PausedUntil.IsZero())
}

func TestAPI_UnknownRoute(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/v1/unknown", "", domain.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, errorCode(t, rec))
}
