package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	gobreaker "github.com/sony/gobreaker/v2"
	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/config"
	"github.com/vfg2006/traffic-sync-engine/internal/metrics"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"golang.org/x/time/rate"
)

//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	breakerName       = "meta-graph-api"
	defaultPageLimit  = 500
	defaultMaxRetries = 2
	// Quantidade máxima de IDs por filtro IN
	idsPerRequest = 50
)

type Client interface {
	GetCampaigns(ctx context.Context, accountID, token string, since *time.Time) ([]metadomain.Campaign, error)
	GetAdSets(ctx context.Context, accountID, token string, since *time.Time, campaignIDs []string) ([]metadomain.AdSet, error)
	GetAds(ctx context.Context, accountID, token string, since *time.Time, campaignIDs, adSetIDs []string) ([]metadomain.Ad, error)
	GetAdCreatives(ctx context.Context, accountID, token string, creativeIDs []string) ([]metadomain.AdCreative, error)
	GetInsights(ctx context.Context, accountID, token string, params url.Values) ([]metadomain.Insight, error)
	GetMe(ctx context.Context, token string) (*metadomain.Me, error)
}

// UsageLimiter recebe o uso reportado pela API e segura requisições quando necessário
type UsageLimiter interface {
	RecordUsage(accountID string, utilizationPercent float64)
	WaitIfNeeded(ctx context.Context, accountID string) error
}

type response struct {
	status int
	header http.Header
	body   []byte
}

type MetaClient struct {
	baseURL    string
	pageLimit  int
	maxRetries int
	httpClient *http.Client
	limiter    UsageLimiter
	pacer      *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*response]
}

type Option func(*MetaClient)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *MetaClient) {
		c.httpClient = httpClient
	}
}

func WithMaxRetries(n int) Option {
	return func(c *MetaClient) {
		c.maxRetries = n
	}
}

func NewClient(cfg config.Meta, limiter UsageLimiter, opts ...Option) *MetaClient {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}

	pacer := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		pacer = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), max(1, int(cfg.RequestsPerSecond)))
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c := &MetaClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		pageLimit:  pageLimit,
		maxRetries: defaultMaxRetries,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		pacer:      pacer,
		breaker: gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
			Name:        breakerName,
			MaxRequests: 3,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.L.WithFields(log.Fields{
					"from": from.String(),
					"to":   to.String(),
				}).Warn("Circuit breaker da API do Meta mudou de estado")
				metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
			},
		}),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// endpointURL monta a URL de um caminho relativo à versão configurada da API
func (c *MetaClient) endpointURL(path string, params url.Values) string {
	return fmt.Sprintf("%s/%s?%s", c.baseURL, strings.TrimLeft(path, "/"), params.Encode())
}

// getAll segue a paginação por cursor até a última página
func (c *MetaClient) getAll(ctx context.Context, accountID, endpoint, path string, params url.Values) ([]jsoniter.RawMessage, error) {
	if params.Get("limit") == "" {
		params.Set("limit", strconv.Itoa(c.pageLimit))
	}

	items := make([]jsoniter.RawMessage, 0)
	next := c.endpointURL(path, params)
	for next != "" {
		body, err := c.get(ctx, accountID, endpoint, next)
		if err != nil {
			return nil, err
		}

		var page metadomain.Page
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("erro ao decodificar página de %s: %w", endpoint, err)
		}

		for _, item := range page.Data {
			items = append(items, jsoniter.RawMessage(item))
		}
		next = page.Paging.Next
	}

	return items, nil
}

// get faz um GET com espera do limitador, ritmo global e circuit breaker.
// Limites de uso disparam nova tentativa após a pausa da conta.
func (c *MetaClient) get(ctx context.Context, accountID, endpoint, requestURL string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		body, err := c.doOnce(ctx, accountID, endpoint, requestURL)
		if err == nil {
			return body, nil
		}

		if !errors.Is(err, platform.ErrThrottled) || attempt >= c.maxRetries {
			return nil, err
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"account_id": accountID,
			"endpoint":   endpoint,
			"attempt":    attempt + 1,
		}).Warn("Limite de uso da API do Meta atingido, aguardando para tentar novamente")
	}
}

func (c *MetaClient) doOnce(ctx context.Context, accountID, endpoint, requestURL string) ([]byte, error) {
	if accountID != "" && c.limiter != nil {
		if err := c.limiter.WaitIfNeeded(ctx, accountID); err != nil {
			return nil, err
		}
	}

	if err := c.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.roundTrip(ctx, requestURL)
	})
	if err != nil {
		metrics.PlatformRequests.WithLabelValues("meta", endpoint, "error").Inc()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %s", platform.ErrUnavailable, err)
		}
		return nil, err
	}

	metrics.PlatformRequests.WithLabelValues("meta", endpoint, strconv.Itoa(resp.status)).Inc()

	if accountID != "" && c.limiter != nil {
		if usage, ok := ParseUsage(resp.header); ok {
			c.limiter.RecordUsage(accountID, usage)
		}
	}

	if resp.status == http.StatusOK {
		return resp.body, nil
	}

	apiErr := classifyError(resp.status, resp.body)
	if errors.Is(apiErr, platform.ErrThrottled) && accountID != "" && c.limiter != nil {
		c.limiter.RecordUsage(accountID, 100)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id": accountID,
		"endpoint":   endpoint,
		"status":     resp.status,
	}).WithError(apiErr).Error("Erro na resposta da API do Meta")

	return nil, apiErr
}

// roundTrip executa a requisição. Falhas de rede e 5xx contam como falha no circuit breaker.
func (c *MetaClient) roundTrip(ctx context.Context, requestURL string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao fazer a requisição: %s", platform.ErrUnavailable, redact(err.Error()))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: erro ao ler resposta: %s", platform.ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d: %s", platform.ErrUnavailable, resp.StatusCode, truncate(body))
	}

	return &response{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// redact remove o token de acesso de mensagens que contêm a URL
func redact(msg string) string {
	idx := strings.Index(msg, "access_token=")
	if idx < 0 {
		return msg
	}
	end := strings.IndexAny(msg[idx:], "&\" ")
	if end < 0 {
		return msg[:idx] + "access_token=***"
	}
	return msg[:idx] + "access_token=***" + msg[idx+end:]
}

func truncate(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}

func chunkIDs(ids []string) [][]string {
	chunks := make([][]string, 0, len(ids)/idsPerRequest+1)
	for start := 0; start < len(ids); start += idsPerRequest {
		chunks = append(chunks, ids[start:min(start+idsPerRequest, len(ids))])
	}
	return chunks
}

// filter é um item do parâmetro filtering da Graph API
type filter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

func encodeFilters(filters []filter) string {
	b, _ := json.Marshal(filters)
	return string(b)
}

func updatedSince(since *time.Time) []filter {
	if since == nil {
		return nil
	}
	return []filter{{Field: "updated_time", Operator: "GREATER_THAN", Value: since.Unix()}}
}
