package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
)

const hourlyBreakdown = "hourly_stats_aggregated_by_advertiser_time_zone"

var breakdownParams = map[domain.Breakdown]string{
	domain.BreakdownDevice:    "impression_device",
	domain.BreakdownAgeGender: "age,gender",
	domain.BreakdownRegion:    "region",
}

// MetaIntegrator implementa platform.Adapter sobre a Graph API
type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

func (s *MetaIntegrator) Platform() domain.Platform {
	return domain.PlatformMeta
}

func (s *MetaIntegrator) FetchCampaigns(ctx context.Context, accountExternalID, token string, since *time.Time) ([]platform.Record, error) {
	campaigns, err := s.Client.GetCampaigns(ctx, accountExternalID, token, since)
	if err != nil {
		return nil, err
	}

	records := make([]platform.Record, 0, len(campaigns))
	for _, c := range campaigns {
		records = append(records, platform.Record{
			platform.KeyExternalID:      c.ID,
			platform.KeyName:            c.Name,
			platform.KeyObjective:       c.Objective,
			platform.KeyStatus:          c.Status,
			platform.KeyEffectiveStatus: c.EffectiveStatus,
			platform.KeyDailyBudget:     c.DailyBudget,
			platform.KeyLifetimeBudget:  c.LifetimeBudget,
			platform.KeyStartTime:       c.StartTime,
			platform.KeyEndTime:         c.StopTime,
			platform.KeyCreatedTime:     c.CreatedTime,
			platform.KeyUpdatedTime:     c.UpdatedTime,
			platform.KeyRaw:             rawJSON(c.Raw),
		})
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"account_id":      accountExternalID,
		"campaigns_count": len(records),
	}).Debug("meta: campanhas obtidas")

	return records, nil
}

func (s *MetaIntegrator) FetchAdGroups(ctx context.Context, accountExternalID, token string, since *time.Time, campaignIDs []string) ([]platform.Record, error) {
	adSets, err := s.Client.GetAdSets(ctx, accountExternalID, token, since, campaignIDs)
	if err != nil {
		return nil, err
	}

	records := make([]platform.Record, 0, len(adSets))
	for _, a := range adSets {
		records = append(records, platform.Record{
			platform.KeyExternalID:      a.ID,
			platform.KeyCampaignID:      a.CampaignID,
			platform.KeyName:            a.Name,
			platform.KeyStatus:          a.Status,
			platform.KeyEffectiveStatus: a.EffectiveStatus,
			platform.KeyOptimization:    a.OptimizationGoal,
			platform.KeyBillingEvent:    a.BillingEvent,
			platform.KeyDailyBudget:     a.DailyBudget,
			platform.KeyLifetimeBudget:  a.LifetimeBudget,
			platform.KeyStartTime:       a.StartTime,
			platform.KeyEndTime:         a.EndTime,
			platform.KeyCreatedTime:     a.CreatedTime,
			platform.KeyUpdatedTime:     a.UpdatedTime,
			platform.KeyTargeting:       rawJSON(a.Targeting),
			platform.KeyRaw:             rawJSON(a.Raw),
		})
	}

	return records, nil
}

func (s *MetaIntegrator) FetchAds(ctx context.Context, accountExternalID, token string, since *time.Time, campaignIDs, adGroupIDs []string) ([]platform.Record, error) {
	ads, err := s.Client.GetAds(ctx, accountExternalID, token, since, campaignIDs, adGroupIDs)
	if err != nil {
		return nil, err
	}

	records := make([]platform.Record, 0, len(ads))
	for _, a := range ads {
		record := platform.Record{
			platform.KeyExternalID:      a.ID,
			platform.KeyName:            a.Name,
			platform.KeyCampaignID:      a.CampaignID,
			platform.KeyAdGroupID:       a.AdSetID,
			platform.KeyStatus:          a.Status,
			platform.KeyEffectiveStatus: a.EffectiveStatus,
			platform.KeyUpdatedTime:     a.UpdatedTime,
			platform.KeyRaw:             rawJSON(a.Raw),
		}
		if a.Creative != nil && a.Creative.ID != "" {
			record[platform.KeyCreativeID] = a.Creative.ID
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *MetaIntegrator) FetchAdCreatives(ctx context.Context, accountExternalID, token string, creativeIDs []string) ([]platform.Record, error) {
	creatives, err := s.Client.GetAdCreatives(ctx, accountExternalID, token, creativeIDs)
	if err != nil {
		return nil, err
	}

	records := make([]platform.Record, 0, len(creatives))
	for _, c := range creatives {
		records = append(records, platform.Record{
			platform.KeyExternalID:      c.ID,
			platform.KeyName:            c.Name,
			platform.KeyStatus:          c.Status,
			platform.KeyTitle:           c.Title,
			platform.KeyBody:            c.Body,
			platform.KeyImageURL:        c.ImageURL,
			platform.KeyThumbnailURL:    c.ThumbnailURL,
			platform.KeyCallToAction:    c.CallToActionType,
			platform.KeyObjectStorySpec: rawJSON(c.ObjectStorySpec),
			platform.KeyRaw:             rawJSON(c.Raw),
		})
	}

	return records, nil
}

func (s *MetaIntegrator) FetchInsights(ctx context.Context, req platform.InsightsRequest) ([]platform.Record, error) {
	params, err := insightParams(req)
	if err != nil {
		return nil, err
	}

	insights, err := s.Client.GetInsights(ctx, req.AccountExternalID, req.Token, params)
	if err != nil {
		return nil, err
	}

	records := make([]platform.Record, 0, len(insights))
	for i := range insights {
		record, err := insightRecord(&insights[i], req)
		if err != nil {
			log.ForContext(ctx).WithFields(log.Fields{
				"account_id": req.AccountExternalID,
				"ad_id":      insights[i].AdID,
			}).WithError(err).Warn("meta: linha de métricas ignorada")
			continue
		}
		records = append(records, record)
	}

	return records, nil
}

func (s *MetaIntegrator) ValidateToken(ctx context.Context, token string) (*platform.TokenInfo, error) {
	me, err := s.Client.GetMe(ctx, token)
	if err != nil {
		return nil, err
	}

	return &platform.TokenInfo{
		ExternalID: me.ID,
		Name:       me.Name,
	}, nil
}

func insightParams(req platform.InsightsRequest) (url.Values, error) {
	level := req.Level
	if level == "" {
		level = platform.LevelAd
	}

	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}",
		req.DateRange.Since.Format(time.DateOnly),
		req.DateRange.Until.Format(time.DateOnly),
	)

	params := url.Values{}
	params.Add("level", string(level))
	params.Add("fields", metadomain.InsightFields)
	params.Add("time_range", timeRange)
	params.Add("time_increment", "1")

	breakdowns := make([]string, 0, 2)
	if req.Granularity == domain.GranularityHourly {
		breakdowns = append(breakdowns, hourlyBreakdown)
	}
	if req.Breakdown != "" {
		if req.Granularity == domain.GranularityHourly {
			return nil, fmt.Errorf("quebra %s não é suportada com granularidade por hora", req.Breakdown)
		}
		b, ok := breakdownParams[req.Breakdown]
		if !ok {
			return nil, fmt.Errorf("quebra desconhecida: %s", req.Breakdown)
		}
		breakdowns = append(breakdowns, b)
	}
	if len(breakdowns) > 0 {
		params.Add("breakdowns", strings.Join(breakdowns, ","))
	}

	var filters []map[string]any
	if len(req.AdIDs) > 0 {
		filters = append(filters, map[string]any{"field": "ad.id", "operator": "IN", "value": req.AdIDs})
	}
	if len(req.CampaignIDs) > 0 {
		filters = append(filters, map[string]any{"field": "campaign.id", "operator": "IN", "value": req.CampaignIDs})
	}
	if len(filters) > 0 {
		b, err := json.Marshal(filters)
		if err != nil {
			return nil, fmt.Errorf("erro ao montar filtro: %w", err)
		}
		params.Add("filtering", string(b))
	}

	return params, nil
}

func insightRecord(in *metadomain.Insight, req platform.InsightsRequest) (platform.Record, error) {
	record := platform.Record{
		platform.KeyCampaignID:  in.CampaignID,
		platform.KeyAdGroupID:   in.AdSetID,
		platform.KeyAdID:        in.AdID,
		platform.KeyDate:        in.DateStart,
		platform.KeySpend:       in.Spend,
		platform.KeyImpressions: in.Impressions,
		platform.KeyClicks:      in.Clicks,
		platform.KeyReach:       in.Reach,
		platform.KeyFrequency:   in.Frequency,
		platform.KeyCTR:         in.CTR,
		platform.KeyCPC:         in.CPC,
		platform.KeyCPM:         in.CPM,
		platform.KeyResults:     in.Results(),
		platform.KeyConversions: in.Conversions(),
		platform.KeyPlatformMetrics: map[string]any{
			"objective":            in.Objective,
			"actions":              in.Actions,
			"cost_per_action_type": in.CostPerActions,
			"cost_per_result":      in.CostPerResult(),
		},
	}

	if req.Granularity == domain.GranularityHourly {
		hour, err := domain.ParseHourSlot(in.HourlyStats)
		if err != nil {
			return nil, err
		}
		record[platform.KeyHour] = hour
	}

	switch req.Breakdown {
	case domain.BreakdownDevice:
		record[platform.KeyDevice] = in.ImpressionDevice
	case domain.BreakdownAgeGender:
		record[platform.KeyAge] = in.Age
		record[platform.KeyGender] = in.Gender
	case domain.BreakdownRegion:
		record[platform.KeyRegion] = in.Region
	}

	return record, nil
}

func rawJSON(raw json.RawMessage) any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return string(raw)
}
