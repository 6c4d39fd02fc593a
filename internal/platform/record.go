package platform

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

// Chaves canônicas dos registros
const (
	KeyExternalID      = "external_id"
	KeyName            = "name"
	KeyStatus          = "status"
	KeyEffectiveStatus = "effective_status"
	KeyCampaignID      = "campaign_id"
	KeyAdGroupID       = "ad_group_id"
	KeyAdID            = "ad_id"
	KeyCreativeID      = "creative_id"
	KeyObjective       = "objective"
	KeyDailyBudget     = "daily_budget"
	KeyLifetimeBudget  = "lifetime_budget"
	KeyStartTime       = "start_time"
	KeyEndTime         = "end_time"
	KeyCreatedTime     = "created_time"
	KeyUpdatedTime     = "updated_time"
	KeyOptimization    = "optimization_goal"
	KeyBillingEvent    = "billing_event"
	KeyTargeting       = "targeting"
	KeyTitle           = "title"
	KeyBody            = "body"
	KeyImageURL        = "image_url"
	KeyThumbnailURL    = "thumbnail_url"
	KeyCallToAction    = "call_to_action_type"
	KeyObjectStorySpec = "object_story_spec"
	KeyRaw             = "raw"

	KeyDate            = "date"
	KeyHour            = "hour"
	KeySpend           = "spend"
	KeyImpressions     = "impressions"
	KeyClicks          = "clicks"
	KeyReach           = "reach"
	KeyFrequency       = "frequency"
	KeyCTR             = "ctr"
	KeyCPC             = "cpc"
	KeyCPM             = "cpm"
	KeyResults         = "results"
	KeyConversions     = "conversions"
	KeyPlatformMetrics = "platform_metrics"

	KeyDevice = "device"
	KeyAge    = "age"
	KeyGender = "gender"
	KeyRegion = "region"
)

// Record é um registro de plataforma com tipos frouxos: números podem vir como texto
type Record map[string]any

func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (r Record) Decimal(key string) (decimal.Decimal, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return decimal.Zero, false
	}
	return utils.ToDecimal(v)
}

func (r Record) Int(key string) (int64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	return utils.ToInt64(v)
}

func (r Record) Time(key string) *time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if v == "" {
			return nil
		}
		t, err := utils.ParseTimestamp(v)
		if err != nil {
			return nil
		}
		return &t
	}
	return nil
}

// Date interpreta a chave como data de calendário
func (r Record) Date(key string) (time.Time, bool) {
	s := r.String(key)
	if len(s) < len(time.DateOnly) {
		return time.Time{}, false
	}
	d, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
