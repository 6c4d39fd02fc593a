package metadomain

import "encoding/json"

type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Objective       string `json:"objective"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	DailyBudget     string `json:"daily_budget"`
	LifetimeBudget  string `json:"lifetime_budget"`
	StartTime       string `json:"start_time"`
	StopTime        string `json:"stop_time"`
	CreatedTime     string `json:"created_time"`
	UpdatedTime     string `json:"updated_time"`

	Raw json.RawMessage `json:"-"`
}

// AdSet é o conjunto de anúncios, chamado de ad group no restante do sistema
type AdSet struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	CampaignID       string          `json:"campaign_id"`
	Status           string          `json:"status"`
	EffectiveStatus  string          `json:"effective_status"`
	OptimizationGoal string          `json:"optimization_goal"`
	BillingEvent     string          `json:"billing_event"`
	DailyBudget      string          `json:"daily_budget"`
	LifetimeBudget   string          `json:"lifetime_budget"`
	StartTime        string          `json:"start_time"`
	EndTime          string          `json:"end_time"`
	CreatedTime      string          `json:"created_time"`
	UpdatedTime      string          `json:"updated_time"`
	Targeting        json.RawMessage `json:"targeting"`

	Raw json.RawMessage `json:"-"`
}

type AdCreativeRef struct {
	ID string `json:"id"`
}

type Ad struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	CampaignID      string         `json:"campaign_id"`
	AdSetID         string         `json:"adset_id"`
	Status          string         `json:"status"`
	EffectiveStatus string         `json:"effective_status"`
	UpdatedTime     string         `json:"updated_time"`
	Creative        *AdCreativeRef `json:"creative"`

	Raw json.RawMessage `json:"-"`
}

type AdCreative struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Status           string          `json:"status"`
	Title            string          `json:"title"`
	Body             string          `json:"body"`
	ImageURL         string          `json:"image_url"`
	ThumbnailURL     string          `json:"thumbnail_url"`
	CallToActionType string          `json:"call_to_action_type"`
	ObjectStorySpec  json.RawMessage `json:"object_story_spec"`

	Raw json.RawMessage `json:"-"`
}

// Me é a identidade dona de um token
type Me struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Campos pedidos em cada listagem
const (
	CampaignFields   = "id,name,objective,status,effective_status,daily_budget,lifetime_budget,start_time,stop_time,created_time,updated_time"
	AdSetFields      = "id,name,campaign_id,status,effective_status,optimization_goal,billing_event,daily_budget,lifetime_budget,start_time,end_time,created_time,updated_time,targeting"
	AdFields         = "id,name,campaign_id,adset_id,status,effective_status,updated_time,creative{id}"
	AdCreativeFields = "id,name,status,title,body,image_url,thumbnail_url,call_to_action_type,object_story_spec"
	InsightFields    = "account_id,campaign_id,adset_id,ad_id,objective,spend,impressions,clicks,reach,frequency,ctr,cpc,cpm,actions,cost_per_action_type"
)
