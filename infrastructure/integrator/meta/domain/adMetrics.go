package metadomain

import (
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha de métricas da Graph API. Com breakdowns, os campos de
// dimensão correspondentes vêm preenchidos.
type Insight struct {
	AccountID      string   `json:"account_id"`
	CampaignID     string   `json:"campaign_id"`
	AdSetID        string   `json:"adset_id"`
	AdID           string   `json:"ad_id"`
	Objective      string   `json:"objective"`
	DateStart      string   `json:"date_start"`
	DateStop       string   `json:"date_stop"`
	Spend          string   `json:"spend"`
	Impressions    string   `json:"impressions"`
	Clicks         string   `json:"clicks"`
	Reach          string   `json:"reach"`
	Frequency      string   `json:"frequency"`
	CTR            string   `json:"ctr"`
	CPC            string   `json:"cpc"`
	CPM            string   `json:"cpm"`
	Actions        []Action `json:"actions"`
	CostPerActions []Action `json:"cost_per_action_type"`

	HourlyStats      string `json:"hourly_stats_aggregated_by_advertiser_time_zone"`
	ImpressionDevice string `json:"impression_device"`
	Age              string `json:"age"`
	Gender           string `json:"gender"`
	Region           string `json:"region"`
}

// Mapeamento de "objective" -> "cost_per_action_type"
var MetaObjectiveToActionType = map[string]string{
	"LINK_CLICKS":           "link_click",
	"POST_ENGAGEMENT":       "post_engagement",
	"PAGE_LIKES":            "like",
	"VIDEO_VIEWS":           "video_view",
	"LEAD_GENERATION":       "lead",
	"CONVERSIONS":           "offsite_conversion",
	"APP_INSTALLS":          "app_install",
	"PRODUCT_CATALOG_SALES": "offsite_conversion.fb_pixel_purchase",
	"MESSAGES":              "onsite_conversion.messaging_first_reply",
	"BRAND_AWARENESS":       "brand_awareness",
	"REACH":                 "reach",
	"STORE_TRAFFIC":         "store_visit",
	"EVENT_RESPONSES":       "rsvp",
	"ADD_TO_CART":           "offsite_conversion.fb_pixel_add_to_cart",
	"PURCHASE":              "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_ENGAGEMENT":    "onsite_conversion.messaging_conversation_started_7d",
	"OUTCOME_LEADS":         "lead",
	"OUTCOME_SALES":         "offsite_conversion.fb_pixel_purchase",
	"OUTCOME_TRAFFIC":       "link_click",
	"OUTCOME_AWARENESS":     "reach",
}

// Results retorna o valor da ação que corresponde ao objetivo da campanha
func (i *Insight) Results() int64 {
	actionType, ok := MetaObjectiveToActionType[i.Objective]
	if !ok {
		logrus.WithField("objective", i.Objective).Debug("Objetivo não mapeado")
		return 0
	}

	for _, action := range i.Actions {
		if action.ActionType == actionType {
			v, err := strconv.ParseFloat(action.Value, 64)
			if err != nil {
				logrus.WithError(err).Error("Erro ao converter valor da ação")
				return 0
			}
			return int64(v)
		}
	}

	return 0
}

// Conversions soma as ações de conversão fora da plataforma e de compra
func (i *Insight) Conversions() int64 {
	var total int64
	for _, action := range i.Actions {
		if !strings.HasPrefix(action.ActionType, "offsite_conversion") && action.ActionType != "purchase" {
			continue
		}
		v, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			continue
		}
		total += int64(v)
	}
	return total
}

func (i *Insight) CostPerResult() float64 {
	actionType := MetaObjectiveToActionType[i.Objective]
	for _, action := range i.CostPerActions {
		if action.ActionType == actionType {
			v, err := strconv.ParseFloat(action.Value, 64)
			if err != nil {
				logrus.WithError(err).Error("Erro ao converter valor do custo por ação")
				return 0
			}
			return utils.RoundWithTwoDecimalPlace(v)
		}
	}
	return 0
}
