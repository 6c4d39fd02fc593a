package domain

import "time"

type EntityStatus string

const (
	EntityStatusActive         EntityStatus = "ACTIVE"
	EntityStatusPaused         EntityStatus = "PAUSED"
	EntityStatusDeleted        EntityStatus = "DELETED"
	EntityStatusArchived       EntityStatus = "ARCHIVED"
	EntityStatusInProcess      EntityStatus = "IN_PROCESS"
	EntityStatusWithIssues     EntityStatus = "WITH_ISSUES"
	EntityStatusCampaignPaused EntityStatus = "CAMPAIGN_PAUSED"
	EntityStatusAdGroupPaused  EntityStatus = "ADSET_PAUSED"
	EntityStatusPendingReview  EntityStatus = "PENDING_REVIEW"
	EntityStatusDisapproved    EntityStatus = "DISAPPROVED"
	EntityStatusPreapproved    EntityStatus = "PREAPPROVED"
	EntityStatusPendingBilling EntityStatus = "PENDING_BILLING_INFO"
)

// EntityStatuses são os valores aceitos pelo tipo entity_status do banco
var EntityStatuses = []EntityStatus{
	EntityStatusActive,
	EntityStatusPaused,
	EntityStatusDeleted,
	EntityStatusArchived,
	EntityStatusInProcess,
	EntityStatusWithIssues,
	EntityStatusCampaignPaused,
	EntityStatusAdGroupPaused,
	EntityStatusPendingReview,
	EntityStatusDisapproved,
	EntityStatusPreapproved,
	EntityStatusPendingBilling,
}

func ParseEntityStatus(s string) (EntityStatus, bool) {
	for _, st := range EntityStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// DeliverableStatuses são os status efetivos de anúncios que ainda podem gerar métricas
var DeliverableStatuses = []EntityStatus{
	EntityStatusActive,
	EntityStatusInProcess,
	EntityStatusWithIssues,
}

func (s EntityStatus) IsDeliverable() bool {
	for _, st := range DeliverableStatuses {
		if s == st {
			return true
		}
	}
	return false
}

// EntityTier identifica um nível da hierarquia de anúncios
type EntityTier string

const (
	TierCampaigns EntityTier = "campaigns"
	TierAdGroups  EntityTier = "ad_groups"
	TierCreatives EntityTier = "ad_creatives"
	TierAds       EntityTier = "ads"
)

// TierOrder é a ordem obrigatória de busca: pais antes dos filhos
var TierOrder = []EntityTier{TierCampaigns, TierAdGroups, TierCreatives, TierAds}

func ParseEntityTier(s string) (EntityTier, bool) {
	for _, t := range TierOrder {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Ad é a visão de um anúncio usada pela sincronização de métricas
type Ad struct {
	ID              string       `json:"id"`
	AccountID       string       `json:"account_id"`
	CampaignID      string       `json:"campaign_id"`
	AdGroupID       string       `json:"ad_group_id"`
	ExternalID      string       `json:"external_id"`
	Name            string       `json:"name"`
	EffectiveStatus EntityStatus `json:"effective_status"`
	DeletedAt       *time.Time   `json:"deleted_at"`
}

// EntityCounts resume o estado de cada nível de uma conta no banco
type EntityCounts map[EntityTier]int
