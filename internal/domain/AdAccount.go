package domain

import (
	"errors"
	"time"
)

var ErrAccountNotFound = errors.New("conta não encontrada")

type Platform string

const (
	PlatformMeta Platform = "meta"
)

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é a conta de anúncios de uma plataforma, opcionalmente vinculada a uma filial
type AdAccount struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Platform   Platform        `json:"platform"`
	Timezone   string          `json:"timezone"`
	Currency   string          `json:"currency"`
	BranchID   *string         `json:"branch_id"`
	Status     AdAccountStatus `json:"status"`
	SyncedAt   *time.Time      `json:"synced_at"`
}

// Location retorna o fuso horário da conta, usando UTC quando ausente ou inválido
func (a *AdAccount) Location() *time.Location {
	if a == nil || a.Timezone == "" {
		return time.UTC
	}

	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}

func (a *AdAccount) HasBranch() bool {
	return a != nil && a.BranchID != nil && *a.BranchID != ""
}
