package database

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/postgres/mocks"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"go.uber.org/mock/gomock"
)

func tableBlock(t *testing.T, name string) string {
	t.Helper()
	re := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS ` + name + ` \((.*?)\n\);`)
	m := re.FindStringSubmatch(Schema)
	require.NotNil(t, m, "tabela %s ausente no esquema", name)
	return m[1]
}

func TestSchema_CoversUpsertTables(t *testing.T) {
	for _, table := range bulk.DefaultRegistry().Tables() {
		t.Run(table.Name, func(t *testing.T) {
			block := tableBlock(t, table.Name)
			for _, c := range table.Columns {
				assert.Regexp(t, `(?m)^\s+`+c.Name+`\s`, block, "coluna %s.%s ausente", table.Name, c.Name)
			}
			if table.HasUpdatedAt {
				assert.Regexp(t, `(?m)^\s+updated_at\s`, block)
			}
		})
	}
}

func TestSchema_ConflictKeys(t *testing.T) {
	keys := map[string]string{
		bulk.TableCampaigns:           "account_id, external_id",
		bulk.TableAdGroups:            "account_id, external_id",
		bulk.TableAdCreatives:         "account_id, external_id",
		bulk.TableAds:                 "account_id, external_id",
		bulk.TableInsights:            "account_id, campaign_id, ad_group_id, ad_id, date",
		bulk.TableHourlyInsights:      "account_id, campaign_id, ad_group_id, ad_id, date, hour",
		bulk.TableDeviceBreakdowns:    "insight_id, device",
		bulk.TableAgeGenderBreakdowns: "insight_id, age, gender",
		bulk.TableRegionBreakdowns:    "insight_id, region",
		bulk.TableRollupStats:         "branch_id, date, platform",
	}

	for table, key := range keys {
		assert.Contains(t, tableBlock(t, table), "UNIQUE ("+key+")", table)
	}
}

func TestSchema_EntityStatusEnum(t *testing.T) {
	enum := Schema[strings.Index(Schema, "CREATE TYPE entity_status"):strings.Index(Schema, "END IF;")]
	for _, s := range domain.EntityStatuses {
		assert.Contains(t, enum, "'"+string(s)+"'")
	}

	// Status de anúncio comuns da Meta, inclusive em bancos criados antes deles
	for _, s := range []domain.EntityStatus{domain.EntityStatusPreapproved, domain.EntityStatusPendingBilling} {
		assert.Contains(t, Schema, "ALTER TYPE entity_status ADD VALUE IF NOT EXISTS '"+string(s)+"';")
	}
}

func TestApplySchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockQueryer(ctrl)

	conn.EXPECT().ExecContext(gomock.Any(), Schema).Return(nil, nil)
	require.NoError(t, ApplySchema(context.Background(), conn))

	dbErr := errors.New("permissão negada")
	conn.EXPECT().ExecContext(gomock.Any(), Schema).Return(nil, dbErr)
	assert.ErrorIs(t, ApplySchema(context.Background(), conn), dbErr)
}
