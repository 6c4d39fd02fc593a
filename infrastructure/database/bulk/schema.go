package bulk

const (
	TableCampaigns           = "campaigns"
	TableAdGroups            = "ad_groups"
	TableAdCreatives         = "ad_creatives"
	TableAds                 = "ads"
	TableInsights            = "ad_insights"
	TableHourlyInsights      = "ad_insights_hourly"
	TableDeviceBreakdowns    = "insight_device_breakdowns"
	TableAgeGenderBreakdowns = "insight_age_gender_breakdowns"
	TableRegionBreakdowns    = "insight_region_breakdowns"
	TableRollupStats         = "rollup_stats"

	entityStatusType = "entity_status"
)

func breakdownTable(name string, dimensions ...Column) *Table {
	columns := []Column{Text("id"), Text("insight_id")}
	columns = append(columns, dimensions...)
	columns = append(columns,
		Numeric("spend"),
		BigInteger("impressions"),
		BigInteger("clicks"),
		BigInteger("reach"),
		BigInteger("results"),
	)
	return NewTable(name, false, columns...)
}

// DefaultRegistry contém todas as tabelas escritas pela sincronização
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewTable(TableCampaigns, true,
			Text("id"),
			Text("account_id"),
			Text("external_id"),
			Text("name"),
			Text("objective"),
			Enum("status", entityStatusType),
			Enum("effective_status", entityStatusType),
			Numeric("daily_budget"),
			Numeric("lifetime_budget"),
			Timestamp("start_time"),
			Timestamp("end_time"),
			Timestamp("created_time"),
			Timestamp("updated_time"),
			JSON("raw"),
			Timestamp("deleted_at"),
			Timestamp("synced_at"),
		),
		NewTable(TableAdGroups, true,
			Text("id"),
			Text("account_id"),
			Text("campaign_id"),
			Text("external_id"),
			Text("name"),
			Enum("status", entityStatusType),
			Enum("effective_status", entityStatusType),
			Text("optimization_goal"),
			Text("billing_event"),
			Numeric("daily_budget"),
			Numeric("lifetime_budget"),
			Timestamp("start_time"),
			Timestamp("end_time"),
			JSON("targeting"),
			Timestamp("updated_time"),
			JSON("raw"),
			Timestamp("deleted_at"),
			Timestamp("synced_at"),
		),
		NewTable(TableAdCreatives, true,
			Text("id"),
			Text("account_id"),
			Text("external_id"),
			Text("name"),
			Text("status"),
			Text("title"),
			Text("body"),
			Text("image_url"),
			Text("thumbnail_url"),
			Text("call_to_action_type"),
			JSON("object_story_spec"),
			JSON("raw"),
			Timestamp("synced_at"),
		),
		NewTable(TableAds, true,
			Text("id"),
			Text("account_id"),
			Text("campaign_id"),
			Text("ad_group_id"),
			Text("creative_id"),
			Text("creative_external_id"),
			Text("external_id"),
			Text("name"),
			Enum("status", entityStatusType),
			Enum("effective_status", entityStatusType),
			Timestamp("updated_time"),
			JSON("raw"),
			Timestamp("deleted_at"),
			Timestamp("synced_at"),
		),
		NewTable(TableInsights, true,
			Text("id"),
			Text("account_id"),
			Text("campaign_id"),
			Text("ad_group_id"),
			Text("ad_id"),
			Date("date"),
			Numeric("spend"),
			BigInteger("impressions"),
			BigInteger("clicks"),
			BigInteger("reach"),
			Numeric("frequency"),
			Numeric("ctr"),
			Numeric("cpc"),
			Numeric("cpm"),
			BigInteger("results"),
			BigInteger("conversions"),
			JSON("platform_metrics"),
			Timestamp("synced_at"),
		),
		NewTable(TableHourlyInsights, true,
			Text("id"),
			Text("account_id"),
			Text("campaign_id"),
			Text("ad_group_id"),
			Text("ad_id"),
			Date("date"),
			Integer("hour"),
			Text("hour_label"),
			Numeric("spend"),
			BigInteger("impressions"),
			BigInteger("clicks"),
			BigInteger("results"),
			BigInteger("conversions"),
			Numeric("spend_growth"),
			BigInteger("impressions_growth"),
			BigInteger("clicks_growth"),
			BigInteger("results_growth"),
			BigInteger("conversions_growth"),
			JSON("platform_metrics"),
			Timestamp("synced_at"),
		),
		breakdownTable(TableDeviceBreakdowns, Text("device")),
		breakdownTable(TableAgeGenderBreakdowns, Text("age"), Text("gender")),
		breakdownTable(TableRegionBreakdowns, Text("region")),
		NewTable(TableRollupStats, true,
			Text("id"),
			Text("branch_id"),
			Date("date"),
			Text("platform"),
			Numeric("spend"),
			BigInteger("impressions"),
			BigInteger("clicks"),
			BigInteger("results"),
			Integer("accounts_count"),
		),
	)
}
