package insightsync

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	"github.com/vfg2006/traffic-sync-engine/infrastructure/repository"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

var (
	dailyUniqueColumns  = []string{"account_id", "campaign_id", "ad_group_id", "ad_id", "date"}
	hourlyUniqueColumns = []string{"account_id", "campaign_id", "ad_group_id", "ad_id", "date", "hour"}
)

// chunkAds divide os IDs externos em lotes, em ordem estável
func chunkAds(ads map[string]*domain.Ad, size int) [][]string {
	ids := make([]string, 0, len(ads))
	for ext := range ads {
		ids = append(ids, ext)
	}
	sort.Strings(ids)

	chunks := make([][]string, 0, len(ids)/size+1)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

func dailyRow(p *pass, r platform.Record) (bulk.Row, domain.InsightKey, bool) {
	ad, ok := p.ads[r.String(platform.KeyAdID)]
	if !ok {
		return nil, domain.InsightKey{}, false
	}
	date, ok := r.Date(platform.KeyDate)
	if !ok {
		return nil, domain.InsightKey{}, false
	}

	key := domain.InsightKey{AdID: ad.ID, Date: date.Format(time.DateOnly)}

	return bulk.Row{
		"id":               utils.MustGenerateID(),
		"account_id":       p.account.ID,
		"campaign_id":      ad.CampaignID,
		"ad_group_id":      ad.AdGroupID,
		"ad_id":            ad.ID,
		"date":             key.Date,
		"spend":            r[platform.KeySpend],
		"impressions":      r[platform.KeyImpressions],
		"clicks":           r[platform.KeyClicks],
		"reach":            r[platform.KeyReach],
		"frequency":        r[platform.KeyFrequency],
		"ctr":              r[platform.KeyCTR],
		"cpc":              r[platform.KeyCPC],
		"cpm":              r[platform.KeyCPM],
		"results":          r[platform.KeyResults],
		"conversions":      r[platform.KeyConversions],
		"platform_metrics": r[platform.KeyPlatformMetrics],
		"synced_at":        p.now,
	}, key, true
}

// hourlyRecord é uma faixa horária buscada na passada, já ligada ao anúncio interno
type hourlyRecord struct {
	ad     *domain.Ad
	date   time.Time
	hour   int
	record platform.Record
	values map[string]decimal.Decimal
}

func toHourlyRecord(p *pass, r platform.Record) (hourlyRecord, bool) {
	ad, ok := p.ads[r.String(platform.KeyAdID)]
	if !ok {
		return hourlyRecord{}, false
	}
	date, ok := r.Date(platform.KeyDate)
	if !ok {
		return hourlyRecord{}, false
	}
	hour, ok := r.Int(platform.KeyHour)
	if !ok || hour < 0 || hour > 23 {
		return hourlyRecord{}, false
	}

	values := make(map[string]decimal.Decimal, len(repository.GrowthMetrics))
	for _, m := range repository.GrowthMetrics {
		if v, ok := r.Decimal(m); ok {
			values[m] = v
		}
	}

	return hourlyRecord{
		ad:     ad,
		date:   date,
		hour:   int(hour),
		record: r,
		values: values,
	}, true
}

type slotKey struct {
	adID string
	date string
	hour int
}

// slotIndex guarda as faixas conhecidas. As da passada sobrescrevem as do banco.
type slotIndex map[slotKey]map[string]decimal.Decimal

func newSlotIndex(fetched []hourlyRecord, stored []domain.HourlyMetrics) slotIndex {
	idx := make(slotIndex, len(fetched)+len(stored))
	for _, m := range stored {
		idx[slotKey{adID: m.AdID, date: m.Date.Format(time.DateOnly), hour: m.Hour}] = m.Values
	}
	for _, hr := range fetched {
		idx[slotKey{adID: hr.ad.ID, date: hr.date.Format(time.DateOnly), hour: hr.hour}] = hr.values
	}
	return idx
}

func (idx slotIndex) previous(adID string, date time.Time, hour int) (map[string]decimal.Decimal, bool) {
	prevDate, prevHour := domain.PreviousSlot(date, hour)
	v, ok := idx[slotKey{adID: adID, date: prevDate.Format(time.DateOnly), hour: prevHour}]
	return v, ok
}

// growth calcula valor(H) - valor(H-1). Sem valor atual o crescimento é nulo;
// sem a faixa imediatamente anterior, o crescimento é o próprio valor atual.
func growth(hr hourlyRecord, slots slotIndex) map[string]any {
	prev, hasPrev := slots.previous(hr.ad.ID, hr.date, hr.hour)

	out := make(map[string]any, len(repository.GrowthMetrics))
	for _, m := range repository.GrowthMetrics {
		cur, ok := hr.values[m]
		if !ok {
			out[m] = nil
			continue
		}

		pv, ok := prev[m]
		if !hasPrev || !ok {
			out[m] = cur
			continue
		}
		out[m] = cur.Sub(pv)
	}
	return out
}

func hourlyRow(p *pass, hr hourlyRecord, slots slotIndex) bulk.Row {
	r := hr.record
	row := bulk.Row{
		"id":               utils.MustGenerateID(),
		"account_id":       p.account.ID,
		"campaign_id":      hr.ad.CampaignID,
		"ad_group_id":      hr.ad.AdGroupID,
		"ad_id":            hr.ad.ID,
		"date":             hr.date.Format(time.DateOnly),
		"hour":             hr.hour,
		"hour_label":       domain.HourSlotLabel(hr.hour),
		"spend":            r[platform.KeySpend],
		"impressions":      r[platform.KeyImpressions],
		"clicks":           r[platform.KeyClicks],
		"results":          r[platform.KeyResults],
		"conversions":      r[platform.KeyConversions],
		"platform_metrics": r[platform.KeyPlatformMetrics],
		"synced_at":        p.now,
	}

	for m, v := range growth(hr, slots) {
		row[m+"_growth"] = v
	}

	return row
}

func totalsOf(r platform.Record) domain.Totals {
	var t domain.Totals
	if v, ok := r.Decimal(platform.KeySpend); ok {
		t.Spend = v
	}
	t.Impressions, _ = r.Int(platform.KeyImpressions)
	t.Clicks, _ = r.Int(platform.KeyClicks)
	t.Reach, _ = r.Int(platform.KeyReach)
	t.Results, _ = r.Int(platform.KeyResults)
	t.Conversions, _ = r.Int(platform.KeyConversions)
	return t
}

// updateColumns atualiza tudo exceto o ID interno e a chave de conflito
func updateColumns(rows []bulk.Row, unique []string) []string {
	if len(rows) == 0 {
		return nil
	}

	skip := map[string]bool{"id": true}
	for _, c := range unique {
		skip[c] = true
	}

	columns := make([]string, 0, len(rows[0]))
	for name := range rows[0] {
		if !skip[name] {
			columns = append(columns, name)
		}
	}
	sort.Strings(columns)
	return columns
}
