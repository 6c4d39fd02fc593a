package insightsync

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/traffic-sync-engine/infrastructure/database/bulk"
	"github.com/vfg2006/traffic-sync-engine/internal/domain"
	"github.com/vfg2006/traffic-sync-engine/internal/platform"
	"github.com/vfg2006/traffic-sync-engine/pkg/log"
	"github.com/vfg2006/traffic-sync-engine/pkg/utils"
)

type breakdownSpec struct {
	table      string
	dimensions []string
}

var breakdownSpecs = map[domain.Breakdown]breakdownSpec{
	domain.BreakdownDevice:    {table: bulk.TableDeviceBreakdowns, dimensions: []string{platform.KeyDevice}},
	domain.BreakdownAgeGender: {table: bulk.TableAgeGenderBreakdowns, dimensions: []string{platform.KeyAge, platform.KeyGender}},
	domain.BreakdownRegion:    {table: bulk.TableRegionBreakdowns, dimensions: []string{platform.KeyRegion}},
}

var breakdownMetrics = []string{"clicks", "impressions", "reach", "results", "spend"}

type breakdownFetch struct {
	breakdown domain.Breakdown
	records   []platform.Record
	err       error
}

// syncBreakdowns busca as quebras em paralelo para os pares (anúncio, data) gravados.
// Cada dimensão cuja busca funcionou por completo tem as linhas antigas apagadas e as
// novas inseridas; dimensões com falha mantêm o que já estava gravado.
func (s *Service) syncBreakdowns(ctx context.Context, p *pass) error {
	logger := log.ForContext(ctx).WithField("account_id", p.account.ID)

	byID := make(map[string]*domain.Ad, len(p.ads))
	for _, ad := range p.ads {
		byID[ad.ID] = ad
	}

	writtenAds := make(map[string]*domain.Ad)
	for key := range p.written {
		if ad, ok := byID[key.AdID]; ok {
			writtenAds[ad.ExternalID] = ad
		}
	}

	adIDs := make([]string, 0, len(writtenAds))
	for _, ad := range writtenAds {
		adIDs = append(adIDs, ad.ID)
	}
	sort.Strings(adIDs)

	stored, err := s.adInsightRepository.DailyInsightIDs(ctx, p.account.ID, adIDs, p.req.DateRange)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteBreakdowns, err)
	}

	parents := make(map[domain.InsightKey]string, len(p.written))
	for key := range p.written {
		if id, ok := stored[key]; ok {
			parents[key] = id
		}
	}
	if len(parents) == 0 {
		logger.Warn("Nenhuma linha diária encontrada para vincular as quebras")
		return nil
	}

	parentIDs := make([]string, 0, len(parents))
	for _, id := range parents {
		parentIDs = append(parentIDs, id)
	}
	sort.Strings(parentIDs)

	chunks := chunkAds(writtenAds, s.chunkSize)

	fetches := make([]breakdownFetch, len(domain.AllBreakdowns))
	var wg sync.WaitGroup
	for i, b := range domain.AllBreakdowns {
		wg.Add(1)
		go func(i int, b domain.Breakdown) {
			defer wg.Done()
			fetches[i] = s.fetchBreakdown(ctx, p, b, chunks)
		}(i, b)
	}
	wg.Wait()

	p.result.Breakdowns = make(map[domain.Breakdown]int64, len(fetches))
	for _, f := range fetches {
		if f.err != nil {
			p.result.FailedBreakdowns = append(p.result.FailedBreakdowns, f.breakdown)
			logger.WithField("breakdown", f.breakdown).WithError(f.err).Error("Erro ao buscar quebra de métricas, mantendo linhas anteriores")
			continue
		}

		spec := breakdownSpecs[f.breakdown]
		rows := breakdownRows(p, spec, parents, f.records)

		if _, err := s.adInsightRepository.DeleteBreakdowns(ctx, spec.table, parentIDs); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteBreakdowns, err)
		}

		unique := append([]string{"insight_id"}, spec.dimensions...)
		n, err := s.upserter.Execute(ctx, spec.table, rows, unique, breakdownMetrics)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteBreakdowns, err)
		}
		p.result.Breakdowns[f.breakdown] = n
	}

	return nil
}

func (s *Service) fetchBreakdown(ctx context.Context, p *pass, b domain.Breakdown, chunks [][]string) breakdownFetch {
	out := breakdownFetch{breakdown: b}

	for _, chunk := range chunks {
		records, err := p.adapter.FetchInsights(ctx, platform.InsightsRequest{
			AccountExternalID: p.account.ExternalID,
			Token:             p.token,
			Level:             platform.LevelAd,
			DateRange:         p.req.DateRange,
			Granularity:       domain.GranularityDaily,
			Breakdown:         b,
			AdIDs:             chunk,
		})
		if err != nil {
			out.err = err
			out.records = nil
			return out
		}
		out.records = append(out.records, records...)
	}

	return out
}

func breakdownRows(p *pass, spec breakdownSpec, parents map[domain.InsightKey]string, records []platform.Record) []bulk.Row {
	rows := make([]bulk.Row, 0, len(records))
	for _, r := range records {
		ad, ok := p.ads[r.String(platform.KeyAdID)]
		if !ok {
			continue
		}
		date, ok := r.Date(platform.KeyDate)
		if !ok {
			continue
		}
		insightID, ok := parents[domain.InsightKey{AdID: ad.ID, Date: date.Format(time.DateOnly)}]
		if !ok {
			continue
		}

		row := bulk.Row{
			"id":          utils.MustGenerateID(),
			"insight_id":  insightID,
			"spend":       r[platform.KeySpend],
			"impressions": r[platform.KeyImpressions],
			"clicks":      r[platform.KeyClicks],
			"reach":       r[platform.KeyReach],
			"results":     r[platform.KeyResults],
		}
		for _, d := range spec.dimensions {
			row[d] = r.String(d)
		}
		rows = append(rows, row)
	}
	return rows
}
