package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
)

// GetAdSets lista os conjuntos de anúncios da conta. Com campaignIDs, filtra pelas campanhas.
func (c *MetaClient) GetAdSets(ctx context.Context, accountID, token string, since *time.Time, campaignIDs []string) ([]metadomain.AdSet, error) {
	groups := [][]string{nil}
	if len(campaignIDs) > 0 {
		groups = chunkIDs(campaignIDs)
	}

	adSets := make([]metadomain.AdSet, 0)
	for _, ids := range groups {
		filters := updatedSince(since)
		if len(ids) > 0 {
			filters = append(filters, filter{Field: "campaign.id", Operator: "IN", Value: ids})
		}

		params := url.Values{}
		params.Add("fields", metadomain.AdSetFields)
		params.Add("access_token", token)
		if len(filters) > 0 {
			params.Add("filtering", encodeFilters(filters))
		}

		items, err := c.getAll(ctx, accountID, "adsets", fmt.Sprintf("act_%s/adsets", accountID), params)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar conjuntos de anúncios da conta %s: %w", accountID, err)
		}

		for _, item := range items {
			var adSet metadomain.AdSet
			if err := json.Unmarshal(item, &adSet); err != nil {
				return nil, fmt.Errorf("erro ao decodificar conjunto de anúncios: %w", err)
			}
			adSet.Raw = rawCopy(item)
			adSets = append(adSets, adSet)
		}
	}

	return adSets, nil
}
