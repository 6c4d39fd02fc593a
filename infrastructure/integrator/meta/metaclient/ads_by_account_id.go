package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
)

// GetAds lista os anúncios da conta. Filtra por conjuntos quando informados,
// senão por campanhas.
func (c *MetaClient) GetAds(ctx context.Context, accountID, token string, since *time.Time, campaignIDs, adSetIDs []string) ([]metadomain.Ad, error) {
	field, ids := "", []string(nil)
	switch {
	case len(adSetIDs) > 0:
		field, ids = "adset.id", adSetIDs
	case len(campaignIDs) > 0:
		field, ids = "campaign.id", campaignIDs
	}

	groups := [][]string{nil}
	if len(ids) > 0 {
		groups = chunkIDs(ids)
	}

	ads := make([]metadomain.Ad, 0)
	for _, group := range groups {
		filters := updatedSince(since)
		if len(group) > 0 {
			filters = append(filters, filter{Field: field, Operator: "IN", Value: group})
		}

		params := url.Values{}
		params.Add("fields", metadomain.AdFields)
		params.Add("access_token", token)
		if len(filters) > 0 {
			params.Add("filtering", encodeFilters(filters))
		}

		items, err := c.getAll(ctx, accountID, "ads", fmt.Sprintf("act_%s/ads", accountID), params)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar anúncios da conta %s: %w", accountID, err)
		}

		for _, item := range items {
			var ad metadomain.Ad
			if err := json.Unmarshal(item, &ad); err != nil {
				return nil, fmt.Errorf("erro ao decodificar anúncio: %w", err)
			}
			ad.Raw = rawCopy(item)
			ads = append(ads, ad)
		}
	}

	return ads, nil
}
