package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
)

// GetCampaigns lista as campanhas da conta, só as alteradas desde since quando informado
func (c *MetaClient) GetCampaigns(ctx context.Context, accountID, token string, since *time.Time) ([]metadomain.Campaign, error) {
	params := url.Values{}
	params.Add("fields", metadomain.CampaignFields)
	params.Add("access_token", token)
	if filters := updatedSince(since); len(filters) > 0 {
		params.Add("filtering", encodeFilters(filters))
	}

	items, err := c.getAll(ctx, accountID, "campaigns", fmt.Sprintf("act_%s/campaigns", accountID), params)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar campanhas da conta %s: %w", accountID, err)
	}

	campaigns := make([]metadomain.Campaign, 0, len(items))
	for _, item := range items {
		var campaign metadomain.Campaign
		if err := json.Unmarshal(item, &campaign); err != nil {
			return nil, fmt.Errorf("erro ao decodificar campanha: %w", err)
		}
		campaign.Raw = rawCopy(item)
		campaigns = append(campaigns, campaign)
	}

	return campaigns, nil
}

func rawCopy(item jsoniter.RawMessage) []byte {
	out := make([]byte, len(item))
	copy(out, item)
	return out
}
