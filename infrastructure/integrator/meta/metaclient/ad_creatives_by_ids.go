package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
)

// GetAdCreatives busca criativos pelos IDs, em lotes, usando o parâmetro ids da Graph API.
// Sem IDs, lista todos os criativos da conta.
func (c *MetaClient) GetAdCreatives(ctx context.Context, accountID, token string, creativeIDs []string) ([]metadomain.AdCreative, error) {
	if len(creativeIDs) == 0 {
		return c.listAdCreatives(ctx, accountID, token)
	}

	creatives := make([]metadomain.AdCreative, 0, len(creativeIDs))

	for _, ids := range chunkIDs(creativeIDs) {
		params := url.Values{}
		params.Add("ids", strings.Join(ids, ","))
		params.Add("fields", metadomain.AdCreativeFields)
		params.Add("access_token", token)

		body, err := c.get(ctx, accountID, "adcreatives", c.endpointURL("", params))
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar criativos da conta %s: %w", accountID, err)
		}

		var byID map[string]jsoniter.RawMessage
		if err := json.Unmarshal(body, &byID); err != nil {
			return nil, fmt.Errorf("erro ao decodificar criativos: %w", err)
		}

		keys := make([]string, 0, len(byID))
		for id := range byID {
			keys = append(keys, id)
		}
		sort.Strings(keys)

		for _, id := range keys {
			item := byID[id]
			var creative metadomain.AdCreative
			if err := json.Unmarshal(item, &creative); err != nil {
				return nil, fmt.Errorf("erro ao decodificar criativo %s: %w", id, err)
			}
			creative.Raw = rawCopy(item)
			creatives = append(creatives, creative)
		}
	}

	return creatives, nil
}

func (c *MetaClient) listAdCreatives(ctx context.Context, accountID, token string) ([]metadomain.AdCreative, error) {
	params := url.Values{}
	params.Add("fields", metadomain.AdCreativeFields)
	params.Add("access_token", token)

	items, err := c.getAll(ctx, accountID, "adcreatives", fmt.Sprintf("act_%s/adcreatives", accountID), params)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar criativos da conta %s: %w", accountID, err)
	}

	creatives := make([]metadomain.AdCreative, 0, len(items))
	for _, item := range items {
		var creative metadomain.AdCreative
		if err := json.Unmarshal(item, &creative); err != nil {
			return nil, fmt.Errorf("erro ao decodificar criativo: %w", err)
		}
		creative.Raw = rawCopy(item)
		creatives = append(creatives, creative)
	}

	return creatives, nil
}
