package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
)

// GetInsights busca métricas da conta com os parâmetros já montados pelo chamador
func (c *MetaClient) GetInsights(ctx context.Context, accountID, token string, params url.Values) ([]metadomain.Insight, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = append([]string(nil), v...)
	}
	query.Set("access_token", token)

	items, err := c.getAll(ctx, accountID, "insights", fmt.Sprintf("act_%s/insights", accountID), query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar métricas da conta %s: %w", accountID, err)
	}

	insights := make([]metadomain.Insight, 0, len(items))
	for _, item := range items {
		var insight metadomain.Insight
		if err := json.Unmarshal(item, &insight); err != nil {
			return nil, fmt.Errorf("erro ao decodificar métrica: %w", err)
		}
		insights = append(insights, insight)
	}

	return insights, nil
}
