package metaclient

import (
	"context"
	"fmt"
	"net/url"

	metadomain "github.com/vfg2006/traffic-sync-engine/infrastructure/integrator/meta/domain"
)

// GetMe verifica o token consultando o endpoint /me
func (c *MetaClient) GetMe(ctx context.Context, token string) (*metadomain.Me, error) {
	if token == "" {
		return nil, fmt.Errorf("token não pode ser vazio")
	}

	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", token)

	body, err := c.get(ctx, "", "me", c.endpointURL("me", params))
	if err != nil {
		return nil, err
	}

	var me metadomain.Me
	if err := json.Unmarshal(body, &me); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	return &me, nil
}
