package metaclient

import (
	"context"

	metadomain "github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

var adAccountFields = []string{"id", "account_id", "name", "currency", "account_status", "business{id,name}"}

// Get faz uma única leitura e devolve a resposta normalizada.
func (c *MetaClient) Get(ctx context.Context, operation string, req Request) (*Response, error) {
	return c.fetch(ctx, operation, c.buildURL(req))
}

// GetEntities lê uma lista de campanhas, conjuntos ou anúncios seguindo paging.next.
func (c *MetaClient) GetEntities(ctx context.Context, operation string, req Request) ([]metadomain.Entity, error) {
	entities := make([]metadomain.Entity, 0)

	err := c.paginate(ctx, operation, c.buildURL(req), func(resp *Response) (string, error) {
		var page metadomain.EntityPage
		if err := resp.JSON(&page); err != nil {
			return "", err
		}
		entities = append(entities, page.Data...)
		return page.Paging.Next, nil
	})
	if err != nil {
		return nil, err
	}

	return entities, nil
}

// GetInsights lê o endpoint /insights de um objeto.
func (c *MetaClient) GetInsights(ctx context.Context, req Request) ([]metadomain.InsightRecord, error) {
	records := make([]metadomain.InsightRecord, 0)

	err := c.paginate(ctx, "insights", c.buildURL(req), func(resp *Response) (string, error) {
		var page metadomain.InsightPage
		if err := resp.JSON(&page); err != nil {
			return "", err
		}
		records = append(records, page.Data...)
		return page.Paging.Next, nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetAdAccounts lista as contas de anúncios acessíveis pelo token.
func (c *MetaClient) GetAdAccounts(ctx context.Context, accessToken string) ([]metadomain.AdAccount, error) {
	req := Request{
		Path:        "me/adaccounts",
		AccessToken: accessToken,
		Fields:      adAccountFields,
		Limit:       MaxLimit,
	}

	accounts := make([]metadomain.AdAccount, 0)
	err := c.paginate(ctx, "ad_accounts", c.buildURL(req), func(resp *Response) (string, error) {
		var page metadomain.AdAccountPage
		if err := resp.JSON(&page); err != nil {
			return "", err
		}
		accounts = append(accounts, page.Data...)
		return page.Paging.Next, nil
	})
	if err != nil {
		return nil, err
	}

	return accounts, nil
}

// paginate chama handle para cada página até não haver próxima ou atingir maxPages.
func (c *MetaClient) paginate(ctx context.Context, operation, rawURL string, handle func(*Response) (string, error)) error {
	next := rawURL

	for page := 1; next != ""; page++ {
		resp, err := c.fetch(ctx, operation, next)
		if err != nil {
			return err
		}

		next, err = handle(resp)
		if err != nil {
			return err
		}

		if next != "" && page >= c.maxPages {
			log.ForContext(ctx).WithFields(log.Fields{
				"operation": operation,
				"max_pages": c.maxPages,
			}).Warn("meta: page limit reached, truncating result")
			break
		}
	}

	return nil
}
