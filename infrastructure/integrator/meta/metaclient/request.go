package metaclient

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// InsightFields são os campos pedidos no sub-recurso de insights de cada entidade.
var InsightFields = []string{"spend", "impressions", "clicks", "ctr", "cpc", "actions", "action_values"}

// Request descreve uma leitura na Graph API.
type Request struct {
	Path        string
	AccessToken string
	Fields      []string
	Params      url.Values
	Limit       int
}

// ClampLimit aplica o padrão e o teto de itens por página.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// InsightsField monta o campo aninhado de insights, por exemplo
// insights.date_preset(last_7_d){spend,impressions}. Em lifetime o preset é omitido.
func InsightsField(translation domain.PresetTranslation, fields []string) string {
	if translation.IsLifetime || translation.ExternalPreset == nil {
		return fmt.Sprintf("insights{%s}", strings.Join(fields, ","))
	}

	return fmt.Sprintf("insights.date_preset(%s){%s}", *translation.ExternalPreset, strings.Join(fields, ","))
}

// buildURL monta a URL completa: {base}/{versão}/{path}?fields=...&limit=...&access_token=...
func (c *MetaClient) buildURL(req Request) string {
	params := url.Values{}
	for key, values := range req.Params {
		for _, value := range values {
			params.Add(key, value)
		}
	}

	if len(req.Fields) > 0 {
		params.Set("fields", strings.Join(req.Fields, ","))
	}
	params.Set("limit", strconv.Itoa(ClampLimit(req.Limit)))
	params.Set("access_token", req.AccessToken)

	return fmt.Sprintf("%s/%s?%s", c.cfg.URL, strings.TrimPrefix(req.Path, "/"), params.Encode())
}

// redactURL remove segredos da URL antes de ir para o log.
func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}

	query := parsed.Query()
	for _, key := range []string{"access_token", "client_secret", "fb_exchange_token", "input_token"} {
		if query.Has(key) {
			query.Set(key, "REDACTED")
		}
	}
	parsed.RawQuery = query.Encode()

	return parsed.String()
}
