package domain

import (
	"regexp"
	"strings"
	"time"
)

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

const adAccountPrefix = "act_"

var (
	adAccountPattern = regexp.MustCompile(`^act_\d+$`)
	entityIDPattern  = regexp.MustCompile(`^\d+$`)
)

// AdAccount é uma conta de anúncios conectada e persistida localmente.
type AdAccount struct {
	ID           string          `json:"id"`
	ExternalID   string          `json:"externalId"`
	Name         string          `json:"name"`
	Currency     string          `json:"currency,omitempty"`
	BusinessID   string          `json:"businessId,omitempty"`
	BusinessName string          `json:"businessName,omitempty"`
	Status       AdAccountStatus `json:"status"`
	ConnectedAt  time.Time       `json:"connectedAt"`
}

// AdAccountOption é a forma resumida guardada no cookie fb_ad_accounts
// e devolvida na listagem de contas.
type AdAccountOption struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Currency     string `json:"currency,omitempty"`
	Status       int    `json:"accountStatus,omitempty"`
	BusinessID   string `json:"businessId,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
}

// NormalizeAdAccountID remove o prefixo act_ e espaços.
func NormalizeAdAccountID(id string) string {
	return strings.TrimPrefix(strings.TrimSpace(id), adAccountPrefix)
}

// AdAccountPath devolve o identificador usado nos caminhos da Graph API.
func AdAccountPath(id string) string {
	return adAccountPrefix + NormalizeAdAccountID(id)
}

// IsValidAdAccountID aceita "123" ou "act_123".
func IsValidAdAccountID(id string) bool {
	return adAccountPattern.MatchString(AdAccountPath(id))
}

// IsValidEntityID aceita apenas ids numéricos de campanha, conjunto ou anúncio.
func IsValidEntityID(id string) bool {
	return entityIDPattern.MatchString(id)
}
