package metadomain

// AdAccount é o formato devolvido por /me/adaccounts.
type AdAccount struct {
	ID            string    `json:"id"`
	AccountID     string    `json:"account_id"`
	Name          string    `json:"name"`
	Currency      string    `json:"currency"`
	AccountStatus int       `json:"account_status"`
	Business      *Business `json:"business,omitempty"`
}

type Business struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdAccountPage struct {
	Data   []AdAccount `json:"data"`
	Paging Paging      `json:"paging"`
}

// TokenDebugInfo é o conteúdo de data em /debug_token.
type TokenDebugInfo struct {
	AppID     string   `json:"app_id"`
	UserID    string   `json:"user_id"`
	IsValid   bool     `json:"is_valid"`
	ExpiresAt int64    `json:"expires_at"`
	Scopes    []string `json:"scopes"`
}

type TokenDebugResponse struct {
	Data TokenDebugInfo `json:"data"`
}
