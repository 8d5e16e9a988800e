package domain

import "time"

// Credentials são o par token + conta usado em cada chamada à Graph API.
type Credentials struct {
	AccessToken string `json:"accessToken"`
	AdAccountID string `json:"adAccountId"`
}

// CredentialsInput é o que chega no corpo ou na query da requisição.
type CredentialsInput struct {
	AccessToken string `json:"accessToken"`
	AdAccountID string `json:"adAccountId"`
}

// StoredCredential é a cópia do token de longa duração guardada no servidor
// para os jobs agendados. O token fica selado.
type StoredCredential struct {
	AdAccountID string    `json:"adAccountId"`
	SealedToken string    `json:"sealedToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Session é o resultado de um login OAuth concluído.
type Session struct {
	AccessToken     string            `json:"-"`
	ExpiresAt       time.Time         `json:"expiresAt"`
	AdAccounts      []AdAccountOption `json:"adAccounts"`
	SelectedAccount string            `json:"selectedAccount,omitempty"`
	RedirectTo      string            `json:"-"`
}

// TokenStatus descreve o token atual do usuário.
type TokenStatus struct {
	Connected       bool      `json:"connected"`
	AppID           string    `json:"appId,omitempty"`
	UserID          string    `json:"userId,omitempty"`
	Scopes          []string  `json:"scopes,omitempty"`
	ExpiresAt       time.Time `json:"expiresAt,omitempty"`
	SelectedAccount string    `json:"selectedAccount,omitempty"`
}
