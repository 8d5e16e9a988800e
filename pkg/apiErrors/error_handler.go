package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro expostos ao cliente
const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrInvalidOAuthState     = "AUTH_011" // State do OAuth inválido ou expirado
	ErrOAuthDenied           = "AUTH_012" // Usuário negou o acesso no diálogo do Meta

	// Erros de credenciais do Meta
	ErrMissingAccessToken     = "CRED_001" // Access token ausente
	ErrMissingAdAccount       = "CRED_002" // Conta de anúncios ausente
	ErrInvalidMetaCredentials = "CRED_003" // Token ou conta em formato inválido
	ErrMetaTokenExpired       = "CRED_004" // Token recusado por expiração

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrInvalidDatePreset   = "VAL_004" // Período desconhecido

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrCommunication     = "SRV_004" // Erro de comunicação
	ErrUpstreamAPI       = "SRV_005" // Erro devolvido pela Graph API
	ErrNetwork           = "SRV_006" // Falha de rede ao falar com a Graph API
	ErrParse             = "SRV_007" // Resposta da Graph API ilegível
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:     http.StatusUnauthorized,
	ErrInvalidToken:           http.StatusUnauthorized,
	ErrExpiredToken:           http.StatusUnauthorized,
	ErrInsufficientPrivilege:  http.StatusForbidden,
	ErrInvalidOAuthState:      http.StatusBadRequest,
	ErrOAuthDenied:            http.StatusForbidden,
	ErrMissingAccessToken:     http.StatusUnauthorized,
	ErrMissingAdAccount:       http.StatusBadRequest,
	ErrInvalidMetaCredentials: http.StatusBadRequest,
	ErrMetaTokenExpired:       http.StatusUnauthorized,
	ErrInvalidRequest:         http.StatusBadRequest,
	ErrMissingRequiredData:    http.StatusBadRequest,
	ErrInvalidFormat:          http.StatusBadRequest,
	ErrInvalidDatePreset:      http.StatusBadRequest,
	ErrInternalServer:         http.StatusInternalServerError,
	ErrDatabaseOperation:      http.StatusInternalServerError,
	ErrExternalService:        http.StatusBadGateway,
	ErrCommunication:          http.StatusServiceUnavailable,
	ErrUpstreamAPI:            http.StatusBadGateway,
	ErrNetwork:                http.StatusInternalServerError,
	ErrParse:                  http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`            // Código de erro para o cliente
	Error   string `json:"error,omitempty"` // Mensagem descritiva
	Details any    `json:"details,omitempty"`
}

// StatusFor devolve o status HTTP do código, ou 500 para códigos desconhecidos.
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	WriteErrorWithStatus(w, StatusFor(code), code, message, details)
}

// WriteErrorWithStatus é usado quando o status vem de fora, como o da Graph API.
func WriteErrorWithStatus(w http.ResponseWriter, status int, code string, message string, details any) {
	if status < http.StatusBadRequest {
		status = StatusFor(code)
	}

	apiErr := APIError{
		Success: false,
		Code:    code,
		Error:   message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:  ErrInternalServer,
			Error: "Erro desconhecido",
		}
	}

	return APIError{
		Code:  code,
		Error: err.Error(),
	}
}
