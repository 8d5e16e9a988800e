package authenticating

import (
	"errors"
	"fmt"
)

// Tipos de erros de autenticação personalizados
var (
	ErrInvalidState          = errors.New("state do OAuth inválido ou expirado")
	ErrOAuthDenied           = errors.New("acesso negado pelo usuário")
	ErrMissingCode           = errors.New("código de autorização ausente")
	ErrCodeExchange          = errors.New("falha ao trocar o código de autorização")
	ErrTokenExchange         = errors.New("falha ao obter token de longa duração")
	ErrAccountsLookup        = errors.New("falha ao listar contas de anúncios")
	ErrAccountNotAccessible  = errors.New("conta de anúncios não pertence ao usuário")
	ErrTokenRejected         = errors.New("token recusado pela API do Meta")
	ErrInvalidSelection      = errors.New("seleção de conta inválida")
	ErrDatabaseOperation     = errors.New("erro ao realizar operação no banco de dados")
	ErrCredentialPersistence = errors.New("erro ao armazenar credencial")
)

// AuthError é um erro com contexto adicional para autenticação
type AuthError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
	cause   error
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() []error {
	if e.cause != nil {
		return []error{e.Err, e.cause}
	}
	return []error{e.Err}
}

// NewAuthError cria um novo erro de autenticação
func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// wrapAuthError guarda a causa original para errors.Is/As.
func wrapAuthError(baseErr error, code string, cause error) *AuthError {
	authErr := NewAuthError(baseErr, code, "")
	authErr.cause = cause
	return authErr
}

// IsStateError verifica se o erro está relacionado ao state do fluxo OAuth
func IsStateError(err error) bool {
	return errors.Is(err, ErrInvalidState) || errors.Is(err, ErrMissingCode)
}
