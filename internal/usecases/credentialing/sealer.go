package credentialing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// Sealer cifra valores que saem do servidor (cookie do token e cópia no Redis).
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

type CookieSealer struct {
	key [32]byte
}

// NewCookieSealer deriva a chave de 32 bytes a partir do segredo configurado.
func NewCookieSealer(secret string) *CookieSealer {
	return &CookieSealer{key: sha256.Sum256([]byte(secret))}
}

func (s *CookieSealer) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	sealed := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *CookieSealer) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrInvalidSealedValue
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])

	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrInvalidSealedValue
	}

	return string(plain), nil
}
