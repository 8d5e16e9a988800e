package authenticating

import (
	"fmt"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const stateTTL = 10 * time.Minute

type stateClaims struct {
	Nonce      string `json:"nonce"`
	RedirectTo string `json:"redirect_to,omitempty"`
	jwt.RegisteredClaims
}

func (s *Service) signState(redirectTo string) (string, error) {
	now := s.now()
	claims := stateClaims{
		Nonce:      uuid.NewString(),
		RedirectTo: redirectTo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Session.StateSecret))
}

func (s *Service) parseState(state string) (*stateClaims, error) {
	token, err := jwt.ParseWithClaims(state, &stateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Session.StateSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*stateClaims)
	if !ok || !token.Valid || claims.Nonce == "" {
		return nil, ErrInvalidState
	}

	return claims, nil
}

// safeRedirect só aceita destinos na mesma origem do dashboard.
func safeRedirect(target, dashboard string) string {
	if target == "" {
		return dashboard
	}

	targetURL, err := url.Parse(target)
	if err != nil {
		return dashboard
	}
	dashboardURL, err := url.Parse(dashboard)
	if err != nil {
		return dashboard
	}

	if targetURL.Scheme != dashboardURL.Scheme || targetURL.Host != dashboardURL.Host {
		return dashboard
	}

	return targetURL.String()
}
