package metaclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/metrics"
)

// Response é a resposta normalizada, igual para os dois transportes.
type Response struct {
	OK     bool
	Status int
	body   []byte
}

// JSON decodifica o corpo em v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (r *Response) Text() string {
	return string(r.body)
}

func (r *Response) Bytes() []byte {
	return r.body
}

// newFallbackClient usa um transporte HTTP/1.1 simples, sem keep-alive nem HTTP/2,
// para contornar falhas de conexão do cliente principal.
func newFallbackClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
		TLSHandshakeTimeout: 10 * time.Second,
		DisableKeepAlives:   true,
		ForceAttemptHTTP2:   false,
	}

	return &http.Client{Transport: transport, Timeout: timeout}
}

// fetch faz o GET pelo transporte principal e, se a conexão falhar, tenta o secundário.
// Respostas não-2xx voltam como *UpstreamError.
func (c *MetaClient) fetch(ctx context.Context, operation, rawURL string) (*Response, error) {
	logger := log.ForContext(ctx).WithFields(log.Fields{
		"operation": operation,
		"url":       redactURL(rawURL),
	})

	start := time.Now()
	defer func() {
		metrics.GraphLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.send(ctx, c.primary, rawURL)
	if err != nil {
		if ctx.Err() != nil {
			metrics.GraphRequests.WithLabelValues(operation, "canceled").Inc()
			return nil, fmt.Errorf("%w: %w", ErrNetwork, ctx.Err())
		}

		logger.WithError(err).Warn("meta: primary transport failed, trying fallback")

		fallbackResp, fallbackErr := c.send(ctx, c.fallback, rawURL)
		if fallbackErr != nil {
			metrics.GraphFallbacks.WithLabelValues("failed").Inc()
			metrics.GraphRequests.WithLabelValues(operation, "network_error").Inc()
			logger.WithError(fallbackErr).Error("meta: fallback transport failed")
			return nil, fmt.Errorf("%w: primary: %v; fallback: %v", ErrNetwork, err, fallbackErr)
		}

		metrics.GraphFallbacks.WithLabelValues("succeeded").Inc()
		resp = fallbackResp
	}

	if !resp.OK {
		metrics.GraphRequests.WithLabelValues(operation, "upstream_error").Inc()

		upstreamErr := &UpstreamError{Status: resp.Status, Raw: resp.Text()}
		if errorResp, parseErr := ParseErrorResponse(resp.Bytes()); parseErr == nil {
			upstreamErr.Response = errorResp
		}

		logger.WithFields(log.Fields{
			"status":        resp.Status,
			"token_expired": upstreamErr.TokenExpired(),
		}).Warn("meta: upstream returned an error")

		return nil, upstreamErr
	}

	metrics.GraphRequests.WithLabelValues(operation, "ok").Inc()
	logger.Debug("meta: request completed")

	return resp, nil
}

func (c *MetaClient) send(ctx context.Context, doer Doer, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		OK:     resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices,
		Status: resp.StatusCode,
		body:   body,
	}, nil
}
