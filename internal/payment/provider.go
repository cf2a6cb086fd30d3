package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrProviderUnavailable = errors.New("payment provider unavailable")
	ErrProviderRejected    = errors.New("payment provider rejected the request")
)

// CheckoutSession is a hosted payment page created at the provider. The
// customer pays at URL; the provider calls the webhook with the session ID.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Provider interface {
	CreateCheckoutSession(ctx context.Context, amount decimal.Decimal, description, customerEmail string) (*CheckoutSession, error)
}

type httpProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) Provider {
	return &httpProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type createSessionRequest struct {
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Description   string `json:"description"`
	CustomerEmail string `json:"customer_email"`
}

func (p *httpProvider) CreateCheckoutSession(ctx context.Context, amount decimal.Decimal, description, customerEmail string) (*CheckoutSession, error) {
	payload, err := json.Marshal(createSessionRequest{
		Amount:        amount.StringFixed(2),
		Currency:      "GBP",
		Description:   description,
		CustomerEmail: customerEmail,
	})
	if err != nil {
		return nil, err
	}

	url := p.baseURL + "/v1/checkout/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Fall through to decode.
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderRejected, resp.StatusCode, string(body))
	default:
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var session CheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrProviderUnavailable, err)
	}

	if session.ID == "" || session.URL == "" {
		return nil, fmt.Errorf("%w: incomplete session in response", ErrProviderRejected)
	}

	return &session, nil
}
