package payos

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

//go:generate mockgen -destination=mocks/client.go -package=mocks travel-ties/outbound/payos Client

// ErrNotFound is returned when the provider has no record of an order code.
// Callers must treat it as terminal and never mark tickets paid from it.
var ErrNotFound = errors.New("payos: payment link not found")

// Error is a provider-side rejection, carrying payOS's own code and desc.
type Error struct {
	Code string
	Desc string
}

func (e *Error) Error() string {
	return fmt.Sprintf("payos: code %s: %s", e.Code, e.Desc)
}

type Client interface {
	CreatePaymentLink(ctx context.Context, data PaymentData) (CreatePaymentResult, error)
	GetPaymentLinkInformation(ctx context.Context, orderCode int64) (PaymentLinkInformation, error)
}

type RestClient struct {
	baseUrl     string
	clientId    string
	apiKey      string
	checksumKey string
	hc          *http.Client
}

func NewRestClient(baseUrl, clientId, apiKey, checksumKey string, hc *http.Client) *RestClient {
	return &RestClient{
		baseUrl:     strings.TrimRight(baseUrl, "/"),
		clientId:    clientId,
		apiKey:      apiKey,
		checksumKey: checksumKey,
		hc:          hc,
	}
}

type envelope struct {
	Code string          `json:"code"`
	Desc string          `json:"desc"`
	Data json.RawMessage `json:"data"`
}

func (c *RestClient) CreatePaymentLink(ctx context.Context, data PaymentData) (CreatePaymentResult, error) {
	data.Signature = c.sign(data)

	body, err := json.Marshal(data)
	if err != nil {
		return CreatePaymentResult{}, err
	}

	env, err := c.do(ctx, http.MethodPost, "/v2/payment-requests", bytes.NewReader(body))
	if err != nil {
		return CreatePaymentResult{}, err
	}

	var result CreatePaymentResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return CreatePaymentResult{}, fmt.Errorf("payos: decode create result: %w", err)
	}

	return result, nil
}

func (c *RestClient) GetPaymentLinkInformation(ctx context.Context, orderCode int64) (PaymentLinkInformation, error) {
	env, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v2/payment-requests/%d", orderCode), nil)
	if err != nil {
		return PaymentLinkInformation{}, err
	}

	var info PaymentLinkInformation
	if err := json.Unmarshal(env.Data, &info); err != nil {
		return PaymentLinkInformation{}, fmt.Errorf("payos: decode link information: %w", err)
	}

	return info, nil
}

func (c *RestClient) do(ctx context.Context, method, path string, body io.Reader) (envelope, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseUrl+path, body)
	if err != nil {
		return envelope{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-client-id", c.clientId)
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return envelope{}, fmt.Errorf("payos: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, fmt.Errorf("payos: read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return envelope{}, ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return envelope{}, fmt.Errorf("payos: decode response (status %d): %w", resp.StatusCode, err)
	}

	if env.Code != "00" {
		if strings.Contains(strings.ToLower(env.Desc), "not found") {
			return envelope{}, ErrNotFound
		}
		return envelope{}, &Error{Code: env.Code, Desc: env.Desc}
	}

	return env, nil
}

// sign produces the HMAC-SHA256 checksum payOS requires on create requests:
// the hex digest over the alphabetically ordered key=value query string.
func (c *RestClient) sign(data PaymentData) string {
	payload := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		data.Amount, data.CancelUrl, data.Description, data.OrderCode, data.ReturnUrl)

	mac := hmac.New(sha256.New, []byte(c.checksumKey))
	mac.Write([]byte(payload))

	return hex.EncodeToString(mac.Sum(nil))
}
