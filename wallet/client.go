package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"merchantdesk_server/lib"
	"merchantdesk_server/structs"
)

// Client wraps the wallet provider's initiate and lookup calls. It owns the
// timeouts for both calls but no retry policy; callers decide whether to
// retry. Amount conversion to the provider's minor-unit convention happens
// here and nowhere else.
type Client struct {
	baseURL         string
	websiteURL      string
	returnURL       string
	initiateTimeout time.Duration
	lookupTimeout   time.Duration

	http *http.Client
}

func NewClient(cfg *structs.WalletConfig) *Client {
	return &Client{
		baseURL:         cfg.BaseURL,
		websiteURL:      cfg.WebsiteURL,
		returnURL:       cfg.ReturnURL,
		initiateTimeout: cfg.InitiateTimeout,
		lookupTimeout:   cfg.LookupTimeout,
		http:            &http.Client{},
	}
}

// providerAmount converts an internal amount to the provider's smallest
// currency unit. Internal amounts are already carried in cents, which is the
// provider's minor unit, so the factor is 1; every amount crossing the wire
// still goes through here so the convention lives in one place.
func providerAmount(cents int64) int64 {
	return cents
}

type initiateRequest struct {
	ReturnURL         string       `json:"return_url"`
	WebsiteURL        string       `json:"website_url"`
	Amount            int64        `json:"amount"`
	PurchaseOrderId   string       `json:"purchase_order_id"`
	PurchaseOrderName string       `json:"purchase_order_name"`
	CustomerInfo      CustomerInfo `json:"customer_info"`
}

// Initiate registers a payment attempt with the provider and returns its
// reference plus the checkout redirect URL. The call is bounded by the
// configured initiate timeout.
func (c *Client) Initiate(ctx context.Context, p InitiateParams) (*InitiateResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.initiateTimeout)
	defer cancel()

	reqBody := initiateRequest{
		ReturnURL:         c.returnURL,
		WebsiteURL:        c.websiteURL,
		Amount:            providerAmount(p.AmountCents),
		PurchaseOrderId:   p.OrderId.String(),
		PurchaseOrderName: p.OrderName,
		CustomerInfo:      p.Customer,
	}

	var result InitiateResult
	if err := c.post(ctx, "/epayment/initiate/", p.SecretKey, reqBody, &result, nil); err != nil {
		return nil, &lib.GatewayError{Op: "initiate", Err: err}
	}

	if result.Pidx == "" || result.PaymentURL == "" {
		return nil, &lib.GatewayError{Op: "initiate", Err: fmt.Errorf("provider response missing pidx or payment_url")}
	}

	return &result, nil
}

// Lookup fetches the provider's current view of a payment attempt. The raw
// response body is preserved on the result for auditing.
func (c *Client) Lookup(ctx context.Context, pidx string, secretKey string) (*LookupResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	reqBody := map[string]string{"pidx": pidx}

	var result LookupResult
	var raw json.RawMessage
	if err := c.post(ctx, "/epayment/lookup/", secretKey, reqBody, &result, &raw); err != nil {
		return nil, &lib.GatewayError{Op: "lookup", Err: err}
	}

	if result.Status == "" {
		return nil, &lib.GatewayError{Op: "lookup", Err: fmt.Errorf("provider response missing status")}
	}

	result.Raw = raw
	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, secretKey string, body any, out any, rawOut *json.RawMessage) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("provider returned status %d: %s", resp.StatusCode, truncate(respBody, 512))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("malformed provider response: %w", err)
	}

	if rawOut != nil {
		*rawOut = json.RawMessage(respBody)
	}

	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
