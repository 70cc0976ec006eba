package paymentControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Gateway is the capability surface the dispatcher needs from a payment
// provider: the three-step hosted-page handshake plus the redirect URL
// built from its result. Alternate providers can be swapped in without
// touching the checkout or callback contracts.
type Gateway interface {
	Authenticate() (string, error)
	RegisterOrder(authToken string, amountCents int64, merchantOrderID string) (int64, error)
	RequestPaymentKey(authToken string, gatewayOrderID, amountCents int64, billing BillingData) (string, error)
	PaymentPageURL(paymentToken string) string
}

// GatewayFactory builds a Gateway at dispatch time so that missing
// configuration fails the payment operation, not process startup.
type GatewayFactory func() (Gateway, error)

// BillingData is what the gateway requires about the payer. Optional
// fields are filled with the "NA" sentinel the API expects instead of
// being sent empty.
type BillingData struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Street    string
	City      string
	Country   string
}

const billingPlaceholder = "NA"

func orNA(v string) string {
	if v == "" {
		return billingPlaceholder
	}
	return v
}

type PaymobConfig struct {
	APIKey        string
	IntegrationID int
	IframeID      string
	HMACSecret    string
	BaseURL       string
}

// getPaymobConfig reads the gateway configuration from the environment.
// Any missing credential makes payment operations refuse to proceed.
func getPaymobConfig() (PaymobConfig, error) {
	cfg := PaymobConfig{
		APIKey:     os.Getenv("PAYMOB_API_KEY"),
		IframeID:   os.Getenv("PAYMOB_IFRAME_ID"),
		HMACSecret: os.Getenv("PAYMOB_HMAC_SECRET"),
		BaseURL:    os.Getenv("PAYMOB_BASE_URL"),
	}
	cfg.IntegrationID, _ = strconv.Atoi(os.Getenv("PAYMOB_INTEGRATION_ID"))

	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://accept.paymob.com"
	}
	if cfg.APIKey == "" || cfg.IntegrationID == 0 || cfg.IframeID == "" || cfg.HMACSecret == "" {
		return PaymobConfig{}, fmt.Errorf("paymob configuration missing")
	}
	return cfg, nil
}

// DefaultGateway builds the Paymob client from environment config.
func DefaultGateway() (Gateway, error) {
	cfg, err := getPaymobConfig()
	if err != nil {
		return nil, err
	}
	return NewPaymobClient(cfg), nil
}

type PaymobClient struct {
	cfg    PaymobConfig
	client *http.Client
}

func NewPaymobClient(cfg PaymobConfig) *PaymobClient {
	return &PaymobClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// postJSON sends one gateway call and decodes the response into out.
// A non-2xx status fails with the response body included for diagnosis.
func (p *PaymobClient) postJSON(path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", p.cfg.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach paymob: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("paymob API error (%d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse paymob response: %v", err)
	}
	return nil
}

// Authenticate exchanges the static API key for a short-lived token.
func (p *PaymobClient) Authenticate() (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	payload := map[string]string{"api_key": p.cfg.APIKey}
	if err := p.postJSON("/api/auth/tokens", payload, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("paymob returned empty auth token")
	}
	return resp.Token, nil
}

// RegisterOrder registers the local order on the gateway side and
// returns the gateway's order id. The local order id travels as
// merchant_order_id and comes back on the callback.
func (p *PaymobClient) RegisterOrder(authToken string, amountCents int64, merchantOrderID string) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	payload := map[string]interface{}{
		"auth_token":        authToken,
		"delivery_needed":   false,
		"amount_cents":      amountCents,
		"currency":          "EGP",
		"merchant_order_id": merchantOrderID,
		"items":             []interface{}{},
	}
	if err := p.postJSON("/api/ecommerce/orders", payload, &resp); err != nil {
		return 0, err
	}
	if resp.ID == 0 {
		return 0, fmt.Errorf("paymob returned no order id")
	}
	return resp.ID, nil
}

// RequestPaymentKey asks for the single-use token the hosted payment
// page is opened with. The token is valid for one hour.
func (p *PaymobClient) RequestPaymentKey(authToken string, gatewayOrderID, amountCents int64, billing BillingData) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	payload := map[string]interface{}{
		"auth_token":   authToken,
		"amount_cents": amountCents,
		"expiration":   3600,
		"order_id":     gatewayOrderID,
		"billing_data": map[string]string{
			"first_name":      orNA(billing.FirstName),
			"last_name":       orNA(billing.LastName),
			"email":           orNA(billing.Email),
			"phone_number":    orNA(billing.Phone),
			"street":          orNA(billing.Street),
			"city":            orNA(billing.City),
			"country":         orNA(billing.Country),
			"building":        billingPlaceholder,
			"floor":           billingPlaceholder,
			"apartment":       billingPlaceholder,
			"postal_code":     billingPlaceholder,
			"state":           billingPlaceholder,
			"shipping_method": billingPlaceholder,
		},
		"currency":       "EGP",
		"integration_id": p.cfg.IntegrationID,
	}
	if err := p.postJSON("/api/acceptance/payment_keys", payload, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("paymob returned empty payment token")
	}
	return resp.Token, nil
}

// PaymentPageURL builds the hosted payment page redirect target.
func (p *PaymobClient) PaymentPageURL(paymentToken string) string {
	return fmt.Sprintf("%s/api/acceptance/iframes/%s?payment_token=%s",
		p.cfg.BaseURL, p.cfg.IframeID, paymentToken)
}
