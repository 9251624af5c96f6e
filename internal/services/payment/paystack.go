package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PaystackClient calls the Paystack REST API.
type PaystackClient struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewPaystackClient creates a ProviderClient backed by the Paystack API.
func NewPaystackClient(baseURL, secretKey string) *PaystackClient {
	return &PaystackClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackInitRequest struct {
	Email     string `json:"email"`
	Amount    int64  `json:"amount"` // kobo
	Reference string `json:"reference"`
}

type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

func (p *PaystackClient) InitializeTransaction(ctx context.Context, email string, amountKobo int64, reference string) (*InitializeResult, error) {
	body, err := json.Marshal(paystackInitRequest{
		Email:     email,
		Amount:    amountKobo,
		Reference: reference,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	var out paystackInitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("paystack response decode failed: %w", err)
	}
	if resp.StatusCode >= 300 || !out.Status {
		return nil, fmt.Errorf("paystack initialize failed: %s", out.Message)
	}

	return &InitializeResult{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}
