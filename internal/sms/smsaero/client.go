// Package smsaero is a thin client for the SMS Aero delivery API.
package smsaero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dtroode/referral-server/internal/model"
)

var _ model.SMSGateway = (*Client)(nil)

const defaultSign = "SMS Aero"

type Client struct {
	baseURL    string
	email      string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, email, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		email:   email,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Send dispatches one message to one destination number. The number must
// already be in E.164 form.
func (c *Client) Send(ctx context.Context, phoneNumber, message string) error {
	query := url.Values{}
	query.Set("number", strings.TrimPrefix(phoneNumber, "+"))
	query.Set("text", message)
	query.Set("sign", defaultSign)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sms/send?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	var body sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("failed to decode sms gateway response: %w", err)
	}
	if !body.Success {
		return fmt.Errorf("sms gateway rejected message: %s", body.Message)
	}

	return nil
}
