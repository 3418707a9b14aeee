// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package twilio sends SMS through the Twilio Messages API.
package twilio

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/secretary/phone"
)

const defaultBaseURL = "https://api.twilio.com"

// Client sends SMS through the Twilio REST API. It satisfies
// dispatch.Sender. Delivery retries are Twilio's problem, not ours: a
// send either hands the message off or returns an error.
type Client struct {
	sid     string
	token   string
	from    string
	baseURL string
	http    *http.Client
}

func NewClient(sid, token, from string) *Client {
	return &Client{
		sid:     sid,
		token:   token,
		from:    from,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBaseURL points the client at an alternate API host.
// Tests use this with httptest servers.
func NewClientWithBaseURL(sid, token, from, baseURL string) *Client {
	c := NewClient(sid, token, from)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Send posts one message to one recipient.
func (c *Client) Send(to, text string) error {
	form := url.Values{}
	form.Set("To", phone.E164(to))
	form.Set("From", c.from)
	form.Set("Body", text)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.sid)
	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.sid, c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post message to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("twilio rejected message to %s: %s: %s", to, resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}
