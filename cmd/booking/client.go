package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/billetweb-booking/internal/tool"
	"github.com/iliyamo/billetweb-booking/internal/utils"
)

// toolClient calls the tool server the way a host runtime would.
type toolClient struct {
	BaseURL string
	Secret  string // mints a host token when set
	HostID  string
	HTTP    *http.Client
}

// callError is a non-2xx answer from the tool server.
type callError struct {
	Status int
	Body   string
}

func (e *callError) Error() string {
	return fmt.Sprintf("tool call failed: status %d: %s", e.Status, e.Body)
}

// Call invokes the named tool with no arguments.
func (c *toolClient) Call(ctx context.Context, name string) (tool.Result, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/v1/tools/" + name + "/call"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader([]byte("{}")))
	if err != nil {
		return tool.Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Secret != "" {
		tok, err := utils.NewHostToken(c.Secret, c.HostID, 5*time.Minute)
		if err != nil {
			return tool.Result{}, err
		}
		req.Header.Set("Authorization", "Bearer "+tok.Token)
	}

	hc := c.HTTP
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := hc.Do(req)
	if err != nil {
		return tool.Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return tool.Result{}, &callError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	var res tool.Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return tool.Result{}, fmt.Errorf("decode tool result: %w", err)
	}
	return res, nil
}
