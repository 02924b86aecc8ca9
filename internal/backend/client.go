// Package backend talks to the REST backend that owns contracts, timesheets
// and expenses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/sitebook/internal/contract"
	"github.com/MrJamesThe3rd/sitebook/internal/record"
)

var ErrNotFound = errors.New("not found")

const (
	pathContracts = "/contracts"
	pathWorkHours = "/work-hours"
	pathExpenses  = "/expenses"

	// maxPages bounds how many "next" links a single listing follows.
	maxPages = 1000
)

// Client reads collections from the backend and writes lifecycle patches back.
type Client struct {
	baseURL  string
	client   *http.Client
	apiToken string
}

// NewClient creates a Client for baseURL. An empty token sends no
// Authorization header.
func NewClient(baseURL, apiToken string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		apiToken: apiToken,
	}
}

func (c *Client) Name() string { return "api" }

func (c *Client) GetContracts(ctx context.Context) ([]contract.Contract, error) {
	rs, err := list[record.Contract](ctx, c, pathContracts)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}

	return record.Contracts(rs), nil
}

func (c *Client) GetWorkHours(ctx context.Context) ([]contract.WorkHourEntry, error) {
	rs, err := list[record.WorkHour](ctx, c, pathWorkHours)
	if err != nil {
		return nil, fmt.Errorf("listing work hours: %w", err)
	}

	return record.WorkHours(rs), nil
}

func (c *Client) GetExpenses(ctx context.Context) ([]contract.ExpenseEntry, error) {
	rs, err := list[record.Expense](ctx, c, pathExpenses)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return record.Expenses(rs), nil
}

type patchBody struct {
	Status         string  `json:"status"`
	ClosedManually bool    `json:"closed_manually"`
	ClosedDate     *string `json:"closed_date"`
}

// UpdateLifecycle writes the stored lifecycle fields of contract id.
func (c *Client) UpdateLifecycle(ctx context.Context, id string, patch contract.Patch) error {
	body := patchBody{
		Status:         string(patch.Status),
		ClosedManually: patch.ClosedManually,
	}

	if patch.ClosedDate != nil {
		body.ClosedDate = new(patch.ClosedDate.Format(time.DateOnly))
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding patch: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPatch, c.baseURL+pathContracts+"/"+url.PathEscape(id), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("updating contract %s: %w", id, err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// page is the paginated envelope some deployments wrap listings in.
type page[T any] struct {
	Results []T     `json:"results"`
	Data    []T     `json:"data"`
	Next    *string `json:"next"`
}

// list reads every item under path. It accepts a bare JSON array or a
// {"results": [...], "next": url} envelope and follows next links.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	next := c.baseURL + path

	var out []T

	for range maxPages {
		resp, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 {
			return out, nil
		}

		if raw[0] == '[' {
			var items []T
			if err := json.Unmarshal(raw, &items); err != nil {
				return nil, fmt.Errorf("decoding response: %w", err)
			}

			return append(out, items...), nil
		}

		var p page[T]
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}

		out = append(out, p.Results...)
		out = append(out, p.Data...)

		if p.Next == nil || *p.Next == "" {
			return out, nil
		}

		next, err = c.resolve(*p.Next)
		if err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("listing %s: more than %d pages", path, maxPages)
}

// resolve makes a next link absolute against the base URL.
func (c *Client) resolve(ref string) (string, error) {
	base, err := url.Parse(c.baseURL + "/")
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}

	u, err := base.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parsing next link %q: %w", ref, err)
	}

	return u.String(), nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d for %s %s", resp.StatusCode, method, target)
	}

	return resp, nil
}
