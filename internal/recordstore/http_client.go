package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

type ClientConfig struct {
	BaseURL  string
	BaseID   string
	APIToken string
	Timeout  time.Duration
}

// Client implements Store against the tables REST API:
//
//	POST   {base}/{baseId}/tables/{table}/records/list
//	GET    {base}/{baseId}/tables/{table}/records/{id}
//	POST   {base}/{baseId}/tables/{table}/records
//	PATCH  {base}/{baseId}/tables/{table}/records/{id}
//	DELETE {base}/{baseId}/tables/{table}/records/{id}
type Client struct {
	baseURL string
	baseID  string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(cfg ClientConfig, logger ...*zap.Logger) *Client {
	l := zap.L().Named("recordstore.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recordstore.client")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		baseID:  cfg.BaseID,
		token:   cfg.APIToken,
		http:    &http.Client{Timeout: timeout},
		logger:  l,
	}
}

type listBody struct {
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset,omitempty,string"`
	Filters Filters     `json:"filters,omitempty"`
	Sort    []SortField `json:"sort,omitempty"`
}

type writeBody struct {
	Record map[string]any `json:"record"`
}

func (c *Client) List(ctx context.Context, table string, q ListQuery) (ListResult, error) {
	var out ListResult
	body := listBody{Limit: q.Limit, Offset: q.Offset, Filters: q.Filters, Sort: q.Sort}
	if err := c.do(ctx, http.MethodPost, c.recordsURL(table, "list"), body, &out); err != nil {
		return ListResult{}, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, table, id string) (Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodGet, c.recordsURL(table, id), nil, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, table string, fields map[string]any) (Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodPost, c.recordsURL(table, ""), writeBody{Record: fields}, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, table, id string, fields map[string]any) (Record, error) {
	var out Record
	if err := c.do(ctx, http.MethodPatch, c.recordsURL(table, id), writeBody{Record: fields}, &out); err != nil {
		return Record{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, table, id string) error {
	return c.do(ctx, http.MethodDelete, c.recordsURL(table, id), nil, nil)
}

func (c *Client) recordsURL(table, suffix string) string {
	u := fmt.Sprintf("%s/%s/tables/%s/records", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table))
	if suffix != "" {
		u += "/" + url.PathEscape(suffix)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, endpoint string, in, out any) error {
	if c.token == "" {
		return errors.New("recordstore: missing api token")
	}

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("recordstore: encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("record store request failed",
			zap.String("method", method),
			zap.String("url", endpoint),
			zap.Error(err),
		)
		return fmt.Errorf("recordstore: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("record store request",
		zap.String("method", method),
		zap.String("url", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("recordstore: decode response: %w", err)
	}
	return nil
}
