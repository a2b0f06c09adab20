// Package openkvk implements the registry lookup against the overheid.io
// openkvk API.
package openkvk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/elvis888361/invoice-extractor/internal/common"
	"github.com/elvis888361/invoice-extractor/internal/registry"
)

// Config for the openkvk client. The API key must come from configuration,
// never a source literal.
type Config struct {
	BaseURL string // default https://api.overheid.io/openkvk
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.overheid.io/openkvk"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ByRegistrationNumber queries the registry for companies filed under the
// given dossier number.
func (c *Client) ByRegistrationNumber(ctx context.Context, number string) ([]registry.CompanyRecord, error) {
	start := time.Now()

	q := url.Values{}
	q.Set("filters[dossiernummer]", number)
	for _, f := range []string{
		"dossiernummer", "plaats", "handelsnaam", "straat", "postcode", "huisnummer",
	} {
		q.Add("fields[]", f)
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("ovio-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("registry.lookup.http_error",
			"number", number, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, fmt.Errorf("openkvk http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			c.logger.Warn("registry response body close error", "error", err)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openkvk status %d: %s: %w", resp.StatusCode, buf.String(), common.ErrUpstream)
	}

	var payload struct {
		Embedded struct {
			Bedrijf []struct {
				Dossiernummer string `json:"dossiernummer"`
				Plaats        string `json:"plaats"`
				Handelsnaam   string `json:"handelsnaam"`
				Straat        string `json:"straat"`
				Postcode      string `json:"postcode"`
				Huisnummer    string `json:"huisnummer"`
			} `json:"bedrijf"`
		} `json:"_embedded"`
	}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		return nil, fmt.Errorf("decode openkvk response: %w", err)
	}

	records := make([]registry.CompanyRecord, 0, len(payload.Embedded.Bedrijf))
	for _, b := range payload.Embedded.Bedrijf {
		records = append(records, registry.CompanyRecord{
			RegistrationNumber: b.Dossiernummer,
			TradingName:        b.Handelsnaam,
			City:               b.Plaats,
			Street:             b.Straat,
			Postcode:           b.Postcode,
			HouseNumber:        b.Huisnummer,
		})
	}

	c.logger.Info("registry.lookup.ok",
		"number", number, "records", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return records, nil
}
