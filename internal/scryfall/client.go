package scryfall

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"momir/internal/momir"
)

const (
	defaultUserAgent       = "momir/1.0"
	defaultTimeout         = 30 * time.Second
	defaultRequestInterval = 100 * time.Millisecond
)

// Config configures a Client
type Config struct {
	RandomURL       string
	UserAgent       string
	Timeout         time.Duration
	RequestInterval time.Duration
	Query           QueryOptions
	HTTPClient      *http.Client
	Logger          *slog.Logger
}

// Client fetches card images. It never retries.
type Client struct {
	randomURL string
	userAgent string
	query     QueryOptions
	http      *http.Client
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// NewClient creates a client with defaults for unset fields
func NewClient(cfg Config) *Client {
	if cfg.RandomURL == "" {
		cfg.RandomURL = DefaultRandomURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RequestInterval <= 0 {
		cfg.RequestInterval = defaultRequestInterval
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Client{
		randomURL: cfg.RandomURL,
		userAgent: cfg.UserAgent,
		query:     cfg.Query,
		http:      cfg.HTTPClient,
		limiter:   rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		logger:    cfg.Logger,
	}
}

// RandomCard fetches a random creature image for the mana value
func (c *Client) RandomCard(ctx context.Context, manaValue int) (momir.CardImage, error) {
	return c.FetchImage(ctx, RandomCardURL(c.randomURL, manaValue, c.query))
}

// FetchImage issues one GET and converts a successful image body to a data URI
func (c *Client) FetchImage(ctx context.Context, url string) (momir.CardImage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return momir.CardImage{}, &NetworkError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return momir.CardImage{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "image/*;q=0.9,*/*;q=0.8")

	c.logger.Debug("requesting card image", "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		return momir.CardImage{}, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return momir.CardImage{}, &APIError{
			StatusCode: resp.StatusCode,
			Message:    ErrorMessage(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return momir.CardImage{}, &NetworkError{URL: url, Err: err}
	}

	return momir.NewCardImage(DataURI(resp.Header.Get("Content-Type"), body)), nil
}

// DataURI encodes an image body as a base64 data URI
func DataURI(contentType string, body []byte) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType == "" {
		mediaType = http.DetectContentType(body)
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(body))
}

// DecodeDataURI splits a base64 data URI into its media type and bytes
func DecodeDataURI(uri string) (string, []byte, error) {
	header, payload, found := strings.Cut(uri, ",")
	if !found || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return "", nil, fmt.Errorf("not a base64 data URI")
	}
	mediaType := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mediaType, data, nil
}
