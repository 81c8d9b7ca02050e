package crestserve

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"pitchside/internal/domain/fixture"
	"pitchside/internal/platform/logging"
)

const (
	defaultBaseURL = "https://badges.crestserve.example/api/v1"
	defaultTimeout = 10 * time.Second
)

type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *logging.Logger
}

// Client is the secondary badge provider. Badges are decoration, so
// callers treat its failures as an empty candidate pool rather than an
// outage.
type Client struct {
	transport *fasthttp.Client
	baseURL   string
	apiKey    string
	timeout   time.Duration
	logger    *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		transport: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  strings.TrimSpace(cfg.APIKey),
		timeout: timeout,
		logger:  logger,
	}
}

type eventsEnvelope struct {
	Events []eventRow `json:"events"`
}

type eventRow struct {
	HomeTeam   string `json:"strHomeTeam"`
	AwayTeam   string `json:"strAwayTeam"`
	HomeBadge  string `json:"strHomeTeamBadge"`
	AwayBadge  string `json:"strAwayTeamBadge"`
	LeagueName string `json:"strLeague"`
}

// CandidatesByDate returns the badge candidate pool for one ISO date,
// in provider order. Rows without team names are dropped; rows without
// badges are kept so callers can still count them.
func (c *Client) CandidatesByDate(ctx context.Context, date string) ([]fixture.MediaCandidate, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}

	raw, err := c.get(ctx, "/events", map[string]string{"d": date})
	if err != nil {
		return nil, fmt.Errorf("fetch events date=%s: %w", date, err)
	}

	var envelope eventsEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}

	out := make([]fixture.MediaCandidate, 0, len(envelope.Events))
	for _, row := range envelope.Events {
		home := strings.TrimSpace(row.HomeTeam)
		away := strings.TrimSpace(row.AwayTeam)
		if home == "" && away == "" {
			continue
		}
		out = append(out, fixture.MediaCandidate{
			HomeTeamName: home,
			AwayTeamName: away,
			HomeLogoURL:  strings.TrimSpace(row.HomeBadge),
			AwayLogoURL:  strings.TrimSpace(row.AwayBadge),
			LeagueName:   strings.TrimSpace(row.LeagueName),
		})
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	if c.apiKey != "" {
		values.Set("key", c.apiKey)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if timeout <= 0 {
		return nil, context.DeadlineExceeded
	}

	if err := c.transport.DoTimeout(req, resp, timeout); err != nil {
		c.logger.WarnContext(ctx, "crestserve request failed", "url", redactURL(fullURL), "error", err)
		return nil, fmt.Errorf("send request: %w", err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("provider status=%d body=%s", status, abbreviateBody(resp.Body()))
	}

	// The response buffer is reused after release; keep our own copy.
	raw := make([]byte, len(resp.Body()))
	copy(raw, resp.Body())
	return raw, nil
}

func redactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("key") {
		query.Set("key", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
