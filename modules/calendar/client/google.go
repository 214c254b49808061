package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"venue-api/core/config"
	"venue-api/core/constants"
	"venue-api/core/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	calendarAPIBase = "https://www.googleapis.com/calendar/v3"

	// ItemStatusCancelled marks occurrences removed upstream.
	ItemStatusCancelled = "cancelled"

	upstreamBodyLimit = 512
)

// ErrSyncTokenExpired is returned when the provider signals that an
// incremental sync token is no longer valid (HTTP 410). Callers recover by
// clearing their cursor and falling back to a time-window fetch.
var ErrSyncTokenExpired = fmt.Errorf("sync token expired")

// UpstreamError is any provider failure other than sync-token expiry.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d: %s", e.Status, e.Body)
}

type Calendar struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Primary bool   `json:"primary"`
}

type ItemTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
	TimeZone string `json:"timeZone"`
}

type Item struct {
	ID          string   `json:"id"`
	Status      string   `json:"status"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Start       ItemTime `json:"start"`
	End         ItemTime `json:"end"`
}

// EventPage is the merged result of a paginated event listing.
type EventPage struct {
	Items         []Item
	NextSyncToken string
}

// ListOptions selects either an incremental fetch (SyncToken set) or a
// windowed fetch. When SyncToken is set the window fields are ignored; the
// provider defines the change window.
type ListOptions struct {
	TimeMin   time.Time
	TimeMax   time.Time
	SyncToken string
}

type Client interface {
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	ListCalendars(ctx context.Context, accessToken string) ([]Calendar, error)
	ListEvents(ctx context.Context, accessToken, calendarID string, opts ListOptions) (*EventPage, error)
	AuthCodeURL(state string) string
}

type googleClient struct {
	oauth   *oauth2.Config
	http    *http.Client
	baseURL string
}

// Option overrides client internals; used by tests to point at a stub server.
type Option func(*googleClient)

func WithBaseURL(u string) Option {
	return func(c *googleClient) { c.baseURL = u }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *googleClient) { c.http = h }
}

func NewGoogleClient(cfg config.GoogleAPIConfig, opts ...Option) Client {
	c := &googleClient{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/calendar.readonly",
				"https://www.googleapis.com/auth/userinfo.email",
			},
		},
		http:    &http.Client{Timeout: constants.GoogleClientTimeout},
		baseURL: calendarAPIBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *googleClient) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

func (c *googleClient) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Error("GoogleClient:ExchangeCode:Error", "error", err)
		return nil, err
	}
	return token, nil
}

func (c *googleClient) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	src := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		logger.Error("GoogleClient:RefreshAccessToken:Error", "error", err)
		return "", err
	}
	return token.AccessToken, nil
}

// ListCalendars is used to validate a freshly issued access token and to let
// the administrator pick which calendars to sync.
func (c *googleClient) ListCalendars(ctx context.Context, accessToken string) ([]Calendar, error) {
	body, err := c.get(ctx, accessToken, c.baseURL+"/users/me/calendarList")
	if err != nil {
		return nil, err
	}

	var result struct {
		Items []Calendar `json:"items"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse calendar list: %w", err)
	}
	return result.Items, nil
}

func (c *googleClient) ListEvents(ctx context.Context, accessToken, calendarID string, opts ListOptions) (*EventPage, error) {
	page := &EventPage{}
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("singleEvents", "true")
		params.Set("maxResults", strconv.Itoa(constants.SyncMaxResults))
		if opts.SyncToken != "" {
			// orderBy is rejected alongside syncToken; the provider also
			// defines the window, so timeMin/timeMax are omitted.
			params.Set("syncToken", opts.SyncToken)
		} else {
			params.Set("orderBy", "startTime")
			if !opts.TimeMin.IsZero() {
				params.Set("timeMin", opts.TimeMin.Format(time.RFC3339))
			}
			if !opts.TimeMax.IsZero() {
				params.Set("timeMax", opts.TimeMax.Format(time.RFC3339))
			}
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		apiURL := fmt.Sprintf("%s/calendars/%s/events?%s",
			c.baseURL, url.PathEscape(calendarID), params.Encode())

		body, err := c.get(ctx, accessToken, apiURL)
		if err != nil {
			return nil, err
		}

		var result struct {
			Items         []Item `json:"items"`
			NextPageToken string `json:"nextPageToken"`
			NextSyncToken string `json:"nextSyncToken"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return nil, fmt.Errorf("failed to parse event list: %w", err)
		}

		page.Items = append(page.Items, result.Items...)
		if result.NextSyncToken != "" {
			page.NextSyncToken = result.NextSyncToken
		}
		if result.NextPageToken == "" {
			return page, nil
		}
		pageToken = result.NextPageToken
	}
}

func (c *googleClient) get(ctx context.Context, accessToken, apiURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &UpstreamError{Status: 0, Body: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode == http.StatusGone {
		return nil, ErrSyncTokenExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: truncate(string(body), upstreamBodyLimit)}
	}
	return body, nil
}

// ResolveTimes converts an item's start/end, preferring the precise dateTime
// field and falling back to the all-day date field.
func ResolveTimes(item Item) (start time.Time, end *time.Time, err error) {
	start, allDay, err := resolveTime(item.Start)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("item %s: bad start: %w", item.ID, err)
	}

	e, _, endErr := resolveTime(item.End)
	if endErr == nil {
		if allDay {
			// All-day ranges are exclusive of the end date.
			e = e.Add(-time.Minute)
		}
		end = &e
	}
	return start, end, nil
}

func resolveTime(t ItemTime) (time.Time, bool, error) {
	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		return parsed, false, err
	}
	if t.Date != "" {
		parsed, err := time.Parse("2006-01-02", t.Date)
		return parsed, true, err
	}
	return time.Time{}, false, fmt.Errorf("no time field present")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
