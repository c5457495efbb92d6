package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/bandseeking/bandseeking-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Query is either a structured postal code search or free text.
type Query struct {
	PostalCode string
	Text       string
	Country    string
}

type Config struct {
	BaseURL           string
	UserAgent         string
	CountryCode       string
	Timeout           time.Duration
	RequestsPerSecond float64
	FailureThreshold  int
	ResetTimeout      time.Duration
}

// Client talks to a Nominatim-compatible /search endpoint. Every call is a
// single attempt; callers fall back on any error.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	countryCode string
	limiter     *rate.Limiter
	breaker     *CircuitBreaker
	logger      *zap.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		countryCode: cfg.CountryCode,
		limiter:     rate.NewLimiter(limit, 1),
		breaker:     NewCircuitBreaker(cfg.FailureThreshold, cfg.ResetTimeout, logger),
		logger:      logger,
	}
}

// nominatimPlace is one element of a format=jsonv2 search response.
type nominatimPlace struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Hamlet       string `json:"hamlet"`
	Suburb       string `json:"suburb"`
	State        string `json:"state"`
	StateISOCode string `json:"ISO3166-2-lvl4"`
	Postcode     string `json:"postcode"`
}

func (a nominatimAddress) locality() string {
	for _, name := range []string{a.City, a.Town, a.Village, a.Hamlet, a.Suburb} {
		if name != "" {
			return name
		}
	}
	return ""
}

// LookupPostalCode searches for a postal code in the configured country.
func (c *Client) LookupPostalCode(ctx context.Context, postalCode string) (*domain.GeoMatch, error) {
	return c.Search(ctx, Query{PostalCode: postalCode})
}

// Search returns the best match for q. No match is a NotFoundError.
func (c *Client) Search(ctx context.Context, q Query) (*domain.GeoMatch, error) {
	if !c.breaker.CanExecute() {
		return nil, errors.NewAPIError("geocoding circuit open", http.StatusServiceUnavailable, map[string]any{
			"query": q.key(),
		})
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocoding rate limit wait: %w", err)
	}

	reqURL := c.baseURL + "/search?" + c.params(q).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, errors.NewAPIError("geocoding request failed", http.StatusBadGateway, map[string]any{
			"query": q.key(),
		}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		c.breaker.RecordFailure()
		return nil, fmt.Errorf("read geocoding response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		c.breaker.RecordFailure()
		return nil, errors.NewAPIError(fmt.Sprintf("geocoding server error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"query": q.key(),
		})
	}
	if resp.StatusCode >= 400 {
		return nil, errors.NewAPIError(fmt.Sprintf("geocoding client error: %d", resp.StatusCode), resp.StatusCode, map[string]any{
			"query": q.key(),
			"body":  string(body),
		})
	}
	c.breaker.RecordSuccess()

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, errors.NewAPIError("invalid geocoding response", http.StatusBadGateway, nil).WithCause(err)
	}
	if len(places) == 0 {
		return nil, errors.NewNotFoundError("geocoding match", q.key())
	}

	match := places[0].toMatch()
	c.logger.Debug("Geocoding match",
		zap.String("query", q.key()),
		zap.String("display_name", match.DisplayName),
	)
	return match, nil
}

func (c *Client) CircuitStatus() CircuitBreakerStatus {
	return c.breaker.Status()
}

func (c *Client) params(q Query) url.Values {
	params := url.Values{}
	if q.PostalCode != "" {
		params.Set("postalcode", q.PostalCode)
	} else {
		params.Set("q", q.Text)
	}
	country := q.Country
	if country == "" {
		country = c.countryCode
	}
	if country != "" {
		params.Set("countrycodes", country)
	}
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	return params
}

func (q Query) key() string {
	if q.PostalCode != "" {
		return q.PostalCode
	}
	return q.Text
}

func (p nominatimPlace) toMatch() *domain.GeoMatch {
	lat, _ := strconv.ParseFloat(p.Lat, 64)
	lon, _ := strconv.ParseFloat(p.Lon, 64)

	// "US-NC" -> "NC"
	stateCode := p.Address.StateISOCode
	if i := strings.LastIndex(stateCode, "-"); i >= 0 {
		stateCode = stateCode[i+1:]
	}

	return &domain.GeoMatch{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: p.DisplayName,
		City:        p.Address.locality(),
		State:       p.Address.State,
		StateCode:   stateCode,
		PostalCode:  p.Address.Postcode,
	}
}
