// Package stays is the HTTP gateway to the Stays property-management API.
// The rest of the service never talks to the network directly; it consumes
// the typed results this client returns.
package stays

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"staysboard/internal/metrics"
)

type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	limiter      *rate.Limiter
	maxRetries   int
}

func NewClient(baseURL, clientID, clientSecret string, rps, maxRetries int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:      baseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		limiter:      rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries:   maxRetries,
	}
}

// Query selects the reservation window. ListingID may be empty to query
// every listing of the account.
type Query struct {
	From      string
	To        string
	ListingID string
}

// encode keeps the upstream's expected parameter order: from, to, dateType,
// type, listingId. The API has been observed to misbehave when the order
// changes, so url.Values (which sorts keys) is avoided here.
func (q Query) encode(reservationType string) string {
	s := "from=" + url.QueryEscape(q.From) + "&to=" + url.QueryEscape(q.To) + "&dateType=arrival"
	if reservationType != "" {
		s += "&type=" + url.QueryEscape(reservationType)
	}
	if q.ListingID != "" {
		s += "&listingId=" + url.QueryEscape(q.ListingID)
	}
	return s
}

// Reservations fetches arrival-dated bookings in the window, canceled ones
// excluded upstream.
func (c *Client) Reservations(ctx context.Context, q Query) ([]Reservation, error) {
	var out []Reservation
	err := c.get(ctx, "reservations", "/external/v1/booking/reservations?"+q.encode(""), &out)
	return out, err
}

// Cancellations fetches canceled bookings in the window.
func (c *Client) Cancellations(ctx context.Context, q Query) ([]Reservation, error) {
	var out []Reservation
	err := c.get(ctx, "cancellations", "/external/v1/booking/reservations?"+q.encode("canceled"), &out)
	return out, err
}

// Calendar fetches the per-day availability calendar of one listing.
func (c *Client) Calendar(ctx context.Context, listingID, from, to string) ([]CalendarDay, error) {
	var out []CalendarDay
	path := "/external/v1/calendar/listing/" + url.PathEscape(listingID) +
		"?from=" + url.QueryEscape(from) + "&to=" + url.QueryEscape(to)
	err := c.get(ctx, "calendar", path, &out)
	return out, err
}

// ListingDetails fetches the listing content document and maps the fields
// the dashboard card needs.
func (c *Client) ListingDetails(ctx context.Context, listingID string) (ListingDetails, error) {
	var raw listingContent
	path := "/external/v1/content/listings/" + url.PathEscape(listingID)
	if err := c.get(ctx, "listing_content", path, &raw); err != nil {
		return ListingDetails{}, err
	}
	return ListingDetails{
		Title:     raw.Title.PtBR,
		ImageURL:  raw.MainImageMeta.URL,
		State:     raw.Address.State,
		MaxGuests: raw.MaxGuests,
		Rooms:     raw.Rooms,
	}, nil
}

// HouseRules fetches the house-rules document of one listing.
func (c *Client) HouseRules(ctx context.Context, listingID string) (HouseRules, error) {
	var out HouseRules
	err := c.get(ctx, "house_rules", c.rulesPath(listingID), &out)
	return out, err
}

// UpdateHouseRules patches the house-rules document and returns the updated
// version.
func (c *Client) UpdateHouseRules(ctx context.Context, listingID string, rules HouseRules) (HouseRules, error) {
	var out HouseRules
	err := c.do(ctx, "house_rules", http.MethodPatch, c.rulesPath(listingID), rules, &out)
	return out, err
}

// CreateBlock creates a calendar block by posting a reservation of type
// "blocked". Not retried: the write is not idempotent.
func (c *Client) CreateBlock(ctx context.Context, b Block) (BlockConfirmation, error) {
	body := map[string]string{
		"type":         "blocked",
		"listingId":    b.ListingID,
		"checkInDate":  b.CheckInDate,
		"checkOutDate": b.CheckOutDate,
		"internalNote": b.InternalNote,
	}
	var out BlockConfirmation
	err := c.do(ctx, "create_block", http.MethodPost, "/external/v1/booking/reservations", body, &out)
	return out, err
}

func (c *Client) rulesPath(listingID string) string {
	return "/external/v1/settings/listing/" + url.PathEscape(listingID) + "/house-rules"
}

// APIError is a non-2xx upstream response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("stays: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("stays: status %d", e.Status)
}

// get issues a GET with bounded retries on 429 and 5xx.
func (c *Client) get(ctx context.Context, endpoint, path string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := c.do(ctx, endpoint, http.MethodGet, path, nil, target)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= 500 {
				lastErr = err
				continue
			}
			return err
		}
		if ctx.Err() != nil {
			return err
		}
		// Transport errors are retried as well.
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	defer resp.Body.Close()

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}
