package stays

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, maxRetries int) *Client {
	return NewClient(srv.URL, "test-id", "test-secret", 1000, maxRetries)
}

func TestReservations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/external/v1/booking/reservations", r.URL.Path)
		assert.Equal(t, "from=2024-01-01&to=2024-03-31&dateType=arrival&listingId=CK01H", r.URL.RawQuery)

		id, secret, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "test-id", id)
		assert.Equal(t, "test-secret", secret)

		w.Write([]byte(`[
			{"_id": "r1", "type": "booked", "checkInDate": "2024-01-05", "checkOutDate": "2024-01-10",
			 "partner": {"name": "Airbnb"},
			 "price": {"hostingDetails": {"_f_total": 450.5}}},
			{"_id": "r2", "type": "booked", "checkInDate": "2024-02-01", "checkOutDate": "2024-02-03",
			 "price": {"hostingDetails": {"_f_total": "300"}}},
			{"_id": "r3", "type": "booked", "checkInDate": "2024-02-10", "checkOutDate": "2024-02-12"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 0)
	rs, err := c.Reservations(context.Background(), Query{From: "2024-01-01", To: "2024-03-31", ListingID: "CK01H"})
	require.NoError(t, err)
	require.Len(t, rs, 3)

	assert.Equal(t, "Airbnb", rs[0].SourceName())
	total, ok := rs[0].Total()
	require.True(t, ok)
	assert.Equal(t, 450.5, total)

	// String-typed totals parse too, and absent partners read as direct.
	assert.Equal(t, "", rs[1].SourceName())
	total, ok = rs[1].Total()
	require.True(t, ok)
	assert.Equal(t, 300.0, total)

	// No price path at all: absent, not zero.
	_, ok = rs[2].Total()
	assert.False(t, ok)
}

func TestCancellationsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "from=2024-01-01&to=2024-03-31&dateType=arrival&type=canceled", r.URL.RawQuery)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 0)
	rs, err := c.Cancellations(context.Background(), Query{From: "2024-01-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Empty(t, rs)
}

func TestCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/external/v1/calendar/listing/CK01H", r.URL.Path)
		assert.Equal(t, "from=2024-03-01&to=2024-03-31", r.URL.RawQuery)
		w.Write([]byte(`[
			{"date": "2024-03-01", "avail": 1, "prices": [{"_mcval": {"BRL": 250, "USD": 50}}]},
			{"date": "2024-03-02", "avail": 0, "prices": []}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 0)
	days, err := c.Calendar(context.Background(), "CK01H", "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	require.Len(t, days, 2)

	rate, ok := days[0].Rate("BRL")
	require.True(t, ok)
	assert.Equal(t, 250.0, rate)

	_, ok = days[1].Rate("BRL")
	assert.False(t, ok)
}

func TestListingDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/external/v1/content/listings/CK01H", r.URL.Path)
		w.Write([]byte(`{
			"_mstitle": {"pt_BR": "Casa K"},
			"_t_mainImageMeta": {"url": "https://img.example/ck01h.jpg"},
			"address": {"state": "SP"},
			"_i_maxGuests": 6,
			"_i_rooms": 3
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 0)
	d, err := c.ListingDetails(context.Background(), "CK01H")
	require.NoError(t, err)
	assert.Equal(t, ListingDetails{
		Title:     "Casa K",
		ImageURL:  "https://img.example/ck01h.jpg",
		State:     "SP",
		MaxGuests: 6,
		Rooms:     3,
	}, d)
}

func TestCreateBlock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/external/v1/booking/reservations", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "blocked", body["type"])
		assert.Equal(t, "CK01H", body["listingId"])
		assert.Equal(t, "2024-03-01", body["checkInDate"])
		assert.Equal(t, "2024-03-05", body["checkOutDate"])
		assert.Equal(t, "maintenance", body["internalNote"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id": "b1", "type": "blocked", "listingId": "CK01H",
			"checkInDate": "2024-03-01", "checkOutDate": "2024-03-05"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	conf, err := c.CreateBlock(context.Background(), Block{
		ListingID:    "CK01H",
		CheckInDate:  "2024-03-01",
		CheckOutDate: "2024-03-05",
		InternalNote: "maintenance",
	})
	require.NoError(t, err)
	assert.Equal(t, "b1", conf.ID)
	assert.Equal(t, "blocked", conf.Type)
}

func TestUpdateHouseRules(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/external/v1/settings/listing/CK01H/house-rules", r.URL.Path)

		var rules HouseRules
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rules))
		assert.True(t, rules.QuietHours)
		require.NotNil(t, rules.QuietHoursDetails)
		assert.Equal(t, 23, rules.QuietHoursDetails.From)

		json.NewEncoder(w).Encode(rules)
	}))
	defer srv.Close()

	c := newTestClient(srv, 0)
	updated, err := c.UpdateHouseRules(context.Background(), "CK01H", HouseRules{
		QuietHours:        true,
		QuietHoursDetails: &QuietHoursDetails{From: 23, To: 7},
	})
	require.NoError(t, err)
	assert.True(t, updated.QuietHours)
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "listing not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	_, err := c.ListingDetails(context.Background(), "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "listing not found", apiErr.Message)
}

func TestGetRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 2)
	_, err := c.Reservations(context.Background(), Query{From: "2024-01-01", To: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "bad window"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv, 3)
	_, err := c.Reservations(context.Background(), Query{From: "x", To: "y"})
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
