package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staysboard/internal/stays"
)

type fakeGateway struct {
	reservations  []stays.Reservation
	cancellations []stays.Reservation
	days          []stays.CalendarDay

	reservationsErr  error
	cancellationsErr error
	calendarErr      error

	calendarListing string
}

func (f *fakeGateway) Reservations(ctx context.Context, q stays.Query) ([]stays.Reservation, error) {
	return f.reservations, f.reservationsErr
}

func (f *fakeGateway) Cancellations(ctx context.Context, q stays.Query) ([]stays.Reservation, error) {
	return f.cancellations, f.cancellationsErr
}

func (f *fakeGateway) Calendar(ctx context.Context, listingID, from, to string) ([]stays.CalendarDay, error) {
	f.calendarListing = listingID
	return f.days, f.calendarErr
}

func TestSearchValidation(t *testing.T) {
	svc := NewDashboardService(zap.NewNop(), &fakeGateway{}, "CK01H", "BRL")

	t.Run("missing dates", func(t *testing.T) {
		_, err := svc.Search(context.Background(), SearchRequest{From: "", To: "2024-03-31"})
		assert.ErrorIs(t, err, ErrMissingRange)
	})

	t.Run("unparseable dates", func(t *testing.T) {
		_, err := svc.Search(context.Background(), SearchRequest{From: "yesterday", To: "2024-03-31"})
		assert.ErrorIs(t, err, ErrMissingRange)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.Search(context.Background(), SearchRequest{From: "2024-03-31", To: "2024-03-01"})
		assert.ErrorIs(t, err, ErrInvertedRange)
	})
}

func TestSearchFallsBackToDefaultListing(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewDashboardService(zap.NewNop(), gw, "CK01H", "BRL")

	_, err := svc.Search(context.Background(), SearchRequest{From: "2024-01-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "CK01H", gw.calendarListing)
}

func TestSearchFetchFailureAbortsWholeSearch(t *testing.T) {
	gw := &fakeGateway{calendarErr: errors.New("upstream down")}
	svc := NewDashboardService(zap.NewNop(), gw, "CK01H", "BRL")

	result, err := svc.Search(context.Background(), SearchRequest{From: "2024-01-01", To: "2024-03-31"})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestSearchSeries(t *testing.T) {
	priced := func(checkIn, partner string, raw string) stays.Reservation {
		r := stays.Reservation{CheckInDate: checkIn, Price: &stays.Price{HostingDetails: &stays.HostingDetails{}}}
		require.NoError(t, r.Price.HostingDetails.Total.UnmarshalJSON([]byte(raw)))
		if partner != "" {
			r.Partner = &stays.Partner{Name: partner}
		}
		return r
	}

	gw := &fakeGateway{
		reservations: []stays.Reservation{
			priced("2024-01-05", "Airbnb", "400"),
			priced("2024-01-15", "", "200"),
			// February booking without a price: the bucket must be null.
			{CheckInDate: "2024-02-10"},
			priced("2024-03-01", "Airbnb", "600"),
		},
		cancellations: []stays.Reservation{
			{CheckInDate: "2024-02-20"},
		},
		days: []stays.CalendarDay{
			{Date: "2024-01-01", Avail: 1, Prices: []stays.DayPrice{{Currencies: map[string]float64{"BRL": 100}}}},
			{Date: "2024-01-02", Avail: 0},
			{Date: "2024-01-03", Avail: 1, Prices: []stays.DayPrice{{Currencies: map[string]float64{"BRL": 300}}}},
			{Date: "2024-02-01", Avail: 0},
		},
	}
	svc := NewDashboardService(zap.NewNop(), gw, "CK01H", "BRL")

	result, err := svc.Search(context.Background(), SearchRequest{From: "2024-01-01", To: "2024-03-31", ListingID: "CK01H"})
	require.NoError(t, err)

	t.Run("reservations per month with explicit zeros", func(t *testing.T) {
		require.Len(t, result.Reservations, 3)
		assert.Equal(t, CountPoint{Label: "Jan", Year: 2024, Value: 2}, result.Reservations[0])
		assert.Equal(t, CountPoint{Label: "Feb", Year: 2024, Value: 1}, result.Reservations[1])
		assert.Equal(t, CountPoint{Label: "Mar", Year: 2024, Value: 1}, result.Reservations[2])
	})

	t.Run("cancellations have their own axis", func(t *testing.T) {
		require.Len(t, result.Cancellations, 1)
		assert.Equal(t, CountPoint{Label: "Feb", Year: 2024, Value: 1}, result.Cancellations[0])
	})

	t.Run("sources default to Direct", func(t *testing.T) {
		assert.Equal(t, []string{"Airbnb", "Direct"}, result.Sources.Labels)
		assert.Equal(t, []int{2, 2}, result.Sources.Counts)
	})

	t.Run("average ticket is null for unpriced months", func(t *testing.T) {
		require.Len(t, result.AverageTicket, 3)
		require.NotNil(t, result.AverageTicket[0].Value)
		assert.Equal(t, 300.0, *result.AverageTicket[0].Value)
		assert.Nil(t, result.AverageTicket[1].Value)
		require.NotNil(t, result.AverageTicket[2].Value)
		assert.Equal(t, 600.0, *result.AverageTicket[2].Value)
	})

	t.Run("occupancy splits by availability", func(t *testing.T) {
		require.Len(t, result.Occupancy.Available, 2)
		assert.Equal(t, 2, result.Occupancy.Available[0].Value)
		assert.Equal(t, 1, result.Occupancy.Unavailable[0].Value)
		assert.Equal(t, 0, result.Occupancy.Available[1].Value)
		assert.Equal(t, 1, result.Occupancy.Unavailable[1].Value)
	})

	t.Run("daily rate averages only priced days", func(t *testing.T) {
		require.Len(t, result.AverageDailyRate, 2)
		require.NotNil(t, result.AverageDailyRate[0].Value)
		assert.Equal(t, 200.0, *result.AverageDailyRate[0].Value)
		assert.Nil(t, result.AverageDailyRate[1].Value)
	})
}

func TestSearchEmptyWindow(t *testing.T) {
	svc := NewDashboardService(zap.NewNop(), &fakeGateway{}, "CK01H", "BRL")

	result, err := svc.Search(context.Background(), SearchRequest{From: "2024-01-01", To: "2024-03-31"})
	require.NoError(t, err)
	assert.Empty(t, result.Reservations)
	assert.Empty(t, result.Sources.Labels)
	assert.Empty(t, result.Occupancy.Available)
}
