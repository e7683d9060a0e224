package dashboard

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"staysboard/internal/metrics"
	"staysboard/internal/stats"
	"staysboard/internal/stays"
)

const dateLayout = "2006-01-02"

// Gateway is the slice of the Stays client the search cycle needs.
type Gateway interface {
	Reservations(ctx context.Context, q stays.Query) ([]stays.Reservation, error)
	Cancellations(ctx context.Context, q stays.Query) ([]stays.Reservation, error)
	Calendar(ctx context.Context, listingID, from, to string) ([]stays.CalendarDay, error)
}

type DashboardService struct {
	log            *zap.Logger
	gw             Gateway
	defaultListing string
	currency       string
}

func NewDashboardService(log *zap.Logger, gw Gateway, defaultListing, currency string) *DashboardService {
	return &DashboardService{log: log, gw: gw, defaultListing: defaultListing, currency: currency}
}

type SearchRequest struct {
	From      string
	To        string
	ListingID string
}

// CountPoint and AveragePoint are the chart-facing projections of the stats
// series; Value stays a pointer on averages so empty buckets serialize as
// null rather than 0.
type CountPoint struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Value int    `json:"value"`
}

type AveragePoint struct {
	Label string   `json:"label"`
	Year  int      `json:"year"`
	Value *float64 `json:"value"`
}

type Sources struct {
	Labels      []string  `json:"labels"`
	Counts      []int     `json:"counts"`
	Percentages []float64 `json:"percentages"`
}

type Occupancy struct {
	Available   []CountPoint `json:"available"`
	Unavailable []CountPoint `json:"unavailable"`
}

type SearchResult struct {
	Reservations     []CountPoint   `json:"reservations"`
	Cancellations    []CountPoint   `json:"cancellations"`
	Sources          Sources        `json:"sources"`
	AverageTicket    []AveragePoint `json:"average_ticket"`
	Occupancy        Occupancy      `json:"occupancy"`
	AverageDailyRate []AveragePoint `json:"average_daily_rate"`
}

var (
	ErrMissingRange  = errors.New("start and end dates are required")
	ErrInvertedRange = errors.New("end date precedes start date")
)

// Search runs one dashboard query cycle: fetch reservations, cancellations
// and the availability calendar concurrently, then aggregate each result set
// into its chart series. Any fetch failure aborts the whole search; there is
// no partial result. A superseding request cancels this one through ctx.
func (s *DashboardService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if err := validateRange(req.From, req.To); err != nil {
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	listingID := req.ListingID
	if listingID == "" {
		listingID = s.defaultListing
	}
	q := stays.Query{From: req.From, To: req.To, ListingID: req.ListingID}

	var (
		reservations  []stays.Reservation
		cancellations []stays.Reservation
		days          []stays.CalendarDay
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = s.gw.Reservations(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		cancellations, err = s.gw.Cancellations(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		days, err = s.gw.Calendar(gctx, listingID, req.From, req.To)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.SearchesTotal.WithLabelValues("fetch_error").Inc()
		s.log.Error("search fetch failed", zap.Error(err), zap.String("listing", listingID))
		return nil, err
	}

	result := &SearchResult{
		Reservations:     s.reservationSeries(reservations),
		Cancellations:    s.cancellationSeries(cancellations),
		Sources:          s.sourceDistribution(reservations),
		AverageTicket:    s.averageTicketSeries(reservations),
		AverageDailyRate: s.averageRateSeries(days),
	}
	result.Occupancy.Available, result.Occupancy.Unavailable = s.occupancySeries(days)

	metrics.SearchesTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func validateRange(from, to string) error {
	if from == "" || to == "" {
		return ErrMissingRange
	}
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return ErrMissingRange
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return ErrMissingRange
	}
	if end.Before(start) {
		return ErrInvertedRange
	}
	return nil
}

// checkInDates extracts the parseable check-in dates; records with a missing
// or malformed date are skipped, never fatal.
func checkInDates(reservations []stays.Reservation) []time.Time {
	var dates []time.Time
	for _, r := range reservations {
		if t, err := time.Parse(dateLayout, r.CheckInDate); err == nil {
			dates = append(dates, t)
		}
	}
	return dates
}

func (s *DashboardService) reservationSeries(reservations []stays.Reservation) []CountPoint {
	dates := checkInDates(reservations)
	months := stats.DeriveMonths(dates)
	return countPoints(stats.CountByMonth(dates, months), months)
}

func (s *DashboardService) cancellationSeries(cancellations []stays.Reservation) []CountPoint {
	dates := checkInDates(cancellations)
	months := stats.DeriveMonths(dates)
	return countPoints(stats.CountByMonth(dates, months), months)
}

func (s *DashboardService) sourceDistribution(reservations []stays.Reservation) Sources {
	names := make([]string, len(reservations))
	for i, r := range reservations {
		names[i] = r.SourceName()
	}
	d := stats.SourceDistribution(names)
	return Sources{Labels: d.Labels, Counts: d.Counts, Percentages: d.Percentages}
}

func (s *DashboardService) averageTicketSeries(reservations []stays.Reservation) []AveragePoint {
	// The month axis covers every dated reservation; only priced ones
	// contribute samples, so a month of unpriced bookings averages to null.
	dates := checkInDates(reservations)
	months := stats.DeriveMonths(dates)

	var samples []stats.Sample
	for _, r := range reservations {
		t, err := time.Parse(dateLayout, r.CheckInDate)
		if err != nil {
			continue
		}
		if total, ok := r.Total(); ok {
			samples = append(samples, stats.Sample{Date: t, Value: total})
		}
	}
	return averagePoints(stats.AverageByMonth(samples, months), months)
}

func (s *DashboardService) occupancySeries(days []stays.CalendarDay) ([]CountPoint, []CountPoint) {
	var (
		dates    []time.Time
		statDays []stats.Day
	)
	for _, d := range days {
		t, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			continue
		}
		dates = append(dates, t)
		statDays = append(statDays, stats.Day{Date: t, Available: d.Avail == 1})
	}
	months := stats.DeriveMonths(dates)
	available, unavailable := stats.SplitByAvailability(statDays, months)
	return countPoints(available, months), countPoints(unavailable, months)
}

func (s *DashboardService) averageRateSeries(days []stays.CalendarDay) []AveragePoint {
	var dates []time.Time
	var samples []stats.Sample
	for _, d := range days {
		t, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			continue
		}
		dates = append(dates, t)
		if rate, ok := d.Rate(s.currency); ok {
			samples = append(samples, stats.Sample{Date: t, Value: rate})
		}
	}
	months := stats.DeriveMonths(dates)
	return averagePoints(stats.AverageByMonth(samples, months), months)
}

func countPoints(series []stats.CountPoint, months []stats.MonthKey) []CountPoint {
	labels := stats.Labels(months)
	out := make([]CountPoint, len(series))
	for i, p := range series {
		out[i] = CountPoint{Label: labels[i], Year: p.Month.Year, Value: p.Value}
	}
	return out
}

func averagePoints(series []stats.AveragePoint, months []stats.MonthKey) []AveragePoint {
	labels := stats.Labels(months)
	out := make([]AveragePoint, len(series))
	for i, p := range series {
		out[i] = AveragePoint{Label: labels[i], Year: p.Month.Year, Value: p.Value}
	}
	return out
}
