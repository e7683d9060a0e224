package blocks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"staysboard/internal/calendar"
	kafkax "staysboard/internal/kafka"
	"staysboard/internal/metrics"
	"staysboard/internal/stays"
	"staysboard/internal/store/actions"
)

const dateLayout = "2006-01-02"

// Gateway is the slice of the Stays client the block workflow needs: the
// availability calendar to validate against, and the block write itself.
type Gateway interface {
	Calendar(ctx context.Context, listingID, from, to string) ([]stays.CalendarDay, error)
	CreateBlock(ctx context.Context, b stays.Block) (stays.BlockConfirmation, error)
}

// Publisher emits action events; kafkax.Producer implements it.
type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

// Audit records the write in Postgres; actions.ActionsRepository implements it.
type Audit interface {
	Record(ctx context.Context, a *actions.Action) (*actions.Action, error)
}

type BlocksService struct {
	log   *zap.Logger
	gw    Gateway
	prod  Publisher
	audit Audit
}

func NewBlocksService(log *zap.Logger, gw Gateway, prod Publisher, audit Audit) *BlocksService {
	return &BlocksService{log: log, gw: gw, prod: prod, audit: audit}
}

type CreateRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Comment   string `json:"comment"`
	Actor     string `json:"-"`
}

var (
	ErrMissingDates     = errors.New("start and end dates are required")
	ErrInvertedRange    = errors.New("end date precedes start date")
	ErrRangeUnavailable = errors.New("the selected period contains unavailable dates")
)

// Create validates the requested range against the listing calendar and, on
// success, performs the upstream write. Validation failures never reach
// upstream. The audit row and the Kafka event are best effort: the block
// already exists upstream, so their failure is logged, not returned.
func (s *BlocksService) Create(ctx context.Context, req CreateRequest) (*stays.BlockConfirmation, int, error) {
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		reason := "missing_dates"
		if errors.Is(err, ErrInvertedRange) {
			reason = "inverted_range"
		}
		metrics.BlockValidationFailuresTotal.WithLabelValues(reason).Inc()
		return nil, 400, err
	}

	days, err := s.gw.Calendar(ctx, req.ListingID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, 502, err
	}

	calDays := make([]calendar.Day, len(days))
	for i, d := range days {
		calDays[i] = calendar.Day{Date: d.Date, Available: d.Avail == 1}
	}
	ix := calendar.BuildIndex(calDays, req.StartDate)
	if ix.HasUnavailableInRange(req.StartDate, req.EndDate) {
		metrics.BlockValidationFailuresTotal.WithLabelValues("unavailable_dates").Inc()
		return nil, 409, ErrRangeUnavailable
	}

	conf, err := s.gw.CreateBlock(ctx, stays.Block{
		ListingID:    req.ListingID,
		CheckInDate:  req.StartDate,
		CheckOutDate: req.EndDate,
		InternalNote: req.Comment,
	})
	if err != nil {
		return nil, 502, err
	}
	metrics.BlocksCreatedTotal.Inc()

	s.recordAndPublish(ctx, req, conf.ID)
	return &conf, 201, nil
}

func validateRange(startDate, endDate string) error {
	if startDate == "" || endDate == "" {
		return ErrMissingDates
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return ErrMissingDates
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return ErrMissingDates
	}
	if end.Before(start) {
		return ErrInvertedRange
	}
	return nil
}

func (s *BlocksService) recordAndPublish(ctx context.Context, req CreateRequest, blockID string) {
	detail, _ := json.Marshal(map[string]string{
		"block_id":   blockID,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
		"comment":    req.Comment,
	})
	if s.audit != nil {
		if _, err := s.audit.Record(ctx, &actions.Action{
			Kind:      actions.KindBlockCreated,
			ListingID: req.ListingID,
			Actor:     req.Actor,
			Detail:    detail,
		}); err != nil {
			s.log.Error("audit record failed", zap.Error(err), zap.String("listing", req.ListingID))
		}
	}
	if s.prod != nil {
		event, _ := json.Marshal(kafkax.ActionEvent{
			Type:      actions.KindBlockCreated,
			ListingID: req.ListingID,
			Actor:     req.Actor,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
			Comment:   req.Comment,
		})
		if err := s.prod.Publish(ctx, []byte(req.ListingID), event); err != nil {
			s.log.Error("kafka publish error", zap.Error(err))
		}
	}
}
