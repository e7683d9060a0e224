package rules

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	kafkax "staysboard/internal/kafka"
	"staysboard/internal/stays"
	"staysboard/internal/store/actions"
)

// Gateway is the slice of the Stays client the rules workflow needs.
type Gateway interface {
	HouseRules(ctx context.Context, listingID string) (stays.HouseRules, error)
	UpdateHouseRules(ctx context.Context, listingID string, rules stays.HouseRules) (stays.HouseRules, error)
}

type Publisher interface {
	Publish(ctx context.Context, key, value []byte) error
}

type Audit interface {
	Record(ctx context.Context, a *actions.Action) (*actions.Action, error)
}

type RulesService struct {
	log   *zap.Logger
	gw    Gateway
	prod  Publisher
	audit Audit
}

func NewRulesService(log *zap.Logger, gw Gateway, prod Publisher, audit Audit) *RulesService {
	return &RulesService{log: log, gw: gw, prod: prod, audit: audit}
}

// QuietHours is the dashboard form shape; Start/End are "HH:MM".
type QuietHours struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type Pets struct {
	Allowed bool   `json:"allowed"`
	Charge  string `json:"charge"`
}

// UpdateRequest is what the dashboard form submits; Update maps it to the
// upstream house-rules document.
type UpdateRequest struct {
	Smoking         bool       `json:"smoking"`
	Events          bool       `json:"events"`
	QuietHours      QuietHours `json:"quiet_hours"`
	Pets            Pets       `json:"pets"`
	AdditionalRules string     `json:"additional_rules"`
	Actor           string     `json:"-"`
}

func (s *RulesService) Get(ctx context.Context, listingID string) (stays.HouseRules, error) {
	return s.gw.HouseRules(ctx, listingID)
}

func (s *RulesService) Update(ctx context.Context, listingID string, req UpdateRequest) (stays.HouseRules, error) {
	rules := stays.HouseRules{
		SmokingAllowed: req.Smoking,
		EventsAllowed:  req.Events,
		QuietHours:     req.QuietHours.Enabled,
		PetsAllowed:    req.Pets.Allowed,
		PetsPriceType:  req.Pets.Charge,
		RulesText:      map[string]string{"pt_BR": req.AdditionalRules},
	}
	// Quiet-hours details only travel when quiet hours are on; upstream
	// keeps whole hours only.
	if req.QuietHours.Enabled {
		rules.QuietHoursDetails = &stays.QuietHoursDetails{
			From: hourOf(req.QuietHours.Start, 22),
			To:   hourOf(req.QuietHours.End, 6),
		}
	}

	updated, err := s.gw.UpdateHouseRules(ctx, listingID, rules)
	if err != nil {
		return stays.HouseRules{}, err
	}

	s.recordAndPublish(ctx, listingID, req)
	return updated, nil
}

// hourOf extracts the hour from "HH:MM", falling back when absent or
// malformed.
func hourOf(t string, def int) int {
	h, _, ok := strings.Cut(t, ":")
	if !ok {
		return def
	}
	n, err := strconv.Atoi(h)
	if err != nil || n < 0 || n > 23 {
		return def
	}
	return n
}

func (s *RulesService) recordAndPublish(ctx context.Context, listingID string, req UpdateRequest) {
	if s.audit != nil {
		detail, _ := json.Marshal(req)
		if _, err := s.audit.Record(ctx, &actions.Action{
			Kind:      actions.KindRulesUpdated,
			ListingID: listingID,
			Actor:     req.Actor,
			Detail:    detail,
		}); err != nil {
			s.log.Error("audit record failed", zap.Error(err), zap.String("listing", listingID))
		}
	}
	if s.prod != nil {
		event, _ := json.Marshal(kafkax.ActionEvent{
			Type:      actions.KindRulesUpdated,
			ListingID: listingID,
			Actor:     req.Actor,
		})
		if err := s.prod.Publish(ctx, []byte(listingID), event); err != nil {
			s.log.Error("kafka publish error", zap.Error(err))
		}
	}
}
