package listings

import (
	"context"
	"time"

	"go.uber.org/zap"

	redisx "staysboard/internal/redis"
	"staysboard/internal/stays"
)

const cacheKind = "listing_details"

// Gateway is the slice of the Stays client this service needs.
type Gateway interface {
	ListingDetails(ctx context.Context, listingID string) (stays.ListingDetails, error)
}

// ListingsService serves the dashboard listing card. Listing content changes
// rarely, so it sits behind a Redis cache.
type ListingsService struct {
	log   *zap.Logger
	gw    Gateway
	cache *redisx.Cache
	ttl   time.Duration
}

func NewListingsService(log *zap.Logger, gw Gateway, cache *redisx.Cache, ttl time.Duration) *ListingsService {
	return &ListingsService{log: log, gw: gw, cache: cache, ttl: ttl}
}

func (s *ListingsService) Details(ctx context.Context, listingID string) (stays.ListingDetails, error) {
	var details stays.ListingDetails
	if s.cache != nil && s.cache.GetJSON(ctx, cacheKind, listingID, &details) {
		return details, nil
	}

	details, err := s.gw.ListingDetails(ctx, listingID)
	if err != nil {
		return stays.ListingDetails{}, err
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheKind, listingID, details, s.ttl)
	}
	return details, nil
}
