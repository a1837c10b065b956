package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_map/internal/adapters/observability"
	"hotel_map/internal/domain"
	"hotel_map/internal/mapview"
)

// DatasetProvider returns the cached dataset for a locator.
type DatasetProvider interface {
	Get(ctx context.Context, locator string) (domain.Dataset, error)
}

// ViewService answers UI interactions against the dataset at one locator.
// cache is optional: a nil cache renders every request.
type ViewService struct {
	datasets DatasetProvider
	locator  string
	builder  *mapview.Builder
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewViewService(d DatasetProvider, locator string, b *mapview.Builder, c domain.Cache, ttl time.Duration) *ViewService {
	return &ViewService{datasets: d, locator: locator, builder: b, cache: c, cacheTTL: ttl}
}

func (s *ViewService) Cities(ctx context.Context) ([]string, error) {
	ds, err := s.datasets.Get(ctx, s.locator)
	if err != nil {
		return nil, err
	}
	return Cities(ds), nil
}

func (s *ViewService) Render(ctx context.Context, c domain.FilterCriteria) (ViewModel, error) {
	key := s.viewKey(c)
	var vm ViewModel
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &vm); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("view cache read failed")
		} else if ok {
			return vm, nil
		}
	}

	ds, err := s.datasets.Get(ctx, s.locator)
	if err != nil {
		return ViewModel{}, err
	}
	vm = Render(ds, c, s.builder)
	observability.ObserveRender(outcome(vm))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, vm, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("view cache write failed")
		}
	}
	return vm, nil
}

// viewKey scopes cached views to the dataset locator and cluster threshold,
// without putting the locator (which may carry credentials) in the key.
func (s *ViewService) viewKey(c domain.FilterCriteria) string {
	sum := sha1.Sum([]byte(s.locator))
	return fmt.Sprintf("view:%s:%d:%s:%s:%d",
		hex.EncodeToString(sum[:8]), s.builder.ClusterThreshold(), c.City, c.MinRatingText(), c.TopN)
}

func outcome(vm ViewModel) string {
	switch {
	case vm.Empty:
		return "empty"
	case vm.Map != nil && vm.Map.Clustered:
		return "clustered"
	default:
		return "map"
	}
}
