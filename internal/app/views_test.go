package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_map/internal/app"
	"hotel_map/internal/domain"
	"hotel_map/internal/mapview"
)

// ---- fakes ----

type fakeDatasets struct {
	ds    domain.Dataset
	err   error
	calls int
}

func (f *fakeDatasets) Get(ctx context.Context, locator string) (domain.Dataset, error) {
	f.calls++
	return f.ds, f.err
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*(dst.(*app.ViewModel)) = v.(app.ViewModel)
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

// ---- tests ----

func TestViewService_CacheMissThenHit(t *testing.T) {
	data := &fakeDatasets{ds: domain.NewDataset([]domain.HotelRecord{rec("Paris", "a", 9.5), rec("Paris", "b", 8.2)})}
	cache := &fakeCache{}
	s := app.NewViewService(data, "data/hotels.csv", mapview.NewBuilder(0), cache, 10*time.Minute)
	crit := domain.FilterCriteria{City: "Paris", MinRating: 8, TopN: 20}

	vm, err := s.Render(context.Background(), crit)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if vm.Count != 2 || vm.Title != "Top 2 Hotels in Paris" {
		t.Fatalf("unexpected view: %+v", vm)
	}
	if len(cache.store) != 1 {
		t.Fatalf("expected the view to be cached, store=%v", cache.store)
	}

	// Second call must come from the view cache, not the dataset.
	data.ds = domain.Dataset{}
	vm2, err := s.Render(context.Background(), crit)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if vm2.Count != 2 || data.calls != 1 {
		t.Fatalf("expected cached view, count=%d dataset calls=%d", vm2.Count, data.calls)
	}
}

func TestViewService_NoCache(t *testing.T) {
	data := &fakeDatasets{ds: domain.NewDataset([]domain.HotelRecord{rec("Paris", "a", 9.5)})}
	s := app.NewViewService(data, "x", mapview.NewBuilder(0), nil, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := s.Render(context.Background(), domain.FilterCriteria{City: "Paris", TopN: 5}); err != nil {
			t.Fatalf("err: %v", err)
		}
	}
	if data.calls != 2 {
		t.Fatalf("expected a dataset read per render, got %d", data.calls)
	}
}

func TestViewService_DatasetError(t *testing.T) {
	data := &fakeDatasets{err: domain.ErrNotFound}
	s := app.NewViewService(data, "x", mapview.NewBuilder(0), nil, time.Minute)

	if _, err := s.Render(context.Background(), domain.FilterCriteria{City: "Paris", TopN: 5}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := s.Cities(context.Background()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestViewService_Cities(t *testing.T) {
	data := &fakeDatasets{ds: domain.NewDataset([]domain.HotelRecord{rec("Paris", "a", 9), rec("Lyon", "b", 8)})}
	s := app.NewViewService(data, "x", mapview.NewBuilder(0), nil, time.Minute)
	got, err := s.Cities(context.Background())
	if err != nil || len(got) != 2 || got[0] != "Lyon" {
		t.Fatalf("unexpected cities %v err=%v", got, err)
	}
}

func TestViewService_CacheKeyUsesExactMinRating(t *testing.T) {
	data := &fakeDatasets{ds: domain.NewDataset([]domain.HotelRecord{rec("Paris", "a", 9.5), rec("Paris", "b", 8.0)})}
	s := app.NewViewService(data, "x", mapview.NewBuilder(0), &fakeCache{}, time.Minute)

	first, err := s.Render(context.Background(), domain.FilterCriteria{City: "Paris", MinRating: 8.0, TopN: 20})
	if err != nil || first.Count != 2 {
		t.Fatalf("min 8.0: count=%d err=%v", first.Count, err)
	}
	// 8.04 must not be answered by the cached 8.0 view
	second, err := s.Render(context.Background(), domain.FilterCriteria{City: "Paris", MinRating: 8.04, TopN: 20})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if second.Count != 1 || second.Criteria.MinRating != 8.04 {
		t.Fatalf("min 8.04: count=%d criteria=%+v", second.Count, second.Criteria)
	}
}
