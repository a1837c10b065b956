package dataset_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"hotel_map/internal/dataset"
	"hotel_map/internal/domain"
)

type countingSource struct {
	key   string
	loads atomic.Int32
	delay time.Duration
	err   error
}

func (s *countingSource) Kind() string { return "fake" }
func (s *countingSource) Key() string  { return s.key }
func (s *countingSource) Load(ctx context.Context) (domain.Dataset, error) {
	s.loads.Add(1)
	time.Sleep(s.delay)
	if s.err != nil {
		return domain.Dataset{}, s.err
	}
	return domain.NewDataset([]domain.HotelRecord{{City: "Nice", Rating: 9}}), nil
}

func TestCache_LoadsOncePerKey(t *testing.T) {
	src := &countingSource{key: "k", delay: 20 * time.Millisecond}
	c := dataset.NewCache(func(string) (dataset.Source, error) { return src, nil })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Get(context.Background(), "whatever"); err != nil {
				t.Errorf("get: %v", err)
			}
		}()
	}
	wg.Wait()

	ds, err := c.Get(context.Background(), "whatever")
	if err != nil || ds.Len() != 1 {
		t.Fatalf("unexpected: %v %d", err, ds.Len())
	}
	if n := src.loads.Load(); n != 1 {
		t.Fatalf("expected a single load, got %d", n)
	}
}

func TestCache_FailedLoadIsNotCached(t *testing.T) {
	src := &countingSource{key: "k", err: domain.ErrParse}
	c := dataset.NewCache(func(string) (dataset.Source, error) { return src, nil })

	for i := 0; i < 2; i++ {
		if _, err := c.Get(context.Background(), "x"); !errors.Is(err, domain.ErrParse) {
			t.Fatalf("want ErrParse, got %v", err)
		}
	}
	if n := src.loads.Load(); n != 2 {
		t.Fatalf("expected a retry after failure, got %d loads", n)
	}
}

func TestCache_FileIsNotReread(t *testing.T) {
	p := writeCSV(t, header+"Paris,A,9.5,48.85,2.35,,\n")
	c := dataset.NewCache(dataset.Resolver{}.Resolve)

	first, err := c.Get(context.Background(), p)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	if err := os.Remove(p); err != nil {
		t.Fatalf("remove: %v", err)
	}
	second, err := c.Get(context.Background(), p)
	if err != nil {
		t.Fatalf("second get should come from cache: %v", err)
	}
	if first.Len() != second.Len() {
		t.Fatalf("cached dataset differs: %d vs %d", first.Len(), second.Len())
	}
}
