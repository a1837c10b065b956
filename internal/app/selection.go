package app

import (
	"cmp"
	"slices"

	"hotel_map/internal/domain"
)

// Select returns the topN highest-rated hotels of city with rating >= minRating.
//
// The cutoff is applied after sorting and before truncation, so the result is
// the best topN hotels meeting the bar. Equal ratings keep dataset order.
func Select(ds domain.Dataset, city string, minRating float64, topN int) []domain.HotelRecord {
	if topN <= 0 {
		return []domain.HotelRecord{}
	}

	rows := ds.Records()
	inCity := rows[:0]
	for _, r := range rows {
		if r.City == city {
			inCity = append(inCity, r)
		}
	}

	slices.SortStableFunc(inCity, func(a, b domain.HotelRecord) int {
		return cmp.Compare(b.Rating, a.Rating)
	})

	out := make([]domain.HotelRecord, 0, min(topN, len(inCity)))
	for _, r := range inCity {
		if r.Rating < minRating {
			continue
		}
		out = append(out, r)
		if len(out) == topN {
			break
		}
	}
	return out
}

// Cities returns the sorted distinct non-empty city names of the dataset.
func Cities(ds domain.Dataset) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range ds.Records() {
		if r.City == "" {
			continue
		}
		if _, ok := seen[r.City]; ok {
			continue
		}
		seen[r.City] = struct{}{}
		out = append(out, r.City)
	}
	slices.Sort(out)
	return out
}
