package app

import (
	"fmt"

	"hotel_map/internal/domain"
	"hotel_map/internal/mapview"
)

// ViewModel is everything the UI shell needs to draw one interaction.
type ViewModel struct {
	Criteria domain.FilterCriteria `json:"criteria"`
	Empty    bool                  `json:"empty"`
	Notice   string                `json:"notice,omitempty"`
	Title    string                `json:"title,omitempty"`
	Count    int                   `json:"count"`
	Map      *mapview.MapView      `json:"map,omitempty"`
	Legend   []domain.LegendEntry  `json:"legend"`
}

// Render runs selection and map building for one set of criteria.
// An empty selection yields an empty-state notice and no map.
func Render(ds domain.Dataset, c domain.FilterCriteria, b *mapview.Builder) ViewModel {
	vm := ViewModel{Criteria: c, Legend: domain.Legend}

	var rows []domain.HotelRecord
	if c.City != "" {
		rows = Select(ds, c.City, c.MinRating, c.TopN)
	}
	if len(rows) == 0 {
		vm.Empty = true
		vm.Notice = emptyNotice(c.City)
		return vm
	}

	mv := b.Build(rows)
	vm.Count = len(rows)
	vm.Title = fmt.Sprintf("Top %d Hotels in %s", len(rows), c.City)
	vm.Map = &mv
	return vm
}

func emptyNotice(city string) string {
	if city == "" {
		return "No city selected."
	}
	return fmt.Sprintf("No hotels meeting the criteria in %s.", city)
}
