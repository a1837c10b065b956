package domain

import (
	"slices"
	"strconv"
)

// HotelRecord is one validated row of the hotels dataset.
// Rating, Lat and Lon are always present once a record has been loaded.
type HotelRecord struct {
	City        string
	Name        *string
	Rating      float64
	Lat, Lon    float64
	URL         *string
	Description *string
}

// RawHotel is a dataset row before validation: every value may be missing.
type RawHotel struct {
	City        *string
	Name        *string
	Rating      *float64
	Lat, Lon    *float64
	URL         *string
	Description *string
}

// Dataset is the immutable, ordered collection of hotels for one locator.
type Dataset struct {
	records []HotelRecord
}

func NewDataset(records []HotelRecord) Dataset {
	return Dataset{records: slices.Clone(records)}
}

func (d Dataset) Len() int { return len(d.records) }

// Records returns a copy so callers cannot mutate the cached dataset.
func (d Dataset) Records() []HotelRecord { return slices.Clone(d.records) }

type FilterCriteria struct {
	City      string  `json:"city"`
	MinRating float64 `json:"min_rating"`
	TopN      int     `json:"top"`
}

// MinRatingText formats MinRating with the fewest digits that parse back to the same value.
func (c FilterCriteria) MinRatingText() string {
	return strconv.FormatFloat(c.MinRating, 'f', -1, 64)
}
