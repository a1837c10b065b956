package dataset

import (
	"math"
	"strconv"
	"strings"

	"hotel_map/internal/domain"
)

// missing lists the cell values treated as "no value", the same set pandas uses by default.
var missing = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "#N/A": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "<NA>": {},
}

func cellStr(s string) *string {
	s = strings.TrimSpace(s)
	if _, ok := missing[s]; ok {
		return nil
	}
	return &s
}

// cellFloat parses a number. Unparseable values (including a decimal comma
// such as "8,5") and non-finite values are reported as missing.
func cellFloat(s string) *float64 {
	p := cellStr(s)
	if p == nil {
		return nil
	}
	f, err := strconv.ParseFloat(*p, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// validate turns a raw row into a record, or reports false when rating or
// coordinates are missing or out of range.
func validate(r domain.RawHotel) (domain.HotelRecord, bool) {
	if r.Rating == nil || r.Lat == nil || r.Lon == nil {
		return domain.HotelRecord{}, false
	}
	rating, lat, lon := *r.Rating, *r.Lat, *r.Lon
	for _, f := range []float64{rating, lat, lon} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return domain.HotelRecord{}, false
		}
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.HotelRecord{}, false
	}
	rec := domain.HotelRecord{
		Rating:      rating,
		Lat:         lat,
		Lon:         lon,
		Name:        r.Name,
		URL:         r.URL,
		Description: r.Description,
	}
	if r.City != nil {
		rec.City = *r.City
	}
	return rec, true
}

// FromRaw validates rows in order and returns the dataset plus the number of dropped rows.
func FromRaw(rows []domain.RawHotel) (domain.Dataset, int) {
	out := make([]domain.HotelRecord, 0, len(rows))
	for _, r := range rows {
		if rec, ok := validate(r); ok {
			out = append(out, rec)
		}
	}
	return domain.NewDataset(out), len(rows) - len(out)
}
