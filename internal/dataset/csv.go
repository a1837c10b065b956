package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"hotel_map/internal/domain"
)

// Column names of the hotels dataset.
const (
	ColCity        = "city_name"
	ColName        = "hotel_name"
	ColRating      = "hotel_rating"
	ColLat         = "hotel_latitude"
	ColLon         = "hotel_longitude"
	ColURL         = "hotel_url"
	ColDescription = "hotel_description"
)

var requiredColumns = []string{ColCity, ColRating, ColLat, ColLon}

// ParseCSV reads a UTF-8 (optionally BOM-prefixed) CSV into raw rows.
// Header problems and malformed records are reported as domain.ErrParse.
func ParseCSV(r io.Reader) ([]domain.RawHotel, error) {
	cr := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty file", domain.ErrParse)
	}
	if err != nil {
		return nil, wrapReadErr(err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrParse, c)
		}
	}
	width := len(header)

	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var rows []domain.RawHotel
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, wrapReadErr(err)
		}
		if len(rec) > width {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", domain.ErrParse, line, len(rec), width)
		}
		rows = append(rows, domain.RawHotel{
			City:        cellStr(col(rec, ColCity)),
			Name:        cellStr(col(rec, ColName)),
			Rating:      cellFloat(col(rec, ColRating)),
			Lat:         cellFloat(col(rec, ColLat)),
			Lon:         cellFloat(col(rec, ColLon)),
			URL:         cellStr(col(rec, ColURL)),
			Description: cellStr(col(rec, ColDescription)),
		})
	}
	return rows, nil
}

func wrapReadErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", domain.ErrParse, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUnreadable, err)
}
