package domain

import "math"

// MarkerCategory is the marker color derived from a hotel rating.
type MarkerCategory string

const (
	MarkerGreen  MarkerCategory = "green"
	MarkerOrange MarkerCategory = "orange"
	MarkerRed    MarkerCategory = "red"
	MarkerGray   MarkerCategory = "gray"
)

// Classify maps a rating to its marker color. nil and NaN mean "no rating".
func Classify(rating *float64) MarkerCategory {
	if rating == nil || math.IsNaN(*rating) {
		return MarkerGray
	}
	switch r := *rating; {
	case r >= 9.0:
		return MarkerGreen
	case r >= 8.0:
		return MarkerOrange
	default:
		return MarkerRed
	}
}

// LegendEntry describes one marker category for display next to the map.
type LegendEntry struct {
	Category MarkerCategory `json:"category"`
	Symbol   string         `json:"symbol"`
	Label    string         `json:"label"`
}

var Legend = []LegendEntry{
	{Category: MarkerGreen, Symbol: "🟢", Label: "≥ 9.0"},
	{Category: MarkerOrange, Symbol: "🟠", Label: "8.0–8.9"},
	{Category: MarkerRed, Symbol: "🔴", Label: "< 8.0"},
	{Category: MarkerGray, Symbol: "⚪", Label: "no rating"},
}
