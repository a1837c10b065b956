package mapview

import (
	"fmt"
	"html"
	"math"
	"net/url"
	"strings"
	"unicode/utf8"

	"hotel_map/internal/domain"
)

const (
	DefaultName   = "Unknown Hotel"
	PopupMaxWidth = 320
	// DescriptionLimit is counted in characters (runes), not bytes.
	DescriptionLimit = 300
	ellipsis         = "..."
)

const popupFormat = `<div style="font-size:13px; line-height:1.3;">
  <strong>%s</strong><br>
  <em>Rating:</em> %s<br>
  <em>Description:</em> %s<br>
  <a href="%s" target="_blank" rel="noopener noreferrer">🔗 View on Booking</a>
</div>`

// Popup renders the marker popup for one hotel. Every data-derived string is
// HTML-escaped here; callers must not escape again.
func Popup(h domain.HotelRecord) string {
	name := DefaultName
	if h.Name != nil && strings.TrimSpace(*h.Name) != "" {
		name = *h.Name
	}
	desc := ""
	if h.Description != nil {
		desc = *h.Description
	}
	rating := h.Rating
	return fmt.Sprintf(popupFormat,
		html.EscapeString(name),
		FormatRating(&rating),
		truncateEscaped(desc, DescriptionLimit),
		html.EscapeString(safeURL(h.URL)),
	)
}

// FormatRating renders one decimal place, or "N/A" when there is no rating.
func FormatRating(r *float64) string {
	if r == nil || math.IsNaN(*r) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", *r)
}

// truncateEscaped cuts s to limit characters before escaping, so an entity is
// never split, and appends an ellipsis when something was cut.
func truncateEscaped(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return html.EscapeString(s)
	}
	runes := []rune(s)
	return html.EscapeString(string(runes[:limit])) + ellipsis
}

// safeURL keeps only absolute http(s) links; anything else becomes "#".
func safeURL(raw *string) string {
	if raw == nil {
		return "#"
	}
	u, err := url.Parse(strings.TrimSpace(*raw))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "#"
	}
	return u.String()
}
