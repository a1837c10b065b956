// Package mapview projects selected hotels onto a map description that the
// browser-side renderer (Leaflet) draws: bounds, clustering and popups.
package mapview

import "hotel_map/internal/domain"

// DefaultClusterThreshold is the marker count above which markers are clustered.
const DefaultClusterThreshold = 10

const (
	TilesOpenStreetMap = "OpenStreetMap"
	markerIcon         = "info-sign"
)

// WorldView is used when there is nothing to fit.
var (
	WorldCenter = LatLng{Lat: 20, Lon: 0}
	WorldZoom   = 2
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

type Marker struct {
	Position      LatLng                `json:"position"`
	Color         domain.MarkerCategory `json:"color"`
	Icon          string                `json:"icon"`
	Popup         string                `json:"popup"`
	PopupMaxWidth int                   `json:"popup_max_width"`
}

// MapView is the renderable output of the Builder. When Bounds is set the
// viewer fits exactly that box; otherwise it shows Center at Zoom.
type MapView struct {
	Tiles     string   `json:"tiles"`
	Bounds    *Bounds  `json:"bounds,omitempty"`
	Center    LatLng   `json:"center"`
	Zoom      int      `json:"zoom,omitempty"`
	Clustered bool     `json:"clustered"`
	Markers   []Marker `json:"markers"`
}

type Builder struct {
	clusterThreshold int
}

// NewBuilder returns a Builder clustering above threshold markers.
// A non-positive threshold selects DefaultClusterThreshold.
func NewBuilder(threshold int) *Builder {
	if threshold <= 0 {
		threshold = DefaultClusterThreshold
	}
	return &Builder{clusterThreshold: threshold}
}

func (b *Builder) ClusterThreshold() int { return b.clusterThreshold }

// Build places one marker per row, in order.
func (b *Builder) Build(rows []domain.HotelRecord) MapView {
	mv := MapView{
		Tiles:     TilesOpenStreetMap,
		Clustered: len(rows) > b.clusterThreshold,
		Markers:   make([]Marker, 0, len(rows)),
	}

	bounds, ok := boundsOf(rows)
	if !ok {
		mv.Center, mv.Zoom = WorldCenter, WorldZoom
		return mv
	}
	mv.Bounds = &bounds
	mv.Center = LatLng{
		Lat: (bounds.SouthWest.Lat + bounds.NorthEast.Lat) / 2,
		Lon: (bounds.SouthWest.Lon + bounds.NorthEast.Lon) / 2,
	}

	for _, h := range rows {
		rating := h.Rating
		mv.Markers = append(mv.Markers, Marker{
			Position:      LatLng{Lat: h.Lat, Lon: h.Lon},
			Color:         domain.Classify(&rating),
			Icon:          markerIcon,
			Popup:         Popup(h),
			PopupMaxWidth: PopupMaxWidth,
		})
	}
	return mv
}

func boundsOf(rows []domain.HotelRecord) (Bounds, bool) {
	if len(rows) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		SouthWest: LatLng{Lat: rows[0].Lat, Lon: rows[0].Lon},
		NorthEast: LatLng{Lat: rows[0].Lat, Lon: rows[0].Lon},
	}
	for _, h := range rows[1:] {
		b.SouthWest.Lat = min(b.SouthWest.Lat, h.Lat)
		b.SouthWest.Lon = min(b.SouthWest.Lon, h.Lon)
		b.NorthEast.Lat = max(b.NorthEast.Lat, h.Lat)
		b.NorthEast.Lon = max(b.NorthEast.Lon, h.Lon)
	}
	return b, true
}
