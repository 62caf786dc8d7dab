package model

// PointTypeResidential is the categorical label stamped on every geocoded
// output record regardless of input.
const PointTypeResidential = "Residential"

// GeocodedPoint is one output record of the transform stage: the geocoder's
// first candidate coordinates plus the fixed category label.
type GeocodedPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Type string  `json:"type"`
}
