package api

// MagnitudeUnknown marks a record whose magnitude was absent or null
const MagnitudeUnknown = -1.0

// FeatureRecord is one earthquake event
type FeatureRecord struct {
	Place      string  `json:"place,omitempty"`
	Magnitude  float64 `json:"magnitude"`
	TimeMillis int64   `json:"time_millis,omitempty"`
}

// FeatureSet holds records in the order the service returned them
type FeatureSet []FeatureRecord

// featureCollection is the subset of the GeoJSON FeatureCollection we consume
type featureCollection struct {
	Features []geoFeature `json:"features"`
}

type geoFeature struct {
	Properties *geoProperties `json:"properties"`
}

type geoProperties struct {
	Place string   `json:"place"`
	Mag   *float64 `json:"mag"`
	Time  int64    `json:"time"`
}

// record converts the wire feature, degrading missing fields to zero values
func (f geoFeature) record() FeatureRecord {
	rec := FeatureRecord{Magnitude: MagnitudeUnknown}
	if f.Properties == nil {
		return rec
	}
	rec.Place = f.Properties.Place
	rec.TimeMillis = f.Properties.Time
	if f.Properties.Mag != nil {
		rec.Magnitude = *f.Properties.Mag
	}
	return rec
}
