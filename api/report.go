package api

import (
	"strconv"
	"strings"
	"time"
)

// Report is the rendered rich-text report. Labels are wrapped in <b> tags.
type Report string

const (
	reportHeader = "<b>Report</b>\n"
	timeLayout   = "2006-01-02 15:04:05"

	unknownLocation = "Unknown Location"
	unknownMag      = "Not Available"
	unknownTime     = "Unknown Time"
)

// Formatter renders a FeatureSet into a Report
type Formatter struct {
	// Location is the zone event times are shown in; nil means time.Local
	Location *time.Location
}

// Format renders the header followed by one block per record, in input order.
// It never fails: missing fields fall back to placeholder text.
func (f Formatter) Format(features FeatureSet) Report {
	var b strings.Builder
	b.WriteString(reportHeader)
	for _, rec := range features {
		b.WriteString("\n<b>Location: </b> ")
		b.WriteString(f.location(rec))
		b.WriteString("\n<b>Magnitude: </b> ")
		b.WriteString(f.magnitude(rec))
		b.WriteString("\n<b>Time: </b> ")
		b.WriteString(f.time(rec))
		b.WriteString("\n")
	}
	return Report(b.String())
}

func (f Formatter) location(rec FeatureRecord) string {
	if rec.Place == "" {
		return unknownLocation
	}
	return rec.Place
}

// magnitude treats negative values as absent, even though small negative
// magnitudes do occur for real events.
func (f Formatter) magnitude(rec FeatureRecord) string {
	m := rec.Magnitude
	if !(m >= 0) {
		return unknownMag
	}
	if m == 0 {
		m = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(m, 'f', 1, 64)
}

func (f Formatter) time(rec FeatureRecord) string {
	if rec.TimeMillis <= 0 {
		return unknownTime
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(rec.TimeMillis).In(loc).Format(timeLayout)
}
