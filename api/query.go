package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure/v2"
)

// DefaultEndpoint is the USGS FDSN event query endpoint
const DefaultEndpoint = "https://earthquake.usgs.gov/fdsnws/event/1/query"

const dateLayout = "2006-01-02"

var validate = validator.New()

// Query is the fixed set of parameters sent to the event service
type Query struct {
	Endpoint     string    `validate:"required,url"`
	Format       string    `validate:"required"`
	StartTime    time.Time `validate:"required"`
	EndTime      time.Time `validate:"required"`
	MinMagnitude float64   `validate:"gte=-10,lte=10"`
	MinLatitude  float64   `validate:"gte=-90,lte=90,ltefield=MaxLatitude"`
	MaxLatitude  float64   `validate:"gte=-90,lte=90"`
	MinLongitude float64   `validate:"gte=-180,lte=180,ltefield=MaxLongitude"`
	MaxLongitude float64   `validate:"gte=-180,lte=180"`
}

// Param is a single query parameter
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultQuery returns the query for magnitude 2+ events recorded in 2022
// around El Salvador
func DefaultQuery() Query {
	return Query{
		Endpoint:     DefaultEndpoint,
		Format:       "geojson",
		StartTime:    time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndTime:      time.Date(2022, time.December, 31, 0, 0, 0, 0, time.UTC),
		MinMagnitude: 2,
		MinLatitude:  13,
		MaxLatitude:  15,
		MinLongitude: -92,
		MaxLongitude: -88,
	}
}

// WithEndpoint returns a copy of the query that targets a different endpoint
func (q Query) WithEndpoint(endpoint string) Query {
	q.Endpoint = endpoint
	return q
}

// Params returns the query parameters in the order they are sent
func (q Query) Params() []Param {
	return []Param{
		{Name: "format", Value: q.Format},
		{Name: "starttime", Value: q.StartTime.Format(dateLayout)},
		{Name: "endtime", Value: q.EndTime.Format(dateLayout)},
		{Name: "minmagnitude", Value: formatNumber(q.MinMagnitude)},
		{Name: "maxlatitude", Value: formatNumber(q.MaxLatitude)},
		{Name: "minlatitude", Value: formatNumber(q.MinLatitude)},
		{Name: "maxlongitude", Value: formatNumber(q.MaxLongitude)},
		{Name: "minlongitude", Value: formatNumber(q.MinLongitude)},
	}
}

// URL returns the absolute request URL.
// url.Values is not used because it sorts keys.
func (q Query) URL() string {
	var b strings.Builder
	b.WriteString(q.Endpoint)
	for i, p := range q.Params() {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Validate checks the query bounds and endpoint
func (q Query) Validate() error {
	if err := validate.Struct(q); err != nil {
		return failure.New(ErrInvalidQuery,
			failure.Message("Invalid earthquake query"),
			failure.Context{
				"endpoint": q.Endpoint,
				"reason":   err.Error(),
			},
		)
	}
	if q.EndTime.Before(q.StartTime) {
		return failure.New(ErrInvalidQuery,
			failure.Message("Query end time is before start time"),
			failure.Context{
				"starttime": q.StartTime.Format(dateLayout),
				"endtime":   q.EndTime.Format(dateLayout),
			},
		)
	}
	return nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
