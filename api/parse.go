package api

import (
	"encoding/json"

	"github.com/morikuni/failure/v2"
	"github.com/samber/lo"
)

// ParseFeatures decodes a GeoJSON body into a FeatureSet.
// A malformed body and an empty feature list both return ErrNoData, and the
// two cases are indistinguishable to the caller.
func ParseFeatures(body string) (FeatureSet, error) {
	var fc featureCollection
	if err := json.Unmarshal([]byte(body), &fc); err != nil {
		return nil, failure.New(ErrNoData,
			failure.Message(MessageNoData),
			failure.Context{"cause": err.Error()},
		)
	}
	if len(fc.Features) == 0 {
		return nil, failure.New(ErrNoData, failure.Message(MessageNoData))
	}

	return lo.Map(fc.Features, func(f geoFeature, _ int) FeatureRecord {
		return f.record()
	}), nil
}
