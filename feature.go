package sfnet

import (
	"github.com/paulmach/orb"
)

// LineFeature is an input line geometry with its descriptive attributes
type LineFeature struct {
	Geom       orb.LineString
	Attributes map[string]interface{}
}

// NewLineFeature creates LineFeature. Attributes could be nil
func NewLineFeature(geom orb.LineString, attributes map[string]interface{}) LineFeature {
	return LineFeature{
		Geom:       geom,
		Attributes: attributes,
	}
}

func copyAttributes(attributes map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(attributes))
	for k, v := range attributes {
		result[k] = v
	}
	return result
}

func copyLineString(line orb.LineString) orb.LineString {
	result := make(orb.LineString, len(line))
	copy(result, line)
	return result
}
