package sfnet

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// ReadGeoJSONFile reads lines from GeoJSON file. See ReadGeoJSONLines
func ReadGeoJSONFile(fname string, verbose bool) ([]LineFeature, error) {
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", fname)
	}
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadGeoJSONLines(file, verbose)
}

// ReadGeoJSONLines reads FeatureCollection and returns lines in order of features.
// MultiLineString is split into one line per part, each part gets copy of feature's properties.
// Features of other geometry types are skipped
func ReadGeoJSONLines(r io.Reader, verbose bool) ([]LineFeature, error) {
	if verbose {
		fmt.Printf("\tProcessing features... ")
	}
	st := time.Now()
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read GeoJSON")
	}
	fc, err := geojson.UnmarshalFeatureCollection(b)
	if err != nil {
		return nil, errors.Wrap(err, "Can't unmarshal feature collection")
	}
	lines := make([]LineFeature, 0, len(fc.Features))
	for i, feature := range fc.Features {
		if feature.Geometry == nil {
			if verbose {
				fmt.Printf("\n\t[WARNING]: Feature #%d has no geometry\n", i)
			}
			continue
		}
		switch feature.Geometry.Type {
		case geojson.GeometryLineString:
			line, err := coordinatesToLine(feature.Geometry.LineString)
			if err != nil {
				return nil, errors.Wrapf(err, "Feature #%d", i)
			}
			lines = append(lines, NewLineFeature(line, copyAttributes(feature.Properties)))
		case geojson.GeometryMultiLineString:
			for j, part := range feature.Geometry.MultiLineString {
				line, err := coordinatesToLine(part)
				if err != nil {
					return nil, errors.Wrapf(err, "Feature #%d, part #%d", i, j)
				}
				lines = append(lines, NewLineFeature(line, copyAttributes(feature.Properties)))
			}
		default:
			if verbose {
				fmt.Printf("\n\t[WARNING]: Unhandled geometry type '%s' of feature #%d\n", feature.Geometry.Type, i)
			}
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return lines, nil
}

func coordinatesToLine(coordinates [][]float64) (orb.LineString, error) {
	line := make(orb.LineString, len(coordinates))
	for i, pos := range coordinates {
		if len(pos) < 2 {
			return nil, errors.Errorf("Position #%d has %d element(s)", i, len(pos))
		}
		line[i] = orb.Point{pos[0], pos[1]}
	}
	return line, nil
}
