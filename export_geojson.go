package sfnet

import (
	"io"
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// PrepareGeoJSON returns FeatureCollection with one LineString feature per edge followed by one Point feature per node.
// Coordinates are converted to EPSG:4326 when graph is in EPSG:3857
func (graph *Graph) PrepareGeoJSON() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	lengths := graph.EdgeLengths()
	for i, edge := range graph.Edges {
		feature := geojson.NewLineStringFeature(lineToCoordinates(toWGS84Line(edge.Geom, graph.CRS)))
		for key, value := range edge.Attributes {
			feature.SetProperty(key, value)
		}
		feature.SetProperty("edge_id", edge.ID)
		feature.SetProperty("source_node", edge.SourceNodeID)
		feature.SetProperty("target_node", edge.TargetNodeID)
		feature.SetProperty("length", lengths[i])
		fc.AddFeature(feature)
	}
	for _, node := range graph.Nodes {
		feature := geojson.NewPointFeature(pointToCoordinates(toWGS84Point(node.Geom, graph.CRS)))
		feature.SetProperty("node_id", node.ID)
		fc.AddFeature(feature)
	}
	return fc
}

// WriteGeoJSON writes GeoJSON representation of graph. See PrepareGeoJSON
func (graph *Graph) WriteGeoJSON(w io.Writer) error {
	b, err := graph.PrepareGeoJSON().MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	_, err = w.Write(b)
	if err != nil {
		return errors.Wrap(err, "Can't write feature collection")
	}
	return nil
}

// ExportToGeoJSON writes GeoJSON representation of graph into file
func (graph *Graph) ExportToGeoJSON(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	err = graph.WriteGeoJSON(file)
	if err != nil {
		return err
	}
	return file.Close()
}
