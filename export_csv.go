package sfnet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ExportToCSV writes graph into three files: nodes, edges and flat lon/lat table of edges.
// E.g.: if file name is 'graph.csv' then 'graph_nodes.csv', 'graph_edges.csv' and 'graph_flat.csv' will be produced
func (graph *Graph) ExportToCSV(fname string, geomFormat GeomFormat) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameEdges := fnameParts[0] + "_edges.csv"
	fnameFlat := fnameParts[0] + "_flat.csv"

	err := writeToFile(fnameNodes, func(w io.Writer) error {
		return graph.WriteNodesCSV(w, geomFormat)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = writeToFile(fnameEdges, func(w io.Writer) error {
		return graph.WriteEdgesCSV(w, geomFormat)
	})
	if err != nil {
		return errors.Wrap(err, "Can't export edges")
	}

	err = writeToFile(fnameFlat, graph.WriteFlatCSV)
	if err != nil {
		return errors.Wrap(err, "Can't export flat table")
	}
	return nil
}

func writeToFile(fname string, write func(w io.Writer) error) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	err = write(file)
	if err != nil {
		return err
	}
	return file.Close()
}

func newCSVWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	return writer
}

// WriteNodesCSV writes nodes. Columns:
//
//	id - int64, ID of node
//	longitude, latitude - float64, coordinates of node in EPSG:4326 (X/Y as is for planar CRS)
//	geom - geometry of node in graph's CRS (WKT or GeoJSON representation)
func (graph *Graph) WriteNodesCSV(w io.Writer, geomFormat GeomFormat) error {
	writer := newCSVWriter(w)
	err := writer.Write([]string{"id", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, node := range graph.Nodes {
		pt := toWGS84Point(node.Geom, graph.CRS)
		geomStr, err := preparePoint(node.Geom, geomFormat)
		if err != nil {
			return errors.Wrapf(err, "Can't prepare geometry of node %d", node.ID)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			formatCoordinate(pt.X()),
			formatCoordinate(pt.Y()),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteEdgesCSV writes edges. Columns:
//
//	id - int64, ID of edge
//	source_node - int64, ID of source node
//	target_node - int64, ID of target node
//	length - float64, length of edge (meters for geographic CRS)
//	attributes of edges - one column per attribute key, sorted by key. Missing values are empty.
//	Column name is the key itself, prefixed with 'attr_' as many times as needed to keep every column name unique
//	geom - geometry of edge in graph's CRS (WKT or GeoJSON representation)
func (graph *Graph) WriteEdgesCSV(w io.Writer, geomFormat GeomFormat) error {
	writer := newCSVWriter(w)
	keys := graph.attributeKeys()
	header := make([]string, 0, len(keys)+len(edgesFixedColumns))
	header = append(header, edgesFixedColumns[:4]...)
	header = append(header, attributeColumns(keys)...)
	header = append(header, edgesFixedColumns[4])
	err := writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	lengths := graph.EdgeLengths()
	for i, edge := range graph.Edges {
		record := make([]string, 0, len(header))
		record = append(record,
			fmt.Sprintf("%d", edge.ID),
			fmt.Sprintf("%d", edge.SourceNodeID),
			fmt.Sprintf("%d", edge.TargetNodeID),
			fmt.Sprintf("%f", lengths[i]),
		)
		for _, key := range keys {
			record = append(record, formatAttribute(edge.Attributes[key]))
		}
		geomStr, err := prepareLinestring(edge.Geom, geomFormat)
		if err != nil {
			return errors.Wrapf(err, "Can't prepare geometry of edge %d", edge.ID)
		}
		record = append(record, geomStr)
		err = writer.Write(record)
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFlatCSV writes edges as flat table with explicit coordinates of endpoints. Columns:
//
//	edge_id - int64, ID of edge
//	from_id, from_lon, from_lat - source node and its coordinates in EPSG:4326 (X/Y as is for planar CRS)
//	to_id, to_lon, to_lat - target node and its coordinates
//	d - float64, length of edge
func (graph *Graph) WriteFlatCSV(w io.Writer) error {
	writer := newCSVWriter(w)
	err := writer.Write([]string{"edge_id", "from_id", "from_lon", "from_lat", "to_id", "to_lon", "to_lat", "d"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	lengths := graph.EdgeLengths()
	for i, edge := range graph.Edges {
		source, ok := graph.Node(edge.SourceNodeID)
		if !ok {
			return errors.Wrapf(ErrNodeNotFound, "Source %d of edge %d", edge.SourceNodeID, edge.ID)
		}
		target, ok := graph.Node(edge.TargetNodeID)
		if !ok {
			return errors.Wrapf(ErrNodeNotFound, "Target %d of edge %d", edge.TargetNodeID, edge.ID)
		}
		from := toWGS84Point(source.Geom, graph.CRS)
		to := toWGS84Point(target.Geom, graph.CRS)
		err = writer.Write([]string{
			fmt.Sprintf("%d", edge.ID),
			fmt.Sprintf("%d", source.ID),
			formatCoordinate(from.X()),
			formatCoordinate(from.Y()),
			fmt.Sprintf("%d", target.ID),
			formatCoordinate(to.X()),
			formatCoordinate(to.Y()),
			fmt.Sprintf("%f", lengths[i]),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write edge")
		}
	}
	writer.Flush()
	return writer.Error()
}

// attributeKeys returns sorted union of attribute keys of all edges
func (graph *Graph) attributeKeys() []string {
	seen := make(map[string]struct{})
	for _, edge := range graph.Edges {
		for key := range edge.Attributes {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// edgesFixedColumns are columns of edges table which are not attributes. 'geom' goes last
var edgesFixedColumns = []string{"id", "source_node", "target_node", "length", "geom"}

// attributeColumns returns column name for each of sorted attribute keys.
// Names clashing with fixed columns or with previous attribute columns get 'attr_' prefix until unique
func attributeColumns(keys []string) []string {
	used := make(map[string]struct{}, len(keys)+len(edgesFixedColumns))
	for _, column := range edgesFixedColumns {
		used[column] = struct{}{}
	}
	// Reserve plain keys first, so a key is never renamed into another key
	for _, key := range keys {
		used[key] = struct{}{}
	}
	columns := make([]string, len(keys))
	for i, key := range keys {
		column := key
		if isFixedColumn(key) {
			column = "attr_" + key
			for {
				if _, ok := used[column]; !ok {
					break
				}
				column = "attr_" + column
			}
			used[column] = struct{}{}
		}
		columns[i] = column
	}
	return columns
}

func isFixedColumn(name string) bool {
	for _, column := range edgesFixedColumns {
		if column == name {
			return true
		}
	}
	return false
}

func formatAttribute(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

func formatCoordinate(value float64) string {
	return fmt.Sprintf("%.9f", value)
}
