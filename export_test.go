package sfnet

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
)

func prepareExportGraph(t *testing.T) *Graph {
	t.Helper()
	lines := []LineFeature{
		NewLineFeature(orb.LineString{{0, 0}, {1, 1}}, map[string]interface{}{"highway": "primary"}),
		NewLineFeature(orb.LineString{{1, 1}, {2, 2}}, map[string]interface{}{"name": "Second"}),
	}
	graph, err := BuildGraph(lines, false, WithCRS(CRS_PLANAR))
	if err != nil {
		t.Fatal(err)
	}
	return graph
}

func TestWriteNodesCSV(t *testing.T) {
	graph := prepareExportGraph(t)
	var buf bytes.Buffer
	err := graph.WriteNodesCSV(&buf, GEOM_WKT)
	if err != nil {
		t.Fatal(err)
	}
	correct := "id;longitude;latitude;geom\n" +
		"1;0.000000000;0.000000000;POINT(0 0)\n" +
		"2;1.000000000;1.000000000;POINT(1 1)\n" +
		"3;2.000000000;2.000000000;POINT(2 2)\n"
	if buf.String() != correct {
		t.Errorf("Nodes CSV should be:\n%s\nbut got:\n%s", correct, buf.String())
	}
}

func TestWriteEdgesCSV(t *testing.T) {
	graph := prepareExportGraph(t)
	var buf bytes.Buffer
	err := graph.WriteEdgesCSV(&buf, GEOM_WKT)
	if err != nil {
		t.Fatal(err)
	}
	correct := "id;source_node;target_node;length;highway;name;geom\n" +
		"1;1;2;1.414214;primary;;LINESTRING(0 0,1 1)\n" +
		"2;2;3;1.414214;;Second;LINESTRING(1 1,2 2)\n"
	if buf.String() != correct {
		t.Errorf("Edges CSV should be:\n%s\nbut got:\n%s", correct, buf.String())
	}
}

func TestWriteEdgesCSVGeoJSON(t *testing.T) {
	graph := prepareExportGraph(t)
	var buf bytes.Buffer
	err := graph.WriteEdgesCSV(&buf, GEOM_GEOJSON)
	if err != nil {
		t.Fatal(err)
	}
	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("Number of records should be 3, but got %d", len(records))
	}
	geom := records[1][len(records[1])-1]
	if !strings.Contains(geom, `"LineString"`) || !strings.Contains(geom, "[[0,0],[1,1]]") {
		t.Errorf("Geometry should be GeoJSON LineString, but got '%s'", geom)
	}
}

func TestWriteFlatCSV(t *testing.T) {
	lines := []LineFeature{
		NewLineFeature(lineToMercator(orb.LineString{{37.6417350769043, 55.751849391735284}, {37.668514251708984, 55.73261980350401}}), nil),
	}
	graph, err := BuildGraph(lines, true, WithCRS(CRS_EPSG3857))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = graph.WriteFlatCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	reader := csv.NewReader(&buf)
	reader.Comma = ';'
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Number of records should be 2, but got %d", len(records))
	}
	correct := []string{"1", "1", "37.641735077", "55.751849392", "2", "37.668514252", "55.732619804", "2719.970814"}
	for i := range correct {
		if i == len(correct)-1 {
			// length could differ in last digits
			if !strings.HasPrefix(records[1][i], "2719.9") {
				t.Errorf("Length should be close to %s, but got %s", correct[i], records[1][i])
			}
			continue
		}
		if records[1][i] != correct[i] {
			t.Errorf("Column '%s' should be '%s', but got '%s'", records[0][i], correct[i], records[1][i])
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	graph := prepareExportGraph(t)
	var buf bytes.Buffer
	err := graph.WriteEdgesCSV(&buf, GEOM_WKT)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := ReadWKTCSV(&buf, DEFAULT_GEOM_COLUMN, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != len(graph.Edges) {
		t.Fatalf("Number of lines should be %d, but got %d", len(graph.Edges), len(lines))
	}
	if lines[1].Attributes["name"] != "Second" || lines[1].Attributes["highway"] != "" {
		t.Errorf("Attributes of line should be read from columns, but got %v", lines[1].Attributes)
	}
	rebuilt, err := BuildGraph(lines, false, WithCRS(CRS_PLANAR))
	if err != nil {
		t.Fatal(err)
	}
	for i := range graph.Nodes {
		if *graph.Nodes[i] != *rebuilt.Nodes[i] {
			t.Errorf("Node #%d should be %v, but got %v", i, graph.Nodes[i], rebuilt.Nodes[i])
		}
	}
}

func TestWriteEdgesCSVReservedAttributes(t *testing.T) {
	lines := []LineFeature{
		NewLineFeature(orb.LineString{{0, 0}, {3, 4}}, map[string]interface{}{"id": "A", "geom": "x", "length": 7}),
	}
	graph, err := BuildGraph(lines, false, WithCRS(CRS_PLANAR))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = graph.WriteEdgesCSV(&buf, GEOM_WKT)
	if err != nil {
		t.Fatal(err)
	}
	correct := "id;source_node;target_node;length;attr_geom;attr_id;attr_length;geom\n" +
		"1;1;2;5.000000;x;A;7;LINESTRING(0 0,3 4)\n"
	if buf.String() != correct {
		t.Fatalf("Edges CSV should be:\n%s\nbut got:\n%s", correct, buf.String())
	}

	back, err := ReadWKTCSV(&buf, DEFAULT_GEOM_COLUMN, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 {
		t.Fatalf("Number of lines should be 1, but got %d", len(back))
	}
	if back[0].Attributes["attr_geom"] != "x" || back[0].Attributes["attr_id"] != "A" || back[0].Attributes["attr_length"] != "7" {
		t.Errorf("Renamed attributes should keep their values, but got %v", back[0].Attributes)
	}

	// Read back table has both plain and prefixed names, export must stay readable
	rebuilt, err := BuildGraph(back, false, WithCRS(CRS_PLANAR))
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	err = rebuilt.WriteEdgesCSV(&buf, GEOM_WKT)
	if err != nil {
		t.Fatal(err)
	}
	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	reader.Comma = ';'
	header, err := reader.Read()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool, len(header))
	for _, column := range header {
		if seen[column] {
			t.Errorf("Column '%s' should not be repeated in header %v", column, header)
		}
		seen[column] = true
	}
	if !seen["attr_attr_id"] || !seen["attr_source_node"] {
		t.Errorf("Header should contain 'attr_attr_id' and 'attr_source_node', but got %v", header)
	}
	if _, err = ReadWKTCSV(&buf, DEFAULT_GEOM_COLUMN, false); err != nil {
		t.Errorf("Exported table should be readable, but got '%v'", err)
	}
}

func TestWriteCSVBadGeometry(t *testing.T) {
	lines := []LineFeature{
		NewLineFeature(orb.LineString{{0, 0}, {math.NaN(), 1}}, nil),
	}
	graph, err := BuildGraph(lines, false, WithCRS(CRS_PLANAR))
	if err != nil {
		t.Fatal(err)
	}
	if _, err = PrepareGeoJSONLinestring(graph.Edges[0].Geom); err == nil {
		t.Errorf("NaN coordinate can't be represented in GeoJSON and should be reported")
	}
	var buf bytes.Buffer
	if err = graph.WriteEdgesCSV(&buf, GEOM_GEOJSON); err == nil {
		t.Errorf("Edges CSV should not be written with empty geometry")
	}
	buf.Reset()
	if err = graph.WriteNodesCSV(&buf, GEOM_GEOJSON); err == nil {
		t.Errorf("Nodes CSV should not be written with empty geometry")
	}
}

func TestExportToCSV(t *testing.T) {
	graph := prepareExportGraph(t)
	dir := t.TempDir()
	err := graph.ExportToCSV(filepath.Join(dir, "graph.csv"), GEOM_WKT)
	if err != nil {
		t.Fatal(err)
	}
	for _, fname := range []string{"graph_nodes.csv", "graph_edges.csv", "graph_flat.csv"} {
		info, err := os.Stat(filepath.Join(dir, fname))
		if err != nil {
			t.Errorf("File '%s' should be created: %v", fname, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("File '%s' should not be empty", fname)
		}
	}
}

func TestGeoJSONRoundTrip(t *testing.T) {
	wgs := orb.LineString{{37.6417350769043, 55.751849391735284}, {37.668514251708984, 55.73261980350401}}
	lines := []LineFeature{
		NewLineFeature(lineToMercator(wgs), map[string]interface{}{"name": "Mercator"}),
	}
	graph, err := BuildGraph(lines, false, WithCRS(CRS_EPSG3857))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	err = graph.WriteGeoJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	fc := graph.PrepareGeoJSON()
	if len(fc.Features) != 3 {
		t.Errorf("Feature collection should contain 1 edge and 2 nodes, but got %d features", len(fc.Features))
	}
	back, err := ReadGeoJSONLines(&buf, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != 1 {
		t.Fatalf("Number of lines should be 1, but got %d", len(back))
	}
	for i, pt := range back[0].Geom {
		if math.Abs(pt.Lon()-wgs[i].Lon()) > 1e-9 || math.Abs(pt.Lat()-wgs[i].Lat()) > 1e-9 {
			t.Errorf("Point #%d should be %v in EPSG:4326, but got %v", i, wgs[i], pt)
		}
	}
	if back[0].Attributes["name"] != "Mercator" {
		t.Errorf("Attribute 'name' should be 'Mercator', but got %v", back[0].Attributes["name"])
	}
	if back[0].Attributes["edge_id"] != 1.0 || back[0].Attributes["target_node"] != 2.0 {
		t.Errorf("Edge properties should be exported, but got %v", back[0].Attributes)
	}
}

func TestParseGeomFormat(t *testing.T) {
	if f, err := ParseGeomFormat("GeoJSON"); err != nil || f != GEOM_GEOJSON {
		t.Errorf("'GeoJSON' should be parsed as '%s', but got '%v' (%v)", GEOM_GEOJSON, f, err)
	}
	if f, err := ParseGeomFormat("wkt"); err != nil || f != GEOM_WKT {
		t.Errorf("'wkt' should be parsed as '%s', but got '%v' (%v)", GEOM_WKT, f, err)
	}
	if _, err := ParseGeomFormat("kml"); err == nil {
		t.Errorf("'kml' should not be parsed")
	}
}
