package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/LdDl/sfnet"
	"github.com/pkg/errors"
)

var (
	fileName    = flag.String("file", "my_lines.geojson", "Filename of input lines. Expected extensions: .geojson / .json / .osm / .osm.pbf / .csv (WKT geometry in 'geom' column)")
	tagStr      = flag.String("tags", "motorway,motorway_link,trunk,trunk_link,primary,primary_link,secondary,secondary_link,tertiary,tertiary_link,residential,unclassified,living_street,road", "Set of needed 'highway' tags for OSM input (separated by commas)")
	crsStr      = flag.String("crs", "4326", "Coordinate reference system of input. Expected values: 4326 / 3857 / planar")
	directed    = flag.Bool("directed", false, "Treat edges as directed?")
	out         = flag.String("out", "my_graph.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file. E.g.: if file name is 'graph.csv' then 3 files will be produced: 'graph_nodes.csv', 'graph_edges.csv', 'graph_flat.csv'")
	geomFormat  = flag.String("geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	geojsonOut  = flag.String("geojson", "", "Filename of GeoJSON output. Leave empty to skip")
	routeStr    = flag.String("route", "", "Pair of node IDs to find shortest path between (separated by comma), e.g. '1,42'. Leave empty to skip")
	verboseFlag = flag.Bool("verbose", true, "Print progress?")
)

func main() {

	flag.Parse()

	crs, err := sfnet.ParseCRS(*crsStr)
	if err != nil {
		fmt.Println(err)
		return
	}
	geomf, err := sfnet.ParseGeomFormat(*geomFormat)
	if err != nil {
		fmt.Println(err)
		return
	}
	cfg := sfnet.OsmConfiguration{
		EntityName: "highway",
		Tags:       strings.Split(*tagStr, ","),
	}

	lines, err := sfnet.ReadLinesFile(*fileName, &cfg, *verboseFlag)
	if err != nil {
		fmt.Println(err)
		return
	}

	graph, err := sfnet.BuildGraph(lines, *directed, sfnet.WithCRS(crs), sfnet.WithVerbose(*verboseFlag))
	if err != nil {
		fmt.Println(err)
		return
	}
	if *verboseFlag {
		fmt.Println(graph)
	}

	err = graph.ExportToCSV(*out, geomf)
	if err != nil {
		fmt.Println(err)
		return
	}

	if *geojsonOut != "" {
		err = graph.ExportToGeoJSON(*geojsonOut)
		if err != nil {
			fmt.Println(err)
			return
		}
	}

	if *routeStr != "" {
		source, target, err := parseRoute(*routeStr)
		if err != nil {
			fmt.Println(err)
			return
		}
		router, err := sfnet.NewRouter(graph, *verboseFlag)
		if err != nil {
			fmt.Println(err)
			return
		}
		path, err := router.ShortestPath(source, target)
		if err != nil {
			fmt.Println(err)
			return
		}
		fmt.Printf("Shortest path from %d to %d:\n\tcost: %f\n\tnodes: %v\n\tedges: %v\n", source, target, path.Cost, path.Nodes, path.Edges)
	}
}

func parseRoute(s string) (sfnet.NodeID, sfnet.NodeID, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("Route must contain exactly 2 node IDs, got '%s'", s)
	}
	source, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "Can't parse source node ID '%s'", parts[0])
	}
	target, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "Can't parse target node ID '%s'", parts[1])
	}
	return sfnet.NodeID(source), sfnet.NodeID(target), nil
}
