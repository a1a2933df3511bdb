package sfnet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

type OSMFormat uint16

const (
	OSM_XML = OSMFormat(iota + 1)
	OSM_PBF
)

func (iotaIdx OSMFormat) String() string {
	return [...]string{"xml", "pbf"}[iotaIdx-1]
}

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

func newOSMScanner(r io.Reader, format OSMFormat) (OSMScanner, error) {
	switch format {
	case OSM_XML:
		return osmxml.New(context.Background(), r), nil
	case OSM_PBF:
		return osmpbf.New(context.Background(), r, 4), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "OSM format %d", format)
	}
}

// osmFormatFromFilename guesses format by file extension, case insensitive
func osmFormatFromFilename(fname string) (OSMFormat, error) {
	ext := strings.ToLower(filepath.Ext(fname))
	switch ext {
	case ".osm", ".xml":
		return OSM_XML, nil
	case ".pbf":
		return OSM_PBF, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedFormat, "File extension '%s' for file '%s' is not handled yet", ext, fname)
	}
}

// ReadOSMFile reads lines from *.osm / *.osm.pbf file. See ReadOSM
func ReadOSMFile(fname string, cfg *OsmConfiguration, verbose bool) ([]LineFeature, error) {
	format, err := osmFormatFromFilename(fname)
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", fname)
	}
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadOSM(file, format, cfg, verbose)
}

type osmWay struct {
	id    osm.WayID
	nodes []osm.NodeID
	tags  osm.Tags
}

// ReadOSM turns every way allowed by configuration into a line, in order of ways in data.
// Attributes of line are 'osm_id' and all tags of the way.
// Ways are not split at shared nodes. Ways referencing unknown nodes or having less than 2 nodes are skipped
func ReadOSM(rs io.ReadSeeker, format OSMFormat, cfg *OsmConfiguration, verbose bool) ([]LineFeature, error) {
	if cfg == nil {
		cfg = DefaultOsmConfiguration()
	}

	/* Process ways */
	if verbose {
		fmt.Printf("\tProcessing ways... ")
	}
	st := time.Now()
	ways := []osmWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newOSMScanner(rs, format)
		if err != nil {
			return nil, err
		}
		for scannerWays.Scan() {
			way, ok := scannerWays.Object().(*osm.Way)
			if !ok {
				continue
			}
			if !cfg.CheckTag(way.Tags.Find(cfg.EntityName)) {
				continue
			}
			preparedWay := osmWay{
				id:    way.ID,
				nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				tags:  make(osm.Tags, len(way.Tags)),
			}
			copy(preparedWay.tags, way.Tags)
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.nodes = append(preparedWay.nodes, node.ID)
			}
			ways = append(ways, preparedWay)
		}
		err = scannerWays.Err()
		scannerWays.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Can't scan ways")
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	// Seek data to start
	_, err := rs.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	if verbose {
		fmt.Printf("\tProcessing nodes... ")
	}
	st = time.Now()
	nodes := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	{
		scannerNodes, err := newOSMScanner(rs, format)
		if err != nil {
			return nil, err
		}
		for scannerNodes.Scan() {
			node, ok := scannerNodes.Object().(*osm.Node)
			if !ok {
				continue
			}
			if _, ok := nodesSeen[node.ID]; ok {
				nodes[node.ID] = orb.Point{node.Lon, node.Lat}
			}
		}
		err = scannerNodes.Err()
		scannerNodes.Close()
		if err != nil {
			return nil, errors.Wrap(err, "Can't scan nodes")
		}
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}

	/* Prepare lines */
	lines := make([]LineFeature, 0, len(ways))
WAYS:
	for _, way := range ways {
		if len(way.nodes) < 2 {
			if verbose {
				fmt.Printf("\t[WARNING]: Way with %d nodes met. Way ID: '%d'\n", len(way.nodes), way.id)
			}
			continue
		}
		line := make(orb.LineString, 0, len(way.nodes))
		for _, nodeID := range way.nodes {
			pt, ok := nodes[nodeID]
			if !ok {
				if verbose {
					fmt.Printf("\t[WARNING]: No such node '%d'. Way ID: '%d'\n", nodeID, way.id)
				}
				continue WAYS
			}
			line = append(line, pt)
		}
		attributes := make(map[string]interface{}, len(way.tags)+1)
		for _, tag := range way.tags {
			attributes[tag.Key] = tag.Value
		}
		attributes["osm_id"] = int64(way.id)
		lines = append(lines, NewLineFeature(line, attributes))
	}
	return lines, nil
}
