package sfnet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paulmach/orb/encoding/wkt"
	"github.com/pkg/errors"
)

const (
	DEFAULT_GEOM_COLUMN = "geom"
)

// ReadWKTCSVFile reads lines from CSV file. See ReadWKTCSV
func ReadWKTCSVFile(fname string, geomColumn string, verbose bool) ([]LineFeature, error) {
	if verbose {
		fmt.Printf("Opening file: '%s'...\n", fname)
	}
	file, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadWKTCSV(file, geomColumn, verbose)
}

// ReadWKTCSV reads ';'-separated CSV with header. Column geomColumn must contain WKT LINESTRING,
// every other column becomes string attribute of line. Column names must be unique
func ReadWKTCSV(r io.Reader, geomColumn string, verbose bool) ([]LineFeature, error) {
	if verbose {
		fmt.Printf("\tProcessing rows... ")
	}
	st := time.Now()
	reader := csv.NewReader(r)
	reader.Comma = ';'
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read header")
	}
	geomIdx := -1
	columns := make(map[string]struct{}, len(header))
	for i := range header {
		if _, ok := columns[header[i]]; ok {
			return nil, errors.Wrapf(ErrBadHeader, "Column '%s' is repeated", header[i])
		}
		columns[header[i]] = struct{}{}
		if header[i] == geomColumn {
			geomIdx = i
		}
	}
	if geomIdx < 0 {
		return nil, errors.Wrapf(ErrBadHeader, "No column '%s'", geomColumn)
	}
	lines := []LineFeature{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read row #%d", row)
		}
		line, err := wkt.UnmarshalLineString(record[geomIdx])
		if err != nil {
			return nil, errors.Wrapf(err, "Can't parse geometry at row #%d", row)
		}
		attributes := make(map[string]interface{}, len(header)-1)
		for i := range header {
			if i == geomIdx {
				continue
			}
			attributes[header[i]] = record[i]
		}
		lines = append(lines, NewLineFeature(line, attributes))
	}
	if verbose {
		fmt.Printf("Done in %v\n", time.Since(st))
	}
	return lines, nil
}
