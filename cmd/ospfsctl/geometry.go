package main

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// GeometryPreset names a combination of block count and inode count that's
// convenient to format and poke at from the command line, the way
// disks.DiskGeometry names a physical floppy format.
type GeometryPreset struct {
	Slug        string `csv:"slug"`
	Name        string `csv:"name"`
	TotalBlocks uint32 `csv:"total_blocks"`
	TotalInodes uint32 `csv:"total_inodes"`
	Notes       string `csv:"notes"`
}

//go:embed geometries.csv
var geometriesRawCSV string

var geometryPresets map[string]GeometryPreset

func init() {
	geometryPresets = make(map[string]GeometryPreset)
	reader := strings.NewReader(geometriesRawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row GeometryPreset) error {
		if _, exists := geometryPresets[row.Slug]; exists {
			return fmt.Errorf("duplicate geometry preset slug %q", row.Slug)
		}
		geometryPresets[row.Slug] = row
		return nil
	})
	if err != nil && err != io.EOF {
		panic(err)
	}
}

func getGeometryPreset(slug string) (GeometryPreset, error) {
	preset, ok := geometryPresets[slug]
	if !ok {
		return GeometryPreset{}, fmt.Errorf("no predefined geometry exists with slug %q", slug)
	}
	return preset, nil
}
