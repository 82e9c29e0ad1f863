// Package sections is the repository of named rail cross-section profiles.
// Each profile describes a 1 metre long piece of rail as X,Y,Z coordinates,
// embedded in the binary as csv files.
package sections

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/aryvini/railtemp/geometry"
)

//go:embed profiles/*.csv
var profileFS embed.FS

// Load returns the profile with the given name, e.g. "UIC54". A missing
// profile is a hard error.
func Load(name string) (geometry.Profile, error) {
	f, err := profileFS.Open("profiles/" + name + ".csv")
	if err != nil {
		return nil, fmt.Errorf("rail profile %q not found in database", name)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("rail profile %q: %w", name, err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"X", "Y", "Z"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("rail profile %q: missing column %s", name, required)
		}
	}

	var profile geometry.Profile
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rail profile %q: %w", name, err)
		}
		point := geometry.Point{}
		for axis, dst := range map[string]*float64{"X": &point.X, "Y": &point.Y, "Z": &point.Z} {
			value, err := strconv.ParseFloat(strings.TrimSpace(record[col[axis]]), 64)
			if err != nil {
				return nil, fmt.Errorf("rail profile %q: bad %s value %q", name, axis, record[col[axis]])
			}
			*dst = value
		}
		profile = append(profile, point)
	}

	if len(profile) < 3 {
		return nil, fmt.Errorf("rail profile %q has too few points", name)
	}
	return profile, nil
}

// Names lists the available profile names.
func Names() []string {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".csv"))
	}
	sort.Strings(names)
	return names
}
