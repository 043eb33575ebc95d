// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

// Package mcmaster identifies McMaster-Carr part numbers against a
// bundled catalog of part families and builds the download URLs for
// their STEP models. No network access happens here; downloading is
// left to the caller.
package mcmaster

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	_ "embed"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var catalogTOML []byte

// Family is one series of McMaster part numbers.
type Family struct {
	Prefix      string `toml:"prefix"`
	Name        string `toml:"name"`
	Category    string `toml:"category"`
	Example     string `toml:"example"`
	Description string `toml:"description"`
}

// Catalog holds the bundled part families.
type Catalog struct {
	Families []Family `toml:"family"`
}

// LoadCatalog parses the bundled catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := toml.Unmarshal(catalogTOML, &c); err != nil {
		return nil, fmt.Errorf("mcmaster: parsing bundled catalog: %w", err)
	}
	return &c, nil
}

// partNumberPattern matches the series digits, a letter, and an
// optional size code (e.g. "91290A115", "6078K11").
var partNumberPattern = regexp.MustCompile(`^[0-9]{3,5}[A-Z][0-9]*$`)

// ValidPartNumber reports whether s looks like a McMaster part number.
func ValidPartNumber(s string) bool {
	return partNumberPattern.MatchString(s)
}

// Match finds the family a part number belongs to by its series prefix.
func (c *Catalog) Match(partNumber string) (Family, bool) {
	for _, f := range c.Families {
		if strings.HasPrefix(partNumber, f.Prefix) {
			return f, true
		}
	}
	return Family{}, false
}

// Search returns families whose name, category, or description contain
// the query, case-insensitively. Results are sorted by prefix.
func (c *Catalog) Search(query string) []Family {
	query = strings.ToLower(query)
	var out []Family
	for _, f := range c.Families {
		haystack := strings.ToLower(f.Name + " " + f.Category + " " + f.Description + " " + f.Prefix)
		if strings.Contains(haystack, query) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// StepURL is the direct STEP model download for a part number.
func StepURL(partNumber string) string {
	return "https://www.mcmaster.com/step/" + partNumber
}

// PageURL is the product page for a part number.
func PageURL(partNumber string) string {
	return "https://www.mcmaster.com/" + partNumber
}
