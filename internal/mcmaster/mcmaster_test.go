// Copyright 2026 The Cadbridge Authors
// SPDX-License-Identifier: MIT

package mcmaster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)
	assert.NotEmpty(t, c.Families)

	for _, f := range c.Families {
		assert.NotEmpty(t, f.Prefix, "family %q missing prefix", f.Name)
		assert.NotEmpty(t, f.Category, "family %q missing category", f.Name)
		assert.True(t, ValidPartNumber(f.Example), "example %q is not a valid part number", f.Example)
	}
}

func TestMatch(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	f, ok := c.Match("91290A115")
	require.True(t, ok)
	assert.Equal(t, "Hex Bolts", f.Name)

	_, ok = c.Match("00000X1")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	c, err := LoadCatalog()
	require.NoError(t, err)

	bearings := c.Search("bearing")
	require.NotEmpty(t, bearings)
	for _, f := range bearings {
		assert.Equal(t, "Bearings", f.Category)
	}

	assert.Empty(t, c.Search("sprocket"))
}

func TestValidPartNumber(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"91290A115", true},
		{"6078K11", true},
		{"9085K", true},
		{"1749N12", true},
		{"bolt", false},
		{"91290a115", false},
		{"", false},
		{"A115", false},
	}
	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPartNumber(tt.number))
		})
	}
}

func TestURLs(t *testing.T) {
	assert.Equal(t, "https://www.mcmaster.com/step/91290A115", StepURL("91290A115"))
	assert.Equal(t, "https://www.mcmaster.com/91290A115", PageURL("91290A115"))
}
