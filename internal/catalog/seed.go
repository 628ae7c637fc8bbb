// MatTailor - Material Recommendation and Trade-off Analysis Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/mattailor

package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/mattailor/internal/models"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Materials []*models.Material `yaml:"materials"`
	Suppliers []*models.Supplier `yaml:"suppliers"`
}

// Load decodes a YAML catalog document and builds a Catalog from it.
func Load(r io.Reader) (*Catalog, error) {
	var sf seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode catalog seed: %w", err)
	}
	return New(sf.Materials, sf.Suppliers)
}

// LoadFile loads a catalog from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path) //nolint:gosec // operator-supplied path
	if err != nil {
		return nil, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadDefault builds the catalog from the embedded reference dataset.
func LoadDefault() (*Catalog, error) {
	return Load(bytes.NewReader(defaultSeed))
}
