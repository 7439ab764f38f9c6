// SPDX-License-Identifier: Apache-2.0

// Package catalog provides the browsable add-on package catalog.
package catalog

import (
	_ "embed"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joomcode/errorx"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// Record describes one catalog entry.
type Record struct {
	Name        string   `toml:"name" json:"name" yaml:"name"`
	Description string   `toml:"description" json:"description" yaml:"description"`
	Author      string   `toml:"author" json:"author" yaml:"author"`
	Category    string   `toml:"category" json:"category" yaml:"category"`
	Version     string   `toml:"version" json:"version" yaml:"version"`
	DownloadURL string   `toml:"downloadUrl" json:"downloadUrl" yaml:"downloadUrl"`
	Downloads   int      `toml:"downloads" json:"downloads" yaml:"downloads"`
	Likes       int      `toml:"likes" json:"likes" yaml:"likes"`
	Image       string   `toml:"image" json:"image" yaml:"image"`
	Tags        []string `toml:"tags" json:"tags" yaml:"tags"`
}

// Source lists catalog records, already filtered by the given criteria, and
// resolves single records by name.
type Source interface {
	Fetch(category, search string) ([]Record, error)
	Lookup(name string) (*Record, bool)
}

// StaticSource serves the catalog compiled into the binary.
type StaticSource struct {
	records []Record
}

type catalogDocument struct {
	Mods []Record `toml:"mods"`
}

// NewStaticSource parses the embedded catalog document.
func NewStaticSource() (*StaticSource, error) {
	var doc catalogDocument
	if err := toml.Unmarshal(embeddedCatalog, &doc); err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to parse embedded catalog")
	}
	return &StaticSource{records: doc.Mods}, nil
}

// Fetch returns the catalog records matching the category and search term.
func (s *StaticSource) Fetch(category, search string) ([]Record, error) {
	return Filter(s.records, category, search), nil
}

// Lookup resolves a record by exact, case-insensitive name against the full
// record set, unaffected by the search result cap.
func (s *StaticSource) Lookup(name string) (*Record, bool) {
	for i := range s.records {
		if strings.EqualFold(s.records[i].Name, name) {
			record := s.records[i]
			return &record, true
		}
	}
	return nil, false
}
