// SPDX-License-Identifier: Apache-2.0

// Package ledger persists the set of installed add-on packages as a JSON
// document in the application data directory.
package ledger

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"sync"

	"github.com/automa-saga/logx"
	"github.com/gofrs/flock"
	"github.com/joomcode/errorx"
	"github.com/rs/zerolog"

	"github.com/gmm-app/gmm/internal/core"
	"github.com/gmm-app/gmm/pkg/fsx"
)

// Record status values.
const (
	StatusPending   = "pending"
	StatusInstalled = "installed"
)

// maxLedgerSize bounds the ledger document read; anything larger is treated
// as corrupt.
const maxLedgerSize = 8 << 20

// Record describes one installed package. Name is the unique key.
type Record struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	DownloadURL string   `json:"downloadUrl,omitempty" yaml:"downloadUrl,omitempty"`
	InstalledAt string   `json:"installedAt,omitempty" yaml:"installedAt,omitempty"`
	InstallPath string   `json:"installPath,omitempty" yaml:"installPath,omitempty"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
	Status      string   `json:"status" yaml:"status"`
}

// Manager holds the in-memory ledger and writes every mutation through to the
// document on disk. All methods are safe for concurrent use.
type Manager struct {
	mu          sync.Mutex
	fileManager fsx.Manager
	path        string
	records     map[string]Record
	log         zerolog.Logger
}

// NewManager creates a ledger manager backed by the default ledger file.
func NewManager(fileManager fsx.Manager) *Manager {
	return NewManagerWithPath(fileManager, core.Paths().LedgerFile)
}

// NewManagerWithPath creates a ledger manager backed by the given file.
func NewManagerWithPath(fileManager fsx.Manager, path string) *Manager {
	return &Manager{
		fileManager: fileManager,
		path:        path,
		records:     map[string]Record{},
		log:         logx.As().With().Str("component", "ledger").Logger(),
	}
}

// Load reads the ledger document. A missing document yields an empty ledger.
// A malformed document is logged and also yields an empty ledger; the ledger
// never blocks the application from starting.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = map[string]Record{}

	_, exists, err := m.fileManager.PathExists(m.path)
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to stat ledger file %s", m.path)
	}
	if !exists {
		return nil
	}

	payload, err := m.fileManager.ReadFile(m.path, maxLedgerSize)
	if err != nil {
		m.log.Warn().Err(err).Str("path", m.path).
			Msg("Ledger file unreadable, starting with an empty ledger")
		return nil
	}

	var records []Record
	if err := json.Unmarshal(payload, &records); err != nil {
		corrupt := core.LedgerCorrupt.Wrap(err, "failed to parse ledger file %s", m.path)
		m.log.Warn().Err(corrupt).Str("path", m.path).
			Msg("Ledger file corrupt, starting with an empty ledger")
		return nil
	}

	for _, record := range records {
		if record.Name == "" {
			continue
		}
		m.records[record.Name] = record
	}

	return nil
}

// Save writes the full ledger document, replacing the previous contents. The
// document file is locked for the duration of the write so concurrent
// processes never interleave partial documents.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save()
}

func (m *Manager) save() error {
	if err := m.fileManager.CreateDirectory(filepath.Dir(m.path), true); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to create ledger directory")
	}

	payload, err := json.MarshalIndent(m.list(), "", "  ")
	if err != nil {
		return errorx.IllegalState.Wrap(err, "failed to encode ledger")
	}

	lock := flock.New(m.path + ".lock")
	if err := lock.Lock(); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to lock ledger file %s", m.path)
	}
	defer func() { _ = lock.Unlock() }()

	if err := m.fileManager.WriteFile(m.path, payload); err != nil {
		return errorx.IllegalState.Wrap(err, "failed to write ledger file %s", m.path)
	}

	return nil
}

// Put inserts or replaces the record and saves the document.
func (m *Manager) Put(record Record) error {
	if record.Name == "" {
		return errorx.IllegalArgument.New("ledger record requires a name")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.Name] = record
	return m.save()
}

// Remove deletes the record by name and saves the document. It reports
// whether the record existed.
func (m *Manager) Remove(name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[name]; !ok {
		return false, nil
	}
	delete(m.records, name)
	return true, m.save()
}

// Get returns the record by name.
func (m *Manager) Get(name string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[name]
	return record, ok
}

// List returns all records sorted by name.
func (m *Manager) List() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list()
}

func (m *Manager) list() []Record {
	records := make([]Record, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records
}

// Reconcile drops leftover state from interrupted installs: pending records
// and records whose install folder no longer exists are removed. It returns
// the names of the dropped records.
func (m *Manager) Reconcile() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dropped []string
	for name, record := range m.records {
		if record.Status == StatusPending {
			dropped = append(dropped, name)
			continue
		}
		if record.InstallPath != "" && !m.fileManager.IsDirectory(record.InstallPath) {
			dropped = append(dropped, name)
		}
	}

	if len(dropped) == 0 {
		return nil, nil
	}

	sort.Strings(dropped)
	for _, name := range dropped {
		m.log.Warn().Str("package", name).
			Msg("Dropping stale ledger entry")
		delete(m.records, name)
	}

	return dropped, m.save()
}
