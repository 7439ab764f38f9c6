// SPDX-License-Identifier: Apache-2.0

package setup

import "sync"

// Journal collects the ordered, user-facing progress lines of a setup run.
// Steps append concurrently-safely; the orchestrator reads the final list.
type Journal struct {
	mu    sync.Mutex
	lines []string
}

// Append adds a progress line.
func (j *Journal) Append(line string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, line)
}

// Lines returns a copy of the collected progress lines.
func (j *Journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.lines...)
}
