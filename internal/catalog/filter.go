// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"sort"
	"strings"
)

// maxResults caps how many records a query returns.
const maxResults = 30

// Filter applies the catalog query semantics: an exact category match (empty
// or "all" matches everything), a case-insensitive substring search over the
// name, description, author and tags, ordering by downloads descending, and
// the result cap. The input slice is not modified.
func Filter(records []Record, category, search string) []Record {
	needle := strings.ToLower(strings.TrimSpace(search))

	var matched []Record
	for _, record := range records {
		if !matchesCategory(record, category) {
			continue
		}
		if needle != "" && !matchesSearch(record, needle) {
			continue
		}
		matched = append(matched, record)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Downloads > matched[j].Downloads
	})

	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}
	return matched
}

func matchesCategory(record Record, category string) bool {
	if category == "" || strings.EqualFold(category, "all") {
		return true
	}
	return strings.EqualFold(record.Category, category)
}

func matchesSearch(record Record, needle string) bool {
	if strings.Contains(strings.ToLower(record.Name), needle) ||
		strings.Contains(strings.ToLower(record.Description), needle) ||
		strings.Contains(strings.ToLower(record.Author), needle) {
		return true
	}
	for _, tag := range record.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}
