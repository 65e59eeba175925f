// Package listing builds the numbered, district filtered list shown next to
// the map.
package listing

import (
	"fmt"
	"sort"
	"strings"

	"mosque/internal/models"
)

// AllDistricts is the selector value that disables the filter.
const AllDistricts = "all"

// Entry is one visible row. Number counts from 1 within the filtered view.
type Entry struct {
	Number int           `json:"number"`
	Mosque models.Mosque `json:"mosque"`
}

// View is the list panel for one district selection: the selected district,
// a count line such as "3 Places in Dhaka" and the numbered entries.
type View struct {
	District string  `json:"district"`
	Count    string  `json:"count"`
	Entries  []Entry `json:"entries"`
}

// Filter returns the mosques of district in input order, numbered 1..k. An
// empty district or AllDistricts selects everything.
func Filter(mosques []models.Mosque, district string) View {
	district = strings.TrimSpace(district)
	all := district == "" || strings.EqualFold(district, AllDistricts)

	entries := make([]Entry, 0, len(mosques))
	for _, m := range mosques {
		if !all && m.DistrictOrOther() != district {
			continue
		}
		entries = append(entries, Entry{Number: len(entries) + 1, Mosque: m})
	}

	v := View{District: AllDistricts, Entries: entries}
	if all {
		v.Count = fmt.Sprintf("%d Places", len(entries))
	} else {
		v.District = district
		v.Count = fmt.Sprintf("%d Places in %s", len(entries), district)
	}
	return v
}

// Districts returns the distinct districts of mosques, sorted.
func Districts(mosques []models.Mosque) []string {
	seen := make(map[string]bool)
	for _, m := range mosques {
		seen[m.DistrictOrOther()] = true
	}
	out := make([]string, 0, len(seen))
	for d := range seen {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
