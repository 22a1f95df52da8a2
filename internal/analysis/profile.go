package analysis

import (
	"fmt"
	"sort"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

// ProfileEntry is one measure's value for a single entity.
type ProfileEntry struct {
	Measure    string
	Value      float64
	Percentage float64
}

// EntityProfile is an entity's distribution over the measures it has values for.
type EntityProfile struct {
	Entity  string
	Entries []ProfileEntry
}

// ProfileEntity returns the measures present for the row whose key equals
// entity exactly, in column order.
func ProfileEntity(ds *dataset.Dataset, entity string) (EntityProfile, error) {
	row, ok := ds.Row(entity)
	if !ok {
		return EntityProfile{}, fmt.Errorf("%w: %q", ErrEntityNotFound, entity)
	}
	measures := ds.MeasureColumns()
	p := EntityProfile{Entity: row.Entity, Entries: make([]ProfileEntry, 0, len(measures))}
	for j, v := range row.Values {
		if !v.Present {
			continue
		}
		p.Entries = append(p.Entries, ProfileEntry{Measure: measures[j], Value: v.V, Percentage: v.V * 100})
	}
	return p, nil
}

// Sorted returns a copy ordered by percentage. Ties keep column order.
func (p EntityProfile) Sorted(ascending bool) EntityProfile {
	entries := append([]ProfileEntry(nil), p.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		if ascending {
			return entries[i].Percentage < entries[j].Percentage
		}
		return entries[i].Percentage > entries[j].Percentage
	})
	return EntityProfile{Entity: p.Entity, Entries: entries}
}
