package analysis

import (
	"fmt"
	"sort"

	"github.com/workcalmkite-hue/2025mbti/internal/dataset"
)

// EntityScore pairs an entity with its compatibility score in percent.
type EntityScore struct {
	Entity string
	Score  float64
}

// CompatibilityRanking is every entity ordered by the summed share of the
// selected measures.
type CompatibilityRanking struct {
	EntityKeyColumn string
	Selected        []string
	Scores          []EntityScore
}

// Top returns the first n scores, or all of them when n <= 0 or n is larger.
func (r CompatibilityRanking) Top(n int) []EntityScore {
	if n <= 0 || n >= len(r.Scores) {
		return append([]EntityScore(nil), r.Scores...)
	}
	return append([]EntityScore(nil), r.Scores[:n]...)
}

// RankCompatibility scores each entity as the sum of its selected measure
// values times 100. A missing value adds nothing; the entity stays ranked.
// The ranking is not truncated.
func RankCompatibility(ds *dataset.Dataset, selected []string) (CompatibilityRanking, error) {
	idx, err := selectionIndexes(ds, selected)
	if err != nil {
		return CompatibilityRanking{}, err
	}
	rows := ds.Rows()
	scores := make([]EntityScore, 0, len(rows))
	for _, r := range rows {
		var sum float64
		for _, j := range idx {
			if v := r.Values[j]; v.Present {
				sum += v.V
			}
		}
		scores = append(scores, EntityScore{Entity: r.Entity, Score: sum * 100})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return CompatibilityRanking{
		EntityKeyColumn: ds.EntityKeyColumn(),
		Selected:        append([]string(nil), selected...),
		Scores:          scores,
	}, nil
}

func selectionIndexes(ds *dataset.Dataset, selected []string) ([]int, error) {
	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: no measures selected", ErrInvalidSelection)
	}
	seen := make(map[string]struct{}, len(selected))
	idx := make([]int, 0, len(selected))
	for _, m := range selected {
		j, ok := ds.MeasureIndex(m)
		if !ok {
			return nil, fmt.Errorf("%w: unknown measure %q", ErrInvalidSelection, m)
		}
		if _, dup := seen[m]; dup {
			return nil, fmt.Errorf("%w: %q selected twice", ErrInvalidSelection, m)
		}
		seen[m] = struct{}{}
		idx = append(idx, j)
	}
	return idx, nil
}
