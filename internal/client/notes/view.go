package notes

import (
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// Group is a run of notes sharing one label, in display order.
type Group struct {
	Label string
	Notes []models.Note
}

// Projection is what a list page renders. Count is the number of notes
// that passed the filter and always equals the sum of the group sizes.
type Projection struct {
	Notes  []models.Note
	Groups []Group
	Count  int
}

// Filter keeps the notes whose title contains query, ignoring case. An
// empty query keeps everything. The input is never modified.
func Filter(notes []models.Note, query string) []models.Note {
	if query == "" {
		return slices.Clone(notes)
	}
	q := strings.ToLower(query)
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) {
			out = append(out, n)
		}
	}
	return out
}

// Sort returns a copy ordered newest first. Notes created at the same
// instant keep their relative order.
func Sort(notes []models.Note) []models.Note {
	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b models.Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

// Project filters then sorts.
func Project(notes []models.Note, query string) []models.Note {
	return Sort(Filter(notes, query))
}

// GroupBy buckets notes by label(CreatedAt). Groups appear in the order
// their first note appears; notes keep their order inside a group.
func GroupBy(notes []models.Note, label func(time.Time) string) []Group {
	var groups []Group
	index := map[string]int{}
	for _, n := range notes {
		l := label(n.CreatedAt)
		i, ok := index[l]
		if !ok {
			i = len(groups)
			index[l] = i
			groups = append(groups, Group{Label: l})
		}
		groups[i].Notes = append(groups[i].Notes, n)
	}
	return groups
}

func Build(notes []models.Note, query string, label func(time.Time) string) Projection {
	sorted := Project(notes, query)
	return Projection{
		Notes:  sorted,
		Groups: GroupBy(sorted, label),
		Count:  len(sorted),
	}
}
