// Package query derives the ordered, render-ready note list from a
// repository snapshot and a view (filter, search text, sort mode). It is
// pure: no side effects and no persistence access.
package query

import (
	"sort"
	"strings"

	"keep-notes/src/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter represents the category filter of a view
type Filter string

const (
	FilterAll       Filter = "all"
	FilterFavorites Filter = "favorites"
	// FilterArchive switches the source snapshot to archived notes; the
	// engine itself applies no category filtering in that case.
	FilterArchive Filter = "archive"
)

// Sort represents the sort mode of a view
type Sort string

const (
	SortDate     Sort = "date"
	SortPriority Sort = "priority"
	SortAlpha    Sort = "alpha"
	SortDueDate  Sort = "dueDate"
)

// View is the combination of filter, search and sort that determines the
// displayed list.
type View struct {
	Filter Filter
	Search string
	Sort   Sort
}

// タイトルのアルファベット順ソートはロケール対応の照合を使う
var collator = collate.New(language.Und)

// Apply runs filter, search and sort over the snapshot and returns a new
// ordered slice. The input order is never relied upon.
func Apply(notes []domain.Note, view View) []domain.Note {
	filtered := applyFilter(notes, view.Filter)
	filtered = applySearch(filtered, view.Search)
	return sortNotes(filtered, view.Sort)
}

// Partition splits a sorted list into the pinned display group and the
// rest, preserving order within each group.
func Partition(notes []domain.Note) (pinned, others []domain.Note) {
	pinned = []domain.Note{}
	others = []domain.Note{}
	for _, n := range notes {
		if n.IsPinned {
			pinned = append(pinned, n)
		} else {
			others = append(others, n)
		}
	}
	return pinned, others
}

func applyFilter(notes []domain.Note, filter Filter) []domain.Note {
	if filter != FilterFavorites {
		return notes
	}
	result := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if n.IsFavorite {
			result = append(result, n)
		}
	}
	return result
}

// applySearch keeps notes whose title, content, checklist item text or
// tags contain the query, case-insensitively. Empty queries pass through.
func applySearch(notes []domain.Note, search string) []domain.Note {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return notes
	}

	result := make([]domain.Note, 0, len(notes))
	for _, n := range notes {
		if matches(&n, query) {
			result = append(result, n)
		}
	}
	return result
}

func matches(n *domain.Note, query string) bool {
	if strings.Contains(strings.ToLower(n.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	for _, item := range n.Items {
		if strings.Contains(strings.ToLower(item.Text), query) {
			return true
		}
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortNotes(notes []domain.Note, mode Sort) []domain.Note {
	sorted := append([]domain.Note(nil), notes...)

	switch mode {
	case SortPriority:
		sort.SliceStable(sorted, func(i, j int) bool {
			ri, rj := sorted[i].Priority.Rank(), sorted[j].Priority.Rank()
			if ri == rj {
				return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
			}
			return ri < rj
		})
	case SortAlpha:
		// 同一タイトルは元の相対順を維持する
		sort.SliceStable(sorted, func(i, j int) bool {
			return collator.CompareString(sorted[i].Title, sorted[j].Title) < 0
		})
	case SortDueDate:
		sort.SliceStable(sorted, func(i, j int) bool {
			di, iOK := sorted[i].DueDateTime()
			dj, jOK := sorted[j].DueDateTime()
			switch {
			case !iOK && !jOK:
				return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
			case !iOK:
				return false
			case !jOK:
				return true
			default:
				return di.Before(dj)
			}
		})
	default: // SortDate: ピン留めが先、その後更新日時の降順
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].IsPinned == sorted[j].IsPinned {
				return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
			}
			return sorted[i].IsPinned
		})
	}

	return sorted
}
