package collegecost

import (
	"github.com/antzucaro/matchr"

	"collegecost-backend/lib/table"
)

// Suggestion is the closest known school name to what the user typed.
type Suggestion struct {
	Name string
	// JaroWinkler similarity in [0, 1]
	Similarity float64
}

// SuggestSchool finds the school name most similar to the query, for
// "did you mean" output after an exact lookup misses. Returns false
// when the table has no usable names.
func SuggestSchool(tbl *table.Table, query string) (Suggestion, bool) {
	nameColumn := "school_name"
	if !tbl.HasColumn(nameColumn) {
		nameColumn = "school.name"
	}

	var best Suggestion
	for _, name := range tbl.DistinctStrings(nameColumn) {
		if name == table.TextSentinel {
			continue
		}
		similarity := matchr.JaroWinkler(query, name, false)
		if similarity > best.Similarity {
			best = Suggestion{Name: name, Similarity: similarity}
		}
	}
	return best, best.Name != ""
}
