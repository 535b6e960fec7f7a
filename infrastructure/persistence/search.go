package persistence

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/investmatch/investmatch/domain/directory"
)

var (
	startupKeywordColumns  = []string{"name", "tagline", "description", "sector", "location"}
	investorKeywordColumns = []string{"name", "firm", "title", "bio", "sectors", "stages", "geos"}
)

// keywordMatch is a case-insensitive substring match across columns.
func keywordMatch(keyword string, columns []string) sq.Sqlizer {
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	or := make(sq.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, sq.Expr("LOWER("+col+") LIKE ? ESCAPE '\\'", pattern))
	}
	return or
}

// columnIn matches a single-valued column against any of values,
// case-insensitively.
func columnIn(column string, values []string) sq.Sqlizer {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return sq.Eq{"LOWER(" + column + ")": lowered}
}

// columnContains matches a free-text column containing any of values as a
// case-insensitive substring. Startup locations are places such as
// "Bengaluru, India" while geos may name a city or a region.
func columnContains(column string, values []string) sq.Sqlizer {
	or := make(sq.Or, 0, len(values))
	for _, v := range values {
		or = append(or, sq.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(v))+"%"))
	}
	return or
}

// listContains matches a comma-wrapped list column containing any of values
// as a whole element, case-insensitively.
func listContains(column string, values []string) sq.Sqlizer {
	or := make(sq.Or, 0, len(values))
	for _, v := range values {
		or = append(or, sq.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", "%,"+escapeLike(strings.ToLower(v))+",%"))
	}
	return or
}

func startupPredicates(f directory.Filter) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if f.Keyword() != "" {
		preds = append(preds, keywordMatch(f.Keyword(), startupKeywordColumns))
	}
	if v := f.Sectors(); len(v) > 0 {
		preds = append(preds, columnIn("sector", v))
	}
	if v := f.Stages(); len(v) > 0 {
		preds = append(preds, columnIn("stage", v))
	}
	if v := f.Geos(); len(v) > 0 {
		preds = append(preds, columnContains("location", v))
	}
	return preds
}

func investorPredicates(f directory.Filter) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if f.Keyword() != "" {
		preds = append(preds, keywordMatch(f.Keyword(), investorKeywordColumns))
	}
	if v := f.Sectors(); len(v) > 0 {
		preds = append(preds, listContains("sectors", v))
	}
	if v := f.Stages(); len(v) > 0 {
		preds = append(preds, listContains("stages", v))
	}
	if v := f.Geos(); len(v) > 0 {
		preds = append(preds, listContains("geos", v))
	}
	return preds
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
