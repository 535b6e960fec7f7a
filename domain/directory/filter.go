package directory

import (
	"net/url"
	"strconv"
	"strings"
)

// Default row limits for directory listings. There is no continuation token.
const (
	DefaultStartupLimit  = 60
	DefaultInvestorLimit = 120
)

// Filter describes a directory search.
type Filter struct {
	keyword   string
	sectors   []string
	stages    []string
	geos      []string
	checkSize CheckSize
	limit     int
}

// FilterOption configures a Filter.
type FilterOption func(*Filter)

// NewFilter creates a Filter with the given options.
func NewFilter(opts ...FilterOption) Filter {
	var f Filter
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// WithKeyword sets the free-text keyword.
func WithKeyword(q string) FilterOption {
	return func(f *Filter) { f.keyword = strings.TrimSpace(q) }
}

// WithSectors sets the sector disjunction.
func WithSectors(values ...string) FilterOption {
	return func(f *Filter) { f.sectors = normalize(values) }
}

// WithStages sets the stage disjunction.
func WithStages(values ...string) FilterOption {
	return func(f *Filter) { f.stages = normalize(values) }
}

// WithGeos sets the geography disjunction.
func WithGeos(values ...string) FilterOption {
	return func(f *Filter) { f.geos = normalize(values) }
}

// WithCheckSize sets the requested cheque-size range.
func WithCheckSize(c CheckSize) FilterOption {
	return func(f *Filter) { f.checkSize = c }
}

// WithLimit sets the row limit.
func WithLimit(n int) FilterOption {
	return func(f *Filter) {
		if n > 0 {
			f.limit = n
		}
	}
}

// Keyword returns the free-text keyword.
func (f Filter) Keyword() string { return f.keyword }

// Sectors returns the sector values.
func (f Filter) Sectors() []string { return copyStrings(f.sectors) }

// Stages returns the stage values.
func (f Filter) Stages() []string { return copyStrings(f.stages) }

// Geos returns the geography values.
func (f Filter) Geos() []string { return copyStrings(f.geos) }

// CheckSize returns the requested range.
func (f Filter) CheckSize() CheckSize { return f.checkSize }

// Limit returns the row limit, or fallback when unset.
func (f Filter) Limit(fallback int) int {
	if f.limit > 0 {
		return f.limit
	}
	return fallback
}

// WithDefaultLimit returns a copy whose limit is n unless one is already set.
func (f Filter) WithDefaultLimit(n int) Filter {
	if f.limit <= 0 && n > 0 {
		f.limit = n
	}
	return f
}

// String renders the filter canonically, suitable as a cache key.
func (f Filter) String() string {
	v := url.Values{}
	if f.keyword != "" {
		v.Set("q", strings.ToLower(f.keyword))
	}
	if len(f.sectors) > 0 {
		v.Set("sectors", strings.ToLower(strings.Join(f.sectors, ",")))
	}
	if len(f.stages) > 0 {
		v.Set("stages", strings.ToLower(strings.Join(f.stages, ",")))
	}
	if len(f.geos) > 0 {
		v.Set("geos", strings.ToLower(strings.Join(f.geos, ",")))
	}
	if n, ok := f.checkSize.Min(); ok {
		v.Set("min_check", strconv.FormatInt(n, 10))
	}
	if n, ok := f.checkSize.Max(); ok {
		v.Set("max_check", strconv.FormatInt(n, 10))
	}
	if f.limit > 0 {
		v.Set("limit", strconv.Itoa(f.limit))
	}
	return v.Encode()
}

// MatchCheckSize applies the application-side range overlap. With no
// requested range every investor passes; otherwise investors that declare no
// range at all are excluded.
func (f Filter) MatchCheckSize(investors []Investor) []Investor {
	if f.checkSize.IsOpen() {
		return investors
	}
	out := make([]Investor, 0, len(investors))
	for _, inv := range investors {
		cs := inv.CheckSize()
		if cs.IsOpen() {
			continue
		}
		if cs.Overlaps(f.checkSize) {
			out = append(out, inv)
		}
	}
	return out
}

// SplitList parses a comma-separated query value.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalize(strings.Split(s, ","))
}

func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
