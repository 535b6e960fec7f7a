// Package routes serves the InvestMatch HTTP API.
package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/investmatch/investmatch/domain/directory"
	"github.com/investmatch/investmatch/domain/errs"
)

// maxJSONBody caps decoded request bodies.
const maxJSONBody = 1 << 20

// decodeJSON decodes the request body into dst. Malformed bodies are
// validation errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", errs.ErrValidation)
		}
		return fmt.Errorf("%w: invalid request body: %v", errs.ErrValidation, err)
	}
	return nil
}

// ParseFilter builds a directory filter from the query string: q, sectors,
// stages, geos (comma-separated), min_check and max_check. Row limits are
// fixed by the service.
func ParseFilter(r *http.Request) (directory.Filter, error) {
	q := r.URL.Query()

	minCheck, err := optionalInt(q.Get("min_check"), "min_check")
	if err != nil {
		return directory.Filter{}, err
	}
	maxCheck, err := optionalInt(q.Get("max_check"), "max_check")
	if err != nil {
		return directory.Filter{}, err
	}
	if minCheck != nil && maxCheck != nil && *minCheck > *maxCheck {
		return directory.Filter{}, fmt.Errorf("%w: min_check exceeds max_check", errs.ErrValidation)
	}

	return directory.NewFilter(
		directory.WithKeyword(q.Get("q")),
		directory.WithSectors(directory.SplitList(q.Get("sectors"))...),
		directory.WithStages(directory.SplitList(q.Get("stages"))...),
		directory.WithGeos(directory.SplitList(q.Get("geos"))...),
		directory.WithCheckSize(directory.NewCheckSize(minCheck, maxCheck)),
	), nil
}

func optionalInt(s, name string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%w: invalid %s %q", errs.ErrValidation, name, s)
	}
	return &v, nil
}

// parseBool reads a boolean query flag. Unparseable values are false.
func parseBool(s string) bool {
	v, _ := strconv.ParseBool(s)
	return v
}
