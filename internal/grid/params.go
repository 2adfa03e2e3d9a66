package grid

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "print-shop-system/pkg/errors"
)

const (
	DefaultPageLength = 20
	MaxPageLength     = 200
	MaxSearchLen      = 100
)

// Params is the parsed, validated form of a grid query. Once built it is
// never mutated; repositories and services only read from it.
type Params struct {
	Search string
	Sort   []SortKey
	Start  uint64
	Length uint64
}

// ParseParams reads search, sort, start and length from the query string.
// Parsing errors surface as ValidationError so callers can answer 400
// without inspecting the message.
func ParseParams(values url.Values) (Params, error) {
	p := Params{Length: DefaultPageLength}

	p.Search = strings.TrimSpace(values.Get("search"))
	if len(p.Search) > MaxSearchLen {
		return Params{}, apperrors.NewValidationError("search", "must be at most %d characters", MaxSearchLen)
	}

	var tokens []string
	for _, raw := range values["sort"] {
		for _, tok := range strings.Split(raw, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				tokens = append(tokens, tok)
			}
		}
	}
	sort, err := ParseSort(tokens)
	if err != nil {
		return Params{}, err
	}
	p.Sort = sort

	if raw := values.Get("start"); raw != "" {
		start, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || start < 0 {
			return Params{}, apperrors.NewValidationError("start", "must be a non-negative integer")
		}
		p.Start = uint64(start)
	}

	if raw := values.Get("length"); raw != "" {
		length, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Params{}, apperrors.NewValidationError("length", "must be an integer")
		}
		switch {
		case length <= 0:
			p.Length = DefaultPageLength
		case length > MaxPageLength:
			p.Length = MaxPageLength
		default:
			p.Length = uint64(length)
		}
	}

	return p, nil
}
