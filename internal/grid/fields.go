package grid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	apperrors "print-shop-system/pkg/errors"
)

// DateLayout is the wire format for every date the grid reads or writes.
const DateLayout = "2006-01-02"

type FieldKind int

const (
	KindString FieldKind = iota
	KindDate
	KindBool
	KindNumeric
)

type fieldSpec struct {
	column string
	kind   FieldKind
	check  func(string) error
}

// editableFields maps the cell fields a client may patch to their column,
// kind and extra per-field constraints. id is deliberately absent.
var editableFields = map[string]fieldSpec{
	"log":     {column: "log", kind: KindString, check: checkLog},
	"artlo":   {column: "artlo", kind: KindString, check: checkArtlo},
	"cust":    {column: "cust", kind: KindString, check: checkCust},
	"title":   {column: "title", kind: KindString, check: checkTitle},
	"prior":   {column: "prior", kind: KindString, check: checkPrior},
	"logtype": {column: "logtype", kind: KindString, check: checkLogtype},
	"datin":   {column: "datin", kind: KindDate},
	"dueout":  {column: "dueout", kind: KindDate},
	"datout":  {column: "datout", kind: KindDate},
	"rush":    {column: "rush", kind: KindBool},
	"colorf":  {column: "colorf", kind: KindNumeric},
	"print_n": {column: "print_n", kind: KindNumeric},
}

var (
	alnumRe  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	artLogRe = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
)

func checkLog(s string) error {
	if len(s) < 5 || len(s) > 7 || !alnumRe.MatchString(s) {
		return fmt.Errorf("must be 5 to 7 alphanumeric characters")
	}
	return nil
}

func checkCust(s string) error {
	if len(s) != 5 || !alnumRe.MatchString(s) {
		return fmt.Errorf("must be exactly 5 alphanumeric characters")
	}
	return nil
}

func checkArtlo(s string) error {
	if len(s) > 5 || !artLogRe.MatchString(s) {
		return fmt.Errorf("must be at most 5 characters of letters, digits, - or _")
	}
	return nil
}

func checkTitle(s string) error {
	if len(s) > 256 {
		return fmt.Errorf("must be at most 256 characters")
	}
	return nil
}

func checkPrior(s string) error {
	if len(s) > 1 {
		return fmt.Errorf("must be a single character")
	}
	return nil
}

func checkLogtype(s string) error {
	switch s {
	case "TR", "DP", "AA", "VG", "DG", "GM", "DTF", "PP":
		return nil
	}
	return fmt.Errorf("must be one of TR, DP, AA, VG, DG, GM, DTF, PP")
}

// CoerceField converts a raw JSON value for the named editable field into
// its typed database value. An empty string clears nullable fields (a nil
// value is stored); log is the one field that cannot be cleared.
func CoerceField(name string, raw interface{}) (column string, value interface{}, err error) {
	spec, ok := editableFields[name]
	if !ok {
		return "", nil, apperrors.NewValidationError(name, "field is not editable")
	}

	switch spec.kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return "", nil, apperrors.NewValidationError(name, "must be a string")
		}
		s = strings.TrimSpace(s)
		if name == "logtype" {
			s = strings.ToUpper(s)
		}
		if s == "" {
			if name == "log" {
				return "", nil, apperrors.NewValidationError(name, "cannot be empty")
			}
			return spec.column, nil, nil
		}
		if spec.check != nil {
			if cerr := spec.check(s); cerr != nil {
				return "", nil, apperrors.NewValidationError(name, "%s", cerr.Error())
			}
		}
		return spec.column, s, nil

	case KindDate:
		s, ok := raw.(string)
		if !ok {
			if raw == nil {
				return spec.column, nil, nil
			}
			return "", nil, apperrors.NewValidationError(name, "must be a %s date string", DateLayout)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return spec.column, nil, nil
		}
		t, perr := time.Parse(DateLayout, s)
		if perr != nil {
			return "", nil, apperrors.NewValidationError(name, "must match the %s format", DateLayout)
		}
		return spec.column, t, nil

	case KindBool:
		switch v := raw.(type) {
		case bool:
			return spec.column, v, nil
		case float64:
			if v == 0 || v == 1 {
				return spec.column, v == 1, nil
			}
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1", "yes":
				return spec.column, true, nil
			case "false", "0", "no":
				return spec.column, false, nil
			}
		}
		return "", nil, apperrors.NewValidationError(name, "must be a boolean")

	case KindNumeric:
		var f float64
		switch v := raw.(type) {
		case float64:
			f = v
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				return spec.column, nil, nil
			}
			parsed, perr := strconv.ParseFloat(s, 64)
			if perr != nil {
				return "", nil, apperrors.NewValidationError(name, "must be a number")
			}
			f = parsed
		case nil:
			return spec.column, nil, nil
		default:
			return "", nil, apperrors.NewValidationError(name, "must be a number")
		}
		if f < 0 {
			return "", nil, apperrors.NewValidationError(name, "must not be negative")
		}
		return spec.column, f, nil
	}

	return "", nil, apperrors.NewValidationError(name, "field is not editable")
}

// CellUpdate is one inline edit: a single editable field on a single row.
type CellUpdate struct {
	ID     int64
	Field  string
	Column string
	Kind   FieldKind
	Value  interface{}
}

// ParseCellUpdate reads an edit payload of the shape {"id": N, "<field>":
// value}. Exactly one editable field must be present alongside id.
func ParseCellUpdate(body map[string]interface{}) (CellUpdate, error) {
	rawID, ok := body["id"]
	if !ok {
		return CellUpdate{}, apperrors.NewValidationError("id", "is required")
	}
	idFloat, ok := rawID.(float64)
	if !ok || idFloat != float64(int64(idFloat)) || idFloat <= 0 {
		return CellUpdate{}, apperrors.NewValidationError("id", "must be a positive integer")
	}

	var upd CellUpdate
	upd.ID = int64(idFloat)

	count := 0
	for key, raw := range body {
		if key == "id" {
			continue
		}
		spec, editable := editableFields[key]
		if !editable {
			return CellUpdate{}, apperrors.NewValidationError(key, "field is not editable")
		}
		count++
		if count > 1 {
			return CellUpdate{}, apperrors.NewValidationError("body", "exactly one editable field is allowed per update")
		}
		column, value, err := CoerceField(key, raw)
		if err != nil {
			return CellUpdate{}, err
		}
		upd.Field = key
		upd.Column = column
		upd.Kind = spec.kind
		upd.Value = value
	}
	if count == 0 {
		return CellUpdate{}, apperrors.NewValidationError("body", "an editable field is required")
	}
	return upd, nil
}
