// Package filtering turns query-string filters into SQL conditions.
//
// Each entity declares a Table listing the parameters it accepts, the column each one
// targets and how the value is compared. Handlers never parse filter parameters
// themselves: they hand the raw values to Table.Parse and pass the resulting Criteria
// to the repository, which applies them to a goqu dataset.
package filtering

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/doug-martin/goqu/v9"
)

// Kind is the type a filter value is parsed into.
type Kind int

const (
	KindID   Kind = iota // positive integer identifier
	KindDate             // calendar date
	KindText             // free text
)

// Op is the comparison applied between column and value.
type Op int

const (
	OpEq         Op = iota
	OpOnOrAfter     // column >= date
	OpOnOrBefore    // column < date + 1 day
	OpContains      // case-insensitive substring
)

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

// Field declares one filterable query parameter.
type Field struct {
	Param  string
	Column string
	Kind   Kind
	Op     Op
}

// Table is the declarative set of filters an entity supports.
type Table []Field

// FieldError reports a filter value that could not be parsed.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap makes every FieldError match apperrors.ErrValidation.
func (e *FieldError) Unwrap() error {
	return apperrors.ErrValidation
}

// Condition is one parsed filter.
type Condition struct {
	Field Field
	Value any
}

// Criteria is the set of filters requested for one listing.
type Criteria []Condition

// Parse reads every parameter of the table from values. Absent or blank parameters are
// skipped; unknown parameters are ignored.
func (t Table) Parse(values url.Values) (Criteria, error) {
	criteria := Criteria{}
	for _, f := range t {
		raw := strings.TrimSpace(values.Get(f.Param))
		if raw == "" {
			continue
		}
		v, err := parseValue(f, raw)
		if err != nil {
			return nil, err
		}
		criteria = append(criteria, Condition{Field: f, Value: v})
	}
	return criteria, nil
}

func parseValue(f Field, raw string) (any, error) {
	switch f.Kind {
	case KindID:
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return nil, &FieldError{Field: f.Param, Message: f.Param + " must be an integer and must be greater than 0"}
		}
		return id, nil
	case KindDate:
		d, err := ParseDate(raw)
		if err != nil {
			return nil, &FieldError{Field: f.Param, Message: f.Param + " must be in YYYY-MM-DD format"}
		}
		return d, nil
	default:
		return raw, nil
	}
}

// ParseDate parses a YYYY-MM-DD or YYYY/MM/DD date as midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		d, err := time.ParseInLocation(layout, raw, time.UTC)
		if err == nil {
			return d, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Empty reports whether no filter was requested.
func (c Criteria) Empty() bool {
	return len(c) == 0
}

// Expressions converts the criteria into goqu expressions.
func (c Criteria) Expressions() []goqu.Expression {
	exps := make([]goqu.Expression, 0, len(c))
	for _, cond := range c {
		col := goqu.I(cond.Field.Column)
		switch cond.Field.Op {
		case OpOnOrAfter:
			exps = append(exps, col.Gte(cond.Value))
		case OpOnOrBefore:
			exps = append(exps, col.Lt(cond.Value.(time.Time).AddDate(0, 0, 1)))
		case OpContains:
			exps = append(exps, col.ILike("%"+escapeLike(cond.Value.(string))+"%"))
		default:
			exps = append(exps, col.Eq(cond.Value))
		}
	}
	return exps
}

// Apply adds the criteria to the WHERE clause of ds.
func (c Criteria) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if c.Empty() {
		return ds
	}
	return ds.Where(c.Expressions()...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
