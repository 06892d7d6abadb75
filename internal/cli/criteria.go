package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/session"
	"github.com/roach88/fathom/internal/vars"
)

// parseCriterion splits a "VAR=value[,value...]" flag into its parts.
func parseCriterion(spec string) (name string, values []string, err error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || name == "" || rest == "" {
		return "", nil, NewExitError(ExitCommandError,
			fmt.Sprintf("criterion %q must have the form VAR=value[,value...]", spec))
	}
	return name, strings.Split(rest, ","), nil
}

// buildEquality builds an equality (or inequality) clause for a variable,
// dispatching on its kind. Numeric values are parsed before normalization;
// dates accept the YYYY-MM-DD layout.
func buildEquality(sess *session.Session, spec string, include bool) (clause.Clause, error) {
	name, raw, err := parseCriterion(spec)
	if err != nil {
		return nil, err
	}
	v, err := sess.Variable(name)
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case *vars.SelectorVariable:
		if include {
			return x.Eq(raw)
		}
		return x.Ne(raw)
	case *vars.CombinedCategoriesVariable:
		if include {
			return x.Eq(raw)
		}
		return x.Ne(raw)
	case *vars.TextVariable:
		if include {
			return x.Eq(raw)
		}
		return x.Ne(raw)
	case *vars.ArrayVariable:
		if include {
			return x.Eq(raw)
		}
		return x.Ne(raw)
	case *vars.FlagArrayVariable:
		if include {
			return x.Eq(raw)
		}
		return x.Ne(raw)
	case *vars.NumericVariable:
		nums, err := parseNumbers(raw)
		if err != nil {
			return nil, err
		}
		if include {
			return x.Eq(nums)
		}
		return x.Ne(nums)
	case *vars.DateVariable:
		dates, err := parseDates(raw)
		if err != nil {
			return nil, err
		}
		if include {
			return x.Eq(dates)
		}
		return x.Ne(dates)
	case *vars.ReferenceVariable:
		if include {
			return x.Eq(raw)
		}
		return x.Ne(raw)
	default:
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("%s variables cannot be used with --eq/--ne", v.Kind()))
	}
}

// buildBound builds an inequality clause for a numeric or date variable.
// op is one of "ge", "le", "gt", "lt".
func buildBound(sess *session.Session, spec, op string) (clause.Clause, error) {
	name, raw, err := parseCriterion(spec)
	if err != nil {
		return nil, err
	}
	if len(raw) != 1 {
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("--%s takes a single value, got %d", op, len(raw)))
	}
	v, err := sess.Variable(name)
	if err != nil {
		return nil, err
	}

	switch x := v.(type) {
	case *vars.NumericVariable:
		nums, err := parseNumbers(raw)
		if err != nil {
			return nil, err
		}
		switch op {
		case "ge":
			return x.Ge(nums[0])
		case "le":
			return x.Le(nums[0])
		case "gt":
			return x.Gt(nums[0])
		case "lt":
			return x.Lt(nums[0])
		}
	case *vars.DateVariable:
		dates, err := parseDates(raw)
		if err != nil {
			return nil, err
		}
		switch op {
		case "ge":
			return x.Ge(dates[0])
		case "le":
			return x.Le(dates[0])
		}
		return nil, NewExitError(ExitCommandError,
			fmt.Sprintf("date variables support --ge and --le, not --%s", op))
	}
	return nil, NewExitError(ExitCommandError,
		fmt.Sprintf("--%s requires a numeric or date variable, but %q is a %s variable",
			op, name, v.Kind()))
}

// combineAll folds clauses left to right with AND, routing tables as
// needed.
func combineAll(clauses []clause.Clause) (clause.Clause, error) {
	combined := clauses[0]
	var err error
	for _, c := range clauses[1:] {
		combined, err = clause.And(combined, c)
		if err != nil {
			return nil, err
		}
	}
	return combined, nil
}

func parseNumbers(raw []string) ([]any, error) {
	out := make([]any, len(raw))
	for i, s := range raw {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			out[i] = n
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("%q is not a number", s))
		}
		out[i] = f
	}
	return out, nil
}

func parseDates(raw []string) ([]any, error) {
	out := make([]any, len(raw))
	for i, s := range raw {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("%q is not a date in YYYY-MM-DD form", s))
		}
		out[i] = t
	}
	return out, nil
}
