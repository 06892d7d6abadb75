package values

import (
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat selects the wire encoding of a normalized date.
type DateFormat int

const (
	// RangeFormat encodes dates as "2006-01-02" (used in range rules).
	RangeFormat DateFormat = iota
	// BasicFormat encodes dates as "20060102" (used in list rules).
	BasicFormat
)

const (
	dateRangeLayout = "2006-01-02"
	dateBasicLayout = "20060102"
	datetimeLayout  = "2006-01-02T15:04:05"
)

// String normalizes a single string scalar.
// Slices fail with singleMsg; non-strings fail with invalidMsg.
func String(v any, invalidMsg, singleMsg string) (string, error) {
	if isSlice(v) {
		return "", NewInputError(singleMsg)
	}
	return stringScalar(v, invalidMsg)
}

// StringList normalizes a string scalar or a slice of strings into a list
// of wire values. Empty slices are rejected: criteria need at least one value.
func StringList(v any, invalidMsg string) ([]string, error) {
	return normalizeList(v, invalidMsg, func(item any) (string, error) {
		return stringScalar(item, invalidMsg)
	})
}

// Number normalizes a single numeric scalar.
// Slices fail with singleMsg; non-numbers (including booleans) fail with
// invalidMsg.
func Number(v any, invalidMsg, singleMsg string) (string, error) {
	if isSlice(v) {
		return "", NewInputError(singleMsg)
	}
	return numberScalar(v, invalidMsg)
}

// NumberList normalizes a numeric scalar or a slice of numbers into a list
// of wire values.
func NumberList(v any, invalidMsg string) ([]string, error) {
	return normalizeList(v, invalidMsg, func(item any) (string, error) {
		return numberScalar(item, invalidMsg)
	})
}

// Date normalizes a single date scalar in the given format.
func Date(v any, format DateFormat, invalidMsg, singleMsg string) (string, error) {
	if isSlice(v) {
		return "", NewInputError(singleMsg)
	}
	return dateScalar(v, format, invalidMsg)
}

// DateList normalizes a date scalar or a slice of dates in the given format.
func DateList(v any, format DateFormat, invalidMsg string) ([]string, error) {
	return normalizeList(v, invalidMsg, func(item any) (string, error) {
		return dateScalar(item, format, invalidMsg)
	})
}

// DateTime normalizes a single datetime scalar to seconds precision with no
// timezone suffix.
func DateTime(v any, invalidMsg, singleMsg string) (string, error) {
	if isSlice(v) {
		return "", NewInputError(singleMsg)
	}
	return datetimeScalar(v, invalidMsg)
}

// DateTimeList normalizes a datetime scalar or a slice of datetimes.
func DateTimeList(v any, invalidMsg string) ([]string, error) {
	return normalizeList(v, invalidMsg, func(item any) (string, error) {
		return datetimeScalar(item, invalidMsg)
	})
}

func stringScalar(v any, invalidMsg string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", NewInputError(invalidMsg)
	}
	return s, nil
}

func numberScalar(v any, invalidMsg string) (string, error) {
	switch n := v.(type) {
	case bool:
		// Booleans must never masquerade as numbers.
		return "", NewInputError(invalidMsg)
	case int:
		return strconv.FormatInt(int64(n), 10), nil
	case int8:
		return strconv.FormatInt(int64(n), 10), nil
	case int16:
		return strconv.FormatInt(int64(n), 10), nil
	case int32:
		return strconv.FormatInt(int64(n), 10), nil
	case int64:
		return strconv.FormatInt(n, 10), nil
	case uint:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(n), 10), nil
	case uint64:
		return strconv.FormatUint(n, 10), nil
	case float32:
		return decimal.NewFromFloat32(n).Round(4).String(), nil
	case float64:
		return decimal.NewFromFloat(n).Round(4).String(), nil
	case decimal.Decimal:
		// Fixed decimals are quantized, keeping trailing zeros.
		return n.StringFixed(4), nil
	default:
		return "", NewInputError(invalidMsg)
	}
}

func dateScalar(v any, format DateFormat, invalidMsg string) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", NewInputError(invalidMsg)
	}
	if format == BasicFormat {
		return t.Format(dateBasicLayout), nil
	}
	return t.Format(dateRangeLayout), nil
}

func datetimeScalar(v any, invalidMsg string) (string, error) {
	t, ok := v.(time.Time)
	if !ok {
		return "", NewInputError(invalidMsg)
	}
	return t.Format(datetimeLayout), nil
}

// normalizeList applies the scalar normalizer to a single value or to each
// element of a slice. Empty slices fail: a criteria list needs at least one
// value.
func normalizeList(v any, invalidMsg string, one func(any) (string, error)) ([]string, error) {
	if v == nil {
		return nil, NewInputError(invalidMsg)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() == 0 {
			return nil, NewInputError(invalidMsg)
		}
		out := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := one(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	}
	s, err := one(v)
	if err != nil {
		return nil, err
	}
	return []string{s}, nil
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}
