// Package values normalizes user-supplied scalars and slices into the wire
// representation the analytics server expects.
//
// Each semantic input type (string, number, date, datetime) exposes two
// helpers: a single-value form used by inequality operators, and a
// single-or-slice form used by equality and list operators. Both return
// *InputError on bad input, with the message supplied by the caller so that
// diagnostics name the variable kind being selected.
//
// Wire formats:
//   - numbers: integers without decimal places; decimals quantized to four
//     fractional digits; other reals rounded to four fractional digits
//   - dates: "20060102" in basic (list) form, "2006-01-02" in range form
//   - datetimes: "2006-01-02T15:04:05"
package values
