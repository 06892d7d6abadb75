package vars

import (
	"log/slog"
	"time"

	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/wire"
)

// Raw variable type discriminants.
const (
	rawTypeNumeric   = "Numeric"
	rawTypeText      = "Text"
	rawTypeReference = "Reference"
	rawTypeSelector  = "Selector"

	subTypeCategorical = "Categorical"
	subTypeDate        = "Date"
	subTypeDateTime    = "DateTime"

	selectorSingleValue = "SingleValue"
	selectorOrArray     = "OrArray"
	selectorOrBitArray  = "OrBitArray"
)

// ClassifyAll classifies raw variable metadata into typed handles and
// groups them into a catalog. Records whose discriminant maps to no kind,
// or whose owning table is missing from the tree, are logged as warnings
// and skipped; classification never fails bootstrap.
func ClassifyAll(raw []wire.RawVariable, tree *tabletree.Tree, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	catalog := NewCatalog()
	for _, rv := range raw {
		v, err := Classify(rv, tree)
		if err != nil {
			logger.Warn("skipping unclassifiable variable", "error", err)
			continue
		}
		catalog.Add(v)
	}
	return catalog
}

// Classify maps one raw variable record to its typed handle using the
// 4-tuple discriminant (type, sub_type, selector_type, has_combined_from).
func Classify(raw wire.RawVariable, tree *tabletree.Tree) (Variable, error) {
	table, ok := tree.Lookup(raw.TableName)
	if !ok {
		return nil, &VariablesError{
			VariableName: raw.Name,
			Message:      "owning table " + raw.TableName + " is not in the table tree",
		}
	}
	b := base{
		name:        raw.Name,
		description: raw.Description,
		folder:      raw.FolderName,
		table:       table,
		selectable:  raw.IsSelectable,
		browsable:   raw.IsBrowsable,
		exportable:  raw.IsExportable,
		virtual:     raw.IsVirtual,
	}

	switch raw.Type {
	case rawTypeNumeric:
		v := &NumericVariable{base: b}
		if raw.NumericInfo != nil {
			v.min = raw.NumericInfo.Minimum
			v.max = raw.NumericInfo.Maximum
			v.isCurrency = raw.NumericInfo.IsCurrency
			v.currencyLocale = raw.NumericInfo.CurrencyLocale
			v.currencySymbol = raw.NumericInfo.CurrencySymbol
		}
		return v, nil

	case rawTypeText:
		v := &TextVariable{base: b}
		if raw.TextInfo != nil {
			v.maxLength = raw.TextInfo.MaximumTextLength
		}
		return v, nil

	case rawTypeReference:
		return &ReferenceVariable{base: b}, nil

	case rawTypeSelector:
		return classifySelector(raw, b)

	default:
		return nil, &VariablesError{
			VariableName: raw.Name,
			Message:      "unknown variable type " + raw.Type,
		}
	}
}

func classifySelector(raw wire.RawVariable, b base) (Variable, error) {
	info := raw.SelectorInfo
	if info == nil {
		return nil, &VariablesError{
			VariableName: raw.Name,
			Message:      "selector variable is missing its selector_info block",
		}
	}
	meta := selectorMeta{
		codeLength:    info.CodeLength,
		numberOfCodes: info.NumberOfCodes,
		minCodeCount:  info.MinimumVarCodeCount,
		maxCodeCount:  info.MaximumVarCodeCount,
		order:         info.VarCodeOrder,
	}

	switch {
	case info.SubType == subTypeCategorical && info.SelectorType == selectorSingleValue:
		if info.CombinedFromVariableName != "" {
			return &CombinedCategoriesVariable{
				base:         b,
				selectorMeta: meta,
				combinedFrom: info.CombinedFromVariableName,
			}, nil
		}
		return &SelectorVariable{base: b, selectorMeta: meta}, nil

	case info.SubType == subTypeCategorical && info.SelectorType == selectorOrArray:
		return &ArrayVariable{base: b, selectorMeta: meta}, nil

	case info.SubType == subTypeCategorical && info.SelectorType == selectorOrBitArray:
		return &FlagArrayVariable{base: b, selectorMeta: meta}, nil

	case info.SubType == subTypeDate && info.SelectorType == selectorSingleValue:
		return &DateVariable{
			base:         b,
			selectorMeta: meta,
			minDate:      parseMetadataDate(info.MinimumDate),
			maxDate:      parseMetadataDate(info.MaximumDate),
		}, nil

	case info.SubType == subTypeDateTime && info.SelectorType == selectorSingleValue:
		return &DateTimeVariable{
			base:         b,
			selectorMeta: meta,
			minDate:      parseMetadataDate(info.MinimumDate),
			maxDate:      parseMetadataDate(info.MaximumDate),
		}, nil

	default:
		return nil, &VariablesError{
			VariableName: raw.Name,
			Message: "unknown selector discriminant " +
				info.SubType + "/" + info.SelectorType,
		}
	}
}

// parseMetadataDate reads the server's metadata date formats, returning the
// zero time when absent or unparsable.
func parseMetadataDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
