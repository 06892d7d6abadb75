package vars

import (
	"time"

	"github.com/roach88/fathom/internal/tabletree"
)

// Kind discriminates the closed set of variable kinds.
type Kind string

const (
	KindSelector           Kind = "Selector"
	KindCombinedCategories Kind = "CombinedCategories"
	KindNumeric            Kind = "Numeric"
	KindText               Kind = "Text"
	KindArray              Kind = "Array"
	KindFlagArray          Kind = "FlagArray"
	KindDate               Kind = "Date"
	KindDateTime           Kind = "DateTime"
	KindReference          Kind = "Reference"
)

// Variable is a sealed interface over the closed set of variable kinds.
// Only types in this package implement it.
type Variable interface {
	// Name returns the variable's server name.
	Name() string

	// Description returns the display description.
	Description() string

	// Kind returns the variable kind discriminator.
	Kind() Kind

	// Table returns the owning table.
	Table() *tabletree.Table

	// FolderName returns the system-explorer folder the variable lives in.
	FolderName() string

	// IsSelectable reports whether the variable may appear in selections.
	IsSelectable() bool

	// IsBrowsable reports whether the variable may appear in browses.
	IsBrowsable() bool

	// IsExportable reports whether the variable may appear in exports.
	IsExportable() bool

	// IsVirtual reports whether the variable is virtual.
	IsVirtual() bool

	variableNode() // Sealed - only these types implement it.
}

// base carries the fields every variable kind shares.
type base struct {
	name        string
	description string
	folder      string
	table       *tabletree.Table
	selectable  bool
	browsable   bool
	exportable  bool
	virtual     bool
}

func (b base) Name() string              { return b.name }
func (b base) Description() string       { return b.description }
func (b base) FolderName() string        { return b.folder }
func (b base) Table() *tabletree.Table   { return b.table }
func (b base) IsSelectable() bool        { return b.selectable }
func (b base) IsBrowsable() bool         { return b.browsable }
func (b base) IsExportable() bool        { return b.exportable }
func (b base) IsVirtual() bool           { return b.virtual }

// selectorMeta carries selector-specific metadata.
type selectorMeta struct {
	codeLength    int
	numberOfCodes int
	minCodeCount  int64
	maxCodeCount  int64
	order         string
}

// SelectorVariable is a single-value categorical selector.
type SelectorVariable struct {
	base
	selectorMeta
}

func (*SelectorVariable) variableNode() {}

// Kind returns KindSelector.
func (*SelectorVariable) Kind() Kind { return KindSelector }

// CodeLength returns the fixed width of this selector's codes.
func (v *SelectorVariable) CodeLength() int { return v.codeLength }

// NumberOfCodes returns the size of the code list.
func (v *SelectorVariable) NumberOfCodes() int { return v.numberOfCodes }

// MinCodeCount returns the smallest per-code record count.
func (v *SelectorVariable) MinCodeCount() int64 { return v.minCodeCount }

// MaxCodeCount returns the largest per-code record count.
func (v *SelectorVariable) MaxCodeCount() int64 { return v.maxCodeCount }

// CodeOrder returns the server's code ordering ("Nominal", "Ascending",
// "Descending").
func (v *SelectorVariable) CodeOrder() string { return v.order }

// CombinedCategoriesVariable is a selector synthesized from the categories
// of another selector, identified at bootstrap by a non-empty
// combined-from field.
type CombinedCategoriesVariable struct {
	base
	selectorMeta
	combinedFrom string
}

func (*CombinedCategoriesVariable) variableNode() {}

// Kind returns KindCombinedCategories.
func (*CombinedCategoriesVariable) Kind() Kind { return KindCombinedCategories }

// CombinedFrom returns the server name of the source selector.
func (v *CombinedCategoriesVariable) CombinedFrom() string { return v.combinedFrom }

// NumericVariable is a numeric measure variable.
type NumericVariable struct {
	base
	min            float64
	max            float64
	isCurrency     bool
	currencyLocale string
	currencySymbol string
}

func (*NumericVariable) variableNode() {}

// Kind returns KindNumeric.
func (*NumericVariable) Kind() Kind { return KindNumeric }

// Min returns the smallest value present.
func (v *NumericVariable) Min() float64 { return v.min }

// Max returns the largest value present.
func (v *NumericVariable) Max() float64 { return v.max }

// IsCurrency reports whether values are currency amounts.
func (v *NumericVariable) IsCurrency() bool { return v.isCurrency }

// CurrencyLocale returns the currency locale, if any.
func (v *NumericVariable) CurrencyLocale() string { return v.currencyLocale }

// CurrencySymbol returns the currency symbol, if any.
func (v *NumericVariable) CurrencySymbol() string { return v.currencySymbol }

// TextVariable is a free-text variable.
type TextVariable struct {
	base
	maxLength int
}

func (*TextVariable) variableNode() {}

// Kind returns KindText.
func (*TextVariable) Kind() Kind { return KindText }

// MaxLength returns the longest stored text value.
func (v *TextVariable) MaxLength() int { return v.maxLength }

// ArrayVariable is a multi-value selector.
type ArrayVariable struct {
	base
	selectorMeta
}

func (*ArrayVariable) variableNode() {}

// Kind returns KindArray.
func (*ArrayVariable) Kind() Kind { return KindArray }

// FlagArrayVariable is a multi-value selector stored as a bit array.
type FlagArrayVariable struct {
	base
	selectorMeta
}

func (*FlagArrayVariable) variableNode() {}

// Kind returns KindFlagArray.
func (*FlagArrayVariable) Kind() Kind { return KindFlagArray }

// DateVariable is a date selector.
type DateVariable struct {
	base
	selectorMeta
	minDate time.Time
	maxDate time.Time
}

func (*DateVariable) variableNode() {}

// Kind returns KindDate.
func (*DateVariable) Kind() Kind { return KindDate }

// MinDate returns the earliest date present.
func (v *DateVariable) MinDate() time.Time { return v.minDate }

// MaxDate returns the latest date present.
func (v *DateVariable) MaxDate() time.Time { return v.maxDate }

// DateTimeVariable is a datetime selector.
type DateTimeVariable struct {
	base
	selectorMeta
	minDate time.Time
	maxDate time.Time
}

func (*DateTimeVariable) variableNode() {}

// Kind returns KindDateTime.
func (*DateTimeVariable) Kind() Kind { return KindDateTime }

// MinDate returns the earliest datetime present.
func (v *DateTimeVariable) MinDate() time.Time { return v.minDate }

// MaxDate returns the latest datetime present.
func (v *DateTimeVariable) MaxDate() time.Time { return v.maxDate }

// ReferenceVariable is a reference variable. Its operator surface is
// declared but not supported by the server's selection model.
type ReferenceVariable struct {
	base
}

func (*ReferenceVariable) variableNode() {}

// Kind returns KindReference.
func (*ReferenceVariable) Kind() Kind { return KindReference }
