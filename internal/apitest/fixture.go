// Package apitest provides a fake analytics server for tests: a fixture
// format describing a system's metadata and canned results, and an
// httptest server that answers the client's endpoints from it.
package apitest

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fathom/internal/wire"
)

//go:embed holidays.yaml
var holidaysYAML []byte

// Fixture describes one fake system: its metadata, selector code lists and
// canned query, cube and export results.
type Fixture struct {
	DataView  string                   `yaml:"data_view"`
	System    SystemFixture            `yaml:"system"`
	User      UserFixture              `yaml:"user"`
	Tables    []TableFixture           `yaml:"tables"`
	Variables []VariableFixture        `yaml:"variables"`
	Codes     map[string][]CodeFixture `yaml:"codes"`
	Counts    []CountFixture           `yaml:"counts"`
	Cubes     []CubeFixture            `yaml:"cubes"`
	Exports   []ExportFixture          `yaml:"exports"`
}

// SystemFixture is the system description block.
type SystemFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	BuildDate   string `yaml:"build_date"`
	ViewName    string `yaml:"view_name"`
}

// UserFixture is the user the fake server logs everyone in as.
type UserFixture struct {
	Username     string `yaml:"username"`
	FirstName    string `yaml:"first_name"`
	Surname      string `yaml:"surname"`
	EmailAddress string `yaml:"email_address"`
}

// TableFixture is one table's metadata.
type TableFixture struct {
	Name         string `yaml:"name"`
	Singular     string `yaml:"singular"`
	Plural       string `yaml:"plural"`
	IsDefault    bool   `yaml:"is_default"`
	IsPeople     bool   `yaml:"is_people"`
	TotalRecords int64  `yaml:"total_records"`
	ChildPhrase  string `yaml:"child_phrase"`
	ParentPhrase string `yaml:"parent_phrase"`
	HasChildren  bool   `yaml:"has_children"`
	ParentTable  string `yaml:"parent_table"`
}

// VariableFixture is one variable's metadata. Kind is the client-side kind
// name; the fixture translates it to the server's type and selector blocks.
type VariableFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Table       string `yaml:"table"`
	Kind        string `yaml:"kind"` // Selector, Numeric, Text, Array, FlagArray, Date, DateTime, Reference
	MinimumDate string `yaml:"minimum_date,omitempty"`
	MaximumDate string `yaml:"maximum_date,omitempty"`
}

// CodeFixture is one selector code.
type CodeFixture struct {
	Code        string `yaml:"code"`
	Description string `yaml:"description"`
}

// CountFixture cans a query result. A submitted query matches when its
// resolve table and the set of criteria variable names in its rule tree
// equal the fixture's.
type CountFixture struct {
	TableName string         `yaml:"table_name"`
	Variables []string       `yaml:"variables"`
	Counts    []TableCountFx `yaml:"counts"`
}

// TableCountFx is one per-table count in a canned query result.
type TableCountFx struct {
	TableName string `yaml:"table_name"`
	Count     int64  `yaml:"count"`
}

// CubeFixture cans a cube result, matched by the request's dimension
// variable names in request order.
type CubeFixture struct {
	Dimensions []string         `yaml:"dimensions"`
	Results    []DimensionResFx `yaml:"dimension_results"`
	Measures   []MeasureResFx   `yaml:"measure_results"`
}

// DimensionResFx is one dimension's header streams, tab-joined.
type DimensionResFx struct {
	ID           string   `yaml:"id"`
	Codes        []string `yaml:"codes"`
	Descriptions []string `yaml:"descriptions"`
}

// MeasureResFx is one measure's cell rows, each row tab-joined.
type MeasureResFx struct {
	ID   string     `yaml:"id"`
	Rows [][]string `yaml:"rows"`
}

// ExportFixture cans an export result, matched by column variable names in
// request order.
type ExportFixture struct {
	Columns []string   `yaml:"columns"`
	Rows    [][]string `yaml:"rows"`
}

// ParseFixture decodes a fixture from YAML.
func ParseFixture(data []byte) (*Fixture, error) {
	var fix Fixture
	if err := yaml.Unmarshal(data, &fix); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if fix.DataView == "" || fix.System.Name == "" {
		return nil, fmt.Errorf("fixture must set data_view and system.name")
	}
	return &fix, nil
}

// LoadFixture reads a fixture from a YAML file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return ParseFixture(data)
}

// Holidays returns the embedded demo fixture: a travel-agency system with
// households, customers, bookings and a purchases branch.
func Holidays() *Fixture {
	fix, err := ParseFixture(holidaysYAML)
	if err != nil {
		panic(err)
	}
	return fix
}

func (f *Fixture) rawTables() []wire.RawTable {
	out := make([]wire.RawTable, len(f.Tables))
	for i, t := range f.Tables {
		out[i] = wire.RawTable{
			Name:                   t.Name,
			SingularDisplayName:    t.Singular,
			PluralDisplayName:      t.Plural,
			IsDefaultTable:         t.IsDefault,
			IsPeopleTable:          t.IsPeople,
			TotalRecords:           t.TotalRecords,
			ChildRelationshipName:  t.ChildPhrase,
			ParentRelationshipName: t.ParentPhrase,
			HasChildTables:         t.HasChildren,
			ParentTable:            t.ParentTable,
		}
	}
	return out
}

func (f *Fixture) rawVariables() []wire.RawVariable {
	out := make([]wire.RawVariable, len(f.Variables))
	for i, v := range f.Variables {
		raw := wire.RawVariable{
			Name:         v.Name,
			Description:  v.Description,
			TableName:    v.Table,
			IsSelectable: true,
			IsBrowsable:  true,
			IsExportable: true,
		}
		switch v.Kind {
		case "Numeric":
			raw.Type = "Numeric"
			raw.NumericInfo = &wire.NumericInfo{}
		case "Text":
			raw.Type = "Text"
			raw.TextInfo = &wire.TextInfo{}
		case "Reference":
			raw.Type = "Reference"
		case "Array":
			raw.Type = "Selector"
			raw.SelectorInfo = &wire.SelectorInfo{
				SubType: "Categorical", SelectorType: "OrArray",
			}
		case "FlagArray":
			raw.Type = "Selector"
			raw.SelectorInfo = &wire.SelectorInfo{
				SubType: "Categorical", SelectorType: "OrBitArray",
			}
		case "Date":
			raw.Type = "Selector"
			raw.SelectorInfo = &wire.SelectorInfo{
				SubType: "Date", SelectorType: "SingleValue",
				MinimumDate: v.MinimumDate, MaximumDate: v.MaximumDate,
			}
		case "DateTime":
			raw.Type = "Selector"
			raw.SelectorInfo = &wire.SelectorInfo{
				SubType: "DateTime", SelectorType: "SingleValue",
			}
		default:
			raw.Type = "Selector"
			raw.SelectorInfo = &wire.SelectorInfo{
				SubType: "Categorical", SelectorType: "SingleValue",
				NumberOfCodes: len(f.Codes[v.Name]),
			}
		}
		out[i] = raw
	}
	return out
}

// criteriaVariables collects the distinct criteria variable names in a
// rule tree, sorted.
func criteriaVariables(q wire.Query) []string {
	seen := map[string]bool{}
	var walkSelection func(sel wire.Selection)
	var walk func(c wire.Clause)
	walk = func(c wire.Clause) {
		if c.Criteria != nil {
			seen[c.Criteria.VariableName] = true
		}
		if c.Logic != nil {
			for _, op := range c.Logic.Operands {
				walk(op)
			}
		}
		if c.SubSelection != nil {
			walkSelection(*c.SubSelection)
		}
	}
	walkSelection = func(sel wire.Selection) {
		if sel.Rule != nil {
			walk(sel.Rule.Clause)
		}
	}
	walkSelection(q.Selection)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// matchCount finds the canned result for a submitted query.
func (f *Fixture) matchCount(q wire.Query) (*CountFixture, bool) {
	got := criteriaVariables(q)
	for i := range f.Counts {
		c := &f.Counts[i]
		if c.TableName != q.Selection.TableName {
			continue
		}
		want := append([]string(nil), c.Variables...)
		sort.Strings(want)
		if equalStrings(got, want) {
			return c, true
		}
	}
	return nil, false
}

// matchCube finds the canned result for a submitted cube, keyed by the
// request's dimension variable names in order.
func (f *Fixture) matchCube(req wire.CubeRequest) (*CubeFixture, bool) {
	got := make([]string, len(req.Dimensions))
	for i, d := range req.Dimensions {
		got[i] = d.VariableName
	}
	for i := range f.Cubes {
		if equalStrings(got, f.Cubes[i].Dimensions) {
			return &f.Cubes[i], true
		}
	}
	return nil, false
}

// matchExport finds the canned result for a submitted export, keyed by the
// request's column variable names in order.
func (f *Fixture) matchExport(req wire.ExportRequest) (*ExportFixture, bool) {
	got := make([]string, len(req.Columns))
	for i, c := range req.Columns {
		got[i] = c.VariableName
	}
	for i := range f.Exports {
		if equalStrings(got, f.Exports[i].Columns) {
			return &f.Exports[i], true
		}
	}
	return nil, false
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
