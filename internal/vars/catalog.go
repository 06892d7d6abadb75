package vars

import (
	"fmt"
	"sort"

	"golang.org/x/text/cases"
)

// Catalog indexes variables by server name and by display description.
//
// Descriptions are folded case-insensitively (Unicode case folding via
// x/text) so lookups survive display-casing differences; a folded
// description shared by several variables is ambiguous and errors at
// lookup time rather than silently picking one.
type Catalog struct {
	byName  map[string]Variable
	byDesc  map[string][]Variable
	byTable map[string][]Variable
	folder  cases.Caser
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName:  make(map[string]Variable),
		byDesc:  make(map[string][]Variable),
		byTable: make(map[string][]Variable),
		folder:  cases.Fold(),
	}
}

// Add indexes a variable under its name, folded description and owning
// table.
func (c *Catalog) Add(v Variable) {
	c.byName[v.Name()] = v
	folded := c.folder.String(v.Description())
	c.byDesc[folded] = append(c.byDesc[folded], v)
	tableName := v.Table().Name()
	c.byTable[tableName] = append(c.byTable[tableName], v)
}

// Get resolves a variable by server name, falling back to a
// case-insensitive description match. Ambiguous descriptions and unknown
// keys return a *LookupError.
func (c *Catalog) Get(key string) (Variable, error) {
	if v, ok := c.byName[key]; ok {
		return v, nil
	}
	matches := c.byDesc[c.folder.String(key)]
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, &LookupError{Key: key, Message: fmt.Sprintf(
			"no variable found with name or description %q", key)}
	default:
		return nil, &LookupError{Key: key, Message: fmt.Sprintf(
			"variable description %q is ambiguous: %d variables match", key, len(matches))}
	}
}

// ForTable returns the variables attached to the named table, sorted by
// server name.
func (c *Catalog) ForTable(tableName string) []Variable {
	list := c.byTable[tableName]
	out := make([]Variable, len(list))
	copy(out, list)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Len returns the number of variables in the catalog.
func (c *Catalog) Len() int {
	return len(c.byName)
}

// Names returns every variable server name, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
