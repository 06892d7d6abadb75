package wire

// LoginResponse is returned by the simple-login sessions endpoint.
type LoginResponse struct {
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// User identifies the authenticated user.
type User struct {
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	Surname      string `json:"surname"`
	EmailAddress string `json:"email_address"`
}

// SystemInfo describes the connected analytics system.
type SystemInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	BuildDate   string `json:"build_date"`
	ViewName    string `json:"view_name"`
}

// TablesResponse is a paged listing of raw table metadata.
type TablesResponse struct {
	Offset     int        `json:"offset"`
	Count      int        `json:"count"`
	TotalCount int        `json:"total_count"`
	List       []RawTable `json:"list"`
}

// RawTable is the server's table metadata record.
type RawTable struct {
	Name                   string `json:"name"`
	SingularDisplayName    string `json:"singular_display_name"`
	PluralDisplayName      string `json:"plural_display_name"`
	IsDefaultTable         bool   `json:"is_default_table"`
	IsPeopleTable          bool   `json:"is_people_table"`
	TotalRecords           int64  `json:"total_records"`
	ChildRelationshipName  string `json:"child_relationship_name"`
	ParentRelationshipName string `json:"parent_relationship_name"`
	HasChildTables         bool   `json:"has_child_tables"`
	ParentTable            string `json:"parent_table"` // empty for the master table
}

// VariablesResponse is a paged listing of raw variable metadata.
type VariablesResponse struct {
	Offset     int           `json:"offset"`
	Count      int           `json:"count"`
	TotalCount int           `json:"total_count"`
	List       []RawVariable `json:"list"`
}

// RawVariable is the server's variable metadata record.
//
// Type is one of "Numeric", "Text", "Reference", "Selector"; selectors carry
// the SelectorInfo block whose sub-type and selector-type discriminate the
// concrete variable kind.
type RawVariable struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Type         string        `json:"type"`
	FolderName   string        `json:"folder_name"`
	TableName    string        `json:"table_name"`
	IsSelectable bool          `json:"is_selectable"`
	IsBrowsable  bool          `json:"is_browsable"`
	IsExportable bool          `json:"is_exportable"`
	IsVirtual    bool          `json:"is_virtual"`
	SelectorInfo *SelectorInfo `json:"selector_info,omitempty"`
	NumericInfo  *NumericInfo  `json:"numeric_info,omitempty"`
	TextInfo     *TextInfo     `json:"text_info,omitempty"`
}

// SelectorInfo is the selector-specific metadata block.
type SelectorInfo struct {
	SubType                  string `json:"sub_type"`       // "Categorical", "Date", "DateTime"
	SelectorType             string `json:"selector_type"`  // "SingleValue", "OrArray", "OrBitArray"
	VarCodeOrder             string `json:"var_code_order"` // "Nominal", "Ascending", "Descending"
	NumberOfCodes            int    `json:"number_of_codes"`
	CodeLength               int    `json:"code_length"`
	MinimumVarCodeCount      int64  `json:"minimum_var_code_count"`
	MaximumVarCodeCount      int64  `json:"maximum_var_code_count"`
	MinimumDate              string `json:"minimum_date,omitempty"`
	MaximumDate              string `json:"maximum_date,omitempty"`
	CombinedFromVariableName string `json:"combined_from_variable_name,omitempty"`
}

// NumericInfo is the numeric-specific metadata block.
type NumericInfo struct {
	Minimum        float64 `json:"minimum"`
	Maximum        float64 `json:"maximum"`
	IsCurrency     bool    `json:"is_currency"`
	CurrencyLocale string  `json:"currency_locale,omitempty"`
	CurrencySymbol string  `json:"currency_symbol,omitempty"`
}

// TextInfo is the text-specific metadata block.
type TextInfo struct {
	MaximumTextLength int `json:"maximum_text_length"`
}

// CodesResponse is a paged listing of a selector variable's codes.
type CodesResponse struct {
	Offset     int       `json:"offset"`
	Count      int       `json:"count"`
	TotalCount int       `json:"total_count"`
	List       []RawCode `json:"list"`
}

// RawCode is one selector code with its display description.
type RawCode struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
