package wire

// CubeRequest is the request body for synchronous cube calculation.
//
// Storage is always "Full": the server returns every cell, including the
// iTOTAL rollups, and the client masks them at materialization time.
type CubeRequest struct {
	BaseQuery        *Query      `json:"base_query,omitempty"`
	ResolveTableName string      `json:"resolve_table_name"`
	Storage          string      `json:"storage"`
	Dimensions       []Dimension `json:"dimensions"`
	Measures         []Measure   `json:"measures"`
}

// Dimension is one axis of a cube.
//
// Type is "Selector" for plain selectors and "DateBand" for banded date
// dimensions; Banding is set only for the latter.
type Dimension struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	VariableName string `json:"variable_name"`
	Banding      string `json:"banding,omitempty"` // "Years", "Quarters", "Months", "Day"
}

// Measure is one statistic computed per cube cell.
//
// Function "Count" counts records of the resolve table and carries no
// variable; the remaining functions aggregate over VariableName.
type Measure struct {
	ID               string `json:"id"`
	ResolveTableName string `json:"resolve_table_name"`
	Function         string `json:"function"`
	VariableName     string `json:"variable_name,omitempty"`
}

// CubeResponse is the synchronous cube calculation response.
//
// Rows and the two header streams are tab-delimited strings flattened in
// row-major order over the dimension order of DimensionResults.
type CubeResponse struct {
	MeasureResults   []MeasureResult   `json:"measure_results"`
	DimensionResults []DimensionResult `json:"dimension_results"`
}

// MeasureResult carries one measure's cells.
type MeasureResult struct {
	ID   string   `json:"id"`
	Rows []string `json:"rows"`
}

// DimensionResult carries one dimension's header streams.
type DimensionResult struct {
	ID                 string `json:"id"`
	HeaderCodes        string `json:"header_codes"`
	HeaderDescriptions string `json:"header_descriptions"`
}

// ExportRequest is the request body for a synchronous data export.
type ExportRequest struct {
	BaseQuery        *Query   `json:"base_query,omitempty"`
	ResolveTableName string   `json:"resolve_table_name"`
	MaxRows          int64    `json:"max_rows"`
	ReturnBrowseRows bool     `json:"return_browse_rows"`
	Columns          []Column `json:"columns"`
}

// Column selects one exported variable.
type Column struct {
	ID           string `json:"id"`
	VariableName string `json:"variable_name"`
}

// ExportResponse is the synchronous export response.
type ExportResponse struct {
	Rows []ExportRow `json:"rows"`
}

// ExportRow is one exported record, with column values tab-delimited.
type ExportRow struct {
	Descriptions string `json:"descriptions"`
}
