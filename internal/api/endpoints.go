package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/roach88/fathom/internal/wire"
)

// variablePageSize is the fixed page size for variable metadata fetches.
const variablePageSize = 500

// codesPageSize is the fixed page size for selector code-list fetches.
const codesPageSize = 1000

// tableCountLimit bounds the single-page table metadata fetch. Table trees
// are small; the server rejects nothing at this size.
const tableCountLimit = 1000

// Login authenticates with the simple-login endpoint and returns the
// session credentials.
func (c *Client) Login(ctx context.Context, username, password string) (wire.LoginResponse, error) {
	var out wire.LoginResponse
	body := map[string]string{
		"username": username,
		"password": password,
	}
	if err := c.do(ctx, http.MethodPost, "/sessions/simple", nil, body, &out); err != nil {
		return wire.LoginResponse{}, err
	}
	return out, nil
}

// GetSystemInfo fetches the connected system's description.
func (c *Client) GetSystemInfo(ctx context.Context) (wire.SystemInfo, error) {
	var out wire.SystemInfo
	if err := c.do(ctx, http.MethodGet, "/systems/"+c.system, nil, nil, &out); err != nil {
		return wire.SystemInfo{}, err
	}
	return out, nil
}

// GetTables fetches the raw table metadata in a single page with an
// explicit count, verifying the server's stated count matches the payload.
func (c *Client) GetTables(ctx context.Context) ([]wire.RawTable, error) {
	query := url.Values{}
	query.Set("count", strconv.Itoa(tableCountLimit))

	var out wire.TablesResponse
	if err := c.do(ctx, http.MethodGet, "/systems/"+c.system+"/tables", query, nil, &out); err != nil {
		return nil, err
	}
	if out.Count != len(out.List) {
		return nil, newResultsError("tables",
			"server stated %d tables but returned %d", out.Count, len(out.List))
	}
	return out.List, nil
}

// GetVariables fetches the raw variable metadata in fixed-size pages,
// concatenating until offset+count reaches the stated total. A final
// length different from the stated total is a results error, not a
// warning: it means the server's paging is inconsistent.
func (c *Client) GetVariables(ctx context.Context) ([]wire.RawVariable, error) {
	var all []wire.RawVariable
	offset := 0
	for {
		query := url.Values{}
		query.Set("offset", strconv.Itoa(offset))
		query.Set("count", strconv.Itoa(variablePageSize))

		var page wire.VariablesResponse
		if err := c.do(ctx, http.MethodGet, "/systems/"+c.system+"/variables", query, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.List...)
		if page.Offset+page.Count >= page.TotalCount {
			if len(all) != page.TotalCount {
				return nil, newResultsError("variables",
					"server stated %d variables in total but %d were returned",
					page.TotalCount, len(all))
			}
			return all, nil
		}
		offset = page.Offset + page.Count
	}
}

// FetchCodes fetches a selector variable's code list in pages. This is the
// lazy, on-demand fetch behind selector value validation; nothing is
// cached.
func (c *Client) FetchCodes(ctx context.Context, variableName string) ([]wire.RawCode, error) {
	var all []wire.RawCode
	offset := 0
	for {
		query := url.Values{}
		query.Set("offset", strconv.Itoa(offset))
		query.Set("count", strconv.Itoa(codesPageSize))

		var page wire.CodesResponse
		path := "/systems/" + c.system + "/variables/" + variableName + "/codes"
		if err := c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.List...)
		if page.Offset+page.Count >= page.TotalCount {
			if len(all) != page.TotalCount {
				return nil, newResultsError("codes",
					"server stated %d codes in total but %d were returned",
					page.TotalCount, len(all))
			}
			return all, nil
		}
		offset = page.Offset + page.Count
	}
}

// CountQuery submits a query and returns the per-table counts.
func (c *Client) CountQuery(ctx context.Context, q wire.Query) (wire.CountsResponse, error) {
	var out wire.CountsResponse
	if err := c.do(ctx, http.MethodPost, "/systems/"+c.system+"/queries", nil, q, &out); err != nil {
		return wire.CountsResponse{}, err
	}
	return out, nil
}

// CalculateCubeSynchronously submits a cube and blocks until the server
// returns the full result.
func (c *Client) CalculateCubeSynchronously(ctx context.Context, req wire.CubeRequest) (wire.CubeResponse, error) {
	var out wire.CubeResponse
	if err := c.do(ctx, http.MethodPost, "/systems/"+c.system+"/cubes/calculatesync", nil, req, &out); err != nil {
		return wire.CubeResponse{}, err
	}
	return out, nil
}

// PerformExportSynchronously submits an export and blocks until the server
// returns the rows.
func (c *Client) PerformExportSynchronously(ctx context.Context, req wire.ExportRequest) (wire.ExportResponse, error) {
	var out wire.ExportResponse
	if err := c.do(ctx, http.MethodPost, "/systems/"+c.system+"/exports/performsync", nil, req, &out); err != nil {
		return wire.ExportResponse{}, err
	}
	return out, nil
}
