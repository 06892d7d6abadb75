package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/roach88/fathom/internal/wire"
)

// sessionID is the fixed session issued by the fake server.
const sessionID = "fake-session-1"

// accessToken is the fixed bearer token issued by the fake server.
const accessToken = "fake-token-1"

// Server answers the client's endpoints from a fixture.
type Server struct {
	fix *Fixture
	srv *httptest.Server
}

// NewServer starts a fake server for the fixture. Callers must Close it.
func NewServer(fix *Fixture) *Server {
	s := &Server{fix: fix}

	mux := http.NewServeMux()
	prefix := "/" + fix.DataView
	system := prefix + "/systems/" + fix.System.Name
	mux.HandleFunc("POST "+prefix+"/sessions/simple", s.handleLogin)
	mux.HandleFunc("GET "+system, s.handleSystem)
	mux.HandleFunc("GET "+system+"/tables", s.handleTables)
	mux.HandleFunc("GET "+system+"/variables", s.handleVariables)
	mux.HandleFunc("GET "+system+"/variables/{name}/codes", s.handleCodes)
	mux.HandleFunc("POST "+system+"/queries", s.handleQueries)
	mux.HandleFunc("POST "+system+"/cubes/calculatesync", s.handleCube)
	mux.HandleFunc("POST "+system+"/exports/performsync", s.handleExport)

	s.srv = httptest.NewServer(mux)
	return s
}

// URL returns the server's base URL.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the server down.
func (s *Server) Close() { s.srv.Close() }

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		http.Error(w, "bad login request", http.StatusBadRequest)
		return
	}
	writeJSON(w, wire.LoginResponse{
		SessionID:   sessionID,
		AccessToken: accessToken,
		User: wire.User{
			Username:     s.fix.User.Username,
			FirstName:    s.fix.User.FirstName,
			Surname:      s.fix.User.Surname,
			EmailAddress: s.fix.User.EmailAddress,
		},
	})
}

func (s *Server) handleSystem(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, wire.SystemInfo{
		Name:        s.fix.System.Name,
		Description: s.fix.System.Description,
		BuildDate:   s.fix.System.BuildDate,
		ViewName:    s.fix.System.ViewName,
	})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	tables := s.fix.rawTables()
	writeJSON(w, wire.TablesResponse{
		Count:      len(tables),
		TotalCount: len(tables),
		List:       tables,
	})
}

func (s *Server) handleVariables(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	all := s.fix.rawVariables()
	offset, count := pageParams(r, len(all))
	page := all[offset : offset+count]
	writeJSON(w, wire.VariablesResponse{
		Offset:     offset,
		Count:      len(page),
		TotalCount: len(all),
		List:       page,
	})
}

func (s *Server) handleCodes(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	name := r.PathValue("name")
	fixture, ok := s.fix.Codes[name]
	if !ok {
		http.Error(w, "no such variable", http.StatusNotFound)
		return
	}
	all := make([]wire.RawCode, len(fixture))
	for i, c := range fixture {
		all[i] = wire.RawCode{Code: c.Code, Description: c.Description}
	}
	offset, count := pageParams(r, len(all))
	page := all[offset : offset+count]
	writeJSON(w, wire.CodesResponse{
		Offset:     offset,
		Count:      len(page),
		TotalCount: len(all),
		List:       page,
	})
}

func (s *Server) handleQueries(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	var q wire.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		http.Error(w, "bad query", http.StatusBadRequest)
		return
	}
	match, ok := s.fix.matchCount(q)
	if !ok {
		http.Error(w, "no canned count for query", http.StatusUnprocessableEntity)
		return
	}
	counts := make([]wire.Count, len(match.Counts))
	for i, c := range match.Counts {
		counts[i] = wire.Count{TableName: c.TableName, CountValue: c.Count}
	}
	writeJSON(w, wire.CountsResponse{Counts: counts})
}

func (s *Server) handleCube(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	var req wire.CubeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad cube request", http.StatusBadRequest)
		return
	}
	match, ok := s.fix.matchCube(req)
	if !ok {
		http.Error(w, "no canned cube for request", http.StatusUnprocessableEntity)
		return
	}
	resp := wire.CubeResponse{}
	for _, dr := range match.Results {
		resp.DimensionResults = append(resp.DimensionResults, wire.DimensionResult{
			ID:                 dr.ID,
			HeaderCodes:        strings.Join(dr.Codes, "\t"),
			HeaderDescriptions: strings.Join(dr.Descriptions, "\t"),
		})
	}
	for _, mr := range match.Measures {
		rows := make([]string, len(mr.Rows))
		for i, row := range mr.Rows {
			rows[i] = strings.Join(row, "\t")
		}
		resp.MeasureResults = append(resp.MeasureResults, wire.MeasureResult{
			ID:   mr.ID,
			Rows: rows,
		})
	}
	writeJSON(w, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(w, r) {
		return
	}
	var req wire.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad export request", http.StatusBadRequest)
		return
	}
	match, ok := s.fix.matchExport(req)
	if !ok {
		http.Error(w, "no canned export for request", http.StatusUnprocessableEntity)
		return
	}
	rows := match.Rows
	if req.MaxRows > 0 && int64(len(rows)) > req.MaxRows {
		rows = rows[:req.MaxRows]
	}
	resp := wire.ExportResponse{}
	for _, row := range rows {
		resp.Rows = append(resp.Rows, wire.ExportRow{
			Descriptions: strings.Join(row, "\t"),
		})
	}
	writeJSON(w, resp)
}

// authorized enforces the bearer token on everything but login.
func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+accessToken {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

// pageParams clamps the offset and count query parameters to the data.
func pageParams(r *http.Request, total int) (offset, count int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	count, _ = strconv.Atoi(r.URL.Query().Get("count"))
	if offset < 0 || offset > total {
		offset = 0
	}
	if count <= 0 || offset+count > total {
		count = total - offset
	}
	return offset, count
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
