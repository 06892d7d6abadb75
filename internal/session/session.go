package session

import (
	"context"
	"log/slog"

	"github.com/roach88/fathom/internal/api"
	"github.com/roach88/fathom/internal/tabletree"
	"github.com/roach88/fathom/internal/vars"
	"github.com/roach88/fathom/internal/wire"
)

// Session is an authenticated connection to one analytics system.
//
// All fields are read-only after bootstrap. Selections, cubes and data
// grids hold a *Session and only ever read from it.
type Session struct {
	client      *api.Client
	sessionID   string
	accessToken string
	user        wire.User
	tree        *tabletree.Tree
	catalog     *vars.Catalog
	logger      *slog.Logger
}

// Option configures session creation.
type Option func(*settings)

type settings struct {
	logger     *slog.Logger
	clientOpts []api.Option
}

// WithLogger sets the logger used during bootstrap and by the API client.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithClientOptions passes options through to the underlying API client.
func WithClientOptions(opts ...api.Option) Option {
	return func(s *settings) { s.clientOpts = append(s.clientOpts, opts...) }
}

// Login authenticates against the server and bootstraps a session.
func Login(ctx context.Context, baseURL, dataView, system, username, password string, opts ...Option) (*Session, error) {
	st := applyOptions(opts)

	client := api.NewClient(baseURL, dataView, system, st.clientOpts...)
	login, err := client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return bootstrap(ctx, client.WithToken(login.AccessToken), login, st)
}

// Resume builds a session from previously issued credentials, re-running
// bootstrap. Used when restoring a serialized session.
func Resume(ctx context.Context, baseURL, dataView, system, sessionID, accessToken string, user wire.User, opts ...Option) (*Session, error) {
	st := applyOptions(opts)

	client := api.NewClient(baseURL, dataView, system, st.clientOpts...).WithToken(accessToken)
	login := wire.LoginResponse{SessionID: sessionID, AccessToken: accessToken, User: user}
	return bootstrap(ctx, client, login, st)
}

func applyOptions(opts []Option) *settings {
	st := &settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// bootstrap fetches metadata and assembles the table tree and variable
// catalog, failing fast on any inconsistency.
func bootstrap(ctx context.Context, client *api.Client, login wire.LoginResponse, st *settings) (*Session, error) {
	rawTables, err := client.GetTables(ctx)
	if err != nil {
		return nil, err
	}
	tree, err := tabletree.Build(rawTables, st.logger)
	if err != nil {
		return nil, err
	}

	rawVariables, err := client.GetVariables(ctx)
	if err != nil {
		return nil, err
	}
	catalog := vars.ClassifyAll(rawVariables, tree, st.logger)

	st.logger.Debug("session bootstrapped",
		"system", client.System(),
		"tables", tree.Len(),
		"variables", catalog.Len(),
	)
	return &Session{
		client:      client,
		sessionID:   login.SessionID,
		accessToken: login.AccessToken,
		user:        login.User,
		tree:        tree,
		catalog:     catalog,
		logger:      st.logger,
	}, nil
}

// Client returns the authenticated API client.
func (s *Session) Client() *api.Client { return s.client }

// SessionID returns the server-issued session id.
func (s *Session) SessionID() string { return s.sessionID }

// User returns the authenticated user.
func (s *Session) User() wire.User { return s.user }

// Tree returns the table tree.
func (s *Session) Tree() *tabletree.Tree { return s.tree }

// Table resolves a table by server name.
func (s *Session) Table(name string) (*tabletree.Table, bool) {
	return s.tree.Lookup(name)
}

// Variable resolves a variable by server name or display description.
func (s *Session) Variable(key string) (vars.Variable, error) {
	return s.catalog.Get(key)
}

// Variables returns the variables attached to the named table.
func (s *Session) Variables(tableName string) []vars.Variable {
	return s.catalog.ForTable(tableName)
}

// Catalog returns the variable catalog.
func (s *Session) Catalog() *vars.Catalog { return s.catalog }

// SystemInfo fetches the connected system's description from the server.
func (s *Session) SystemInfo(ctx context.Context) (wire.SystemInfo, error) {
	return s.client.GetSystemInfo(ctx)
}
