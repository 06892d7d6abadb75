package cli

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fathom/internal/apitest"
	"github.com/roach88/fathom/internal/clause"
	"github.com/roach88/fathom/internal/session"
)

func testSession(t *testing.T) *session.Session {
	t.Helper()
	srv := apitest.NewServer(apitest.Holidays())
	t.Cleanup(srv.Close)

	sess, err := session.Login(context.Background(), srv.URL(), "holidays", "Holidays",
		"demo", "secret", session.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	return sess
}

func TestParseCriterion(t *testing.T) {
	name, vals, err := parseCriterion("Destination=29,38")
	require.NoError(t, err)
	assert.Equal(t, "Destination", name)
	assert.Equal(t, []string{"29", "38"}, vals)

	for _, bad := range []string{"Destination", "=29", "Destination="} {
		_, _, err := parseCriterion(bad)
		require.Error(t, err, "spec %q", bad)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	}
}

func TestBuildEquality_Selector(t *testing.T) {
	sess := testSession(t)

	c, err := buildEquality(sess, "Destination=29,38", true)
	require.NoError(t, err)
	sel, ok := c.(*clause.Selector)
	require.True(t, ok)
	assert.Equal(t, []string{"29", "38"}, sel.Values())
	assert.Equal(t, "Bookings", sel.Table().Name())
}

func TestBuildEquality_NumericParsesValues(t *testing.T) {
	sess := testSession(t)

	c, err := buildEquality(sess, "Cost=500,10.5", true)
	require.NoError(t, err)
	_, ok := c.(*clause.Numeric)
	assert.True(t, ok)

	_, err = buildEquality(sess, "Cost=expensive", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"expensive" is not a number`)
}

func TestBuildEquality_DateParsesValues(t *testing.T) {
	sess := testSession(t)

	c, err := buildEquality(sess, "TravelDate=2019-07-16", true)
	require.NoError(t, err)
	_, ok := c.(*clause.DateList)
	assert.True(t, ok)

	_, err = buildEquality(sess, "TravelDate=16/07/2019", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a date in YYYY-MM-DD form")
}

func TestBuildEquality_UnknownVariable(t *testing.T) {
	sess := testSession(t)

	_, err := buildEquality(sess, "ShoeSize=9", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no variable found")
}

func TestBuildBound(t *testing.T) {
	sess := testSession(t)

	c, err := buildBound(sess, "Cost=2000", "ge")
	require.NoError(t, err)
	w := c.WireClause()
	require.NotNil(t, w.Criteria)
	assert.Equal(t, ">=2000", w.Criteria.ValueRules[0].List.List)

	c, err = buildBound(sess, "TravelDate=2019-07-16", "le")
	require.NoError(t, err)
	_, ok := c.(*clause.DateRange)
	assert.True(t, ok)

	_, err = buildBound(sess, "TravelDate=2019-07-16", "gt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date variables support --ge and --le")

	_, err = buildBound(sess, "Surname=M", "ge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a numeric or date variable")

	_, err = buildBound(sess, "Cost=1,2", "ge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "takes a single value")
}

func TestCombineAll_RoutesAcrossTables(t *testing.T) {
	sess := testSession(t)

	dest, err := buildEquality(sess, "Destination=29", true)
	require.NoError(t, err)
	gender, err := buildEquality(sess, "Gender=F", true)
	require.NoError(t, err)

	combined, err := combineAll([]clause.Clause{dest, gender})
	require.NoError(t, err)
	assert.Equal(t, "Bookings", combined.Table().Name())

	single, err := combineAll([]clause.Clause{dest})
	require.NoError(t, err)
	assert.Same(t, dest, single)
}

func TestParseDates(t *testing.T) {
	out, err := parseDates([]string{"2019-07-16"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 7, 16, 0, 0, 0, 0, time.UTC), out[0])
}
