package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/internal/models"
)

func filterContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/trades?"+query, nil)
	return c
}

func TestParseTradeFilterFields(t *testing.T) {
	c := filterContext(t, "market=Forex&type=Long&status=Win&symbol=EUR")

	filter, err := parseTradeFilter(c)
	require.NoError(t, err)

	assert.Equal(t, models.MarketForex, filter.Market)
	assert.Equal(t, models.TradeLong, filter.Type)
	assert.Equal(t, models.StatusWin, filter.Status)
	assert.Equal(t, "EUR", filter.Symbol)
	assert.Nil(t, filter.From)
	assert.Nil(t, filter.To)
}

func TestParseTradeFilterDateRange(t *testing.T) {
	c := filterContext(t, "from=2025-06-01&to=2025-06-30")

	filter, err := parseTradeFilter(c)
	require.NoError(t, err)

	require.NotNil(t, filter.From)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *filter.From)

	// "to" given as a bare date widens to the end of that day.
	require.NotNil(t, filter.To)
	assert.Equal(t, 2025, filter.To.Year())
	assert.Equal(t, time.June, filter.To.Month())
	assert.Equal(t, 30, filter.To.Day())
	assert.Equal(t, 23, filter.To.Hour())
}

func TestParseTradeFilterRFC3339(t *testing.T) {
	c := filterContext(t, "to=2025-06-30T12:30:00Z")

	filter, err := parseTradeFilter(c)
	require.NoError(t, err)

	require.NotNil(t, filter.To)
	// Explicit timestamps are taken as-is.
	assert.Equal(t, 12, filter.To.Hour())
}

func TestParseTradeFilterBadDate(t *testing.T) {
	c := filterContext(t, "from=june-first")

	_, err := parseTradeFilter(c)
	assert.Error(t, err)
}
