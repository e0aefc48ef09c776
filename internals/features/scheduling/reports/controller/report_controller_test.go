package controller

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionReportQueryPicksOneReservationPerHostedSession(t *testing.T) {
	q := sessionReportQuery("1=1", false)

	// the hosted side must not fan out over reservations
	hosted := q[:strings.Index(q, "attended AS")]
	assert.Contains(t, hosted, "LEFT JOIN LATERAL")
	assert.Contains(t, hosted, "LIMIT 1")
	assert.NotContains(t, hosted, "LEFT JOIN reservations r ON")
}

func TestSessionReportQueryStatusWrap(t *testing.T) {
	plain := sessionReportQuery("1=1", false)
	assert.NotContains(t, plain, "u.status = ?")

	wrapped := sessionReportQuery("1=1", true)
	assert.Contains(t, wrapped, "u.status = ?")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(wrapped), "ORDER BY scheduled_at DESC LIMIT 500"))
}
