package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{StatusReserved, StatusAttended, StatusNoShow, StatusCanceled} {
		assert.True(t, IsValidStatus(s), s)
	}
	assert.False(t, IsValidStatus(""))
	assert.False(t, IsValidStatus("pending"))
}

func TestTransitionTable(t *testing.T) {
	// reserved and canceled flip freely, missing rows can be created
	assert.True(t, CanAccept(""))
	assert.True(t, CanAccept(StatusReserved))
	assert.True(t, CanAccept(StatusCanceled))
	assert.True(t, CanDeny(""))
	assert.True(t, CanDeny(StatusReserved))
	assert.True(t, CanDeny(StatusCanceled))

	// attended / no_show are terminal for the invitation workflow
	assert.False(t, CanAccept(StatusAttended))
	assert.False(t, CanAccept(StatusNoShow))
	assert.False(t, CanDeny(StatusAttended))
	assert.False(t, CanDeny(StatusNoShow))
}
