package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusDialog_OpenResetsState(t *testing.T) {
	d := NewStatusDialog()

	d.Open("Installing Extension")
	d.Fail("boom", NoAutoClose)
	require.Equal(t, StatusError, d.Code)

	// Reopening for the next operation must not leak the previous result.
	d.Open("Updating alpha")
	assert.True(t, d.Visible)
	assert.Equal(t, StatusPending, d.Code)
	assert.Equal(t, "", d.Result)
	assert.Equal(t, "Updating alpha", d.Title)
}

func TestStatusDialog_NoAutoCloseReturnsNilCmd(t *testing.T) {
	d := NewStatusDialog()
	d.Open("Installing Extension")

	cmd := d.Fail("clone failed", NoAutoClose)
	assert.Nil(t, cmd)
	assert.True(t, d.Visible)
	assert.Equal(t, StatusError, d.Code)
	assert.Equal(t, "clone failed", d.Result)
}

func TestStatusDialog_SuccessSchedulesAutoClose(t *testing.T) {
	d := NewStatusDialog()
	d.Open("Installing Extension")

	cmd := d.Succeed("installed alpha", statusAutoClose)
	require.NotNil(t, cmd)

	msg, ok := cmd().(statusDialogCloseMsg)
	require.True(t, ok)

	d.HandleCloseTick(msg)
	assert.False(t, d.Visible)
}

func TestStatusDialog_StaleCloseTickIgnored(t *testing.T) {
	d := NewStatusDialog()
	d.Open("Installing Extension")

	cmd := d.Succeed("installed alpha", statusAutoClose)
	require.NotNil(t, cmd)
	staleTick := cmd().(statusDialogCloseMsg)

	// The dialog was reused before the tick arrived.
	d.Open("Updating beta")

	d.HandleCloseTick(staleTick)
	assert.True(t, d.Visible, "a tick scheduled for an earlier state must not close the reused dialog")
	assert.Equal(t, "Updating beta", d.Title)
}

func TestStatusDialog_CloseResetsForReuse(t *testing.T) {
	d := NewStatusDialog()
	d.Open("Installing Extension")
	d.Fail("boom", NoAutoClose)

	d.Close()
	assert.False(t, d.Visible)
	assert.Equal(t, StatusPending, d.Code)
	assert.Equal(t, "", d.Result)
	assert.Equal(t, "", d.Title)
}
