package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	t.Setenv("ENTRYPOINT_TEST_VAR", "captured")

	snapshot := Capture()
	assert.Equal(t, "captured", snapshot.Get("ENTRYPOINT_TEST_VAR"))
	require.NotEmpty(t, snapshot)
}

func TestCaptureIsACopy(t *testing.T) {
	t.Setenv("ENTRYPOINT_TEST_VAR", "before")
	snapshot := Capture()

	t.Setenv("ENTRYPOINT_TEST_VAR", "after")
	assert.Equal(t, "before", snapshot.Get("ENTRYPOINT_TEST_VAR"))
}

func TestGetMissing(t *testing.T) {
	snapshot := Snapshot{"PRESENT": "yes"}
	assert.Equal(t, "", snapshot.Get("ABSENT"))
}
