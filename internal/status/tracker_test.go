package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeAutoClears(t *testing.T) {
	tracker := NewTracker(30 * time.Millisecond)
	tracker.Set("projects", "saved my_section")

	notice, ok := tracker.Get("projects")
	require.True(t, ok)
	assert.Equal(t, "saved my_section", notice.Message)

	assert.Eventually(t, func() bool {
		_, ok := tracker.Get("projects")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestReplacementRestartsClear(t *testing.T) {
	tracker := NewTracker(40 * time.Millisecond)
	tracker.Set("projects", "first")
	time.Sleep(25 * time.Millisecond)
	tracker.Set("projects", "second")

	// Past the first notice's deadline the replacement must still be active.
	time.Sleep(25 * time.Millisecond)
	notice, ok := tracker.Get("projects")
	require.True(t, ok)
	assert.Equal(t, "second", notice.Message)
}

func TestScopesAreIndependent(t *testing.T) {
	tracker := NewTracker(time.Minute)
	tracker.Set("projects", "saved")
	tracker.Set("clipboard", "copied")

	assert.Len(t, tracker.Active(), 2)

	_, ok := tracker.Get("projects")
	assert.True(t, ok)
	_, ok = tracker.Get("clipboard")
	assert.True(t, ok)
	_, ok = tracker.Get("other")
	assert.False(t, ok)
}
