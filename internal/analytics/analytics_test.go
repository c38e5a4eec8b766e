package analytics

import (
	"fmt"
	"testing"
	"time"

	"portfolio3d/internal/vision"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ vision.Tracker = (*Tracker)(nil)

func TestTrackInteraction(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tr := New(func() time.Time { return at })

	props := map[string]any{"sceneContext": "main"}
	require.NoError(t, tr.TrackInteraction("vision", "activate", props))
	props["sceneContext"] = "mutated"

	data := tr.Data()
	require.Equal(t, 1, data.TotalInteractions)
	got := data.Interactions[0]
	assert.Equal(t, at, got.Timestamp)
	assert.Equal(t, "vision", got.Category)
	assert.Equal(t, "activate", got.Action)
	assert.Equal(t, "main", got.Props["sceneContext"])
}

func TestTrackerKeepsMostRecent(t *testing.T) {
	tr := New(nil)
	for i := 0; i < MaxInteractions+25; i++ {
		require.NoError(t, tr.TrackInteraction("nav", fmt.Sprint(i), nil))
	}
	data := tr.Data()
	assert.Equal(t, MaxInteractions, data.TotalInteractions)
	assert.Equal(t, "25", data.Interactions[0].Action)
	assert.Equal(t, fmt.Sprint(MaxInteractions+24), data.Interactions[MaxInteractions-1].Action)
}

func TestTrackerRejectsEmptyCategoryAndClears(t *testing.T) {
	tr := New(nil)
	assert.ErrorIs(t, tr.TrackInteraction("", "x", nil), ErrEmptyCategory)
	require.NoError(t, tr.TrackInteraction("inventory", "add_item", nil))
	tr.Clear()
	assert.Zero(t, tr.Data().TotalInteractions)
}
