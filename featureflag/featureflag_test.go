package featureflag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeatureFlag(t *testing.T) {
	f := New([]string{" show_ids", "DISABLE_JITTER ", "", "feature1"})

	t.Run("run if enabled", func(t *testing.T) {
		var runShowIDs bool
		f.IfSet(FlagShowIDs, func() {
			runShowIDs = true
		})
		require.True(t, runShowIDs)

		var runOverlay bool
		f.IfSet(FlagDisableTreeOverlay, func() {
			runOverlay = true
		})
		require.False(t, runOverlay)
	})

	t.Run("run if disabled", func(t *testing.T) {
		var runJitter bool
		f.IfNotSet(FlagDisableJitter, func() {
			runJitter = true
		})
		require.False(t, runJitter)

		var runOverlay bool
		f.IfNotSet(FlagDisableTreeOverlay, func() {
			runOverlay = true
		})
		require.True(t, runOverlay)
	})

	t.Run("normalized names", func(t *testing.T) {
		require.Len(t, f, 3)
		require.True(t, f.IsSet(FlagShowIDs))
		require.True(t, f.IsSet(FlagDisableJitter))
	})

	t.Run("unknown flags", func(t *testing.T) {
		require.Equal(t, []string{"FEATURE1"}, f.Unknown())
		require.Empty(t, New(nil).Unknown())
	})
}
