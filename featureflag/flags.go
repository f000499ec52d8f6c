package featureflag

type Flag string

const (
	// Rectangles keep their positions between ticks.
	FlagDisableJitter Flag = "DISABLE_JITTER"

	// The renderer does not draw the index node bounds.
	FlagDisableTreeOverlay Flag = "DISABLE_TREE_OVERLAY"

	// The renderer draws rectangle ids.
	FlagShowIDs Flag = "SHOW_IDS"
)

// Flags lists the declared flags.
var Flags = []Flag{
	FlagDisableJitter,
	FlagDisableTreeOverlay,
	FlagShowIDs,
}

func (f Flag) Known() bool {
	for _, flag := range Flags {
		if f == flag {
			return true
		}
	}
	return false
}
