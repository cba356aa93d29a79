package wallpaper

// State is the engine lifecycle as seen by the wallpaper task.
type State uint8

const (
	// Hidden is the initial state: nothing is drawn and no clock updates are requested.
	Hidden State = iota
	Visible
	// Drawing is held only for the duration of one redraw.
	Drawing
	// Destroyed is terminal.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Visible:
		return "visible"
	case Drawing:
		return "drawing"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Stats counts what the task has done since creation.
type Stats struct {
	Draws  int
	Scales int
	// Skips counts redraws abandoned because the surface could not be locked.
	Skips int
	// Failures counts redraws aborted by an image or scaling error.
	Failures int
}
