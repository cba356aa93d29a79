package hal

import "fmt"

// LifecycleKind identifies a host lifecycle callback.
type LifecycleKind uint8

const (
	LifecycleCreate LifecycleKind = iota + 1
	LifecycleVisibility
	LifecycleSurfaceChanged
	LifecycleSurfaceDestroyed
	LifecycleOffsets
	LifecycleDestroy
)

func (k LifecycleKind) String() string {
	switch k {
	case LifecycleCreate:
		return "create"
	case LifecycleVisibility:
		return "visibility"
	case LifecycleSurfaceChanged:
		return "surface_changed"
	case LifecycleSurfaceDestroyed:
		return "surface_destroyed"
	case LifecycleOffsets:
		return "offsets"
	case LifecycleDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// LifecycleEvent is one host callback translated into plain data.
//
// Only the fields relevant to Kind are set.
type LifecycleEvent struct {
	Kind    LifecycleKind
	Visible bool
	Width   int
	Height  int
	XOffset float32
	YOffset float32
}

func (e LifecycleEvent) String() string {
	switch e.Kind {
	case LifecycleVisibility:
		return fmt.Sprintf("%s(%t)", e.Kind, e.Visible)
	case LifecycleSurfaceChanged:
		return fmt.Sprintf("%s(%dx%d)", e.Kind, e.Width, e.Height)
	case LifecycleOffsets:
		return fmt.Sprintf("%s(%.2f,%.2f)", e.Kind, e.XOffset, e.YOffset)
	default:
		return e.Kind.String()
	}
}

// Visibility returns a visibility change event.
func Visibility(visible bool) LifecycleEvent {
	return LifecycleEvent{Kind: LifecycleVisibility, Visible: visible}
}

// SurfaceChanged returns a surface size change event.
func SurfaceChanged(width, height int) LifecycleEvent {
	return LifecycleEvent{Kind: LifecycleSurfaceChanged, Width: width, Height: height}
}

// Offsets returns a home-screen paging offset event.
func Offsets(x, y float32) LifecycleEvent {
	return LifecycleEvent{Kind: LifecycleOffsets, XOffset: x, YOffset: y}
}
