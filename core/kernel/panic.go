package kernel

import "runtime/debug"

// PanicInfo contains details about a recovered panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// SetPanicHandler installs the handler invoked when a task panics.
//
// The panicking task is terminated; other tasks keep running. The handler must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.onPanic = fn
}

// Panicked reports whether any task has panicked.
func (k *Kernel) Panicked() bool {
	return k.panicked
}

func (k *Kernel) triggerPanic(info PanicInfo) {
	k.panicked = true
	info.Stack = debug.Stack()
	if k.onPanic != nil {
		k.onPanic(info)
	}
}
