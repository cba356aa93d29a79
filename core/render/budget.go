package render

import (
	"math"

	"github.com/shirou/gopsutil/v3/mem"
)

// FallbackBudget is used when available memory cannot be read.
const FallbackBudget = 64 << 20

// DefaultBudget returns one eighth of the currently available system memory.
func DefaultBudget() int {
	vm, err := mem.VirtualMemory()
	if err != nil || vm == nil || vm.Available == 0 {
		return FallbackBudget
	}
	return budgetFor(vm.Available)
}

func budgetFor(available uint64) int {
	b := available / 8
	if b == 0 {
		return FallbackBudget
	}
	if b > math.MaxInt32 {
		b = math.MaxInt32
	}
	return int(b)
}
