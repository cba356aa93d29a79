package app

import (
	"fmt"
	"strings"

	"bitday/core/kernel"

	"go.uber.org/zap"
)

func installPanicHandler(k *kernel.Kernel, log *zap.Logger) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		var stack []string
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line != "" {
				stack = append(stack, line)
			}
		}
		log.Error("task panic",
			zap.Uint8("task", uint8(info.TaskID)),
			zap.String("panic", fmt.Sprint(info.Value)),
			zap.Strings("stack", stack),
		)
	})
}
