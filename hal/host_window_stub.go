//go:build !cgo

package hal

import (
	"errors"

	"go.uber.org/zap"
)

func RunWindow(_ *zap.Logger, _ HostConfig, _ AppFactory) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
