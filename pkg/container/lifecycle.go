package container

import (
	"errors"
	"io"
	"log/slog"
)

// Initializer is an optional interface a component may implement to run
// additional setup after construction and setter injection have completed.
// A returned error fails the whole build.
type Initializer interface {
	PostInit() error
}

// closeComponents closes every built component implementing io.Closer in
// reverse initialization order, so dependents are closed before their
// dependencies. All close errors are collected.
func closeComponents(initOrder []string, instances map[string]any, logger *slog.Logger) error {
	var errs []error
	for i := len(initOrder) - 1; i >= 0; i-- {
		name := initOrder[i]
		closer, ok := instances[name].(io.Closer)
		if !ok {
			continue
		}

		logger.Debug("Closing component", "name", name)
		if err := closer.Close(); err != nil {
			logger.Error("Error closing component", "name", name, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
