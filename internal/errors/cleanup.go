// Package errors provides the error kinds and cleanup helpers used across fpgaprof.
package errors

import (
	"io"

	"github.com/rs/zerolog"
)

// DeferClose closes closer and logs a failure as a warning with msg. Files
// and other closers that expose Name() are logged with their path.
func DeferClose(logger zerolog.Logger, closer io.Closer, msg string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		event := logger.Warn().Err(err)
		if named, ok := closer.(interface{ Name() string }); ok {
			event = event.Str("path", named.Name())
		}
		event.Msg(msg)
	}
}
