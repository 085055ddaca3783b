package cli

import (
	"io"

	logging "github.com/op/go-logging"
)

const logFormat = `%{time:15:04:05.000} %{level:.4s} %{module}: %{message}`

// NewLogger configures the process-wide logging backend to write to w and
// returns the logger for module. Debug messages are shown when debug is set;
// otherwise only warnings and above.
func NewLogger(w io.Writer, module string, debug bool) *logging.Logger {
	formatter := logging.MustStringFormatter(logFormat)
	backend := logging.AddModuleLevel(
		logging.NewBackendFormatter(logging.NewLogBackend(w, "", 0), formatter),
	)
	if debug {
		backend.SetLevel(logging.DEBUG, "")
	} else {
		backend.SetLevel(logging.WARNING, "")
	}
	logging.SetBackend(backend)

	logger := logging.MustGetLogger(module)
	logger.Debug("Loglevel set to debug")
	return logger
}
