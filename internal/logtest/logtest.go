// Package logtest provides a log.Logger for testing.
package logtest

import (
	"testing"

	"github.com/charmbracelet/log"
	"go.abhg.dev/gs/internal/ioutil"
)

// New builds a logger that writes messages to the given testing.TB.
func New(t testing.TB) *log.Logger {
	logger := log.New(ioutil.TestLogWriter(t, ""))
	logger.SetLevel(log.DebugLevel)
	return logger
}
