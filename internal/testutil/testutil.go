// Package testutil holds helpers shared across package tests.
package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
