package logging

import (
	"log/slog"
	"os"
)

// Setup installs the global JSON slog logger writing to stdout. Once the
// database is up, main swaps the default for a MultiHandler that adds the
// system_logs sink on top of this one.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
