// Package logging wires slog for the service: JSON to stdout for the
// platform log collector, with errors additionally batched to Postgres
// once the database is up (see PGHandler).
package logging

import (
	"log/slog"
	"os"
)

// Setup installs the stdout JSON logger as the process default. The
// Postgres sink is attached later in main, after the DB connects.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
