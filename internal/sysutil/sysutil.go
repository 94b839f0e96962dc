// Package sysutil holds small process-level helpers used by the entrypoint.
package sysutil

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SetLogLevel applies lvl to the global zerolog level. "warning" is accepted
// as an alias for "warn"; empty or unknown values fall back to info.
func SetLogLevel(lvl string) {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	parsed, err := zerolog.ParseLevel(s)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// PrettyWriter wraps out in a human-readable console writer for development
// logs. Production deployments keep the default JSON output.
func PrettyWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}
