// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
)

// New creates a logger writing to w. Format is "plain" (zerolog's console
// writer) or "json".
func New(w io.Writer, format, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), errors.BadRequest.WithFormat("log level %q is not supported", level)
	}

	switch strings.ToLower(format) {
	case "", "text", "plain":
		// Use zerolog's console writer to write pretty logs
		w = &zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	case "json":
		// Use w as is
	default:
		return zerolog.Nop(), errors.BadRequest.WithFormat("log format %q is not supported", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}
