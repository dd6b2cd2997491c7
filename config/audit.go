// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// request log fields folded into the message by the console writer
var requestLogFields = []string{"sys", "method", "status_code", "url", "route", "request_id"}

// setupAudit configures the global logger from the log section.
func (cfg *ServerConfig) setupAudit() {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.Log.Level); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	if cfg.Development.InDevelopment {
		level = zerolog.DebugLevel
	}

	zerolog.SetGlobalLevel(level)

	log.Logger = log.Output(zerolog.MultiLevelWriter(cfg.logWriters()...))
}

// logWriters opens every configured output. Stderr is used when none is
// configured. Files that cannot be opened are reported and skipped.
func (cfg *ServerConfig) logWriters() []io.Writer {
	if len(cfg.Log.Outputs) == 0 {
		return []io.Writer{ConsoleWriter(os.Stderr)}
	}

	writers := make([]io.Writer, 0, len(cfg.Log.Outputs))

	for _, output := range cfg.Log.Outputs {
		f, err := openLogOutput(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

			continue
		}

		if cfg.Log.Format == "json" {
			writers = append(writers, f)
		} else {
			writers = append(writers, ConsoleWriter(f))
		}
	}

	return writers
}

func openLogOutput(output string) (*os.File, error) {
	switch output {
	case "/dev/stdout":
		return os.Stdout, nil
	case "/dev/stderr":
		return os.Stderr, nil
	}

	return os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
}

// ConsoleWriter returns a zerolog console writer for f. On a terminal the
// output is colored and request logs are condensed to one line.
func ConsoleWriter(f *os.File) io.Writer {
	tty := isatty.IsTerminal(f.Fd())

	w := zerolog.ConsoleWriter{Out: f, NoColor: !tty, TimeFormat: time.DateTime}
	if tty {
		w.FormatPrepare = compactRequestLine
	}

	return w
}

// compactRequestLine rewrites an audit span event as
// "STATUS METHOD URL [ROUTE]" and drops the folded fields.
func compactRequestLine(m map[string]any) error {
	if m["sys"] != "http" {
		return nil
	}

	m[zerolog.MessageFieldName] = fmt.Sprintf("%v %-5v %v [%v]", m["status_code"], m["method"], m["url"], m["route"])

	for _, field := range requestLogFields {
		delete(m, field)
	}

	return nil
}
