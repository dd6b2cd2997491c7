// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"fmt"
	"runtime/trace"
	"strconv"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Span records one page response from start to finish.
type Span struct {
	task    *trace.Task
	metric  *servertiming.Metric
	started time.Time
	elapsed time.Duration

	// Route is the matched ServeMux pattern, such as "GET /{$}".
	Route      string
	RequestID  string
	Method     string
	URL        string
	StatusCode int
	Size       int
	CacheHit   bool
	Error      error
}

// ServerTimingName is the metric name of the span in the Server-Timing
// header. The URL is unpadded base64 so the name stays a valid token.
func (span Span) ServerTimingName() string {
	return "page$" + span.Method + "$" + base64.RawURLEncoding.EncodeToString([]byte(span.URL))
}

// Begin starts the span. The returned context carries a runtime/trace task,
// and when ctx holds a Server-Timing header the span adds a metric to it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.started = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http.page")

	if h := servertiming.FromContext(ctx); h != nil {
		span.metric = h.NewMetric(span.ServerTimingName())
		span.metric.Desc = span.Route
		span.metric.Extra = map[string]string{
			"start": strconv.FormatInt(span.started.UnixMilli(), 10),
		}
	}

	return ctx
}

// End stops the span. Only the first call has an effect.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.elapsed = time.Since(span.started)
	span.task.End()
	span.task = nil

	if span.metric != nil {
		span.metric.Duration = span.elapsed
	}
}

// Duration is zero until End is called.
func (span Span) Duration() time.Duration {
	return span.elapsed
}

// Log writes the span as one debug event.
func (span Span) Log() {
	span.write(log.Debug())
}

func (span Span) write(event *zerolog.Event) {
	event.Str("sys", "http").
		Str("method", span.Method).
		Str("url", span.URL).
		Str("route", span.Route).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.elapsed).
		Str("request_id", span.RequestID).
		Bool("cache_hit", span.CacheHit).
		AnErr("error", span.Error).
		Send()
}

var sizeUnits = []string{"K", "M", "G"}

// humanizeSize formats a byte count with a binary unit suffix.
func humanizeSize(n int) string {
	if n < 1024 {
		return strconv.Itoa(n)
	}

	size := float64(n) / 1024

	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	return fmt.Sprintf("%.2f%s", size, sizeUnits[unit])
}
