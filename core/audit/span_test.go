// Copyright 2024 - 2025, the TestPro contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestHumanizeSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{1023, "1023"},
		{1024, "1.00K"},
		{1536, "1.50K"},
		{1 << 20, "1.00M"},
		{2 << 30, "2.00G"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanizeSize(tt.in))
	}
}

func TestSpanEndIsIdempotent(t *testing.T) {
	t.Parallel()

	span := Span{Route: "GET /{$}", Method: "GET", URL: "/"}

	_ = span.Begin(context.Background())
	span.End()

	first := span.Duration()

	span.End()

	assert.Equal(t, first, span.Duration())
}

func TestSpanWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := zerolog.New(&buf)

	span := Span{
		Route:      "GET /{$}",
		RequestID:  "abc",
		Method:     "GET",
		URL:        "/",
		StatusCode: 500,
		Size:       2048,
		Error:      errors.New("boom"),
	}
	span.write(logger.Info())

	line := buf.String()
	assert.Equal(t, "http", gjson.Get(line, "sys").String())
	assert.Equal(t, int64(500), gjson.Get(line, "status_code").Int())
	assert.Equal(t, "2.00K", gjson.Get(line, "len").String())
	assert.Equal(t, "boom", gjson.Get(line, "error").String())
	assert.Equal(t, "GET /{$}", gjson.Get(line, "route").String())
	assert.False(t, gjson.Get(line, "cache_hit").Bool())

	buf.Reset()
	Span{Method: "GET", URL: "/"}.write(logger.Info())
	assert.False(t, gjson.Get(buf.String(), "error").Exists())
}

func TestServerTimingName(t *testing.T) {
	t.Parallel()

	span := Span{Method: "GET", URL: "/"}

	assert.Equal(t, "page$GET$Lw", span.ServerTimingName())
}
