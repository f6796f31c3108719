package statsd

/*

Copyright (c) 2023 Charles Lirsac

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugTransportLogsAndForwards(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := &recordingTransport{}

	transport := NewDebugTransport(logger, slog.LevelDebug, inner)

	require.NoError(t, transport.Emit([]string{"foo:1|c", "bar:2|g"}))

	logged := buf.String()
	assert.Contains(t, logged, "> foo:1|c")
	assert.Contains(t, logged, "> bar:2|g")
	assert.Equal(t, [][]string{{"foo:1|c", "bar:2|g"}}, inner.recorded())

	require.NoError(t, transport.Close())
	assert.True(t, inner.closed)
}

func TestDebugTransportForwardsEmptyBatches(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &recordingTransport{}

	transport := NewDebugTransport(logger, slog.LevelInfo, inner)

	// a sampled-out call still reaches the wrapped transport
	require.NoError(t, transport.Emit(nil))

	assert.Empty(t, buf.String())
	assert.Equal(t, [][]string{{}}, inner.recorded())
}

func TestDebugTransportWithoutInner(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	transport := NewDebugTransport(logger, slog.LevelInfo, nil)

	require.NoError(t, transport.Emit([]string{"foo:1|c"}))
	require.NoError(t, transport.Close())

	assert.Equal(t, 1, strings.Count(buf.String(), "> foo:1|c"))
}

func TestDebugTransportLevel(t *testing.T) {
	var buf bytes.Buffer
	// handler only passes Info and above, transport logs at Debug
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	transport := NewDebugTransport(logger, slog.LevelDebug, nil)

	require.NoError(t, transport.Emit([]string{"foo:1|c"}))
	assert.Empty(t, buf.String())
}
