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
	"context"
	"log/slog"
)

// DebugTransport logs every packet and optionally forwards the batch to a
// wrapped transport. Useful during development to see exactly what goes on
// the wire.
type DebugTransport struct {
	logger *slog.Logger
	level  slog.Level
	inner  Transport
}

var _ Transport = (*DebugTransport)(nil)

// NewDebugTransport creates a logging transport. inner may be nil, in
// which case packets are logged and dropped. A nil logger falls back to
// slog.Default.
func NewDebugTransport(logger *slog.Logger, level slog.Level, inner Transport) *DebugTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &DebugTransport{logger: logger, level: level, inner: inner}
}

// Emit logs each packet at the configured level and forwards the batch,
// including empty ones, to the wrapped transport.
func (t *DebugTransport) Emit(packets []string) error {
	for _, packet := range packets {
		t.logger.Log(context.Background(), t.level, "> "+packet)
	}
	if t.inner != nil {
		return t.inner.Emit(packets)
	}
	return nil
}

// Close closes the wrapped transport, if any.
func (t *DebugTransport) Close() error {
	if t.inner != nil {
		return t.inner.Close()
	}
	return nil
}
