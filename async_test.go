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
	"testing"
	"time"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestAsyncForwardsBatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	inner := &recordingTransport{}
	transport := NewAsyncTransport(inner, ReportInterval(0))

	require.NoError(t, transport.Emit([]string{"foo:1|c"}))

	require.Eventually(t, func() bool {
		return len(inner.recorded()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, [][]string{{"foo:1|c"}}, inner.recorded())

	require.NoError(t, transport.Close())
}

func TestAsyncClientEndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	inner := &recordingTransport{}
	transport := NewAsyncTransport(inner)

	client, err := NewClient(transport, Namespace("app"))
	require.NoError(t, err)

	require.NoError(t, client.Increment("foo", 1))
	require.NoError(t, client.Gauge("bar", -5))
	require.NoError(t, transport.Close())

	// Close drains the queue before shutting down the inner transport.
	assert.Equal(t, [][]string{
		{"app.foo:1|c"},
		{"app.bar:0|g", "app.bar:-5|g"},
	}, inner.recorded())
	assert.True(t, inner.closed)
}

func TestAsyncEmitAfterCloseFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	transport := NewAsyncTransport(&recordingTransport{})
	require.NoError(t, transport.Close())

	err := transport.Emit([]string{"foo:1|c"})
	require.Error(t, err)
	assert.True(t, errorx.IsOfType(err, ErrTransportClosed))

	// second close is a no-op
	require.NoError(t, transport.Close())
}

// blockingTransport parks inside Emit until released, so tests can fill
// the async queue deterministically.
type blockingTransport struct {
	recordingTransport
	entered chan struct{}
	release chan struct{}
}

func (t *blockingTransport) Emit(packets []string) error {
	t.entered <- struct{}{}
	<-t.release
	return t.recordingTransport.Emit(packets)
}

func TestAsyncQueueOverflowCountsLostBatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	inner := &blockingTransport{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
	logger := &captureLogger{}
	transport := NewAsyncTransport(inner,
		QueueCapacity(1),
		ReportInterval(50*time.Millisecond),
		AsyncLogger(logger))

	// first batch is picked up by the send loop, which parks inside the
	// inner transport
	require.NoError(t, transport.Emit([]string{"a:1|c"}))
	<-inner.entered

	// second batch fills the queue, third overflows and is dropped
	require.NoError(t, transport.Emit([]string{"b:1|c"}))
	require.NoError(t, transport.Emit([]string{"c:1|c"}))
	assert.Equal(t, int64(1), transport.GetLostPackets())

	require.Eventually(t, func() bool {
		msgs := logger.messages()
		return len(msgs) > 0 && msgs[0] == "1 batches lost (queue overflow)"
	}, time.Second, time.Millisecond)

	close(inner.release)
	<-inner.entered
	require.NoError(t, transport.Close())

	assert.Equal(t, [][]string{
		{"a:1|c"},
		{"b:1|c"},
	}, inner.recorded())
}
