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
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireTimingPacket asserts the packet looks like `<name>:<ms>|<suffix>`
// with a non-negative millisecond value.
func requireTimingPacket(t *testing.T, packet, name, suffix string) {
	t.Helper()

	require.True(t, strings.HasPrefix(packet, name+":"), "packet %#v", packet)
	require.True(t, strings.HasSuffix(packet, suffix), "packet %#v", packet)

	value := strings.TrimSuffix(strings.TrimPrefix(packet, name+":"), suffix)
	ms, err := strconv.ParseInt(value, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ms, int64(0))
}

func TestTimerStop(t *testing.T) {
	client, transport := newTestClient(t)

	timer := client.NewTimer("op")
	require.NoError(t, timer.Stop())

	batches := transport.recorded()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	requireTimingPacket(t, batches[0][0], "op", "|ms")
}

func TestDistributionTimerStop(t *testing.T) {
	client, transport := newTestClient(t)

	timer := client.NewDistributionTimer("op")
	require.NoError(t, timer.Stop())

	batches := transport.recorded()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 1)
	requireTimingPacket(t, batches[0][0], "op", "|d")
}

func TestTimeEmitsOnSuccess(t *testing.T) {
	client, transport := newTestClient(t)

	called := false
	require.NoError(t, client.Time("op", func() error {
		called = true
		return nil
	}))

	assert.True(t, called)
	batches := transport.recorded()
	require.Len(t, batches, 1)
	requireTimingPacket(t, batches[0][0], "op", "|ms")
}

func TestTimeEmitsOnError(t *testing.T) {
	client, transport := newTestClient(t)

	boom := errors.New("boom")
	err := client.Time("op", func() error { return boom })

	// the block's error comes back unchanged and the sample is still sent
	assert.Equal(t, boom, err)
	batches := transport.recorded()
	require.Len(t, batches, 1)
	requireTimingPacket(t, batches[0][0], "op", "|ms")
}

func TestTimeDistribution(t *testing.T) {
	client, transport := newTestClient(t)

	require.NoError(t, client.TimeDistribution("op", func() error { return nil }))

	batches := transport.recorded()
	require.Len(t, batches, 1)
	requireTimingPacket(t, batches[0][0], "op", "|d")
}

func TestTimerForwardsOptions(t *testing.T) {
	client, transport := newTestClient(t)

	timer := client.NewTimer("op", Tags(StringTag("route", "home")))
	require.NoError(t, timer.Stop())

	batches := transport.recorded()
	require.Len(t, batches, 1)
	assert.Contains(t, batches[0][0], "|#route:home")
}
