/*
Package statsd implements a statsd client with pluggable wire formats and
transports.

The client translates typed metric calls (counters, gauges, timings, sets,
histograms, distributions) into statsd line-protocol packets and hands them
to a Transport. Architecture:

  - Sample is a single metric observation: name, type code, pre-formatted
    value and optional tags.
  - Serializer renders one Sample into one wire line. Three dialects are
    provided, differing in how tags are encoded: Dogstatsd (the default),
    Telegraf and Graphite.
  - Client owns the namespace, default tags, default sample rate and the
    serializer. It makes exactly one sampling decision per call, so
    multi-packet metrics (such as setting a gauge to a negative value)
    are sampled as a unit.
  - Transport delivers batches of formatted packets. UDPTransport batches
    packets into newline-joined datagrams under a configurable size budget.
    AsyncTransport decorates any transport with a background send queue.
    DebugTransport logs packets and optionally forwards them.

Metric delivery must never break the instrumented application: socket-level
send failures are logged and swallowed. Programmer errors (sample rate
outside [0, 1], unknown metric type, tag grammar violations, emitting
through a closed transport) are returned synchronously.

	transport := statsd.NewUDPTransport("statsd.local:8125")
	client, err := statsd.NewClient(transport,
		statsd.Namespace("app"),
		statsd.DefaultTags(statsd.StringTag("env", "production")),
	)
	if err != nil {
		...
	}
	defer transport.Close()

	client.Increment("requests", 1, statsd.Tags(statsd.StringTag("route", "home")))
*/
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

import "time"

// Default settings
const (
	// DefaultAddr is the standard statsd server address.
	DefaultAddr = "localhost:8125"

	// DefaultMaxPacketSize is a safe per-datagram payload budget for most
	// intranet setups. Lower it if the collector is reached over the
	// internet, raise it if the network supports jumbo frames.
	DefaultMaxPacketSize = 1432

	// DefaultSampleRate forwards every metric.
	DefaultSampleRate = 1.0

	DefaultLogPrefix = "[STATSD] "

	DefaultQueueCapacity  = 10
	DefaultReportInterval = time.Minute
)

// Logger is the minimal logging interface used to report delivery errors
// and lost packets. It allows plugging 3rd party loggers (e.g.
// github.com/sirupsen/logrus) into the transports.
type Logger interface {
	Printf(fmt string, args ...interface{})
}
