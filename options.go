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

// ClientOptions are the client settings, fixed at construction and
// read-only thereafter.
type ClientOptions struct {
	// Namespace is prepended to every metric name with a `.` separator.
	//
	// If not set, metric names are sent as-is.
	Namespace string

	// DefaultTags is a list of tags applied to every metric. Per-call tags
	// are overlaid on top: on name collision the per-call value wins while
	// keeping the default tag's position.
	DefaultTags []Tag

	// SampleRate is the default sampling rate applied to all metrics.
	//
	// Must be in [0, 1]: 1 forwards every metric, 0 forwards none.
	// Defaults to 1.
	SampleRate float64

	// Serializer selects the wire dialect. Defaults to Dogstatsd.
	Serializer Serializer
}

// Option is a client configuration knob.
type Option func(c *ClientOptions)

// Namespace sets the prefix joined to every metric name with a `.`
// separator, e.g. Namespace("app") turns `requests` into `app.requests`.
//
// Usually metrics are namespaced with the application name, which lets
// shared libraries record metrics under the host application's name.
func Namespace(namespace string) Option {
	return func(c *ClientOptions) {
		c.Namespace = namespace
	}
}

// DefaultTags defines a list of tags to be applied to every metric.
func DefaultTags(tags ...Tag) Option {
	return func(c *ClientOptions) {
		c.DefaultTags = tags
	}
}

// SampleRate sets the default sampling rate, the probability in [0, 1]
// that any given metric call is actually forwarded.
//
// Default value is 1 (forward everything).
func SampleRate(rate float64) Option {
	return func(c *ClientOptions) {
		c.SampleRate = rate
	}
}

// Dialect selects the wire format used to serialize metrics.
//
// Three dialects are predefined: Dogstatsd (the default), Telegraf and
// Graphite.
func Dialect(serializer Serializer) Option {
	return func(c *ClientOptions) {
		c.Serializer = serializer
	}
}

type sampleOptions struct {
	tags    []Tag
	rate    float64
	rateSet bool
}

// SampleOption adjusts a single metric call.
type SampleOption func(o *sampleOptions)

// Rate overrides the client's sample rate for one call. Must be in [0, 1].
func Rate(rate float64) SampleOption {
	return func(o *sampleOptions) {
		o.rate = rate
		o.rateSet = true
	}
}

// Tags attaches tags to one call. They are merged over the client's
// default tags, winning on name collision.
func Tags(tags ...Tag) SampleOption {
	return func(o *sampleOptions) {
		o.tags = append(o.tags, tags...)
	}
}

// TransportOptions are the UDP transport settings.
type TransportOptions struct {
	// MaxPacketSize is the per-datagram payload budget: packets are
	// buffered and joined with newlines until the next packet would
	// overflow it. Set to 0 to disable buffering and send one datagram
	// per packet.
	//
	// Default value is DefaultMaxPacketSize.
	MaxPacketSize int

	// Logger is used to report delivery errors, which are swallowed
	// rather than returned so metrics never break the caller.
	//
	// If not set, a default stderr logger with prefix `[STATSD] ` is used.
	Logger Logger
}

// TransportOption is a UDP transport configuration knob.
type TransportOption func(o *TransportOptions)

// MaxPacketSize controls the per-datagram payload budget.
//
// Safe value is 1432 bytes; if your network supports jumbo frames this
// value could be raised up to 8960 bytes. Zero disables buffering.
func MaxPacketSize(packetSize int) TransportOption {
	return func(o *TransportOptions) {
		o.MaxPacketSize = packetSize
	}
}

// TransportLogger sets the logger used to report delivery errors.
func TransportLogger(logger Logger) TransportOption {
	return func(o *TransportOptions) {
		o.Logger = logger
	}
}

// AsyncOptions are the async transport settings.
type AsyncOptions struct {
	// QueueCapacity bounds the number of batches waiting for the send
	// goroutine. When the queue is full batches are dropped and counted
	// as lost.
	//
	// Default value is DefaultQueueCapacity.
	QueueCapacity int

	// ReportInterval instructs the transport to report the number of
	// batches lost each interval via Logger. Zero disables reporting.
	//
	// Default value is DefaultReportInterval.
	ReportInterval time.Duration

	// Logger is used to report delivery errors and lost batches.
	//
	// If not set, a default stderr logger with prefix `[STATSD] ` is used.
	Logger Logger
}

// AsyncOption is an async transport configuration knob.
type AsyncOption func(o *AsyncOptions)

// QueueCapacity bounds the async transport's pending batch queue.
func QueueCapacity(capacity int) AsyncOption {
	return func(o *AsyncOptions) {
		o.QueueCapacity = capacity
	}
}

// ReportInterval controls how often lost batches are reported via the
// logger. Zero disables reporting.
func ReportInterval(interval time.Duration) AsyncOption {
	return func(o *AsyncOptions) {
		o.ReportInterval = interval
	}
}

// AsyncLogger sets the logger used to report delivery errors and lost
// batches.
func AsyncLogger(logger Logger) AsyncOption {
	return func(o *AsyncOptions) {
		o.Logger = logger
	}
}
