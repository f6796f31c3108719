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
	"math/rand"
	"strconv"
	"time"
)

// Client is the statsd client core: it translates typed metric calls into
// samples, makes one sampling decision per call, serializes the samples
// with the configured dialect and forwards the batch to the transport.
//
// All configuration is read-only after construction, so a Client is safe
// for concurrent use; the transport is the only synchronization boundary
// and may be shared between clients.
type Client struct {
	transport   Transport
	namespace   string
	defaultTags []Tag
	sampleRate  float64
	serializer  Serializer

	// sampling draw in [0, 1), swapped out in tests
	random func() float64
}

// NewClient creates a client emitting through the given transport.
//
// Returns ErrInvalidSampleRate if the configured default sample rate is
// outside [0, 1].
func NewClient(transport Transport, options ...Option) (*Client, error) {
	opts := ClientOptions{
		SampleRate: DefaultSampleRate,
		Serializer: Dogstatsd,
	}
	for _, option := range options {
		option(&opts)
	}

	if opts.SampleRate < 0 || opts.SampleRate > 1 {
		return nil, ErrInvalidSampleRate.New("sample rate must be between 0 and 1, got %v", opts.SampleRate)
	}

	return &Client{
		transport:   transport,
		namespace:   opts.Namespace,
		defaultTags: opts.DefaultTags,
		sampleRate:  opts.SampleRate,
		serializer:  opts.Serializer,
		random:      rand.Float64,
	}, nil
}

// With returns a copy of the client with the given options applied on top
// of the current configuration. The transport is shared with the original.
func (c *Client) With(options ...Option) (*Client, error) {
	opts := ClientOptions{
		Namespace:   c.namespace,
		DefaultTags: c.defaultTags,
		SampleRate:  c.sampleRate,
		Serializer:  c.serializer,
	}
	for _, option := range options {
		option(&opts)
	}

	if opts.SampleRate < 0 || opts.SampleRate > 1 {
		return nil, ErrInvalidSampleRate.New("sample rate must be between 0 and 1, got %v", opts.SampleRate)
	}

	return &Client{
		transport:   c.transport,
		namespace:   opts.Namespace,
		defaultTags: opts.DefaultTags,
		sampleRate:  opts.SampleRate,
		serializer:  opts.Serializer,
		random:      c.random,
	}, nil
}

// Emit serializes the samples and forwards them to the transport as one
// batch, under a single sampling decision.
//
// The transport is invoked exactly once per call even when the batch is
// filtered out by sampling, with an empty packet list; wrapping transports
// rely on observing the call.
func (c *Client) Emit(samples []Sample, options ...SampleOption) error {
	return c.emit(applySampleOptions(options), samples...)
}

func (c *Client) emit(o sampleOptions, samples ...Sample) error {
	rate := c.sampleRate
	if o.rateSet {
		rate = o.rate
	}
	if rate < 0 || rate > 1 {
		return ErrInvalidSampleRate.New("sample rate must be between 0 and 1, got %v", rate)
	}

	if rate < 1 && c.random() > rate {
		return c.transport.Emit(nil)
	}

	packets := make([]string, len(samples))
	for i, sample := range samples {
		packet, err := c.serialize(sample, rate, o.tags)
		if err != nil {
			return err
		}
		packets[i] = packet
	}

	return c.transport.Emit(packets)
}

func (c *Client) serialize(sample Sample, rate float64, tags []Tag) (string, error) {
	if !sample.Type.valid() {
		return "", ErrInvalidMetricType.New("invalid metric type %q", string(sample.Type))
	}

	name := sample.Name
	if c.namespace != "" {
		name = c.namespace + "." + name
	}

	merged := mergeTags(mergeTags(c.defaultTags, sample.Tags), tags)

	buf, err := c.serializer.AppendSample(nil, name, sample.Type, sample.Value, rate, merged)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

// Increment increments a counter by the given value.
//
// Often used to note a particular event.
func (c *Client) Increment(name string, value int64, options ...SampleOption) error {
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Counter, Value: strconv.FormatInt(value, 10)})
}

// Decrement decrements a counter by the given value.
func (c *Client) Decrement(name string, value int64, options ...SampleOption) error {
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Counter, Value: strconv.FormatInt(-value, 10)})
}

// Gauge sets the absolute value of a gauge.
//
// Gauges are a constant data type: once set, the value holds until changed
// again. The underlying protocol cannot represent a negative absolute
// value directly, so negative values are sent as a reset-to-zero packet
// followed by the value packet. Both packets share one sampling decision,
// so they are delivered together or not at all.
func (c *Client) Gauge(name string, value float64, options ...SampleOption) error {
	o := applySampleOptions(options)
	formatted := formatFloat(value)

	if value < 0 {
		return c.emit(o,
			Sample{Name: name, Type: Gauge, Value: "0"},
			Sample{Name: name, Type: Gauge, Value: formatted})
	}
	return c.emit(o, Sample{Name: name, Type: Gauge, Value: formatted})
}

// GaugeDelta sends a change for a gauge rather than an absolute value.
//
// Deltas are always sent with a leading '+' or '-'; the '-' takes care of
// itself but the '+' must be added by hand. Not every statsd server
// supports gauge deltas (notably the Datadog agent does not).
func (c *Client) GaugeDelta(name string, value float64, options ...SampleOption) error {
	formatted := formatFloat(value)
	if value >= 0 {
		formatted = "+" + formatted
	}
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Gauge, Value: formatted})
}

// Timing tracks a duration event, the value is in milliseconds.
//
// Timings are usually aggregated by the statsd server receiving them.
func (c *Client) Timing(name string, msec int64, options ...SampleOption) error {
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Timing, Value: strconv.FormatInt(msec, 10)})
}

// TimingDuration tracks a duration event, rounded down to milliseconds.
func (c *Client) TimingDuration(name string, delta time.Duration, options ...SampleOption) error {
	return c.Timing(name, int64(delta/time.Millisecond), options...)
}

// Set adds a unique member to a set. The server counts distinct members
// per flush interval.
func (c *Client) Set(name string, value string, options ...SampleOption) error {
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Set, Value: value})
}

// Histogram sends a histogram sample, aggregated by the receiving server.
//
// Not a standard metric type; not supported by every statsd backend.
func (c *Client) Histogram(name string, value float64, options ...SampleOption) error {
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Histogram, Value: formatFloat(value)})
}

// Distribution sends a distribution sample, aggregated globally by a
// centralized service (e.g. Veneur, Datadog) rather than by an
// intermediary statsd server.
//
// Not a standard metric type; not supported by every statsd backend.
func (c *Client) Distribution(name string, value float64, options ...SampleOption) error {
	return c.emit(applySampleOptions(options),
		Sample{Name: name, Type: Distribution, Value: formatFloat(value)})
}

func applySampleOptions(options []SampleOption) sampleOptions {
	var o sampleOptions
	for _, option := range options {
		option(&o)
	}
	return o
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
