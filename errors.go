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

import "github.com/joomcode/errorx"

// Errors is the namespace for all errors returned by this package.
//
// Only configuration mistakes and protocol violations are surfaced through
// these types; delivery failures are logged and swallowed by transports.
var Errors = errorx.NewNamespace("statsd")

var (
	// ErrInvalidSampleRate is returned when a sample rate, at construction
	// or per call, falls outside [0, 1].
	ErrInvalidSampleRate = Errors.NewType("invalid_sample_rate")

	// ErrInvalidMetricType is returned when a Sample carries a type code
	// outside the six known statsd codes.
	ErrInvalidMetricType = Errors.NewType("invalid_metric_type")

	// ErrInvalidTags is returned by serializers whose grammar rejects the
	// given tags, e.g. a value-less tag under Telegraf or Graphite.
	ErrInvalidTags = Errors.NewType("invalid_tags")

	// ErrInvalidPacket is returned for packets that cannot be put on the
	// wire, i.e. packets containing non-ASCII bytes.
	ErrInvalidPacket = Errors.NewType("invalid_packet")

	// ErrTransportClosed is returned when emitting through a transport
	// after it was closed.
	ErrTransportClosed = Errors.NewType("transport_closed")
)
