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

// MetricType is a statsd metric type code as it appears on the wire.
type MetricType string

// Known metric types
const (
	Counter      MetricType = "c"
	Gauge        MetricType = "g"
	Timing       MetricType = "ms"
	Set          MetricType = "s"
	Histogram    MetricType = "h"
	Distribution MetricType = "d"
)

func (t MetricType) valid() bool {
	switch t {
	case Counter, Gauge, Timing, Set, Histogram, Distribution:
		return true
	}
	return false
}

// Sample is a single metric observation prior to wire serialization.
//
// Value is expected to be already formatted according to the numeric rules
// of the metric type; the typed Client methods take care of that. Samples
// are constructed fresh per emission and never mutated afterwards.
type Sample struct {
	// Name is the metric name. The client's namespace, if any, is
	// prepended at serialization time.
	Name string

	// Type is one of the known statsd type codes. Unknown codes fail
	// serialization with ErrInvalidMetricType.
	Type MetricType

	// Value is the pre-formatted metric value.
	Value string

	// Tags are merged with the client's default tags at serialization
	// time; on name collision the sample's value wins.
	Tags []Tag
}
