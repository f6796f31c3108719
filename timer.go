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

// Timer measures wall-clock elapsed time from its creation and emits it as
// a timing (or distribution) sample in milliseconds.
//
//	timer := client.NewTimer("db.query")
//	defer timer.Stop()
type Timer struct {
	client  *Client
	name    string
	start   time.Time
	typ     MetricType
	options []SampleOption
}

// NewTimer starts a timer that reports as a timing metric.
func (c *Client) NewTimer(name string, options ...SampleOption) *Timer {
	return &Timer{
		client:  c,
		name:    name,
		start:   time.Now(),
		typ:     Timing,
		options: options,
	}
}

// NewDistributionTimer starts a timer that reports as a distribution
// metric, for backends that aggregate globally.
func (c *Client) NewDistributionTimer(name string, options ...SampleOption) *Timer {
	timer := c.NewTimer(name, options...)
	timer.typ = Distribution
	return timer
}

// Stop emits the elapsed time since the timer was created.
func (t *Timer) Stop() error {
	elapsed := int64(time.Since(t.start) / time.Millisecond)
	if t.typ == Distribution {
		return t.client.Distribution(t.name, float64(elapsed), t.options...)
	}
	return t.client.Timing(t.name, elapsed, t.options...)
}

// Time runs fn and emits its execution time as a timing metric. The sample
// is emitted on every exit path, including when fn returns an error; fn's
// error is returned unchanged.
func (c *Client) Time(name string, fn func() error, options ...SampleOption) error {
	timer := c.NewTimer(name, options...)
	defer timer.Stop()
	return fn()
}

// TimeDistribution runs fn and emits its execution time as a distribution
// metric, with the same guarantees as Time.
func (c *Client) TimeDistribution(name string, fn func() error, options ...SampleOption) error {
	timer := c.NewDistributionTimer(name, options...)
	defer timer.Stop()
	return fn()
}
