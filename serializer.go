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
	"strconv"
	"strings"
)

// Serializer renders one sample into exactly one wire-protocol line.
//
// Implementations append the line to buf and return the extended buffer.
// They are stateless and safe for concurrent use; each enforces its own
// tag-encoding grammar and returns ErrInvalidTags on violations, leaving
// no partial line behind.
//
// The common line shape is
//
//	<name>:<value>|<type>[|@<rate>]
//
// with the sample rate annotation present only when rate < 1. The dialects
// differ in tag placement: Dogstatsd appends tags after the rate, Telegraf
// and Graphite fold them into the name segment.
type Serializer interface {
	AppendSample(buf []byte, name string, typ MetricType, value string, rate float64, tags []Tag) ([]byte, error)
}

// Available wire dialects
var (
	// Dogstatsd is the Datadog dialect: tags appended as `|#k:v,k2:v2`,
	// value-less tags allowed as a bare key. This is the default dialect
	// as it is the most widely accepted one (Datadog agent, Splunk, Etsy's
	// statsd, Vector).
	Dogstatsd Serializer = dogstatsdSerializer{}

	// Telegraf is the InfluxDB Telegraf dialect: tags comma-joined into
	// the name segment as `,k=v`. Value-less tags are rejected.
	Telegraf Serializer = nameTagsSerializer{separator: ','}

	// Graphite is the Graphite dialect: tags semicolon-joined into the
	// name segment as `;k=v`. Value-less tags are rejected.
	Graphite Serializer = nameTagsSerializer{separator: ';'}
)

type dogstatsdSerializer struct{}

func (dogstatsdSerializer) AppendSample(buf []byte, name string, typ MetricType, value string, rate float64, tags []Tag) ([]byte, error) {
	buf = append(buf, name...)
	buf = appendValueTypeRate(buf, value, typ, rate)

	first := true
	for _, tag := range tags {
		if tag.name == "" {
			continue
		}
		if first {
			buf = append(buf, "|#"...)
			first = false
		} else {
			buf = append(buf, ',')
		}
		buf = append(buf, sanitizeTag(tag.name)...)
		// Dogstatsd supports tags without a value.
		if value := tag.Value(); value != "" {
			buf = append(buf, ':')
			buf = append(buf, sanitizeTag(value)...)
		}
	}

	return buf, nil
}

type nameTagsSerializer struct {
	separator byte
}

func (s nameTagsSerializer) AppendSample(buf []byte, name string, typ MetricType, value string, rate float64, tags []Tag) ([]byte, error) {
	// Validate up front so nothing is written for a rejected sample.
	for _, tag := range tags {
		if tag.name != "" && tag.Value() == "" {
			// Graphite and Telegraf refuse metrics with value-less tags.
			return buf, ErrInvalidTags.New("missing value for tag %q", tag.name)
		}
	}

	buf = append(buf, name...)
	for _, tag := range tags {
		if tag.name == "" {
			continue
		}
		buf = append(buf, s.separator)
		buf = append(buf, sanitizeTag(tag.name)...)
		buf = append(buf, '=')
		buf = append(buf, sanitizeTag(tag.Value())...)
	}

	return appendValueTypeRate(buf, value, typ, rate), nil
}

func appendValueTypeRate(buf []byte, value string, typ MetricType, rate float64) []byte {
	buf = append(buf, ':')
	buf = append(buf, value...)
	buf = append(buf, '|')
	buf = append(buf, string(typ)...)
	if rate < 1 {
		buf = append(buf, "|@"...)
		buf = strconv.AppendFloat(buf, rate, 'g', -1, 64)
	}
	return buf
}

// sanitizeTag replaces characters outside [A-Za-z0-9_./-] with '-' so a
// stray tag never corrupts the line protocol.
func sanitizeTag(s string) string {
	for _, r := range s {
		if !isValidTagChar(r) {
			return replaceInvalidTagChars(s)
		}
	}
	return s
}

func replaceInvalidTagChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isValidTagChar(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func isValidTagChar(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') ||
		r == '_' || r == '.' || r == '/' || r == '-'
}
