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

import "strconv"

// Tag types
const (
	typeString = iota
	typeInt64
)

// Tag is a metric tag: a name with an optional value attached to a metric
// for dimensional filtering server-side.
//
// Tags are ordered: default tags keep their configured order, per-call tags
// follow in call order. On name collision a per-call tag overrides the
// default but keeps the default's position.
type Tag struct {
	name     string
	strvalue string
	intvalue int64
	typ      byte
}

// Name returns the tag name.
func (tag Tag) Name() string {
	return tag.name
}

// Value returns the tag value formatted as a string. Value-less tags
// return the empty string.
func (tag Tag) Value() string {
	if tag.typ == typeString {
		return tag.strvalue
	}
	return strconv.FormatInt(tag.intvalue, 10)
}

// StringTag creates a Tag with a string value. An empty value makes a
// value-less tag, which only the Dogstatsd dialect accepts (as a bare key).
func StringTag(name, value string) Tag {
	return Tag{name: name, strvalue: value, typ: typeString}
}

// IntTag creates a Tag with an integer value.
func IntTag(name string, value int) Tag {
	return Tag{name: name, intvalue: int64(value), typ: typeInt64}
}

// Int64Tag creates a Tag with an integer value.
func Int64Tag(name string, value int64) Tag {
	return Tag{name: name, intvalue: value, typ: typeInt64}
}

// mergeTags overlays extra on top of defaults: colliding names are
// overridden in place, new names are appended. Neither input is modified.
func mergeTags(defaults, extra []Tag) []Tag {
	if len(defaults) == 0 {
		return extra
	}
	if len(extra) == 0 {
		return defaults
	}

	merged := make([]Tag, len(defaults), len(defaults)+len(extra))
	copy(merged, defaults)

next:
	for _, tag := range extra {
		for i := range merged {
			if merged[i].name == tag.name {
				merged[i] = tag
				continue next
			}
		}
		merged = append(merged, tag)
	}

	return merged
}
