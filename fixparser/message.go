/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fixparser

import "time"

// Message is one decoded FIX message. Root is never nil, even when Err is
// set; lookups against a root whose message errored are well-defined only
// as "no tags found beyond the point of failure".
//
// Field values reachable from Root are borrowed from the parser's body
// buffer: they are valid only until the next call to Next (or Close) on the
// Parser that returned the message. Copy anything that needs to outlive
// that call.
type Message struct {
	Version Version
	Type    string
	Err     error
	Root    *GroupNode
}

// FieldValue is a stored field's raw value together with typed views onto
// it. It is a thin wrapper around the node-store slot so it carries no
// allocation of its own.
type FieldValue struct {
	tag *fixTag
}

// Get looks up tag on this node. It does not search child group nodes.
func (n *GroupNode) Get(tag int) (*FieldValue, bool) {
	t, ok := n.get(tag)
	if !ok {
		return nil, false
	}
	return &FieldValue{tag: t}, true
}

// Tag returns the field's tag number.
func (f *FieldValue) Tag() int {
	return f.tag.tag
}

// Bytes returns the raw value. The slice is borrowed from the parser's
// body buffer and is valid only until the next message is produced.
func (f *FieldValue) Bytes() []byte {
	return f.tag.value
}

// String copies the raw value into a new string.
func (f *FieldValue) String() string {
	return string(f.tag.value)
}

// GroupCount returns the repetition count for a group-header field (one
// whose tag introduced a repeating group), and whether this field is in
// fact a group header.
func (f *FieldValue) GroupCount() (int, bool) {
	if f.tag.value != nil {
		return 0, false
	}
	return f.tag.length, true
}

// Group returns the first repetition of the repeating group this field
// introduces, or (nil, false) if this field is not a group header or the
// group's declared count was zero.
func (f *FieldValue) Group() (*GroupNode, bool) {
	if f.tag.group == nil {
		return nil, false
	}
	return f.tag.group, true
}

// Int parses the value as a value-side signed decimal integer. Leading
// zeros are permitted. Returns (-1, false) on a missing or malformed
// value, matching the source library's integer sentinel.
func (f *FieldValue) Int() (int64, bool) {
	v, ok := parseInt(f.tag.value)
	if !ok {
		return -1, false
	}
	return v, true
}

// Decimal parses the value as a fixed-point decimal, returning the scaled
// integer mantissa and the number of fractional digits, e.g. "1.37215" ->
// (137215, 5, true).
func (f *FieldValue) Decimal() (mantissa int64, fracDigits int, ok bool) {
	return parseDecimal(f.tag.value)
}

// Float parses the value as a float64, limited to 15 significant digits.
func (f *FieldValue) Float() (float64, bool) {
	return parseFloat(f.tag.value)
}

// Bool parses the FIX boolean convention ('Y'/'N').
func (f *FieldValue) Bool() (bool, bool) {
	return parseBool(f.tag.value)
}

// UTCTimestamp parses a FIX UTCTimestamp value into UTC time, with
// millisecond precision when present.
func (f *FieldValue) UTCTimestamp() (time.Time, bool) {
	return parseUTCTimestamp(f.tag.value)
}

// LocalMktDate parses a FIX LocalMktDate value into a time.Time at UTC
// midnight.
func (f *FieldValue) LocalMktDate() (time.Time, bool) {
	return parseLocalMktDate(f.tag.value)
}
