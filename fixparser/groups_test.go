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

package fixparser_test

import (
	"testing"

	"prime-fix-parser-go/fixparser"
	"prime-fix-parser-go/schema"
)

// s2 is the literal fixture from the "groups" scenario: a
// MarketDataSnapshotFullRefresh with a two-entry NoMDEntries group.
const s2 = "8=FIX.4.2\x019=196\x0135=X\x0149=A\x0156=B\x0134=12\x0152=20100318-03:21:11.364\x01262=A\x01268=2\x01279=0\x01269=0\x01278=BID\x0155=EUR/USD\x01270=1.37215\x0115=EUR\x01271=2500000\x01346=1\x01279=0\x01269=1\x01278=OFFER\x0155=EUR/USD\x01270=1.37224\x0115=EUR\x01271=2503200\x01346=1\x0110=171\x01"

// s3 is the same fields as s2 with 34 moved after the group, testing that
// group membership does not depend on field order in the wire message.
const s3 = "8=FIX.4.2\x019=196\x0135=X\x0149=A\x0156=B\x0152=20100318-03:21:11.364\x01262=A\x01268=2\x01279=0\x01269=0\x01278=BID\x0155=EUR/USD\x01270=1.37215\x0115=EUR\x01271=2500000\x01346=1\x01279=0\x01269=1\x01278=OFFER\x0155=EUR/USD\x01270=1.37224\x0115=EUR\x01271=2503200\x01346=1\x0134=12\x0110=171\x01"

func assertS2Shape(t *testing.T, msg *fixparser.Message) {
	t.Helper()
	if msg.Err != nil {
		t.Fatalf("unexpected message error: %v", msg.Err)
	}
	if msg.Version != fixparser.FIX42 {
		t.Fatalf("version = %v, want FIX42", msg.Version)
	}
	if msg.Type != "X" {
		t.Fatalf("type = %q, want %q", msg.Type, "X")
	}
	if got := msg.Root.Size(); got != 6 {
		t.Fatalf("root field count = %d, want 6", got)
	}

	noMDEntries, ok := msg.Root.Get(268)
	if !ok {
		t.Fatalf("tag 268 missing")
	}
	count, isGroup := noMDEntries.GroupCount()
	if !isGroup || count != 2 {
		t.Fatalf("tag 268 group count = (%d, %v), want (2, true)", count, isGroup)
	}

	first, ok := noMDEntries.Group()
	if !ok {
		t.Fatalf("expected a first group repetition")
	}
	if got := first.Size(); got != 8 {
		t.Fatalf("first entry field count = %d, want 8", got)
	}
	entryType, ok := first.Get(278)
	if !ok || entryType.String() != "BID" {
		t.Fatalf("first entry tag 278 = %v, want BID", entryType)
	}
	mantissa, frac, ok := mustGet(t, first, 270).Decimal()
	if !ok || mantissa != 137215 || frac != 5 {
		t.Fatalf("first entry tag 270 = (%d, %d, %v), want (137215, 5, true)", mantissa, frac, ok)
	}

	second := first.Next()
	if second == nil {
		t.Fatalf("expected a second group repetition")
	}
	if second.Next() != nil {
		t.Fatalf("expected exactly two group repetitions")
	}
	secondEntryType, ok := second.Get(278)
	if !ok || secondEntryType.String() != "OFFER" {
		t.Fatalf("second entry tag 278 = %v, want OFFER", secondEntryType)
	}
	mantissa2, frac2, ok := mustGet(t, second, 270).Decimal()
	if !ok || mantissa2 != 137224 || frac2 != 5 {
		t.Fatalf("second entry tag 270 = (%d, %d, %v), want (137224, 5, true)", mantissa2, frac2, ok)
	}
}

func mustGet(t *testing.T, node *fixparser.GroupNode, tag int) *fixparser.FieldValue {
	t.Helper()
	v, ok := node.Get(tag)
	if !ok {
		t.Fatalf("tag %d missing", tag)
	}
	return v
}

// TestS2Groups exercises scenario S2.
func TestS2Groups(t *testing.T) {
	p := fixparser.New(schema.DefaultRegistry().Lookup)
	if err := p.Feed([]byte(s2)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a message")
	}
	assertS2Shape(t, msg)
}

// TestS3GroupPositionIndependence exercises scenario S3: moving a flat
// header field after a repeating group produces an identical parse to S2.
func TestS3GroupPositionIndependence(t *testing.T) {
	p := fixparser.New(schema.DefaultRegistry().Lookup)
	if err := p.Feed([]byte(s3)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a message")
	}
	assertS2Shape(t, msg)
}

// TestGroupLeadingTag is testable property 7: a repeating group whose first
// child tag is not the declared leading tag is rejected.
func TestGroupLeadingTag(t *testing.T) {
	const badOrder = "8=FIX.4.2\x019=126\x0135=X\x0149=A\x0156=B\x0134=12\x0152=20100318-03:21:11.364\x01262=A\x01268=1\x01269=0\x01279=0\x01278=BID\x0155=EUR/USD\x01270=1.37215\x0115=EUR\x01271=2500000\x01346=1\x0110=123\x01"

	p := fixparser.New(schema.DefaultRegistry().Lookup)
	if err := p.Feed([]byte(badOrder)); err != nil {
		t.Fatalf("Feed: %v", err)
	}
	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a completed (errored) message")
	}
	if msg.Err == nil {
		t.Fatalf("expected a message-fatal leading-tag error")
	}
	want := "FIX message (version 'FIX.4.2', type 'X') error: Unexpected tag 269"
	if got := msg.Err.Error(); got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}
