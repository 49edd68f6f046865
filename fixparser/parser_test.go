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

// heartbeatSpec is a minimal header-only schema used by tests that do not
// care about message-specific fields, just framing and node behaviour.
var heartbeatSpec = &schema.Spec{
	ValidTags: []int{35, 49, 56, 34, 52, 58},
}

func testRegistry() *schema.Registry {
	r := schema.NewRegistry()
	r.Register(fixparser.FIX42, "0", heartbeatSpec)
	return r
}

// s1 is the literal fixture from the "simple" scenario: a NewOrderSingle
// with 12 root fields.
const s1 = "8=FIX.4.4\x019=122\x0135=D\x0134=215\x0149=CLIENT12\x0152=20100225-19:41:57.316\x0156=B\x011=Marcel\x0111=13346\x0121=1\x0140=2\x0144=5\x0154=1\x0159=0\x0160=20100225-19:39:52.020\x0110=072\x01"

// feedAll feeds b to p one chunk at a time, each chunk sized chunkSize (the
// last chunk may be shorter). chunkSize 0 feeds the whole buffer at once.
func feedAll(t *testing.T, p *fixparser.Parser, b []byte, chunkSize int) {
	t.Helper()
	if chunkSize <= 0 {
		if err := p.Feed(b); err != nil {
			t.Fatalf("Feed: %v", err)
		}
		return
	}
	for i := 0; i < len(b); i += chunkSize {
		end := i + chunkSize
		if end > len(b) {
			end = len(b)
		}
		if err := p.Feed(b[i:end]); err != nil {
			t.Fatalf("Feed at byte %d: %v", i, err)
		}
	}
}

func assertS1(t *testing.T, msg *fixparser.Message) {
	t.Helper()
	if msg.Err != nil {
		t.Fatalf("unexpected message error: %v", msg.Err)
	}
	if msg.Version != fixparser.FIX44 {
		t.Fatalf("version = %v, want FIX44", msg.Version)
	}
	if msg.Type != "D" {
		t.Fatalf("type = %q, want %q", msg.Type, "D")
	}
	if got := msg.Root.Size(); got != 12 {
		t.Fatalf("root field count = %d, want 12", got)
	}
	sender, ok := msg.Root.Get(49)
	if !ok || sender.String() != "CLIENT12" {
		t.Fatalf("tag 49 = %v, want CLIENT12", sender)
	}
	sendingTime, ok := msg.Root.Get(60)
	if !ok {
		t.Fatalf("tag 60 missing")
	}
	ts, ok := sendingTime.UTCTimestamp()
	if !ok {
		t.Fatalf("tag 60 did not parse as a timestamp")
	}
	want := "2010-02-25T19:39:52.02Z"
	if got := ts.Format("2006-01-02T15:04:05.999Z"); got != want {
		t.Fatalf("tag 60 = %s, want %s", got, want)
	}
}

// TestS1Simple exercises scenario S1 fed as a single Feed call.
func TestS1Simple(t *testing.T) {
	p := fixparser.New(schema.DefaultRegistry().Lookup)
	feedAll(t, p, []byte(s1), 0)

	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a message")
	}
	assertS1(t, msg)

	if _, ok := p.Next(); ok {
		t.Fatalf("expected exactly one message")
	}
}

// TestS4Chunking exercises scenario S4: S1 fed one byte at a time produces
// the same result as feeding it whole (testable property 1 and 3).
func TestS4Chunking(t *testing.T) {
	p := fixparser.New(schema.DefaultRegistry().Lookup)
	feedAll(t, p, []byte(s1), 1)

	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a message")
	}
	assertS1(t, msg)
}

// TestChunkingEquivalence is testable property 3 generalised: every chunk
// size from 1 up to the whole message length produces the same parsed
// fields.
func TestChunkingEquivalence(t *testing.T) {
	for chunkSize := 1; chunkSize <= len(s1); chunkSize++ {
		p := fixparser.New(schema.DefaultRegistry().Lookup)
		feedAll(t, p, []byte(s1), chunkSize)

		msg, ok := p.Next()
		if !ok {
			t.Fatalf("chunk size %d: expected a message", chunkSize)
		}
		assertS1(t, msg)
	}
}

// TestConcatenation is testable property 4: feeding n messages back to back
// in one Feed call yields exactly n messages, in order.
func TestConcatenation(t *testing.T) {
	p := fixparser.New(schema.DefaultRegistry().Lookup)
	combined := s1 + s1 + s1
	feedAll(t, p, []byte(combined), 0)

	count := 0
	for {
		msg, ok := p.Next()
		if !ok {
			break
		}
		assertS1(t, msg)
		count++
	}
	if count != 3 {
		t.Fatalf("got %d messages, want 3", count)
	}
}

// TestChecksumMutation is testable property 2: altering a covered byte
// without coincidentally preserving the mod-256 sum is a parser-fatal
// checksum error.
func TestChecksumMutation(t *testing.T) {
	mutated := []byte(s1)
	// 34=215 -> 34=214, shifting the checksum by -1 without changing length.
	tagPos := 26 // index of the last '5' in "34=215"
	if mutated[tagPos] != '5' {
		t.Fatalf("fixture assumption broken: byte at %d is %q, want '5'", tagPos, mutated[tagPos])
	}
	mutated[tagPos] = '4'

	p := fixparser.New(schema.DefaultRegistry().Lookup)
	err := p.Feed(mutated)
	if err == nil {
		t.Fatalf("expected a parser-fatal error")
	}
	if got, want := err.Error(), "Invalid FIX message checksum"; got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
	if p.Err() == nil {
		t.Fatalf("expected Err() to report the same poisoning error")
	}
}

// TestS5UnknownTag is testable property 6 / scenario S5: a tag absent from
// the classifier's valid set is a message-fatal error, and the parser
// remains usable afterwards.
func TestS5UnknownTag(t *testing.T) {
	// Heartbeat-shaped message with 56 replaced by 76.
	const badMsg = "8=FIX.4.2\x019=55\x0135=0\x0149=SENDER\x0176=TARGET\x0134=1\x0152=20100101-00:00:00.000\x0110=051\x01"

	// The follow-up message is s1 (FIX.4.4/D), so the registry needs a
	// schema for it alongside the heartbeat one.
	r := testRegistry()
	r.Register(fixparser.FIX44, "D", &schema.Spec{
		ValidTags: []int{34, 49, 52, 56, 1, 11, 21, 40, 44, 54, 59, 60},
	})

	p := fixparser.New(r.Lookup)
	feedAll(t, p, []byte(badMsg), 0)

	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a completed (errored) message")
	}
	if msg.Err == nil {
		t.Fatalf("expected a message-fatal error")
	}
	want := "FIX message (version 'FIX.4.2', type '0') error: Unexpected tag 76"
	if got := msg.Err.Error(); got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}

	// The parser must still accept further messages.
	feedAll(t, p, []byte(s1), 0)
	next, ok := p.Next()
	if !ok {
		t.Fatalf("expected a subsequent message after a message-fatal error")
	}
	assertS1(t, next)
}

// TestS6BadFraming is scenario S6: a byte that cannot appear in the message
// type is a parser-fatal framing error and yields no messages.
func TestS6BadFraming(t *testing.T) {
	const badMsg = "8=FIX.4.4\x019=122\x0135=D\x02"

	p := fixparser.New(schema.DefaultRegistry().Lookup)
	err := p.Feed([]byte(badMsg))
	if err == nil {
		t.Fatalf("expected a parser-fatal error")
	}
	want := "Unexpected byte 0x2 in FIX message type"
	if got := err.Error(); got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}

	if _, ok := p.Next(); ok {
		t.Fatalf("expected no messages")
	}
}

// TestDuplicateTag is testable property 5: a tag repeated within the same
// node is rejected.
func TestDuplicateTag(t *testing.T) {
	const dupMsg = "8=FIX.4.2\x019=66\x0135=0\x0149=SENDER\x0156=TARGET\x0134=1\x0152=20100101-00:00:00.000\x0156=TARGET2\x0110=213\x01"

	p := fixparser.New(testRegistry().Lookup)
	feedAll(t, p, []byte(dupMsg), 0)

	msg, ok := p.Next()
	if !ok {
		t.Fatalf("expected a completed (errored) message")
	}
	if msg.Err == nil {
		t.Fatalf("expected a message-fatal duplicate-tag error")
	}
	want := "FIX message (version 'FIX.4.2', type '0') error: Duplicate tag 56"
	if got := msg.Err.Error(); got != want {
		t.Fatalf("error = %q, want %q", got, want)
	}
}

// TestBinaryTag is testable property 9: a length/data pair whose value
// contains an embedded SOH parses as one field with the declared length,
// and the length tag itself does not appear in the node.
func TestBinaryTag(t *testing.T) {
	rawDataSpec := &schema.Spec{
		ValidTags: []int{35, 49, 56, 34, 52, 96},
		DataTags:  map[int]int{95: 96},
	}
	r := schema.NewRegistry()
	r.Register(fixparser.FIX42, "N", rawDataSpec)

	const msg = "8=FIX.4.2\x019=59\x0135=N\x0149=A\x0156=B\x0134=1\x0152=20100101-00:00:00.000\x0195=5\x0196=AB\x01CD\x0110=231\x01"

	p := fixparser.New(r.Lookup)
	feedAll(t, p, []byte(msg), 0)

	got, ok := p.Next()
	if !ok {
		t.Fatalf("expected a message")
	}
	if got.Err != nil {
		t.Fatalf("unexpected message error: %v", got.Err)
	}

	if _, found := got.Root.Get(95); found {
		t.Fatalf("length tag 95 must not appear in the node")
	}
	data, found := got.Root.Get(96)
	if !found {
		t.Fatalf("data tag 96 missing")
	}
	if want := "AB\x01CD"; data.String() != want {
		t.Fatalf("tag 96 = %q, want %q", data.String(), want)
	}
}
