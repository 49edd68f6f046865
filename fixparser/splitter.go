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

// HOT PATH: every byte fed to a Parser passes through step. The splitter is
// an explicit state machine, not goroutines/channels, so that it can
// suspend at any byte boundary and resume exactly where it left off on the
// next Feed call - there is nothing here to schedule or synchronize.
package fixparser

import "fmt"

const soh = 0x01

// minBodyLength is the smallest body length the splitter accepts; a body
// shorter than this could never hold even "35=X\x01" (the checksum trailer
// is not counted in the body length).
const minBodyLength = 5

type splitterState int

const (
	stLit            splitterState = iota // matching a fixed literal; see lit/litPos/afterLit
	stAfterFIX                            // byte right after "8=FIX": 'T' (FIXT.1.1) or '.' (4.x)
	stDot4                                // expect '4' after '.'
	stDot4Dot                             // expect '.' after the '4'
	stVersionDigit                        // expect '2'|'3'|'4' selecting the FIX 4.x minor version
	stBodyLen                             // reading body length decimal digits
	stMsgType                             // reading 1-3 alphanumeric message-type characters
	stBody                                // copying body bytes, accumulating the checksum
	stCheckSumDigits                      // reading the 3 checksum decimal digits
	stCheckSumSOH                         // expecting the terminating SOH after the checksum
)

// splitter is the resumable byte-level framing state machine described in
// the component design: it owns the parser's body buffer and accumulates
// the running checksum across possibly many Feed calls, suspending at
// every byte boundary.
type splitter struct {
	state splitterState

	// generic literal matcher, used for every fixed substring in the
	// header (e.g. "8=FIX", ".1.1\x019=", "35=", "10=").
	lit        string
	litPos     int
	afterLit   splitterState
	litSection string

	version       Version
	bodyLenAcc    uintAccum
	bodyRemaining int
	inBody        bool // true from the byte after "9=len\x01" through the body's closing SOH
	buf           []byte

	msgType    [3]byte
	msgTypeLen int

	checkSum       int
	inTrailer      bool // true while matching "10=...\x01"; those bytes are not summed
	checkSumDigits int
	theirSum       int
}

func newSplitter() *splitter {
	s := &splitter{}
	s.resetForNextMessage()
	return s
}

// resetForNextMessage rearms the splitter to start matching a new message
// from "8=FIX...". The body buffer's backing array is not touched here;
// bodyLen reuses or grows it once the new message's declared length is
// known.
func (s *splitter) resetForNextMessage() {
	s.beginLit("8=FIX", stAfterFIX, "header")
	s.checkSum = 0
	s.inTrailer = false
	s.inBody = false
	s.msgTypeLen = 0
	s.checkSumDigits = 0
	s.theirSum = 0
}

func (s *splitter) beginLit(lit string, after splitterState, section string) {
	s.lit = lit
	s.litPos = 0
	s.afterLit = after
	s.litSection = section
	s.state = stLit
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// step feeds one byte to the splitter. done reports whether this byte
// completed a message (its buf/version/msgType are then ready to hand to
// the structural parser); err is a parser-fatal framing error.
//
// HOT PATH: called once per input byte; no allocation on any path except
// the one-time body buffer growth in the stBodyLen case.
func (s *splitter) step(b byte) (done bool, err error) {
	if !s.inTrailer {
		s.checkSum = (s.checkSum + int(b)) & 0xFF
	}

	// The declared body length counts every byte from "35=" through the
	// body's closing SOH inclusive, not just the bytes stBody copies out -
	// so the decrement has to apply uniformly across the "35=" literal,
	// the message-type characters and its SOH, and stBody's own bytes.
	if s.inBody {
		s.bodyRemaining--
		if s.bodyRemaining < 0 {
			return false, fmt.Errorf("message body exceeds declared length in FIX message body")
		}
	}

	switch s.state {
	case stLit:
		if b != s.lit[s.litPos] {
			return false, unexpectedByte(b, s.litSection)
		}
		s.litPos++
		if s.litPos == len(s.lit) {
			s.state = s.afterLit
		}
		return false, nil

	case stAfterFIX:
		switch b {
		case 'T':
			s.version = FIX50
			s.bodyLenAcc.reset()
			s.beginLit(".1.1\x019=", stBodyLen, "header")
		case '.':
			s.state = stDot4
		default:
			return false, unexpectedByte(b, "header")
		}
		return false, nil

	case stDot4:
		if b != '4' {
			return false, unexpectedByte(b, "header")
		}
		s.state = stDot4Dot
		return false, nil

	case stDot4Dot:
		if b != '.' {
			return false, unexpectedByte(b, "header")
		}
		s.state = stVersionDigit
		return false, nil

	case stVersionDigit:
		switch b {
		case '2':
			s.version = FIX42
		case '3':
			s.version = FIX43
		case '4':
			s.version = FIX44
		default:
			return false, unexpectedByte(b, "header")
		}
		s.bodyLenAcc.reset()
		s.beginLit("\x019=", stBodyLen, "header")
		return false, nil

	case stBodyLen:
		if b == soh {
			if s.bodyLenAcc.digits == 0 {
				return false, fmt.Errorf("missing body length in FIX message length")
			}
			n := s.bodyLenAcc.value
			if n < minBodyLength || n > MaxMessageLen {
				return false, fmt.Errorf("body length %d out of range in FIX message length", n)
			}
			s.bodyRemaining = n
			s.inBody = true
			if cap(s.buf) < n {
				s.buf = make([]byte, 0, n)
			} else {
				s.buf = s.buf[:0]
			}
			s.msgTypeLen = 0
			s.beginLit("35=", stMsgType, "header")
			return false, nil
		}
		if !s.bodyLenAcc.addDigit(b) {
			return false, unexpectedByte(b, "length")
		}
		return false, nil

	case stMsgType:
		if b == soh {
			if s.msgTypeLen == 0 {
				return false, fmt.Errorf("empty message type in FIX message type")
			}
			if s.bodyRemaining == 0 {
				// Body holds nothing beyond "35=<type>\x01" itself.
				s.inBody = false
				s.inTrailer = true
				s.checkSumDigits = 0
				s.theirSum = 0
				s.beginLit("10=", stCheckSumDigits, "check sum")
				return false, nil
			}
			s.state = stBody
			return false, nil
		}
		if !isAlnum(b) {
			return false, unexpectedByte(b, "type")
		}
		if s.msgTypeLen == len(s.msgType) {
			return false, fmt.Errorf("message type too long in FIX message type")
		}
		s.msgType[s.msgTypeLen] = b
		s.msgTypeLen++
		return false, nil

	case stBody:
		s.buf = append(s.buf, b)
		if s.bodyRemaining == 0 {
			if b != soh {
				return false, fmt.Errorf("message body for FIX message body must end with SOH")
			}
			s.inBody = false
			s.inTrailer = true
			s.checkSumDigits = 0
			s.theirSum = 0
			s.beginLit("10=", stCheckSumDigits, "check sum")
		}
		return false, nil

	case stCheckSumDigits:
		if b < '0' || b > '9' {
			return false, unexpectedByte(b, "check sum")
		}
		s.theirSum = s.theirSum*10 + int(b-'0')
		s.checkSumDigits++
		if s.checkSumDigits == 3 {
			s.state = stCheckSumSOH
		}
		return false, nil

	case stCheckSumSOH:
		if b != soh {
			return false, unexpectedByte(b, "check sum")
		}
		if s.theirSum != s.checkSum {
			return false, fmt.Errorf("Invalid FIX message checksum")
		}
		return true, nil

	default:
		return false, fmt.Errorf("splitter in an impossible state")
	}
}
