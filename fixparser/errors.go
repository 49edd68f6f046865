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

import "fmt"

// messageError is a message-fatal diagnostic: it completes the current
// message without poisoning the parser. Its text is prefixed with the
// message's version and type, matching the source library's diagnostic
// convention.
type messageError struct {
	version Version
	msgType string
	reason  string
}

func (e *messageError) Error() string {
	return fmt.Sprintf("FIX message (version '%s', type '%s') error: %s", e.version, e.msgType, e.reason)
}

func newMessageError(version Version, msgType, format string, args ...any) error {
	return &messageError{version: version, msgType: msgType, reason: fmt.Sprintf(format, args...)}
}

// unexpectedByte renders the splitter's framing diagnostic: printable bytes
// are quoted, control/non-ASCII bytes are rendered as hex.
func unexpectedByte(b byte, section string) error {
	if b >= 0x20 && b < 0x7f {
		return fmt.Errorf("Unexpected byte '%c' in FIX message %s", b, section)
	}
	return fmt.Errorf("Unexpected byte 0x%X in FIX message %s", b, section)
}
