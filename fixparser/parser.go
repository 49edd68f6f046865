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

// frame is a split-but-not-yet-structurally-parsed message: the splitter's
// own scratch buffer is reused across messages within a single Feed call
// (the concatenation property requires that one Feed call can complete
// several messages before the caller drains any of them), so each framed
// body is copied out here rather than borrowed in place. Structural
// parsing is deferred to Next, which is the only point at which the
// previous message's borrowed field values are allowed to go stale.
type frame struct {
	version Version
	msgType string
	body    []byte
}

// Parser is the top-level, single-threaded, byte-fed FIX message parser
// described by the package doc comment: it owns the splitter's resumable
// state, the single reusable body buffer backing the message currently on
// loan through Next, and a pool of recycled GroupNodes. A Parser is not
// safe for concurrent use; each one is owned by a single goroutine.
type Parser struct {
	lookup   ClassifierLookup
	splitter *splitter
	reader   tagReader

	frames []frame

	// active is the one reusable body buffer backing the fields of the
	// message most recently returned by Next; it is overwritten, not
	// reallocated, when capacity allows.
	active []byte

	free []*GroupNode

	// lastReturned is the root of the most recent message handed back by
	// Next; it is recycled the moment the caller asks for the next one,
	// matching the "valid until the next call" lifetime the public API
	// documents.
	lastReturned *GroupNode

	err error
}

// New creates a Parser that resolves each message's schema through lookup.
func New(lookup ClassifierLookup) *Parser {
	return &Parser{
		lookup:   lookup,
		splitter: newSplitter(),
	}
}

// Feed appends b to the splitter, completing zero or more messages that
// become available through Next. It returns the parser-fatal error the
// moment framing breaks down; once that happens the Parser is poisoned and
// every subsequent Feed call returns the same error without consuming b.
func (p *Parser) Feed(b []byte) error {
	if p.err != nil {
		return p.err
	}

	for _, c := range b {
		done, err := p.splitter.step(c)
		if err != nil {
			p.err = err
			return err
		}
		if done {
			p.frames = append(p.frames, p.captureFrame())
			p.splitter.resetForNextMessage()
		}
	}

	return nil
}

// captureFrame copies the splitter's just-completed body out of its
// scratch buffer, since that buffer is reused for the next message before
// the caller necessarily gets a chance to drain this one via Next.
func (p *Parser) captureFrame() frame {
	body := make([]byte, len(p.splitter.buf))
	copy(body, p.splitter.buf)
	return frame{
		version: p.splitter.version,
		msgType: string(p.splitter.msgType[:p.splitter.msgTypeLen]),
		body:    body,
	}
}

// allocNode pops a recycled GroupNode from the free list, or allocates a
// fresh one when the list is empty.
func (p *Parser) allocNode() *GroupNode {
	if n := len(p.free); n > 0 {
		node := p.free[n-1]
		p.free = p.free[:n-1]
		return node
	}
	return &GroupNode{}
}

// recycle walks root and every group-node chain it owns, resetting each
// node and returning it to the free list for reuse by the next message.
func (p *Parser) recycle(root *GroupNode) {
	for root != nil {
		next := root.next
		for i := range root.buff {
			if g := root.buff[i].group; g != nil {
				p.recycle(g)
			}
		}
		root.reset()
		p.free = append(p.free, root)
		root = next
	}
}

// Next pops the next message framed so far by Feed and structurally parses
// it against the classifier its (version, type) resolves to, or returns
// (nil, false) when nothing is queued. The returned Message, and every
// field value reachable from it, is borrowed from the Parser and is
// invalidated by the next call to Next or Close.
func (p *Parser) Next() (*Message, bool) {
	if p.lastReturned != nil {
		p.recycle(p.lastReturned)
		p.lastReturned = nil
	}

	if len(p.frames) == 0 {
		return nil, false
	}

	f := p.frames[0]
	p.frames = p.frames[1:]
	if len(p.frames) == 0 {
		p.frames = nil
	}

	if cap(p.active) < len(f.body) {
		p.active = make([]byte, len(f.body))
	} else {
		p.active = p.active[:len(f.body)]
	}
	copy(p.active, f.body)

	root := p.allocNode()
	msg := &Message{Version: f.version, Type: f.msgType, Root: root}

	if classifier, ok := p.lookup(f.version, f.msgType); ok {
		p.reader.init(p.active, f.version, f.msgType)
		msg.Err = parseMessage(&p.reader, root, classifier, p.allocNode)
	} else {
		msg.Err = newMessageError(f.version, f.msgType, "Unrecognised message")
	}

	p.lastReturned = root
	return msg, true
}

// Err returns the parser-fatal error, if any. Once set, the Parser accepts
// no further input and should be discarded.
func (p *Parser) Err() error {
	return p.err
}

// Close releases the Parser's recycled node pool and any undelivered
// frames. It is safe to call more than once.
func (p *Parser) Close() {
	if p.lastReturned != nil {
		p.recycle(p.lastReturned)
		p.lastReturned = nil
	}
	p.frames = nil
	p.free = nil
}
