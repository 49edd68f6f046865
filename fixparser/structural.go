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

// HOT PATH: once a message's body is fully buffered, structural parsing
// runs synchronously to completion before control returns to the caller -
// it is never suspended mid-message, unlike the splitter.
package fixparser

// structuralParser drives a tagReader under a Classifier, building the
// node tree rooted at some GroupNode. One structuralParser parses exactly
// one message; its depth counter tracks repeating-group nesting.
type structuralParser struct {
	reader *tagReader
	alloc  func() *GroupNode
	depth  int
}

// parseMessage parses the whole body buffer into root under classifier.
func parseMessage(reader *tagReader, root *GroupNode, classifier Classifier, alloc func() *GroupNode) error {
	sp := &structuralParser{reader: reader, alloc: alloc}
	return sp.parseNode(root, classifier, false)
}

// parseNode consumes tags into node until the node's natural end: end of
// message for the root, or a group-boundary tag for a repeating-group
// child (isGroupChild). A group child's very first tag must be the
// classifier's declared leading tag; any later tag that reappears as the
// leading tag, or that the classifier rejects outright, is pushed back so
// the enclosing group/node resumes reading it.
func (sp *structuralParser) parseNode(node *GroupNode, classifier Classifier, isGroupChild bool) error {
	first := true

	for {
		status := sp.reader.readNextTag()
		switch status {
		case trDone:
			if isGroupChild && first {
				return newMessageError(sp.reader.version, sp.reader.msgType, "Unexpected end of message")
			}
			return nil
		case trError:
			return sp.reader.err
		}

		tag := sp.reader.currentTag

		// A length tag transparently redirects the reader into binary
		// mode; from here on tag refers to the companion data tag, and
		// classification happens against that, never against the length
		// tag itself.
		if dataTag, isLen := classifier.DataTag(tag); isLen {
			if sp.reader.readBinaryTag(dataTag) != trOK {
				return sp.reader.err
			}
			tag = dataTag
		}

		if isGroupChild {
			if first {
				if !classifier.IsFirstInGroup(tag) {
					return newMessageError(sp.reader.version, sp.reader.msgType, "Unexpected tag %d", tag)
				}
			} else if classifier.IsFirstInGroup(tag) || !classifier.IsValidTag(tag) {
				sp.reader.pushBack()
				return nil
			}
		} else if !classifier.IsValidTag(tag) {
			return newMessageError(sp.reader.version, sp.reader.msgType, "Unexpected tag %d", tag)
		}
		first = false

		if sub, isGroup := classifier.GroupClassifier(tag); isGroup {
			if err := sp.parseGroup(node, tag, sub); err != nil {
				return err
			}
			continue
		}

		_, outcome := node.add(fixTag{tag: tag, value: sp.reader.currentValue, length: len(sp.reader.currentValue)})
		if err := sp.storeOutcome(outcome, tag); err != nil {
			return err
		}
	}
}

// parseGroup parses a repeating group introduced by countTag: the
// group-count value, then exactly that many child nodes under sub.
func (sp *structuralParser) parseGroup(parent *GroupNode, countTag int, sub Classifier) error {
	count, ok := parseFramingUint(sp.reader.currentValue)
	if !ok {
		return newMessageError(sp.reader.version, sp.reader.msgType, "Invalid group length for tag %d", countTag)
	}

	if count == 0 {
		_, outcome := parent.add(fixTag{tag: countTag})
		return sp.storeOutcome(outcome, countTag)
	}

	sp.depth++
	defer func() { sp.depth-- }()
	if sp.depth > MaxGroupDepth {
		return newMessageError(sp.reader.version, sp.reader.msgType, "Maximum level of recursion has been reached")
	}

	first := sp.alloc()
	_, outcome := parent.add(fixTag{tag: countTag, length: count, group: first})
	if err := sp.storeOutcome(outcome, countTag); err != nil {
		return err
	}

	node := first
	for i := 0; i < count; i++ {
		if i > 0 {
			node.next = sp.alloc()
			node = node.next
		}
		if err := sp.parseNode(node, sub, true); err != nil {
			return err
		}
	}

	return nil
}

func (sp *structuralParser) storeOutcome(outcome addOutcome, tag int) error {
	switch outcome {
	case addedDuplicate:
		return newMessageError(sp.reader.version, sp.reader.msgType, "Duplicate tag %d", tag)
	case addedTableFull:
		return newMessageError(sp.reader.version, sp.reader.msgType, "Too many tags in a message node")
	default:
		return nil
	}
}
