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

// HOT PATH: this file backs every field lookup and insertion while parsing
// a message. It is a closed-addressing-free, open-addressed hash table with
// double hashing over a fixed prime capacity ladder, so it never pays a
// general-purpose map's hashing and bucket overhead for small field counts
// (most nodes hold 5-30 fields).
package fixparser

// nodeCaps is the fixed prime capacity ladder a GroupNode's table climbs
// through as it fills up. Index 0 means no table has been allocated yet.
var nodeCaps = [...]int{0, 23, 47, 101, 199, 401, 809}

// fixTag is a single field slot: a stored tag/value pair, or a group-count
// field whose group points at the first repetition of a sub-group.
type fixTag struct {
	tag    int
	value  []byte
	length int
	group  *GroupNode
}

// GroupNode is one node in the parsed message tree: either the message
// root or a single repetition of a repeating group. Fields live in an
// open-addressed hash table keyed by tag number; further repetitions of
// the same group are chained through next.
type GroupNode struct {
	size     int
	capIndex int
	buff     []fixTag
	next     *GroupNode
}

// findSlot returns the index of the slot that holds tag, or the first
// empty slot on the probe sequence where it would be inserted. allocated
// reports whether the table has been allocated at all (capIndex > 0).
//
// HOT PATH: called on every field insertion and every lookup.
func (n *GroupNode) findSlot(tag int) (idx int, allocated bool) {
	m := nodeCaps[n.capIndex]
	if m == 0 {
		return 0, false
	}

	h2 := 1 + tag%(m-1)
	// unsigned multiply: the Fibonacci constant times a large tag wraps,
	// and the index must stay non-negative
	h1 := int((2654435769 * uint64(tag)) % uint64(m))

	for n.buff[h1].tag > 0 && n.buff[h1].tag != tag {
		h1 = (h1 + h2) % m
	}

	return h1, true
}

// expand grows the table to the next capacity class, rehashing every
// occupied slot. It reports false when the ladder's top class has already
// been reached.
func (n *GroupNode) expand() bool {
	if n.capIndex == len(nodeCaps)-1 {
		return false
	}

	old := n.buff
	n.capIndex++
	n.buff = make([]fixTag, nodeCaps[n.capIndex])

	for i := range old {
		if old[i].tag > 0 {
			slot, _ := n.findSlot(old[i].tag)
			n.buff[slot] = old[i]
		}
	}

	return true
}

// addOutcome describes what happened when a tag was inserted into a node.
type addOutcome int

const (
	addedNew addOutcome = iota
	addedDuplicate
	addedTableFull
)

// add inserts newTag, growing the table first if the load factor would
// exceed 3/4. A tag already present is reported as a duplicate and left
// unchanged; a node that has exhausted the capacity ladder reports
// addedTableFull instead of inserting.
//
// HOT PATH: called once per field in the message.
func (n *GroupNode) add(newTag fixTag) (*fixTag, addOutcome) {
	if n.size >= (3*nodeCaps[n.capIndex])/4 {
		if !n.expand() {
			return nil, addedTableFull
		}
	}

	slot, _ := n.findSlot(newTag.tag)
	existing := &n.buff[slot]

	if existing.tag == newTag.tag {
		return existing, addedDuplicate
	}

	*existing = newTag
	n.size++

	return existing, addedNew
}

// get returns the slot for tag, if present.
func (n *GroupNode) get(tag int) (*fixTag, bool) {
	slot, allocated := n.findSlot(tag)
	if !allocated || n.buff[slot].tag != tag {
		return nil, false
	}
	return &n.buff[slot], true
}

// reset clears every slot and drops the size count, releasing references
// to any child group chains so the garbage collector can reclaim them. The
// underlying slot array is kept for reuse.
func (n *GroupNode) reset() {
	for i := range n.buff {
		n.buff[i] = fixTag{}
	}
	n.size = 0
	n.next = nil
}

// Size returns the number of fields stored directly on this node
// (repeating-group children are not counted; each child is its own node).
func (n *GroupNode) Size() int {
	return n.size
}

// Next returns the following repetition of the same repeating group, or
// nil if this is the last (or only) repetition.
func (n *GroupNode) Next() *GroupNode {
	return n.next
}
