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

// Classifier is the per-node schema contract the structural parser
// consults while building a node's fields. A classifier describes either a
// message's root node or the sub-nodes of one repeating group.
//
// Classifiers never change at run time and never contain cycles in
// practice (FIX groups form a DAG), but a classifier is free to reference
// itself or an ancestor by handle; resolution is always a table/closure
// lookup, never reflection over a concrete type.
type Classifier interface {
	// IsValidTag reports whether tag belongs on this node.
	IsValidTag(tag int) bool

	// DataTag reports whether tag is a length tag introducing a raw-data
	// value, returning the companion data tag, or (0, false) otherwise.
	DataTag(tag int) (int, bool)

	// IsFirstInGroup reports whether tag is the mandatory leading tag of
	// this node's repeating group. Only meaningful for a classifier
	// returned by a parent's GroupClassifier; the root classifier's
	// implementation is never consulted for this.
	IsFirstInGroup(tag int) bool

	// GroupClassifier reports whether tag is a group-count tag on this
	// node, returning the classifier for that group's sub-nodes.
	GroupClassifier(tag int) (Classifier, bool)
}

// ClassifierLookup maps a message's version and type to the Classifier
// that should structure its root node, or (nil, false) if the message type
// is not recognised for that version.
type ClassifierLookup func(version Version, msgType string) (Classifier, bool)
