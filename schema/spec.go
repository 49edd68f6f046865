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

// Package schema is a declarative way to build fixparser.Classifier
// values. Instead of hand-writing the four classifier predicates (as the
// source library's VALID_TAGS/DATA_TAGS/GROUPS preprocessor macros expand
// into), a Spec lists its valid tags, its length/data tag pairs and its
// group links as plain data, and Build converts that once into a
// map-backed Classifier.
package schema

import "prime-fix-parser-go/fixparser"

// Group links a group-count tag on a node to the Spec describing its
// repetitions.
type Group struct {
	CountTag int
	Node     *Spec
}

// Spec is a declarative description of one node's classifier: a message
// root, or one repeating group's sub-node.
//
// LeadingTag is the mandatory first tag of every repetition of a group and
// must be left zero for a message root (IsFirstInGroup is never consulted
// there). A group-count tag must appear in both ValidTags (so the parent
// node accepts it) and Groups (so the parser knows which Spec structures
// its repetitions).
type Spec struct {
	ValidTags  []int
	DataTags   map[int]int
	LeadingTag int
	Groups     []Group
}

// classifier is the built, immutable form of a Spec: map lookups instead
// of a tag list scan, and pre-built child classifiers instead of Specs.
type classifier struct {
	valid      map[int]struct{}
	dataTags   map[int]int
	leadingTag int
	groups     map[int]fixparser.Classifier
}

// Build converts s into a fixparser.Classifier, recursively building every
// group it links to. Call once, typically from a package init or a
// Registry constructor; the result is safe to share across any number of
// parsers and goroutines.
func (s *Spec) Build() fixparser.Classifier {
	c := &classifier{
		valid:      make(map[int]struct{}, len(s.ValidTags)),
		dataTags:   s.DataTags,
		leadingTag: s.LeadingTag,
		groups:     make(map[int]fixparser.Classifier, len(s.Groups)),
	}

	for _, tag := range s.ValidTags {
		c.valid[tag] = struct{}{}
	}
	for _, g := range s.Groups {
		c.groups[g.CountTag] = g.Node.Build()
	}

	return c
}

func (c *classifier) IsValidTag(tag int) bool {
	_, ok := c.valid[tag]
	return ok
}

func (c *classifier) DataTag(tag int) (int, bool) {
	d, ok := c.dataTags[tag]
	return d, ok
}

func (c *classifier) IsFirstInGroup(tag int) bool {
	return c.leadingTag != 0 && tag == c.leadingTag
}

func (c *classifier) GroupClassifier(tag int) (fixparser.Classifier, bool) {
	sub, ok := c.groups[tag]
	return sub, ok
}

// key identifies one (version, message type) entry in a Registry.
type key struct {
	version fixparser.Version
	msgType string
}

// Registry is a classifier lookup table keyed by (version, message type).
// Its Lookup method has exactly the signature fixparser.ClassifierLookup
// expects, so a *Registry can be passed directly to fixparser.New.
type Registry struct {
	entries map[key]fixparser.Classifier
}

// NewRegistry returns an empty Registry ready for Register calls.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[key]fixparser.Classifier)}
}

// Register builds spec and binds it to (version, msgType). Registering the
// same (version, msgType) twice replaces the earlier entry.
func (r *Registry) Register(version fixparser.Version, msgType string, spec *Spec) {
	r.entries[key{version, msgType}] = spec.Build()
}

// Lookup implements fixparser.ClassifierLookup.
func (r *Registry) Lookup(version fixparser.Version, msgType string) (fixparser.Classifier, bool) {
	c, ok := r.entries[key{version, msgType}]
	return c, ok
}
