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

package schema

import (
	"testing"

	"prime-fix-parser-go/fixparser"
)

func TestDefaultRegistryCoversBothVersions(t *testing.T) {
	r := DefaultRegistry()

	for _, v := range []fixparser.Version{fixparser.FIX42, fixparser.FIX44} {
		for _, msgType := range []string{"A", "D", "8", "W", "X"} {
			if _, ok := r.Lookup(v, msgType); !ok {
				t.Fatalf("expected %s/%s to be registered", v, msgType)
			}
		}
	}
}

func TestMarketDataSnapshotMatchesS2TagSet(t *testing.T) {
	c := marketDataSnapshotFullRefresh.Build()
	for _, tag := range []int{49, 56, 34, 52, 262, 268} {
		if !c.IsValidTag(tag) {
			t.Fatalf("root tag %d should be valid", tag)
		}
	}

	sub, ok := c.GroupClassifier(268)
	if !ok {
		t.Fatalf("tag 268 should introduce the NoMDEntries group")
	}
	for _, tag := range []int{279, 269, 278, 55, 270, 15, 271, 346} {
		if !sub.IsValidTag(tag) {
			t.Fatalf("group tag %d should be valid", tag)
		}
	}
	if !sub.IsFirstInGroup(279) {
		t.Fatalf("279 should be the group's leading tag")
	}
}

func TestNewOrderSingleCoversS1TagSet(t *testing.T) {
	c := newOrderSingle.Build()
	for _, tag := range []int{34, 49, 52, 56, 1, 11, 21, 40, 44, 54, 59, 60} {
		if !c.IsValidTag(tag) {
			t.Fatalf("tag %d from scenario S1 should be valid on NewOrderSingle", tag)
		}
	}
}
