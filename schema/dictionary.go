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
	"prime-fix-parser-go/constants"
	"prime-fix-parser-go/fixparser"
)

// Real Logon, NewOrderSingle, ExecutionReport and
// MarketDataSnapshotFullRefresh specs instead of only synthetic test
// fixtures. Group shapes follow the standard FIX 4.2/4.4 dictionary.

// msgTypeGrp is Logon's NoMsgTypes(384) repeating group: RefMsgType(372)
// is the mandatory leading tag, MsgDirection(385) is optional per entry.
var msgTypeGrp = &Spec{
	ValidTags:  []int{constants.TagRefMsgType, constants.TagMsgDirection},
	LeadingTag: constants.TagRefMsgType,
}

// logon is the Logon(35=A) message spec.
var logon = &Spec{
	ValidTags: []int{
		constants.TagSenderCompId, constants.TagTargetCompId,
		constants.TagMsgSeqNum, constants.TagSenderSubID,
		constants.TagSendingTime, constants.TagTargetSubID,
		constants.TagHeartBtInt, constants.TagResetSeqNumFlag,
		constants.TagNextExpectedMsgSeqNum, constants.TagMaxMessageSize,
		constants.TagNoMsgTypes, constants.TagTestMessageIndicator,
		constants.TagUsername, constants.TagPassword,
	},
	Groups: []Group{
		{CountTag: constants.TagNoMsgTypes, Node: msgTypeGrp},
	},
}

// hopGrp is NewOrderSingle's NoHops(627) group (header-level routing hops).
var hopGrp = &Spec{
	ValidTags: []int{
		constants.TagHopCompID, constants.TagHopSendingTime, constants.TagHopRefID,
	},
	LeadingTag: constants.TagHopCompID,
}

// partyGrp is NewOrderSingle's NoPartyIDs(453) group.
var partyGrp = &Spec{
	ValidTags: []int{
		constants.TagPartyID, constants.TagPartyIDSource, constants.TagPartyRole,
	},
	LeadingTag: constants.TagPartyID,
}

// newOrderSingle is the NewOrderSingle(35=D) message spec: header and body
// fields plus the Hop and Party repeating groups, so a schema consumer can
// see a message with both flat fields and groups.
var newOrderSingle = &Spec{
	ValidTags: []int{
		constants.TagSenderCompId, constants.TagTargetCompId,
		constants.TagMsgSeqNum, constants.TagSenderSubID,
		constants.TagSendingTime, constants.TagTargetSubID,
		constants.TagNoHops,
		constants.TagClOrdID, constants.TagNoPartyIDs,
		constants.TagAccount, constants.TagHandlInst, constants.TagExecInst,
		constants.TagSymbol, constants.TagSide, constants.TagTransactTime,
		constants.TagOrderQty, constants.TagOrdType, constants.TagPrice, constants.TagStopPx,
		constants.TagTimeInForce, constants.TagExpireTime,
		constants.TagText,
	},
	Groups: []Group{
		{CountTag: constants.TagNoHops, Node: hopGrp},
		{CountTag: constants.TagNoPartyIDs, Node: partyGrp},
	},
}

// miscFeesGrp is ExecutionReport's NoMiscFees(136) group; MiscFeeAmt(137)
// leads every repetition.
var miscFeesGrp = &Spec{
	ValidTags: []int{
		constants.TagMiscFeeAmt, constants.TagMiscFeeCurr, constants.TagMiscFeeType,
	},
	LeadingTag: constants.TagMiscFeeAmt,
}

// executionReport is the ExecutionReport(35=8) message spec.
var executionReport = &Spec{
	ValidTags: []int{
		constants.TagSenderCompId, constants.TagTargetCompId,
		constants.TagMsgSeqNum, constants.TagSendingTime,
		constants.TagOrderID, constants.TagClOrdID, constants.TagExecID,
		constants.TagExecType, constants.TagOrdStatus, constants.TagOrdRejReason,
		constants.TagNoMiscFees,
		constants.TagSymbol, constants.TagSide, constants.TagOrderQty,
		constants.TagPrice, constants.TagAvgPx, constants.TagCumQty,
		constants.TagLeavesQty, constants.TagTransactTime, constants.TagText,
	},
	Groups: []Group{
		{CountTag: constants.TagNoMiscFees, Node: miscFeesGrp},
	},
}

// mdEntriesGrp is MarketDataSnapshotFullRefresh's NoMDEntries(268) group,
// with MDUpdateAction(279) leading every repetition.
var mdEntriesGrp = &Spec{
	ValidTags: []int{
		constants.TagMdUpdateAction, constants.TagMdEntryType, constants.TagMdEntryID,
		constants.TagSymbol, constants.TagMdEntryPx, constants.TagCurrency,
		constants.TagMdEntrySize, constants.TagNumberOfOrders,
	},
	LeadingTag: constants.TagMdUpdateAction,
}

// marketDataSnapshotFullRefresh is the MarketDataSnapshotFullRefresh
// (35=W; the same shape also serves incremental refresh, 35=X) message
// spec.
var marketDataSnapshotFullRefresh = &Spec{
	ValidTags: []int{
		constants.TagSenderCompId, constants.TagTargetCompId,
		constants.TagMsgSeqNum, constants.TagSendingTime,
		constants.TagMdReqId, constants.TagNoMdEntries,
	},
	Groups: []Group{
		{CountTag: constants.TagNoMdEntries, Node: mdEntriesGrp},
	},
}

// DefaultRegistry builds the dictionary shipped with this package: Logon,
// NewOrderSingle, ExecutionReport and the market data refresh messages on
// FIX 4.2 and 4.4.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	for _, v := range []fixparser.Version{fixparser.FIX42, fixparser.FIX44} {
		r.Register(v, constants.MsgTypeLogon, logon)
		r.Register(v, constants.MsgTypeNewOrderSingle, newOrderSingle)
		r.Register(v, constants.MsgTypeExecutionReport, executionReport)
		r.Register(v, constants.MsgTypeMarketDataSnapshot, marketDataSnapshotFullRefresh)
		r.Register(v, constants.MsgTypeMarketDataIncremental, marketDataSnapshotFullRefresh)
	}

	return r
}
