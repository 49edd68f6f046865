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

package main

import (
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"prime-fix-parser-go/constants"
	"prime-fix-parser-go/database"
	"prime-fix-parser-go/fixparser"
	"prime-fix-parser-go/schema"

	"github.com/chzyer/readline"
)

// seenMessage is a snapshot taken the instant a message is handed back by
// Next, since its field values are borrowed from the parser and go stale
// the moment the next message is requested.
type seenMessage struct {
	version    string
	msgType    string
	fieldCount int
	sender     string
	target     string
	seqNum     int64
	err        string
}

// history is a fixed-size ring buffer of recently decoded messages, the
// same tradeoff the teacher's TradeStore ring buffer makes: O(1) insert, no
// unbounded growth, oldest entry silently evicted.
type history struct {
	entries []seenMessage
	head    int
	count   int
}

func newHistory(size int) *history {
	return &history{entries: make([]seenMessage, size)}
}

func (h *history) add(m seenMessage) {
	idx := (h.head + h.count) % len(h.entries)
	h.entries[idx] = m
	if h.count < len(h.entries) {
		h.count++
	} else {
		h.head = (h.head + 1) % len(h.entries)
	}
}

func (h *history) recent(n int) []seenMessage {
	if n > h.count {
		n = h.count
	}
	out := make([]seenMessage, n)
	for i := 0; i < n; i++ {
		idx := (h.head + h.count - n + i) % len(h.entries)
		out[i] = h.entries[idx]
	}
	return out
}

// Repl drives an interactive command loop over a Parser fed from input.
// Commands: feed [n], chunk <n>, show [n], stats, quit.
func Repl(input io.Reader, store *database.MessageStore, chunkSize int) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("feed"),
		readline.PcItem("chunk"),
		readline.PcItem("show"),
		readline.PcItem("stats"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fixcat> ",
		HistoryFile:     "/tmp/fixcat_history",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		log.Printf("failed to create readline: %v", err)
		return
	}
	defer rl.Close()

	parser := fixparser.New(schema.DefaultRegistry().Lookup)
	hist := newHistory(256)
	byType := map[string]int{}

	drain := func() {
		for {
			msg, ok := parser.Next()
			if !ok {
				return
			}
			recordMessage(msg, hist, byType, store)
		}
	}

	doFeed := func(n int) {
		buf := make([]byte, n)
		read, err := input.Read(buf)
		if read > 0 {
			if ferr := parser.Feed(buf[:read]); ferr != nil {
				fmt.Printf("parser-fatal: %v\n", ferr)
			}
			drain()
		}
		if err == io.EOF {
			fmt.Println("input exhausted")
		} else if err != nil {
			fmt.Printf("read error: %v\n", err)
		}
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			return
		}

		parts := strings.Fields(strings.TrimSpace(line))
		if len(parts) == 0 {
			continue
		}

		switch strings.ToLower(parts[0]) {
		case "feed":
			n := chunkSize
			if len(parts) > 1 {
				if v, err := strconv.Atoi(parts[1]); err == nil {
					n = v
				}
			}
			doFeed(n)

		case "chunk":
			if len(parts) < 2 {
				fmt.Printf("chunk size is %d\n", chunkSize)
				continue
			}
			if v, err := strconv.Atoi(parts[1]); err == nil {
				chunkSize = v
			}

		case "show":
			n := 10
			if len(parts) > 1 {
				if v, err := strconv.Atoi(parts[1]); err == nil {
					n = v
				}
			}
			for _, m := range hist.recent(n) {
				printMessage(m)
			}

		case "stats":
			for t, n := range byType {
				fmt.Printf("  %s: %d\n", t, n)
			}

		case "help":
			fmt.Println("feed [n]   read up to n bytes (default chunk size) and decode completed messages")
			fmt.Println("chunk <n>  set (or show) the default feed size")
			fmt.Println("show [n]   print the last n decoded messages (default 10)")
			fmt.Println("stats      print message counts by type")
			fmt.Println("quit       exit")

		case "quit", "exit":
			return

		default:
			fmt.Printf("unknown command %q; try 'help'\n", parts[0])
		}

		if parser.Err() != nil {
			fmt.Println("parser is poisoned; restart fixcat to continue")
			return
		}
	}
}

// recordMessage snapshots msg into the history ring buffer and, if a
// MessageStore is configured, persists it, before the next call to Next
// invalidates msg's borrowed field values.
func recordMessage(msg *fixparser.Message, hist *history, byType map[string]int, store *database.MessageStore) {
	seen := seenMessage{
		version:    msg.Version.String(),
		msgType:    msg.Type,
		fieldCount: msg.Root.Size(),
	}
	if msg.Err != nil {
		seen.err = msg.Err.Error()
	}

	var sendingTime string
	if f, ok := msg.Root.Get(constants.TagSenderCompId); ok {
		seen.sender = f.String()
	}
	if f, ok := msg.Root.Get(constants.TagTargetCompId); ok {
		seen.target = f.String()
	}
	if f, ok := msg.Root.Get(constants.TagMsgSeqNum); ok {
		seen.seqNum, _ = f.Int()
	}
	if f, ok := msg.Root.Get(constants.TagSendingTime); ok {
		sendingTime = f.String()
	}

	hist.add(seen)
	byType[seen.msgType]++

	if store != nil {
		err := store.Store(database.DecodedMessage{
			Version:     seen.version,
			MsgType:     seen.msgType,
			Sender:      seen.sender,
			Target:      seen.target,
			SeqNum:      seen.seqNum,
			SendingTime: sendingTime,
			FieldCount:  seen.fieldCount,
			ParseError:  seen.err,
		})
		if err != nil {
			log.Printf("failed to store decoded message: %v", err)
		}
	}
}

func printMessage(m seenMessage) {
	if m.err != "" {
		fmt.Printf("%s %-3s fields=%-3d ERROR: %s\n", m.version, m.msgType, m.fieldCount, m.err)
		return
	}
	fmt.Printf("%s %-3s fields=%-3d sender=%-10s target=%-10s seq=%d\n",
		m.version, m.msgType, m.fieldCount, m.sender, m.target, m.seqNum)
}
