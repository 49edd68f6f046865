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

// Command fixcat is the example driver for the fixparser package: an
// interactive REPL that feeds a FIX byte stream (from a file or stdin) to a
// Parser in caller-chosen chunk sizes and lets the operator inspect the
// resulting messages one at a time.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"prime-fix-parser-go/database"
)

func main() {
	inputPath := flag.String("in", "", "path to a file of raw FIX bytes (default: stdin)")
	dbPath := flag.String("db", "", "optional sqlite path to record decoded messages")
	chunkSize := flag.Int("chunk", 4096, "default number of bytes read by the REPL's feed command")
	flag.Parse()

	var input io.Reader = os.Stdin
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("failed to open %s: %v", *inputPath, err)
		}
		defer f.Close()
		input = f
	}

	var store *database.MessageStore
	if *dbPath != "" {
		s, err := database.NewMessageStore(*dbPath)
		if err != nil {
			log.Fatalf("failed to open message store: %v", err)
		}
		defer s.Close()
		store = s
	}

	fmt.Println("fixcat - FIX message parser REPL. Type 'help' for commands.")
	Repl(input, store, *chunkSize)
}
