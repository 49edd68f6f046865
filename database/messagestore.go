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

// Package database persists decoded FIX messages to SQLite. It mirrors the
// teacher's prepared-statement, WAL-mode store, retargeted at the shape a
// generic parsed message actually has (version, type, field count, a few
// header tags) instead of a specific trading domain's rows.
package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

const createSchemaQuery = `
CREATE TABLE IF NOT EXISTS messages (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	version     TEXT    NOT NULL,
	msg_type    TEXT    NOT NULL,
	sender      TEXT,
	target      TEXT,
	seq_num     INTEGER,
	sending_time TEXT,
	field_count INTEGER NOT NULL,
	parse_error TEXT,
	recorded_at TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_messages_type ON messages(msg_type);
CREATE INDEX IF NOT EXISTS idx_messages_sender ON messages(sender);
`

const insertMessageQuery = `
INSERT INTO messages (version, msg_type, sender, target, seq_num, sending_time, field_count, parse_error)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// DecodedMessage is the row shape stored for each message the parser
// completes, whether or not it errored.
type DecodedMessage struct {
	Version     string
	MsgType     string
	Sender      string
	Target      string
	SeqNum      int64
	SendingTime string
	FieldCount  int
	ParseError  string
}

// MessageStore provides SQLite storage for decoded FIX messages with a
// prepared insert statement, reused for every stored message so the
// driver never reparses the same SQL text.
type MessageStore struct {
	db         *sql.DB
	stmtInsert *sql.Stmt
}

// NewMessageStore opens (creating if absent) a WAL-mode SQLite database at
// dbPath and prepares its insert statement.
func NewMessageStore(dbPath string) (*MessageStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	store := &MessageStore{db: db}
	if _, err := db.Exec(createSchemaQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	if store.stmtInsert, err = db.Prepare(insertMessageQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare insert statement: %v", err)
	}

	log.Printf("SQLite message store initialized at %s", dbPath)
	return store, nil
}

// Close releases the prepared statement and the underlying connection.
func (s *MessageStore) Close() error {
	if s.stmtInsert != nil {
		_ = s.stmtInsert.Close()
	}
	return s.db.Close()
}

// Store records one decoded message.
func (s *MessageStore) Store(m DecodedMessage) error {
	var sender, target, sendingTime, parseErr sql.NullString
	var seqNum sql.NullInt64

	if m.Sender != "" {
		sender = sql.NullString{String: m.Sender, Valid: true}
	}
	if m.Target != "" {
		target = sql.NullString{String: m.Target, Valid: true}
	}
	if m.SendingTime != "" {
		sendingTime = sql.NullString{String: m.SendingTime, Valid: true}
	}
	if m.ParseError != "" {
		parseErr = sql.NullString{String: m.ParseError, Valid: true}
	}
	if m.SeqNum > 0 {
		seqNum = sql.NullInt64{Int64: m.SeqNum, Valid: true}
	}

	_, err := s.stmtInsert.Exec(m.Version, m.MsgType, sender, target, seqNum, sendingTime, m.FieldCount, parseErr)
	return err
}

// CountByType returns the number of stored messages of the given type.
func (s *MessageStore) CountByType(msgType string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM messages WHERE msg_type = ?`, msgType).Scan(&n)
	return n, err
}
