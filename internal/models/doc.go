// Package models defines domain entities and persistence interfaces for chordstand.
//
// The package contains two categories of types:
//
// 1. Parsed representations: read-only structures produced by the songtext parser
//   - [Song] : Metadata plus the ordered body lines of a song sheet
//   - [Line] : One display row, optionally tagged with a section or comment
//   - [Item] : A lyric fragment carrying an optional chord annotation
//
// 2. Persistent entities: database-backed library records
//   - [StoredSong] : Raw song text with title/artist metadata, soft delete support
//
// Persistent entities implement the [Model] interface providing ID generation,
// timestamps, validation, and soft delete support. The [Repository] interface
// defines standard CRUD operations for database access.
package models
