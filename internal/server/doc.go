// Package server exposes the song library and renderer over HTTP.
//
// # Routes
//
// The API is a chi router with request-ID, panic recovery, request logging,
// and an optional token-bucket rate limiter:
//
//   - GET /health: liveness probe
//   - GET/POST /api/songs, GET/PUT/DELETE /api/songs/{id}: library CRUD
//   - GET /api/songs/{id}/render: formatted body plus chord panel decision,
//     parameterized by format, chords, position, and instrument
//   - GET /api/songs/{id}/chords: extracted chord names
//   - GET /api/diagrams/{chord}.svg: chord diagram for an instrument
//   - GET /api/instruments: supported instrument identifiers
//
// # Storage
//
// Handlers depend on the narrow [SongStore] interface rather than the
// concrete repository, so tests run against in-memory stubs.
//
// Responses are JSON except for diagrams, which are image/svg+xml.
package server
