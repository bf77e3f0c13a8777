// Package viewer implements the view-state controller for song sheet display.
//
// A [Viewer] mediates between externally supplied configuration ([Options])
// and the internally mutable, user-adjustable copies of display mode, chord
// panel visibility and selected instrument:
//
//   - On construction the internal state initializes from the options.
//   - [Viewer.ApplyOptions] resynchronizes one way, configuration to internal
//     state, and only for options whose values actually changed, so a user
//     override survives unrelated reconfiguration.
//   - User operations ([Viewer.SetMode], [Viewer.SetInstrument],
//     [Viewer.ToggleChords]) make internal state authoritative and emit
//     notifications; they never write back into the options.
//
// [Viewer.Render] produces the complete display decision: the formatted or
// plain-text body, the extracted chord list, and whether and where the chord
// panel appears. Failures degrade to placeholder strings and an empty chord
// list; no error escapes the render path.
//
// Notifications are synchronous. [ChordsChanged] is change-detected: it
// fires only when the extracted chord set differs from the previous render,
// never merely because a render happened.
package viewer
