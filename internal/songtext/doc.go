// Package songtext implements the chord-annotation markup parser.
//
// The markup is plain text where chord names are embedded inline in lyric
// text with a bracket convention and metadata lines are marked by braces:
//
//	{title: Swing Low}
//	{artist: Trad.}
//	[G]Swing low, sweet [C]chari[G]ot
//
// Recognized directives: title/t, subtitle/st, artist, key, capo, comment/c,
// start_of_chorus/soc and end_of_chorus/eoc. Unknown directives are kept in
// [models.Song].Meta. Lines starting with '#' are remarks and are dropped.
//
// Parsing is strict about balanced delimiters: an unterminated directive or
// chord bracket fails the whole parse. Callers that need the degraded
// placeholder behavior (the viewer) catch the error at the formatting
// boundary rather than here.
package songtext
