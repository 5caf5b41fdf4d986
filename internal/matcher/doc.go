// Package matcher bridges inconsistent metadata between YouTube and Spotify.
//
// YouTube video titles carry decorations ("(Official Video)", "[HD]", a
// trailing "- Topic") that poison catalog search. [CleanTitle] strips them;
// [PrepareSearchQuery] additionally re-orders an "Artist - Song" shaped title
// into the "Song Artist" form that empirically searches better.
//
// Both transforms are pure, total, and idempotent: they never fail and can
// be applied to already-normalized input without changing it.
package matcher
