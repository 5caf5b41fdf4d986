// Package auth holds the credential boundary the conversion pipeline depends on.
//
// [TokenStore] abstracts where destination access tokens live; the pipeline
// only reads it. [MemoryTokenStore] is the in-process implementation,
// populated by the OAuth callback handler and cleared on logout.
//
// [Principal] is a small capability exposing the authenticated account id and
// display name, with session-based and token-based variants. Principals and
// tokens are passed explicitly; nothing in this package performs ambient
// context lookup.
package auth
