// Package server provides HTTP routing, middleware, and the web API for the conversion service.
//
// # Router Infrastructure
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Conversion API
//
// [ConversionHandler] exposes the job lifecycle over HTTP:
//
//   - POST /api/convert accepts a conversion request and returns 202 with the
//     job ID before any external calls are made
//   - GET /api/convert/{id} returns the job's current persisted state
//   - GET /api/conversions?account={id} lists an account's jobs, newest first
//
// Job progress is observed by polling the status endpoint. Terminal jobs carry
// their final counts, track name lists and (when completed) the destination
// playlist link.
//
// # OAuth Handler
//
// [OAuthHandler] implements the OAuth2 authorization code flow. /login
// redirects to the provider's consent page; /callback validates the state
// parameter (CSRF protection), exchanges the authorization code for tokens,
// resolves the account profile, and stores the access token in the
// [auth.TokenStore] so the account can run conversions.
package server
