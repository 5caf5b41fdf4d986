// Package services implements the HTTP clients for the two music catalogs the
// converter bridges.
//
// # Source Catalog (YouTube)
//
// [YouTubeService] reads playlists via the YouTube Data API v3 using an API
// key. Track listings paginate through an opaque continuation token
// (nextPageToken); entries YouTube has replaced with "Deleted video" or
// "Private video" placeholders are dropped.
//
// # Destination Catalog (Spotify)
//
// [SpotifyService] searches tracks and writes playlists using a per-call
// bearer token supplied by the caller; no credential is held in the client.
// Track search is deliberately forgiving: any miss or transport failure maps
// to "no match" so one bad track never sinks a whole conversion. Playlist
// creation and the batched track append are strict and surface typed errors.
//
// # Error Handling
//
// Non-2xx responses become [APIError] values carrying the service, status,
// and any detail message the API supplied. APIError unwraps to
// [shared.ErrAPIRequest] and distinguishes 4xx (client/auth) from 5xx via
// [APIError.ClientFault].
//
// Both clients run outbound calls through a [rate.Limiter] to respect the
// catalogs' request quotas.
package services
