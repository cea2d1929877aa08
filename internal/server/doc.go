// Package server provides HTTP routing, middleware, OAuth handling and the play API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// OAuthHandler implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// When the user runs the auth command, a temporary HTTP server starts on the configured host/port,
// handles the Spotify callback, and shuts down after receiving the OAuth token.
//
// # Play API
//
// [PlayHandler] serves the player-facing endpoints over a [tasks.PlayEngine]:
//   - GET /play opens a game by code and returns its stages and choices
//   - POST /play/answer scores a wagered answer
//   - GET /play/profile returns the player's points and star balance
//   - POST /play/star spends one star
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
