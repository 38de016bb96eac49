// Package http exposes the site's form-submission, unsubscribe and search
// endpoints on a net/http ServeMux.
//
// Routes mount under /api:
//   - Forms: POST /send-email, /send-welcome-email, /event-subscription,
//     /subscribe-insights
//   - Unsubscribe: POST /unsubscribe (JSON) and GET /unsubscribe (one-click,
//     redirects to a confirmation page)
//   - Search: GET /search?q=&type=&limit=
//   - Health: GET /health
//
// Every route also answers OPTIONS with permissive CORS headers.
package http
