// Package handlers implements the HTTP handlers for the chat proxy's
// three routes.
//
//   - ChatHandler:     POST /api/chat (validate, forward upstream, shape)
//   - HealthHandler:   GET /api/health (liveness with process uptime)
//   - CatchAllHandler: everything else (static asset or JSON 404)
//
// Handlers translate every failure into the shared {"error": "..."}
// response through proxy.HandleError; nothing else reaches a client.
package handlers
