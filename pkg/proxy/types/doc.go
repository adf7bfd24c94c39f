// Package types defines the client-facing request and response shapes for
// the chat proxy.
//
// Two transient entities exist, neither persisted:
//
//   - ChatRequest:  {message: string, timestamp?: string}
//   - ChatResponse: {response: string, timestamp: string}
//
// Every failure path, regardless of cause, serializes as the single shape
//
//	{"error": "<short message>"}
//
// with the HTTP status code carrying the failure category (400, 404, 429,
// 500, 504). Full error detail never leaves the server.
package types
