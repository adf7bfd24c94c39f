// Chatrelay is a lightweight HTTP relay for Chatbase conversational bots.
//
// It exposes a single chat endpoint, validates inbound messages, enforces a
// per-address rate limit, and forwards accepted messages to the Chatbase
// API with server-held credentials so the bot ID and API key never reach
// the browser.
//
// Usage:
//
//	# Start server with default configuration
//	chatrelay run
//
//	# Start with custom configuration file
//	chatrelay run --config /path/to/config.yaml
//
//	# Validate configuration without starting
//	chatrelay validate
//
//	# Show version information
//	chatrelay version
package main

func main() {
	Execute()
}
