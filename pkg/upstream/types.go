package upstream

// chatMessage is a single entry in the upstream conversation payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the wire format of the Chatbase message endpoint.
// Streaming is always disabled and the temperature is fixed; the proxy
// forwards exactly one user-role message per call.
type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	ChatbotID   string        `json:"chatbotId"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the upstream success body.
type chatResponse struct {
	Text string `json:"text"`
}

// Reply is the provider-agnostic result of a chat call.
type Reply struct {
	// Text is the upstream reply. May be empty; substituting a fallback
	// is the caller's decision.
	Text string
}
