package types

// MaxMessageLength is the maximum accepted message length in characters.
const MaxMessageLength = 1000

// ChatRequest is the inbound body for the chat endpoint.
//
// Message is a pointer so a missing field can be told apart from an empty
// string: absence is rejected, an empty string is accepted.
type ChatRequest struct {
	// Message is the user's chat message. Required, at most
	// MaxMessageLength characters.
	Message *string `json:"message"`

	// Timestamp is an optional client-supplied timestamp. It is accepted
	// for compatibility but never echoed or validated.
	Timestamp string `json:"timestamp,omitempty"`
}

// Validate checks the request against the input constraints.
// It returns a *ValidationError describing the first violation found.
func (r *ChatRequest) Validate() error {
	if r.Message == nil {
		return &ValidationError{Field: "message", Message: MsgInvalidMessage}
	}
	if len([]rune(*r.Message)) > MaxMessageLength {
		return &ValidationError{Field: "message", Message: MsgMessageTooLong}
	}
	return nil
}

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}
