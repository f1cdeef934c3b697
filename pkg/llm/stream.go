package llm

// ContentType classifies the text carried by a stream chunk.
type ContentType string

const (
	// ContentTypeMessage is regular assistant-facing content.
	ContentTypeMessage ContentType = "message"

	// ContentTypeThinking is content that appeared inside <thinking> tags.
	ContentTypeThinking ContentType = "thinking"
)

// StreamChunk is a single increment of a streaming completion.
type StreamChunk struct {
	// Content is the text delta carried by this chunk.
	Content string

	// Role is set on the first chunk of a response (e.g. "assistant").
	Role string

	// Type classifies the content (message vs thinking).
	Type ContentType

	// Finished is true on the terminal chunk of a successful stream.
	Finished bool

	// Error is set when the stream failed mid-flight.
	Error error
}

// IsError reports whether this chunk carries a stream error.
func (c *StreamChunk) IsError() bool {
	return c != nil && c.Error != nil
}
