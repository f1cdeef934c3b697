package types

// InputType defines the type of input being sent to the agent.
type InputType string

const (
	InputTypeCancel    InputType = "cancel"     // InputTypeCancel indicates a cancellation request.
	InputTypeUserInput InputType = "user_input" // InputTypeUserInput indicates a text input from the user.
)

// Input represents input sent to an agent.
type Input struct {
	// Metadata holds optional additional information about the input.
	Metadata map[string]interface{}

	// Content is the text content for user input.
	Content string

	// Type indicates the kind of input.
	Type InputType
}

// NewCancelInput creates a new cancellation input.
func NewCancelInput() *Input {
	return &Input{Type: InputTypeCancel, Metadata: make(map[string]interface{})}
}

// NewUserInput creates a new user text input.
func NewUserInput(content string) *Input {
	return &Input{Type: InputTypeUserInput, Content: content, Metadata: make(map[string]interface{})}
}

// WithMetadata adds metadata to the input and returns the input for chaining.
func (i *Input) WithMetadata(key string, value interface{}) *Input {
	if i.Metadata == nil {
		i.Metadata = make(map[string]interface{})
	}
	i.Metadata[key] = value
	return i
}

// IsCancel returns true if this is a cancellation input.
func (i *Input) IsCancel() bool {
	return i.Type == InputTypeCancel
}

// IsUserInput returns true if this is a user text input.
func (i *Input) IsUserInput() bool {
	return i.Type == InputTypeUserInput
}
