package domain

// ActionRequest represents something the host should render or ask.
type ActionRequest struct {
	Type    string // e.g. "RENDER_CONTENT", "REQUEST_INPUT"
	Payload any    // The data needed to perform the action
}

// Standard Action Types
const (
	// ActionRenderContent requests the host to display prompt text.
	// Payload: string (the content)
	ActionRenderContent = "RENDER_CONTENT"

	// ActionRequestInput requests the host to collect an answer.
	// Payload: InputRequest
	ActionRequestInput = "REQUEST_INPUT"

	// ActionRenderEstimate requests the host to present the final estimate.
	// Payload: Estimate
	ActionRenderEstimate = "RENDER_ESTIMATE"
)

// InputType defines the kind of input requested.
type InputType string

const (
	InputSingle  InputType = "single"
	InputMulti   InputType = "multi"
	InputConfirm InputType = "confirm"
)

// Choice is one presentable answer.
type Choice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// InputRequest describes the constraints and type of input needed.
type InputRequest struct {
	Type    InputType `json:"type"`
	Choices []Choice  `json:"choices,omitempty"`

	// AllowFreeText is set on the entry prompt: typed text is classified
	// instead of matched against the choices.
	AllowFreeText bool `json:"allow_free_text,omitempty"`

	// NoneKey is the mutually-exclusive clear choice of a multi input.
	NoneKey string `json:"none_key,omitempty"`

	// CanGoBack reports whether the undo stack is non-empty.
	CanGoBack bool `json:"can_go_back,omitempty"`
}

// ActionType identifies a user action handed to the navigator.
type ActionType string

const (
	ActionChoose      ActionType = "choose"
	ActionChooseMulti ActionType = "choose_multi"
	ActionFreeText    ActionType = "free_text"
	ActionConfirm     ActionType = "confirm"
	ActionBack        ActionType = "back"
	ActionRestart     ActionType = "restart"
)

// Action is a single user action against a session.
type Action struct {
	Type   ActionType `json:"type"`
	Key    string     `json:"key,omitempty"`
	Keys   []string   `json:"keys,omitempty"`
	Text   string     `json:"text,omitempty"`
	Accept bool       `json:"accept,omitempty"`
}
