package domain

// Action websocket request action
type Action string

const (
	// Join websocket action join - register the declared participant id
	Join Action = "join"
	// SendMessage websocket action message - persist and push a chat message
	SendMessage Action = "message"

	// NotifyMessage websocket action pushed to the recipient connection
	NotifyMessage Action = "message"
)

// WSRequest websocket request envelope
type WSRequest struct {
	Action         string `json:"action"`
	UserID         string `json:"user_id,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	SenderID       string `json:"sender_id,omitempty"`
	RecipientID    string `json:"recipient_id,omitempty"`
	Message        string `json:"message,omitempty"`
}

// WSResponse websocket response envelope
type WSResponse struct {
	Action  string                 `json:"action"`
	Success bool                   `json:"success"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	Error   string                 `json:"error,omitempty"`
}
