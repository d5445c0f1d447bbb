package wire

// PresenceUpdatePayload is the server -> client payload for
// EventPresenceUpdate.
type PresenceUpdatePayload struct {
	// UserID is the user whose presence changed.
	UserID string `json:"userId"`
	// Online is true when the user came online, false when they went away.
	Online bool `json:"online"`
}

// NewMessagePayload is the server -> client payload for EventNewMessage.
type NewMessagePayload struct {
	// ID is the message identifier assigned by the server.
	ID string `json:"id"`
	// Sender is the sending user's ID.
	Sender string `json:"sender"`
	// Receiver is the receiving user or group ID.
	Receiver string `json:"receiver"`
	// Message is the text body, empty for file-only messages.
	Message string `json:"message,omitempty"`
	// File is the file reference, empty for text-only messages.
	File string `json:"file,omitempty"`
	// CreatedAt is a wall-clock timestamp in milliseconds since epoch.
	CreatedAt int64 `json:"createdAt"`
}

// GroupChatCreatedPayload is the server -> client payload for the per-user
// GroupChatCreatedEvent name.
type GroupChatCreatedPayload struct {
	// GroupID is the new group's identifier.
	GroupID string `json:"groupId"`
	// Name is the group's display name.
	Name string `json:"name"`
	// Image is the group's media reference.
	Image string `json:"image,omitempty"`
	// CreatedBy is the creating user's ID.
	CreatedBy string `json:"createdBy"`
}
