package wire

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks an outbound payload against its declared shape. It must be
// called (and pass) before anything is emitted; a failure means no network
// round-trip happens at all.
func Validate(payload any) error {
	if err := validate.Struct(payload); err != nil {
		return fmt.Errorf("invalid %T: %w", payload, err)
	}
	return nil
}

// RetrieveChatsPayload is the payload for EventRetrieveChats.
type RetrieveChatsPayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
}

// RetrieveMessagesPayload is the payload for EventRetrieveMessages.
type RetrieveMessagesPayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
	// ChatBuddy is the other participant's user ID.
	ChatBuddy string `json:"chatBuddy" validate:"required"`
	// PageNo selects the message page, starting at 1.
	PageNo int `json:"pageNo" validate:"required,min=1"`
}

// SendMessagePayload is the payload for EventSendMessage.
//
// At least one of Message and File must be set.
type SendMessagePayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
	// ChatBuddy is the recipient's user ID.
	ChatBuddy string `json:"chatBuddy" validate:"required"`
	// Message is the text body.
	Message string `json:"message,omitempty" validate:"required_without=File,max=4096"`
	// File is an uploaded file reference (URL or storage key).
	File string `json:"file,omitempty" validate:"required_without=Message"`
}

// CreateGroupChatPayload is the payload for EventCreateGroupChat.
type CreateGroupChatPayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
	// Name is the group's display name.
	Name string `json:"name" validate:"required,max=64"`
	// Description is an optional group description.
	Description string `json:"description,omitempty" validate:"max=512"`
	// Image is the group's media reference (URL or storage key).
	Image string `json:"image" validate:"required"`
	// Members are the user IDs to add; at least one is required.
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

// LeaveGroupChatPayload is the payload for EventLeaveGroupChat.
type LeaveGroupChatPayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
	// GroupID identifies the group to leave.
	GroupID string `json:"groupId" validate:"required"`
}

// RetrieveGroupChatsPayload is the payload for EventRetrieveGroupChats.
type RetrieveGroupChatsPayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
}

// UpdateGroupChatPayload is the payload for EventUpdateGroupChat.
type UpdateGroupChatPayload struct {
	// Token is the caller's bearer token.
	Token string `json:"token" validate:"required"`
	// GroupID identifies the group to update.
	GroupID string `json:"groupId" validate:"required"`
	// Name replaces the group name when set.
	Name string `json:"name,omitempty" validate:"max=64"`
	// Description replaces the description when set.
	Description string `json:"description,omitempty" validate:"max=512"`
	// Image replaces the media reference when set.
	Image string `json:"image,omitempty"`
}

// UserOnlinePayload is the payload for EventUserOnline.
type UserOnlinePayload struct {
	// UserID is the identifier derived from the bearer token.
	UserID string `json:"userId" validate:"required"`
}

// UserOfflinePayload is the payload for EventUserOffline.
type UserOfflinePayload struct {
	// UserID is the identifier derived from the bearer token.
	UserID string `json:"userId" validate:"required"`
}
