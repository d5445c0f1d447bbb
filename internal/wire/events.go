// Package wire declares the socket event names and payload shapes spoken by
// the TechCrush chat backend, plus the ack envelope returned by acknowledged
// events.
package wire

import "fmt"

// Client -> server event names.
const (
	// EventRetrieveChats requests the caller's one-to-one chat list. It is
	// fire-and-forget: the server answers on the EventChats push, not on an
	// ack.
	EventRetrieveChats = "retrieveChats"
	// EventRetrieveMessages requests a page of messages with a chat buddy.
	EventRetrieveMessages = "retrieveMessages"
	// EventSendMessage sends a message (text and/or file) to a chat buddy.
	EventSendMessage = "sendMessage"
	// EventCreateGroupChat creates a group chat.
	EventCreateGroupChat = "createGroupChat"
	// EventLeaveGroupChat removes the caller from a group chat.
	EventLeaveGroupChat = "leaveGroupChat"
	// EventRetrieveGroupChats requests the caller's group chat list.
	EventRetrieveGroupChats = "retrieveGroupChats"
	// EventUpdateGroupChat updates a group chat's name/description/image.
	EventUpdateGroupChat = "updateGroupChat"

	// EventUserOnline announces the caller's presence after connecting.
	EventUserOnline = "userOnline"
	// EventUserOffline announces the caller going away before disconnecting.
	EventUserOffline = "userOffline"
)

// Server -> client event names.
const (
	// EventChats delivers the chat list requested by EventRetrieveChats.
	EventChats = "chats"
	// EventNewMessage delivers a message pushed to the caller.
	EventNewMessage = "newMessage"
	// EventPresenceUpdate delivers a single user's online/offline transition.
	EventPresenceUpdate = "presenceUpdate"
)

// GroupChatCreatedEvent returns the per-user event name the server uses to
// notify userID about a group chat they were added to.
func GroupChatCreatedEvent(userID string) string {
	return fmt.Sprintf("groupChatCreated-%s", userID)
}
