package chat

// Chat is a one-to-one conversation as returned on the "chats" push.
type Chat struct {
	ID          string `json:"id"`
	ChatBuddy   string `json:"chatBuddy"`
	BuddyName   string `json:"buddyName,omitempty"`
	LastMessage string `json:"lastMessage,omitempty"`
	UpdatedAt   int64  `json:"updatedAt,omitempty"`
	Unread      int    `json:"unread,omitempty"`
}

// Message is a chat message as returned by retrieveMessages and sendMessage.
type Message struct {
	ID        string `json:"id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Message   string `json:"message,omitempty"`
	File      string `json:"file,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// GroupChat is a multi-member chat as returned by the group operations.
type GroupChat struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Image       string   `json:"image,omitempty"`
	Members     []string `json:"members,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"`
	UpdatedAt   int64    `json:"updatedAt,omitempty"`
}

// MessagePage is the paginated result payload of retrieveMessages.
type MessagePage struct {
	Messages []Message `json:"messages"`
	PageNo   int       `json:"pageNo"`
	Pages    int       `json:"pages,omitempty"`
}
