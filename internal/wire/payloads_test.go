package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRequiredFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload any
		wantErr bool
	}{
		{"retrieveChats ok", &RetrieveChatsPayload{Token: "t"}, false},
		{"retrieveChats missing token", &RetrieveChatsPayload{}, true},

		{"retrieveMessages ok", &RetrieveMessagesPayload{Token: "t", ChatBuddy: "u1", PageNo: 1}, false},
		{"retrieveMessages missing buddy", &RetrieveMessagesPayload{Token: "t", PageNo: 1}, true},
		{"retrieveMessages zero page", &RetrieveMessagesPayload{Token: "t", ChatBuddy: "u1"}, true},

		{"sendMessage text", &SendMessagePayload{Token: "t", ChatBuddy: "u1", Message: "hi"}, false},
		{"sendMessage file only", &SendMessagePayload{Token: "t", ChatBuddy: "u1", File: "f.png"}, false},
		{"sendMessage both", &SendMessagePayload{Token: "t", ChatBuddy: "u1", Message: "hi", File: "f.png"}, false},
		{"sendMessage neither", &SendMessagePayload{Token: "t", ChatBuddy: "u1"}, true},
		{"sendMessage empty buddy", &SendMessagePayload{Token: "t", ChatBuddy: "", Message: "hi"}, true},

		{"createGroup ok", &CreateGroupChatPayload{Token: "t", Name: "team", Image: "img", Members: []string{"u1"}}, false},
		{"createGroup no members", &CreateGroupChatPayload{Token: "t", Name: "team", Image: "img", Members: []string{}}, true},
		{"createGroup empty member", &CreateGroupChatPayload{Token: "t", Name: "team", Image: "img", Members: []string{""}}, true},
		{"createGroup missing image", &CreateGroupChatPayload{Token: "t", Name: "team", Members: []string{"u1"}}, true},
		{"createGroup missing name", &CreateGroupChatPayload{Token: "t", Image: "img", Members: []string{"u1"}}, true},

		{"leaveGroup ok", &LeaveGroupChatPayload{Token: "t", GroupID: "g1"}, false},
		{"leaveGroup missing group", &LeaveGroupChatPayload{Token: "t"}, true},

		{"retrieveGroups ok", &RetrieveGroupChatsPayload{Token: "t"}, false},
		{"retrieveGroups missing token", &RetrieveGroupChatsPayload{}, true},

		{"updateGroup ok", &UpdateGroupChatPayload{Token: "t", GroupID: "g1", Name: "renamed"}, false},
		{"updateGroup missing group", &UpdateGroupChatPayload{Token: "t"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tc.payload)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateNameLengthBound(t *testing.T) {
	t.Parallel()

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'a'
	}

	err := Validate(&CreateGroupChatPayload{
		Token:   "t",
		Name:    string(long),
		Image:   "img",
		Members: []string{"u1"},
	})
	require.Error(t, err)
}

func TestDecodeAck(t *testing.T) {
	t.Parallel()

	ack, err := DecodeAck(map[string]any{
		"status":  "success",
		"message": "ok",
		"data":    map[string]any{"id": "m1", "message": "hi"},
	})
	require.NoError(t, err)
	require.True(t, ack.OK())
	require.Equal(t, "ok", ack.Message)
	require.JSONEq(t, `{"id":"m1","message":"hi"}`, string(ack.Data))

	ack, err = DecodeAck(map[string]any{"status": "error", "message": "no such chat"})
	require.NoError(t, err)
	require.False(t, ack.OK())
	require.Equal(t, "no such chat", ack.Message)

	_, err = DecodeAck(nil)
	require.Error(t, err)
}

func TestDecodeInto(t *testing.T) {
	t.Parallel()

	var update PresenceUpdatePayload
	err := DecodeInto(map[string]any{"userId": "u1", "online": true}, &update)
	require.NoError(t, err)
	require.Equal(t, PresenceUpdatePayload{UserID: "u1", Online: true}, update)
}

func TestGroupChatCreatedEvent(t *testing.T) {
	t.Parallel()
	require.Equal(t, "groupChatCreated-u1", GroupChatCreatedEvent("u1"))
}
