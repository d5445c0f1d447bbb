package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/techcrush-lms/chatwire/internal/api"
	"github.com/techcrush-lms/chatwire/internal/chat"
	"github.com/techcrush-lms/chatwire/internal/config"
	"github.com/techcrush-lms/chatwire/internal/identity"
	"github.com/techcrush-lms/chatwire/internal/storage"
	"github.com/techcrush-lms/chatwire/internal/websocket"
	"github.com/techcrush-lms/chatwire/internal/wire"
	"github.com/techcrush-lms/chatwire/pkg/logger"
)

const version = "chatwire v1.0.0"

// tokenExpiryWarnWindow triggers a re-login hint before the token lapses.
const tokenExpiryWarnWindow = 24 * time.Hour

func main() {
	if err := run(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return nil
	}

	switch args[0] {
	case "login":
		return loginCommand(cfg, args[1:])
	case "logout":
		return logoutCommand(cfg)
	case "whoami":
		return whoamiCommand(cfg)
	case "chats":
		return chatsCommand(cfg)
	case "messages":
		return messagesCommand(cfg, args[1:])
	case "send":
		return sendCommand(cfg, args[1:])
	case "groups":
		return groupsCommand(cfg)
	case "group-create":
		return groupCreateCommand(cfg, args[1:])
	case "group-leave":
		return groupLeaveCommand(cfg, args[1:])
	case "group-update":
		return groupUpdateCommand(cfg, args[1:])
	case "invite":
		return inviteCommand(cfg, args[1:])
	case "watch":
		return watchCommand(cfg)
	case "version", "--version", "-v":
		fmt.Println(version)
		return nil
	case "help", "--help", "-h":
		printUsage()
		return nil
	}

	printUsage()
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage() {
	fmt.Println(`chatwire - TechCrush realtime chat client

Usage:
  chatwire login -email <email> -password <password>
  chatwire logout
  chatwire whoami
  chatwire chats
  chatwire messages -buddy <userID> [-page <n>]
  chatwire send -buddy <userID> [-message <text>] [-file <ref>]
  chatwire groups
  chatwire group-create -name <name> -image <ref> -members <id,id,...> [-description <text>]
  chatwire group-leave -group <groupID>
  chatwire group-update -group <groupID> [-name <name>] [-description <text>] [-image <ref>]
  chatwire invite -group <groupID>
  chatwire watch
  chatwire version`)
}

func loginCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client := api.NewClient(cfg.ServerURL)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	token, err := client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}

	userID, err := identity.UserIDFromToken(token)
	if err != nil {
		return fmt.Errorf("server issued an unusable token: %w", err)
	}

	key, err := storage.GetOrCreateSecretKey(cfg.SecretKey)
	if err != nil {
		return err
	}
	if err := storage.SaveToken(cfg.TokenFile, token, key); err != nil {
		return err
	}

	logger.Infof("logged in as %s", userID)
	logger.Infof("credentials saved to %s", cfg.ChatwireHome)
	return nil
}

func logoutCommand(cfg *config.Config) error {
	if err := os.Remove(cfg.TokenFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	logger.Infof("logged out")
	return nil
}

func whoamiCommand(cfg *config.Config) error {
	token, err := loadToken(cfg)
	if err != nil {
		return err
	}

	claims, err := identity.ParseToken(token)
	if err != nil {
		return err
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	fmt.Printf("user: %s\n", userID)
	if claims.ExpiresAt != nil {
		fmt.Printf("token expires: %s\n", claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return nil
}

func chatsCommand(cfg *config.Config) error {
	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	// retrieveChats answers on the "chats" push, not on an ack.
	result := make(chan []chat.Chat, 1)
	session.OnChats(func(chats []chat.Chat) {
		select {
		case result <- chats:
		default:
		}
	})

	if err := session.Bridge.RetrieveChats(wire.RetrieveChatsPayload{Token: token}); err != nil {
		return err
	}

	select {
	case chats := <-result:
		return printJSON(chats)
	case <-time.After(cfg.RequestTimeout):
		return fmt.Errorf("timed out waiting for chat list")
	}
}

func messagesCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("messages", flag.ContinueOnError)
	buddy := fs.String("buddy", "", "chat buddy user ID")
	page := fs.Int("page", 1, "message page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	result, err := session.Bridge.RetrieveMessagePage(context.Background(), wire.RetrieveMessagesPayload{
		Token:     token,
		ChatBuddy: *buddy,
		PageNo:    *page,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func sendCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	buddy := fs.String("buddy", "", "recipient user ID")
	message := fs.String("message", "", "message text")
	file := fs.String("file", "", "file reference")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	data, err := session.Bridge.SendMessage(context.Background(), wire.SendMessagePayload{
		Token:     token,
		ChatBuddy: *buddy,
		Message:   *message,
		File:      *file,
	})
	if err != nil {
		return err
	}
	return printRaw(data)
}

func groupsCommand(cfg *config.Config) error {
	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	data, err := session.Bridge.RetrieveGroupChats(context.Background(), wire.RetrieveGroupChatsPayload{
		Token: token,
	})
	if err != nil {
		return err
	}
	return printRaw(data)
}

func groupCreateCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("group-create", flag.ContinueOnError)
	name := fs.String("name", "", "group name")
	description := fs.String("description", "", "group description")
	image := fs.String("image", "", "group image reference")
	members := fs.String("members", "", "comma-separated member user IDs")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	data, err := session.Bridge.CreateGroupChat(context.Background(), wire.CreateGroupChatPayload{
		Token:       token,
		Name:        *name,
		Description: *description,
		Image:       *image,
		Members:     splitList(*members),
	})
	if err != nil {
		return err
	}
	return printRaw(data)
}

func groupLeaveCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("group-leave", flag.ContinueOnError)
	group := fs.String("group", "", "group ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	data, err := session.Bridge.LeaveGroupChat(context.Background(), wire.LeaveGroupChatPayload{
		Token:   token,
		GroupID: *group,
	})
	if err != nil {
		return err
	}
	return printRaw(data)
}

func groupUpdateCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("group-update", flag.ContinueOnError)
	group := fs.String("group", "", "group ID")
	name := fs.String("name", "", "new group name")
	description := fs.String("description", "", "new group description")
	image := fs.String("image", "", "new group image reference")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	data, err := session.Bridge.UpdateGroupChat(context.Background(), wire.UpdateGroupChatPayload{
		Token:       token,
		GroupID:     *group,
		Name:        *name,
		Description: *description,
		Image:       *image,
	})
	if err != nil {
		return err
	}
	return printRaw(data)
}

// inviteCommand prints a QR code for joining a group chat, for scanning from
// the mobile app.
func inviteCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("invite", flag.ContinueOnError)
	group := fs.String("group", "", "group ID")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *group == "" {
		return fmt.Errorf("-group is required")
	}

	inviteURL := fmt.Sprintf("%s/chat/groups/%s/join", cfg.ServerURL, *group)

	qr, err := qrcode.New(inviteURL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	logger.Infof("Scan this QR code with the TechCrush app to join the group:")
	fmt.Println(qr.ToSmallString(false))
	logger.Infof("Or open: %s", inviteURL)
	return nil
}

func watchCommand(cfg *config.Config) error {
	session, token, err := connectSession(cfg)
	if err != nil {
		return err
	}
	defer session.Disconnect()

	session.OnNewMessage(func(msg wire.NewMessagePayload) {
		fmt.Printf("[message] %s -> %s: %s%s\n", msg.Sender, msg.Receiver, msg.Message, fileSuffix(msg.File))
	})
	session.OnGroupChatCreated(func(group wire.GroupChatCreatedPayload) {
		fmt.Printf("[group] added to %q (%s) by %s\n", group.Name, group.GroupID, group.CreatedBy)
	})
	session.Client().Registry().On(wire.EventPresenceUpdate, func(data any) {
		var update wire.PresenceUpdatePayload
		if err := wire.DecodeInto(data, &update); err != nil {
			return
		}
		state := "offline"
		if update.Online {
			state = "online"
		}
		fmt.Printf("[presence] %s is %s\n", update.UserID, state)
	})

	// Prime the chat list so the server starts pushing for this user.
	if err := session.Bridge.RetrieveChats(wire.RetrieveChatsPayload{Token: token}); err != nil {
		logger.Warnf("failed to request chat list: %v", err)
	}

	logger.Infof("watching for events, press Ctrl-C to stop")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// connectSession loads credentials, builds the session, and connects.
func connectSession(cfg *config.Config) (*chat.Session, string, error) {
	token, err := loadToken(cfg)
	if err != nil {
		return nil, "", err
	}

	if expiring, err := identity.IsExpiringSoon(token, tokenExpiryWarnWindow); err == nil && expiring {
		logger.Warnf("access token expires soon, run `chatwire login` to refresh")
	}

	deviceID, err := storage.GetOrCreateDeviceID(cfg.DeviceFile)
	if err != nil {
		return nil, "", err
	}

	client := websocket.NewClient(websocket.Options{
		ServerURL:      cfg.ServerURL,
		Path:           cfg.SocketPath,
		DeviceID:       deviceID,
		ConnectTimeout: cfg.ConnectTimeout,
		DialAttempts:   cfg.ConnectAttempts,
		DialDelay:      cfg.ConnectDelay,
		Debug:          cfg.Debug,
	})
	session := chat.NewSession(client, chat.WithRequestTimeout(cfg.RequestTimeout))

	if err := session.Connect(token); err != nil {
		return nil, "", err
	}
	return session, token, nil
}

func loadToken(cfg *config.Config) (string, error) {
	key, err := storage.LoadSecretKey(cfg.SecretKey)
	if err != nil {
		return "", fmt.Errorf("not logged in, run `chatwire login` first: %w", err)
	}
	token, err := storage.LoadToken(cfg.TokenFile, key)
	if err != nil {
		return "", fmt.Errorf("not logged in, run `chatwire login` first: %w", err)
	}
	return token, nil
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func fileSuffix(file string) string {
	if file == "" {
		return ""
	}
	return fmt.Sprintf(" (file: %s)", file)
}

func printRaw(data json.RawMessage) error {
	if len(data) == 0 {
		fmt.Println("ok")
		return nil
	}
	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		fmt.Println(string(data))
		return nil
	}
	return printJSON(pretty)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
