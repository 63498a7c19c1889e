package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned when sending without a live connection.
var ErrNotConnected = errors.New("not connected")

// Config configures the OneBot client
type Config struct {
	WSURL       string
	AccessToken string
	// RetryDelay is the pause after a failed dial or a dropped connection.
	RetryDelay time.Duration
}

// GroupMsgHandler handles one group message addressed to the bot.
type GroupMsgHandler func(groupID int64, senderID int64, msg string)

type OneBot struct {
	config Config
	conn   *websocket.Conn
	mu     sync.Mutex

	// Handler for group messages, called on its own goroutine.
	GroupMsgHandler GroupMsgHandler
}

// Event represents a basic OneBot event
type Event struct {
	PostType      string `json:"post_type"`
	MetaEventType string `json:"meta_event_type"`
	MessageType   string `json:"message_type"`
	SubType       string `json:"sub_type"`
	GroupID       int64  `json:"group_id"`
	UserID        int64  `json:"user_id"`
	RawMessage    string `json:"raw_message"` // content with CQ codes
	SelfID        int64  `json:"self_id"`
}

// ActionFrame is the wrapper for sending requests
type ActionFrame struct {
	Action string      `json:"action"`
	Params interface{} `json:"params"`
	Echo   string      `json:"echo,omitempty"`
}

type GroupMsgParams struct {
	GroupID int64  `json:"group_id"`
	Message string `json:"message"`
}

func New(cfg Config) *OneBot {
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 5 * time.Second
	}
	return &OneBot{config: cfg}
}

// Run connects and serves events until ctx is done, reconnecting on failure.
func (b *OneBot) Run(ctx context.Context) error {
	u, err := url.Parse(b.config.WSURL)
	if err != nil {
		return fmt.Errorf("invalid WS URL: %w", err)
	}
	// access_token 同时放在 query 和 header 里，兼容不读 header 的实现
	if b.config.AccessToken != "" {
		q := u.Query()
		q.Set("access_token", b.config.AccessToken)
		u.RawQuery = q.Encode()
	}
	header := http.Header{}
	if b.config.AccessToken != "" {
		header.Add("Authorization", "Bearer "+b.config.AccessToken)
	}

	for {
		logrus.Infof("Connecting to OneBot at %s (Token len: %d)...", b.config.WSURL, len(b.config.AccessToken))
		c, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), header)
		if err != nil {
			logrus.Errorf("Connection failed: %v. Retrying in %s...", err, b.config.RetryDelay)
		} else {
			b.serve(ctx, c)
			logrus.Warn("Disconnected. Reconnecting...")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.config.RetryDelay):
		}
	}
}

func (b *OneBot) serve(ctx context.Context, c *websocket.Conn) {
	b.mu.Lock()
	b.conn = c
	b.mu.Unlock()
	logrus.Info("Connected to OneBot!")

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()
	defer func() {
		b.mu.Lock()
		b.conn = nil
		b.mu.Unlock()
		c.Close()
	}()

	for {
		_, message, err := c.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logrus.Errorf("Read error: %v", err)
			}
			return
		}
		b.handleMessage(message)
	}
}

func (b *OneBot) handleMessage(msg []byte) {
	var evt Event
	if err := json.Unmarshal(msg, &evt); err != nil {
		logrus.Warnf("Failed to unmarshal event: %v | Msg: %s", err, string(msg))
		return
	}
	if evt.PostType == "meta_event" && evt.MetaEventType == "heartbeat" {
		return
	}
	logrus.Debugf("Received Event: PostType=%s | User=%d | Raw=%s", evt.PostType, evt.UserID, evt.RawMessage)

	if evt.PostType != "message" || evt.MessageType != "group" {
		return
	}
	// @ 机器人或以 . 开头的指令才处理
	target := fmt.Sprintf("[CQ:at,qq=%d]", evt.SelfID)
	isAt := strings.Contains(evt.RawMessage, target)
	isCommand := strings.HasPrefix(evt.RawMessage, ".")
	if !isAt && !isCommand {
		return
	}

	content := evt.RawMessage
	if isAt {
		content = strings.ReplaceAll(content, target, "")
	}
	content = strings.TrimSpace(content)
	logrus.Infof("Received Group Msg from %d in Group %d: %s", evt.UserID, evt.GroupID, content)

	if b.GroupMsgHandler != nil {
		go b.GroupMsgHandler(evt.GroupID, evt.UserID, content)
	}
}

// SendGroupMsg sends msg to a group over the current connection.
func (b *OneBot) SendGroupMsg(groupID int64, msg string) error {
	logrus.Infof("[SEND] To Group %d: %s", groupID, msg)
	frame := ActionFrame{
		Action: "send_group_msg",
		Params: GroupMsgParams{
			GroupID: groupID,
			Message: msg,
		},
	}

	// gorilla 只允许一个并发写者，写操作也持有 b.mu
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return ErrNotConnected
	}
	return b.conn.WriteJSON(frame)
}
