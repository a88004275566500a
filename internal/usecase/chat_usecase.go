package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yusufnuru/unimarket-client/internal/domain/entity"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/httpclient"
	"github.com/yusufnuru/unimarket-client/internal/infrastructure/socket"
	apperrors "github.com/yusufnuru/unimarket-client/pkg/errors"
	"github.com/yusufnuru/unimarket-client/pkg/logger"
)

// Client-emitted socket events.
const (
	EventJoinRoom    = "join-room"
	EventLeaveRoom   = "leave-room"
	EventMarkRead    = "mark-read"
	EventSendMessage = "send-message"
	EventTyping      = "typing"
	EventFetchOlder  = "fetch-older-messages"
)

// Server-emitted socket events.
const (
	EventNewMessage    = "new-message"
	EventUpdatePreview = "update-chat-preview"
	EventMessagesRead  = "messages-read"
	EventOlderMessages = "older-messages"
	EventUserTyping    = "user-typing"
	EventError         = "error"
)

const markReadDelay = time.Second

// SocketConn is the slice of the socket connection the chat usecase needs;
// tests substitute an in-memory fake.
type SocketConn interface {
	Emit(name string, payload interface{}) error
	Events() <-chan socket.Event
	Close() error
}

// SocketDialer opens a connection for the given identity.
type SocketDialer func(ctx context.Context, hs socket.Handshake) (SocketConn, error)

// AuthSession is what chat needs from the auth usecase for token-expiry
// recovery on the socket.
type AuthSession interface {
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

// ChatUseCase owns the socket lifecycle and the in-memory chat state: the
// active room's messages (ascending creation time), the preview list, and the
// pagination cursor. Inbound socket events are consumed by a single
// dispatcher goroutine; the mutex covers mutations from API calls.
type ChatUseCase struct {
	client      *httpclient.Client
	session     *Session
	auth        AuthSession
	dial        SocketDialer
	pageTimeout time.Duration

	mu            sync.Mutex
	sock          SocketConn
	messages      []entity.ChatMessage
	previews      []entity.ChatPreview
	currentRoomID string
	isLoading     bool
	hasMore       bool
	nextCursor    string
	isTyping      bool
	typingUserID  string
	olderDone     chan struct{}
}

func NewChatUseCase(client *httpclient.Client, session *Session, auth AuthSession, dial SocketDialer, pageTimeout time.Duration) *ChatUseCase {
	if pageTimeout <= 0 {
		pageTimeout = 5 * time.Second
	}
	return &ChatUseCase{
		client:      client,
		session:     session,
		auth:        auth,
		dial:        dial,
		pageTimeout: pageTimeout,
	}
}

// InitializeSocket opens one socket for the authenticated session, replacing
// any previous connection. If a room is active its membership is re-joined;
// the server does not keep room membership across reconnects.
func (uc *ChatUseCase) InitializeSocket(ctx context.Context) error {
	uc.mu.Lock()
	if uc.sock != nil {
		uc.sock.Close()
		uc.sock = nil
	}
	user := uc.session.Snapshot()
	uc.mu.Unlock()

	conn, err := uc.dial(ctx, socket.Handshake{UserID: user.ID, Role: string(user.Role)})
	if err != nil {
		return uc.handleConnectError(ctx, err)
	}

	uc.mu.Lock()
	uc.sock = conn
	var preview *entity.ChatPreview
	if p := uc.currentPreviewLocked(); p != nil {
		copied := *p
		preview = &copied
	}
	uc.mu.Unlock()

	go uc.dispatch(ctx, conn)

	if preview != nil {
		if err := conn.Emit(EventJoinRoom, joinRoomPayload{
			StoreID: preview.StoreID,
			BuyerID: preview.BuyerID,
		}); err != nil {
			logger.Warn("Failed to re-join room %s: %v", preview.ChatRoomID, err)
		}
	}
	return nil
}

// Reconnect re-dials when the connection has dropped.
func (uc *ChatUseCase) Reconnect(ctx context.Context) error {
	return uc.InitializeSocket(ctx)
}

func (uc *ChatUseCase) IsConnected() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.sock != nil
}

// handleConnectError classifies a connection failure: token expiry is
// recovered by refresh-and-redial, authentication failure forces logout, and
// anything else is logged and surfaced.
func (uc *ChatUseCase) handleConnectError(ctx context.Context, err error) error {
	message := err.Error()
	switch {
	case isTokenExpiredMessage(message):
		return uc.handleTokenRefresh(ctx)
	case isAuthFailureMessage(message):
		logger.Error("Socket authentication failed, logging out")
		uc.auth.Logout(ctx)
		return err
	default:
		logger.Error("Socket connection error: %v", err)
		return err
	}
}

func (uc *ChatUseCase) handleTokenRefresh(ctx context.Context) error {
	if err := uc.auth.Refresh(ctx); err != nil {
		logger.Error("Token refresh failed: %v", err)
		uc.auth.Logout(ctx)
		return err
	}
	return uc.InitializeSocket(ctx)
}

func isTokenExpiredMessage(message string) bool {
	return strings.Contains(message, "Token expired") ||
		strings.Contains(message, "jwt expired") ||
		strings.Contains(message, "TokenExpired")
}

func isAuthFailureMessage(message string) bool {
	return strings.Contains(message, "Authentication failed")
}

// dispatch is the single consumer of inbound events for one connection. The
// channel closing means the connection dropped; events from a replaced
// connection are ignored.
func (uc *ChatUseCase) dispatch(ctx context.Context, conn SocketConn) {
	for event := range conn.Events() {
		uc.handleEvent(ctx, conn, event)
	}
	logger.Warn("Disconnected from chat socket")
}

func (uc *ChatUseCase) handleEvent(ctx context.Context, conn SocketConn, event socket.Event) {
	uc.mu.Lock()
	stale := uc.sock != conn
	uc.mu.Unlock()
	if stale {
		return
	}

	switch event.Name {
	case EventNewMessage:
		var message entity.ChatMessage
		if err := json.Unmarshal(event.Data, &message); err != nil {
			logger.Warn("Malformed %s event: %v", event.Name, err)
			return
		}
		uc.handleNewMessage(message)

	case EventUpdatePreview:
		var update previewUpdate
		if err := json.Unmarshal(event.Data, &update); err != nil {
			logger.Warn("Malformed %s event: %v", event.Name, err)
			return
		}
		uc.handlePreviewUpdate(ctx, update)

	case EventMessagesRead:
		var payload struct {
			ReadBy string `json:"readBy"`
		}
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			logger.Warn("Malformed %s event: %v", event.Name, err)
			return
		}
		uc.handleMessagesRead(payload.ReadBy)

	case EventOlderMessages:
		var older []entity.ChatMessage
		if err := json.Unmarshal(event.Data, &older); err != nil {
			logger.Warn("Malformed %s event: %v", event.Name, err)
			return
		}
		uc.handleOlderMessages(older)

	case EventUserTyping:
		var payload struct {
			UserID   string `json:"userId"`
			IsTyping bool   `json:"isTyping"`
		}
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			logger.Warn("Malformed %s event: %v", event.Name, err)
			return
		}
		uc.handleUserTyping(payload.UserID, payload.IsTyping)

	case EventError:
		message := apperrors.MessageOf(event.Data)
		if message == "" {
			message = string(event.Data)
		}
		switch {
		case isTokenExpiredMessage(message):
			go uc.handleTokenRefresh(ctx)
		case isAuthFailureMessage(message):
			go uc.auth.Logout(ctx)
		default:
			logger.Error("Socket error: %s", message)
		}

	default:
		logger.Debug("Ignoring socket event %q", event.Name)
	}
}

// handleNewMessage appends the message when it belongs to the active room.
// Own messages start unread locally (the recipient's receipt flips them);
// foreign messages are acknowledged with a mark-read emit. Either way the
// room's preview is reconciled.
func (uc *ChatUseCase) handleNewMessage(message entity.ChatMessage) {
	uc.mu.Lock()
	conn := uc.sock
	ownMessage := message.SenderID == uc.session.UserID()

	if uc.currentRoomID == message.ChatRoomID {
		if ownMessage {
			message.IsRead = false
		}
		uc.messages = append(uc.messages, message)
		if !ownMessage && conn != nil {
			defer func() {
				if err := conn.Emit(EventMarkRead, markReadPayload{ChatRoomID: message.ChatRoomID}); err != nil {
					logger.Warn("Failed to emit mark-read: %v", err)
				}
			}()
		}
	}

	uc.updatePreviewFromMessageLocked(message)
	uc.mu.Unlock()
}

func (uc *ChatUseCase) updatePreviewFromMessageLocked(message entity.ChatMessage) {
	index := uc.previewIndexLocked(message.ChatRoomID)
	if index < 0 {
		return
	}

	preview := uc.previews[index]
	preview.SenderID = message.SenderID
	preview.LastMessage = message.Message
	preview.LastMessageTime = message.CreatedAt

	ownMessage := message.SenderID == uc.session.UserID()
	activeRoom := uc.currentRoomID == message.ChatRoomID
	if !ownMessage && !activeRoom {
		preview.UnreadCount++
	}

	// Most recent conversation moves to the front.
	uc.previews = append(uc.previews[:index], uc.previews[index+1:]...)
	uc.previews = append([]entity.ChatPreview{preview}, uc.previews...)
}

type previewUpdate struct {
	ChatRoomID      string    `json:"chatRoomId"`
	LastMessage     string    `json:"lastMessage"`
	SellerID        string    `json:"sellerId"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	SenderName      string    `json:"senderName"`
	SenderID        string    `json:"senderId"`
}

// handlePreviewUpdate patches a known preview in place; an unknown room means
// the local list is stale, so it is refetched wholesale.
func (uc *ChatUseCase) handlePreviewUpdate(ctx context.Context, update previewUpdate) {
	uc.mu.Lock()
	index := uc.previewIndexLocked(update.ChatRoomID)
	if index >= 0 {
		preview := &uc.previews[index]
		preview.SellerID = update.SellerID
		preview.LastMessage = update.LastMessage
		preview.LastMessageTime = update.LastMessageTime

		ownMessage := update.SenderID == uc.session.UserID()
		activeRoom := uc.currentRoomID == update.ChatRoomID
		if !ownMessage && !activeRoom {
			preview.UnreadCount++
		}
		uc.mu.Unlock()
		return
	}
	uc.mu.Unlock()

	if err := uc.FetchUserChats(ctx); err != nil {
		logger.Error("Preview refetch failed: %v", err)
	}
}

// handleMessagesRead flips isRead on every message the reader did not author.
func (uc *ChatUseCase) handleMessagesRead(readBy string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.messages {
		if uc.messages[i].SenderID != readBy && !uc.messages[i].IsRead {
			uc.messages[i].IsRead = true
		}
	}
}

// handleOlderMessages prepends a page of strictly older history. An empty
// page permanently clears hasMore for the room; no further pagination is
// attempted for the rest of the session.
func (uc *ChatUseCase) handleOlderMessages(older []entity.ChatMessage) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(older) > 0 {
		uc.messages = append(older, uc.messages...)
	} else {
		uc.hasMore = false
	}

	if uc.olderDone != nil {
		close(uc.olderDone)
		uc.olderDone = nil
		uc.isLoading = false
	}
}

func (uc *ChatUseCase) handleUserTyping(userID string, isTyping bool) {
	if userID == uc.session.UserID() {
		return
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.isTyping = isTyping
	if isTyping {
		uc.typingUserID = userID
	} else {
		uc.typingUserID = ""
	}
}

type chatListResponse struct {
	Data struct {
		Chats []entity.ChatPreview `json:"chats"`
	} `json:"data"`
}

// FetchUserChats replaces the preview list from /chat/my-chats.
func (uc *ChatUseCase) FetchUserChats(ctx context.Context) error {
	uc.setLoading(true)
	defer uc.setLoading(false)

	var out chatListResponse
	if err := uc.client.Get(ctx, "/chat/my-chats", nil, &out); err != nil {
		return err
	}

	uc.mu.Lock()
	uc.previews = out.Data.Chats
	uc.mu.Unlock()
	return nil
}

// RoomDetails identifies one conversation.
type RoomDetails struct {
	ChatRoomID string
	StoreID    string
	BuyerID    string
}

type roomDetailsResponse struct {
	Data struct {
		ChatRoomID string                 `json:"chatRoomId"`
		Buyer      entity.ChatParticipant `json:"buyer"`
		Store      entity.ChatRoomStore   `json:"store"`
	} `json:"data"`
}

func (uc *ChatUseCase) FetchRoomDetails(ctx context.Context, chatRoomID string) (*RoomDetails, error) {
	uc.setLoading(true)
	defer uc.setLoading(false)

	var out roomDetailsResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/chat/room/%s", chatRoomID), nil, &out); err != nil {
		return nil, err
	}

	return &RoomDetails{
		ChatRoomID: out.Data.ChatRoomID,
		StoreID:    out.Data.Store.ID,
		BuyerID:    out.Data.Buyer.ID,
	}, nil
}

type chatInitResponse struct {
	Data struct {
		ChatRoomID string                 `json:"chatRoomId"`
		Buyer      entity.ChatParticipant `json:"buyer"`
		Store      entity.ChatRoomStore   `json:"store"`
	} `json:"data"`
}

// InitializeChat starts (or resumes) a conversation with a store and makes it
// the active room.
func (uc *ChatUseCase) InitializeChat(ctx context.Context, storeID string) (*RoomDetails, error) {
	uc.setLoading(true)

	var out chatInitResponse
	if err := uc.client.Get(ctx, fmt.Sprintf("/chat/init/%s", storeID), nil, &out); err != nil {
		uc.setLoading(false)
		return nil, err
	}
	uc.setLoading(false)

	uc.addPreviewIfAbsent(entity.ChatPreview{
		ChatRoomID:      out.Data.ChatRoomID,
		StoreID:         out.Data.Store.ID,
		BuyerID:         out.Data.Buyer.ID,
		StoreName:       out.Data.Store.Name,
		BuyerName:       out.Data.Buyer.Name,
		LastMessageTime: time.Now(),
	})

	details := &RoomDetails{
		ChatRoomID: out.Data.ChatRoomID,
		StoreID:    out.Data.Store.ID,
		BuyerID:    out.Data.Buyer.ID,
	}
	if err := uc.SelectChat(ctx, details.ChatRoomID, details.StoreID, details.BuyerID); err != nil {
		return nil, err
	}
	return details, nil
}

func (uc *ChatUseCase) addPreviewIfAbsent(preview entity.ChatPreview) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.previewIndexLocked(preview.ChatRoomID) < 0 {
		uc.previews = append(uc.previews, preview)
	}
}

type chatHistoryResponse struct {
	Data struct {
		ChatRoomID string               `json:"chatRoomId"`
		Messages   []entity.ChatMessage `json:"messages"`
		NextCursor string               `json:"nextCursor"`
		HasMore    bool                 `json:"hasMore"`
	} `json:"data"`
}

// FetchChatHistory loads the newest page for a room and makes it active.
// Local message state is reset before the fetch so nothing stale carries
// over. When connected, the room is joined, its preview unread count zeroed,
// and a deferred mark-read notifies the server.
func (uc *ChatUseCase) FetchChatHistory(ctx context.Context, storeID, buyerID string) error {
	uc.mu.Lock()
	uc.isLoading = true
	uc.messages = nil
	uc.nextCursor = ""
	uc.hasMore = false
	uc.mu.Unlock()
	defer uc.setLoading(false)

	path := fmt.Sprintf("/chat/history/%s", storeID)
	var query url.Values
	if uc.session.Role() == entity.RoleSeller && buyerID != "" {
		query = url.Values{"buyerId": []string{buyerID}}
	}

	var out chatHistoryResponse
	if err := uc.client.Get(ctx, path, query, &out); err != nil {
		return err
	}

	uc.mu.Lock()
	uc.messages = out.Data.Messages
	uc.currentRoomID = out.Data.ChatRoomID
	uc.nextCursor = out.Data.NextCursor
	uc.hasMore = out.Data.HasMore
	conn := uc.sock
	roomID := uc.currentRoomID
	if index := uc.previewIndexLocked(roomID); index >= 0 && conn != nil {
		uc.previews[index].UnreadCount = 0
	}
	uc.mu.Unlock()

	if conn != nil {
		joinBuyer := buyerID
		if joinBuyer == "" {
			joinBuyer = uc.session.UserID()
		}
		if err := conn.Emit(EventJoinRoom, joinRoomPayload{StoreID: storeID, BuyerID: joinBuyer}); err != nil {
			logger.Warn("Failed to join room: %v", err)
		}

		time.AfterFunc(markReadDelay, func() {
			uc.mu.Lock()
			current := uc.sock != nil && uc.currentRoomID == roomID
			sock := uc.sock
			uc.mu.Unlock()
			if current {
				sock.Emit(EventMarkRead, markReadPayload{ChatRoomID: roomID})
			}
		})
	}
	return nil
}

// SelectChat makes a room active: the previous room (if different) is left
// before the new room's history is fetched. Buyers always chat as
// themselves; sellers address a specific buyer.
func (uc *ChatUseCase) SelectChat(ctx context.Context, chatRoomID, storeID, buyerID string) error {
	uc.mu.Lock()
	conn := uc.sock
	previousRoom := uc.currentRoomID
	uc.mu.Unlock()

	if conn != nil && previousRoom != "" && previousRoom != chatRoomID {
		if err := conn.Emit(EventLeaveRoom, leaveRoomPayload{ChatRoomID: previousRoom}); err != nil {
			logger.Warn("Failed to leave room %s: %v", previousRoom, err)
		}
	}

	finalBuyerID := buyerID
	if uc.session.Role() == entity.RoleBuyer {
		finalBuyerID = uc.session.UserID()
	}
	return uc.FetchChatHistory(ctx, storeID, finalBuyerID)
}

// LoadMoreMessages requests the page preceding the oldest loaded message.
// Single-flight per room: while one request is in flight, further calls are
// silent no-ops. Resolves when the older-messages event lands, or fails after
// the page timeout, clearing the loading flag either way.
func (uc *ChatUseCase) LoadMoreMessages(ctx context.Context) error {
	uc.mu.Lock()
	current := uc.currentPreviewLocked()
	if !uc.hasMore || uc.isLoading || uc.sock == nil || current == nil || len(uc.messages) == 0 {
		uc.mu.Unlock()
		return nil
	}
	preview := *current

	uc.isLoading = true
	oldest := uc.messages[0]
	done := make(chan struct{})
	uc.olderDone = done
	conn := uc.sock
	uc.mu.Unlock()

	err := conn.Emit(EventFetchOlder, fetchOlderPayload{
		StoreID:         preview.StoreID,
		BuyerID:         preview.BuyerID,
		BeforeMessageID: oldest.ID,
	})
	if err != nil {
		uc.mu.Lock()
		uc.olderDone = nil
		uc.isLoading = false
		uc.mu.Unlock()
		return err
	}

	select {
	case <-done:
		return nil
	case <-time.After(uc.pageTimeout):
		uc.mu.Lock()
		if uc.olderDone == done {
			uc.olderDone = nil
		}
		uc.isLoading = false
		uc.mu.Unlock()
		return apperrors.Timeout("Timeout loading messages")
	case <-ctx.Done():
		uc.mu.Lock()
		if uc.olderDone == done {
			uc.olderDone = nil
		}
		uc.isLoading = false
		uc.mu.Unlock()
		return ctx.Err()
	}
}

// SendMessage is fire-and-forget: the message is not added locally, it comes
// back through the new-message event. Empty text, no connection or no active
// room are silent no-ops.
func (uc *ChatUseCase) SendMessage(message, attachmentURL string) {
	trimmed := strings.TrimSpace(message)

	uc.mu.Lock()
	conn := uc.sock
	var preview *entity.ChatPreview
	if p := uc.currentPreviewLocked(); p != nil {
		copied := *p
		preview = &copied
	}
	uc.mu.Unlock()

	if conn == nil || preview == nil || trimmed == "" {
		return
	}

	if err := conn.Emit(EventSendMessage, sendMessagePayload{
		TempID:        uuid.NewString(),
		StoreID:       preview.StoreID,
		BuyerID:       preview.BuyerID,
		Message:       trimmed,
		AttachmentURL: attachmentURL,
	}); err != nil {
		logger.Error("Failed to send message: %v", err)
	}
}

func (uc *ChatUseCase) SendTypingStatus(isTyping bool) {
	uc.mu.Lock()
	conn := uc.sock
	roomID := uc.currentRoomID
	uc.mu.Unlock()

	if conn == nil || roomID == "" {
		return
	}
	conn.Emit(EventTyping, typingPayload{ChatRoomID: roomID, IsTyping: isTyping})
}

// MarkChatAsRead notifies the server and zeroes the room's unread counter.
func (uc *ChatUseCase) MarkChatAsRead(chatRoomID string) {
	uc.mu.Lock()
	conn := uc.sock
	if index := uc.previewIndexLocked(chatRoomID); index >= 0 {
		uc.previews[index].UnreadCount = 0
	}
	uc.mu.Unlock()

	if conn != nil {
		conn.Emit(EventMarkRead, markReadPayload{ChatRoomID: chatRoomID})
	}
}

// CleanUp leaves the active room, disconnects and clears all chat state.
// Called on logout or navigation away from the chat surface.
func (uc *ChatUseCase) CleanUp() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.sock != nil {
		if uc.currentRoomID != "" {
			uc.sock.Emit(EventLeaveRoom, leaveRoomPayload{ChatRoomID: uc.currentRoomID})
		}
		uc.sock.Close()
		uc.sock = nil
	}

	uc.messages = nil
	uc.previews = nil
	uc.currentRoomID = ""
	uc.isLoading = false
	uc.hasMore = false
	uc.nextCursor = ""
	uc.isTyping = false
	uc.typingUserID = ""
	if uc.olderDone != nil {
		close(uc.olderDone)
		uc.olderDone = nil
	}
}

// Reset satisfies the logout store registry.
func (uc *ChatUseCase) Reset() {
	uc.CleanUp()
}

func (uc *ChatUseCase) Messages() []entity.ChatMessage {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]entity.ChatMessage, len(uc.messages))
	copy(out, uc.messages)
	return out
}

func (uc *ChatUseCase) Previews() []entity.ChatPreview {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]entity.ChatPreview, len(uc.previews))
	copy(out, uc.previews)
	return out
}

// SortedChatPreviews returns previews newest-first.
func (uc *ChatUseCase) SortedChatPreviews() []entity.ChatPreview {
	out := uc.Previews()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTime.After(out[j].LastMessageTime)
	})
	return out
}

func (uc *ChatUseCase) CurrentChatPreview() *entity.ChatPreview {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	preview := uc.currentPreviewLocked()
	if preview == nil {
		return nil
	}
	copied := *preview
	return &copied
}

func (uc *ChatUseCase) CurrentRoomID() string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.currentRoomID
}

func (uc *ChatUseCase) IsLoading() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.isLoading
}

func (uc *ChatUseCase) HasMoreMessages() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.hasMore
}

// TypingIndicator reports whether the peer is typing and who.
func (uc *ChatUseCase) TypingIndicator() (bool, string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.isTyping, uc.typingUserID
}

func (uc *ChatUseCase) currentPreviewLocked() *entity.ChatPreview {
	if uc.currentRoomID == "" {
		return nil
	}
	if index := uc.previewIndexLocked(uc.currentRoomID); index >= 0 {
		return &uc.previews[index]
	}
	return nil
}

func (uc *ChatUseCase) previewIndexLocked(chatRoomID string) int {
	for i := range uc.previews {
		if uc.previews[i].ChatRoomID == chatRoomID {
			return i
		}
	}
	return -1
}

func (uc *ChatUseCase) setLoading(loading bool) {
	uc.mu.Lock()
	uc.isLoading = loading
	uc.mu.Unlock()
}

type joinRoomPayload struct {
	StoreID string `json:"storeId"`
	BuyerID string `json:"buyerId"`
}

type leaveRoomPayload struct {
	ChatRoomID string `json:"chatRoomId"`
}

type markReadPayload struct {
	ChatRoomID string `json:"chatRoomId"`
}

type sendMessagePayload struct {
	TempID        string `json:"tempId"`
	StoreID       string `json:"storeId"`
	BuyerID       string `json:"buyerId"`
	Message       string `json:"message"`
	AttachmentURL string `json:"attachmentUrl,omitempty"`
}

type typingPayload struct {
	ChatRoomID string `json:"chatRoomId"`
	IsTyping   bool   `json:"isTyping"`
}

type fetchOlderPayload struct {
	StoreID         string `json:"storeId"`
	BuyerID         string `json:"buyerId"`
	BeforeMessageID string `json:"beforeMessageId"`
}
