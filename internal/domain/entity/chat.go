package entity

import "time"

type ChatMessage struct {
	ID            string    `json:"id"`
	Message       string    `json:"message"`
	SenderID      string    `json:"senderId"`
	ChatRoomID    string    `json:"chatRoomId"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	IsRead        bool      `json:"isRead"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ChatPreview summarizes one conversation the current user participates in.
// UnreadCount never goes negative; it is zeroed when the room becomes active
// or is explicitly marked read.
type ChatPreview struct {
	ChatRoomID      string    `json:"chatRoomId"`
	StoreID         string    `json:"storeId"`
	BuyerID         string    `json:"buyerId"`
	StoreName       string    `json:"storeName"`
	BuyerName       string    `json:"buyerName"`
	SenderID        string    `json:"senderId,omitempty"`
	SellerID        string    `json:"sellerId,omitempty"`
	LastMessage     string    `json:"lastMessage,omitempty"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"`
}

// ChatParticipant pairs an id with a display name in /chat/init and
// /chat/room payloads.
type ChatParticipant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChatRoomStore struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId,omitempty"`
	Name    string `json:"name"`
}
