package entity

import "time"

type StoreStatus string

const (
	StoreIncomplete StoreStatus = "incomplete"
	StoreActive     StoreStatus = "active"
	StoreInactive   StoreStatus = "inactive"
	StoreSuspended  StoreStatus = "suspended"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

type Store struct {
	ID           string      `json:"id"`
	StoreName    string      `json:"storeName"`
	OwnerID      string      `json:"ownerId"`
	OwnerName    string      `json:"ownerName,omitempty"`
	Description  string      `json:"description,omitempty"`
	StoreAddress string      `json:"storeAddress,omitempty"`
	StoreStatus  StoreStatus `json:"storeStatus"`
}

type StoreRequest struct {
	ID             string        `json:"id"`
	StoreID        string        `json:"storeId"`
	RequestMessage string        `json:"requestMessage"`
	RequestStatus  RequestStatus `json:"requestStatus"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Store          *Store        `json:"store,omitempty"`
}

type StoreReport struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"createdAt"`
	Product     *Product  `json:"product,omitempty"`
}

type StoreWarning struct {
	ID          string    `json:"id"`
	StoreID     string    `json:"storeId"`
	Reason      string    `json:"reason"`
	ActionTaken string    `json:"actionTaken"`
	CreatedAt   time.Time `json:"createdAt"`
	Product     *Product  `json:"product,omitempty"`
}
