package entity

import "time"

type Wishlist struct {
	ID        string    `json:"id"`
	ProductID string    `json:"productId"`
	BuyerID   string    `json:"buyerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WishlistWithProduct struct {
	Wishlist
	Product Product `json:"product"`
}
