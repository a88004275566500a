package entity

import "time"

type ProductImage struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

type Product struct {
	ID          string         `json:"id"`
	StoreID     string         `json:"storeId"`
	ProductName string         `json:"productName"`
	Description string         `json:"description,omitempty"`
	CategoryID  string         `json:"categoryId"`
	Price       float64        `json:"price"`
	Quantity    int            `json:"quantity"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Images      []ProductImage `json:"images,omitempty"`
}

type Category struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	ProductCount int       `json:"productCount"`
}
