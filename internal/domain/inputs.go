package domain

import "github.com/shopspring/decimal"

// Inputs carry the full editable field set; updates resend every field.

type StoreInput struct {
	Name string `json:"name"`
}

type BillboardInput struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	BillboardID string `json:"billboardId"`
}

type SizeInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ColorInput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ImageInput struct {
	URL string `json:"url"`
}

type ProductInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	AvailableQty int             `json:"availableQty"`
	CategoryID   string          `json:"categoryId"`
	SizeID       string          `json:"sizeId"`
	ColorID      string          `json:"colorId"`
	IsFeatured   bool            `json:"isFeatured"`
	IsArchived   bool            `json:"isArchived"`
	Images       []ImageInput    `json:"images"`
}

type OrderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type OrderInput struct {
	Phone   string           `json:"phone"`
	Address string           `json:"address"`
	IsPaid  bool             `json:"isPaid"`
	Items   []OrderItemInput `json:"orderItems"`
}
