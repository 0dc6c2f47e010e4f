package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Stamp is a creation/update instant in unix nanoseconds. Stored as an
// integer so ordering is exact on every driver.
type Stamp int64

func (s Stamp) Time() time.Time { return time.Unix(0, int64(s)).UTC() }

func (s Stamp) Value() (driver.Value, error) { return int64(s), nil }

func (s *Stamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = 0
	case int64:
		*s = Stamp(v)
	case float64:
		*s = Stamp(int64(v))
	case []byte:
		return s.Scan(string(v))
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("stamp: %w", err)
		}
		*s = Stamp(n)
	default:
		return fmt.Errorf("stamp: unsupported type %T", src)
	}
	return nil
}

func (s Stamp) MarshalJSON() ([]byte, error) {
	if s == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(s.Time().Format(time.RFC3339Nano))
}

type Store struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	UserID    string `db:"user_id" json:"-"`
	CreatedAt Stamp  `db:"created_at" json:"createdAt"`
	UpdatedAt Stamp  `db:"updated_at" json:"updatedAt"`
}

type Billboard struct {
	ID        string `db:"id" json:"id"`
	StoreID   string `db:"store_id" json:"storeId"`
	Label     string `db:"label" json:"label"`
	ImageURL  string `db:"image_url" json:"imageUrl"`
	CreatedAt Stamp  `db:"created_at" json:"createdAt"`
	UpdatedAt Stamp  `db:"updated_at" json:"updatedAt"`
}

type Category struct {
	ID             string `db:"id" json:"id"`
	StoreID        string `db:"store_id" json:"storeId"`
	BillboardID    string `db:"billboard_id" json:"billboardId"`
	Name           string `db:"name" json:"name"`
	BillboardLabel string `db:"billboard_label" json:"billboardLabel,omitempty"`
	CreatedAt      Stamp  `db:"created_at" json:"createdAt"`
	UpdatedAt      Stamp  `db:"updated_at" json:"updatedAt"`
}

type Size struct {
	ID        string `db:"id" json:"id"`
	StoreID   string `db:"store_id" json:"storeId"`
	Name      string `db:"name" json:"name"`
	Value     string `db:"value" json:"value"`
	CreatedAt Stamp  `db:"created_at" json:"createdAt"`
	UpdatedAt Stamp  `db:"updated_at" json:"updatedAt"`
}

type Color struct {
	ID        string `db:"id" json:"id"`
	StoreID   string `db:"store_id" json:"storeId"`
	Name      string `db:"name" json:"name"`
	Value     string `db:"value" json:"value"` // #rrggbb
	CreatedAt Stamp  `db:"created_at" json:"createdAt"`
	UpdatedAt Stamp  `db:"updated_at" json:"updatedAt"`
}

type Image struct {
	ID        string `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"`
	URL       string `db:"url" json:"url"`
	Position  int    `db:"position" json:"-"`
	CreatedAt Stamp  `db:"created_at" json:"createdAt"`
}

type Product struct {
	ID           string          `db:"id" json:"id"`
	StoreID      string          `db:"store_id" json:"storeId"`
	CategoryID   string          `db:"category_id" json:"categoryId"`
	SizeID       string          `db:"size_id" json:"sizeId"`
	ColorID      string          `db:"color_id" json:"colorId"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	AvailableQty int             `db:"available_qty" json:"availableQty"`
	IsFeatured   bool            `db:"is_featured" json:"isFeatured"`
	IsArchived   bool            `db:"is_archived" json:"isArchived"`
	CategoryName string          `db:"category_name" json:"categoryName,omitempty"`
	SizeName     string          `db:"size_name" json:"sizeName,omitempty"`
	ColorValue   string          `db:"color_value" json:"colorValue,omitempty"`
	Images       []Image         `db:"-" json:"images"`
	CreatedAt    Stamp           `db:"created_at" json:"createdAt"`
	UpdatedAt    Stamp           `db:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	ID          string          `db:"id" json:"id"`
	OrderID     string          `db:"order_id" json:"orderId"`
	ProductID   string          `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName,omitempty"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Price       decimal.Decimal `db:"price" json:"price"` // unit price at order time
}

type Order struct {
	ID        string          `db:"id" json:"id"`
	StoreID   string          `db:"store_id" json:"storeId"`
	Phone     string          `db:"phone" json:"phone"`
	Address   string          `db:"address" json:"address"`
	IsPaid    bool            `db:"is_paid" json:"isPaid"`
	Total     decimal.Decimal `db:"total" json:"total"`
	Items     []OrderItem     `db:"-" json:"orderItems"`
	CreatedAt Stamp           `db:"created_at" json:"createdAt"`
	UpdatedAt Stamp           `db:"updated_at" json:"updatedAt"`
}

// Overview backs the store dashboard.
type Overview struct {
	Store      Store           `json:"store"`
	Revenue    decimal.Decimal `json:"totalRevenue"`
	SalesCount int             `json:"salesCount"`
	StockCount int             `json:"stockCount"`
	Counts     map[string]int  `json:"counts"`
	Graph      []MonthRevenue  `json:"graphRevenue"`
}

type MonthRevenue struct {
	Month string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

func (s Store) EntityID() string     { return s.ID }
func (b Billboard) EntityID() string { return b.ID }
func (c Category) EntityID() string  { return c.ID }
func (s Size) EntityID() string      { return s.ID }
func (c Color) EntityID() string     { return c.ID }
func (p Product) EntityID() string   { return p.ID }
func (o Order) EntityID() string     { return o.ID }
