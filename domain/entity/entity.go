package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account as the backend transmits it.
// The gateway never owns user state; it only relays copies per request.
type User struct {
	ID       int64    `json:"id"`
	Email    string   `json:"email"`
	Username string   `json:"username"`
	Fullname string   `json:"fullname"`
	Phone    string   `json:"phone,omitempty"`
	Address  string   `json:"address,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Product is a catalog item sold through orders.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id"`
}

// Service is a bookable catalog item fulfilled through reservations.
type Service struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  int64   `json:"category_id"`
}

// Order links a customer to purchased products.
type Order struct {
	ID         int64   `json:"id"`
	CustomerID int64   `json:"customer_id"`
	Address    string  `json:"address"`
	IsDelivery bool    `json:"is_delivery"`
	IsPaid     bool    `json:"is_paid"`
	TotalPrice float64 `json:"total_price"`
	ProductIDs []int64 `json:"product_ids,omitempty"`
}

// Reservation books services for a user at a point in time.
type Reservation struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Datetime   time.Time `json:"datetime"`
	IsPaid     bool      `json:"is_paid"`
	TotalPrice float64   `json:"total_price"`
	ServiceIDs []int64   `json:"service_ids,omitempty"`
}

// Promotion discounts exactly one of a product or a service for a date range.
// ProductID and ServiceID are mutually exclusive; exactly one is set.
type Promotion struct {
	ID        int64   `json:"id"`
	DateFrom  string  `json:"date_from"`
	DateTo    string  `json:"date_to"`
	NewPrice  float64 `json:"new_price"`
	ProductID *int64  `json:"product_id,omitempty"`
	ServiceID *int64  `json:"service_id,omitempty"`
}

// Blog is an article authored by a user.
type Blog struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	AuthorID int64  `json:"author_id"`
}

// Session is the gateway-owned login state for one browser. It is created at
// login, replaced wholesale on refresh and destroyed at logout; the browser
// only ever sees a signed cookie carrying the session ID.
type Session struct {
	ID           uuid.UUID `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Fullname     string    `json:"fullname"`
	Roles        []string  `json:"roles"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// HasAnyRole reports whether the session carries at least one of the given role names.
func (s *Session) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range s.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}
