package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a store customer.
//
// PasswordHash holds a bcrypt hash, never the plaintext. The `json:"-"` tag
// keeps it out of every API response.
type User struct {
	ID           int64  `json:"id"    example:"1"`
	Name         string `json:"name"  example:"Eduardo Alves"`
	Email        string `json:"email" example:"eduardo.alves@email.com"`
	PasswordHash string `json:"-"`
}

// UserUpdate is a partial update of a user; nil fields are left unchanged.
// PasswordHash must already be hashed when it reaches the repository.
type UserUpdate struct {
	ID           int64
	Name         *string
	Email        *string
	PasswordHash *string
}

// Purchase records a user buying a game.
//
// User and Game are only populated by the list query, which joins both
// tables so clients get the full records rather than bare ids.
type Purchase struct {
	ID           int64           `json:"id"             example:"1"`
	UserID       int64           `json:"userId"         example:"1"`
	GameID       int64           `json:"gameId"         example:"2"`
	Total        decimal.Decimal `json:"total"          swaggertype:"string" example:"199.99"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	User         *User           `json:"user,omitempty"`
	Game         *PurchasedGame  `json:"game,omitempty"`
}
