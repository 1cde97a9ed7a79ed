// Package model defines the data structures used throughout the store.
//
// The `json:"..."` tags define the wire contract of the HTTP API; the
// `example` and `swaggertype` tags feed the generated API documentation.
package model

import "github.com/shopspring/decimal"

// Category groups games (RPG, Action, ...). A category is linked to games
// through the game_categories join table.
type Category struct {
	ID   int64  `json:"id"   example:"1"`
	Name string `json:"name" example:"RPG"`
}

// Developer is the studio that made a game.
type Developer struct {
	ID   int64  `json:"id"   example:"1"`
	Name string `json:"name" example:"FromSoftware"`
}

// Game is a catalogue entry.
//
// Price is a decimal so that money never goes through float64 arithmetic.
// It is serialised as a JSON string ("249.99").
//
// CategoryIDs lists the categories the game is linked to. It is never nil
// on reads, so a game without links serialises as "categoryIds": [].
type Game struct {
	ID          int64           `json:"id"                    example:"1"`
	Title       string          `json:"title"                 example:"Elden Ring"`
	Description string          `json:"description"           example:"An epic adventure"`
	Price       decimal.Decimal `json:"price"                 swaggertype:"string" example:"249.99"`
	ReleaseDate *Date           `json:"releaseDate"           swaggertype:"string" example:"2022-02-25"`
	DeveloperID *int64          `json:"developerId"           example:"3"`
	CategoryIDs []int64         `json:"categoryIds"           example:"1,2"`
}

// PurchasedGame is the game embedded in a listed purchase: the games row
// without its category links.
type PurchasedGame struct {
	ID          int64           `json:"id"          example:"1"`
	Title       string          `json:"title"       example:"Elden Ring"`
	Description string          `json:"description" example:"An epic adventure"`
	Price       decimal.Decimal `json:"price"       swaggertype:"string" example:"249.99"`
	ReleaseDate *Date           `json:"releaseDate" swaggertype:"string" example:"2022-02-25"`
	DeveloperID *int64          `json:"developerId" example:"3"`
}

// GameUpdate carries a partial update of a game. Nil pointers leave the
// corresponding column unchanged.
//
// When ReplaceCategories is set, the game's links are replaced by exactly
// CategoryIDs (an empty slice unlinks every category). When it is not set,
// links are left untouched.
type GameUpdate struct {
	ID                int64
	Title             *string
	Description       *string
	Price             *decimal.Decimal
	ReplaceCategories bool
	CategoryIDs       []int64
}
