package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
)

// SeedSummary counts the rows Seed inserted.
type SeedSummary struct {
	Developers int
	Categories int
	Games      int
	Users      int
	Purchases  int
}

type seedGame struct {
	title       string
	description string
	price       string
	release     model.Date
	developer   int // index into the developer list
	categories  []int
}

type seedUser struct {
	name, email, password string
}

type seedPurchase struct {
	user, game int
	total      string
	date       time.Time
}

var (
	seedDevelopers = []string{"Rockstar Games", "CD Projekt Red", "FromSoftware"}
	seedCategories = []string{"RPG", "Ação", "Aventura", "Simulação"}
	seedGames      = []seedGame{
		{
			title:       "Red Dead Redemption 2",
			description: "Um épico do velho oeste",
			price:       "199.99",
			release:     model.NewDate(2018, time.October, 26),
			developer:   0,
			categories:  []int{1, 2},
		},
		{
			title:       "The Witcher 3",
			description: "RPG de mundo aberto com Geralt de Rívia",
			price:       "129.99",
			release:     model.NewDate(2015, time.May, 19),
			developer:   1,
			categories:  []int{0, 2},
		},
		{
			title:       "Elden Ring",
			description: "Um novo mundo de fantasia de Hidetaka Miyazaki e George R.R. Martin",
			price:       "249.99",
			release:     model.NewDate(2022, time.February, 25),
			developer:   2,
			categories:  []int{0, 1},
		},
	}
	seedUsers = []seedUser{
		{"Eduardo Alves", "eduardo.alves@email.com", "123456"},
		{"Joao Augusto", "joao.augusto@email.com", "654321"},
		{"Guilherme Fiani", "guilherme.fiani@email.com", "senha123"},
	}
	seedPurchases = []seedPurchase{
		{user: 0, game: 0, total: "199.99", date: time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)},
		{user: 0, game: 1, total: "129.99", date: time.Date(2024, time.November, 2, 0, 0, 0, 0, time.UTC)},
		{user: 1, game: 2, total: "249.99", date: time.Date(2024, time.November, 3, 0, 0, 0, 0, time.UTC)},
		{user: 2, game: 0, total: "199.99", date: time.Date(2024, time.November, 4, 0, 0, 0, 0, time.UTC)},
	}
)

// Seed inserts the sample catalogue through the services, so passwords are
// hashed and links are written the same way the API writes them.
//
// Seeding a database that already has games is refused with
// apperror.ErrConflict rather than duplicating the catalogue.
func (s *Services) Seed(ctx context.Context) (SeedSummary, error) {
	var summary SeedSummary

	existing, err := s.Games.List(ctx)
	if err != nil {
		return summary, err
	}
	if len(existing) > 0 {
		return summary, apperror.Conflict("database already contains games; refusing to seed")
	}

	developerIDs := make([]int64, 0, len(seedDevelopers))
	for _, name := range seedDevelopers {
		developer, err := s.Developers.Create(ctx, name)
		if err != nil {
			return summary, fmt.Errorf("seeding developer %q: %w", name, err)
		}
		developerIDs = append(developerIDs, developer.ID)
		summary.Developers++
	}

	categoryIDs := make([]int64, 0, len(seedCategories))
	for _, name := range seedCategories {
		category, err := s.Categories.Create(ctx, name)
		if err != nil {
			return summary, fmt.Errorf("seeding category %q: %w", name, err)
		}
		categoryIDs = append(categoryIDs, category.ID)
		summary.Categories++
	}

	gameIDs := make([]int64, 0, len(seedGames))
	for _, sg := range seedGames {
		links := make([]int64, 0, len(sg.categories))
		for _, i := range sg.categories {
			links = append(links, categoryIDs[i])
		}
		release := sg.release
		game, err := s.Games.Create(ctx, model.Game{
			Title:       sg.title,
			Description: sg.description,
			Price:       decimal.RequireFromString(sg.price),
			ReleaseDate: &release,
			DeveloperID: &developerIDs[sg.developer],
			CategoryIDs: links,
		})
		if err != nil {
			return summary, fmt.Errorf("seeding game %q: %w", sg.title, err)
		}
		gameIDs = append(gameIDs, game.ID)
		summary.Games++
	}

	userIDs := make([]int64, 0, len(seedUsers))
	for _, su := range seedUsers {
		user, err := s.Users.Create(ctx, su.name, su.email, su.password)
		if err != nil {
			return summary, fmt.Errorf("seeding user %q: %w", su.name, err)
		}
		userIDs = append(userIDs, user.ID)
		summary.Users++
	}

	for _, sp := range seedPurchases {
		_, err := s.Purchases.Create(ctx, model.Purchase{
			UserID:       userIDs[sp.user],
			GameID:       gameIDs[sp.game],
			Total:        decimal.RequireFromString(sp.total),
			PurchaseDate: sp.date,
		})
		if err != nil {
			return summary, fmt.Errorf("seeding purchase: %w", err)
		}
		summary.Purchases++
	}

	s.logger.Info("database seeded",
		slog.Int("developers", summary.Developers),
		slog.Int("categories", summary.Categories),
		slog.Int("games", summary.Games),
		slog.Int("users", summary.Users),
		slog.Int("purchases", summary.Purchases),
	)
	return summary, nil
}
