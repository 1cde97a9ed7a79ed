package sqlite

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestGameCreate_WithLinks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	developer := &model.Developer{Name: "FromSoftware"}
	if err := db.Developers().Create(ctx, developer); err != nil {
		t.Fatalf("creating developer: %v", err)
	}
	rpg := createTestCategory(t, db, "RPG")
	action := createTestCategory(t, db, "Ação")

	release := model.NewDate(2022, time.February, 25)
	game := &model.Game{
		Title:       "Elden Ring",
		Description: "Open world",
		Price:       decimal.RequireFromString("249.99"),
		ReleaseDate: &release,
		DeveloperID: &developer.ID,
		CategoryIDs: []int64{rpg.ID, action.ID},
	}
	if err := db.Games().Create(ctx, game); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := db.Games().GetByID(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "Elden Ring" || found.Description != "Open world" {
		t.Errorf("GetByID() = %+v", found)
	}
	if !found.Price.Equal(decimal.RequireFromString("249.99")) {
		t.Errorf("Price = %s, want 249.99", found.Price)
	}
	if found.ReleaseDate == nil || found.ReleaseDate.String() != "2022-02-25" {
		t.Errorf("ReleaseDate = %v, want 2022-02-25", found.ReleaseDate)
	}
	if found.DeveloperID == nil || *found.DeveloperID != developer.ID {
		t.Errorf("DeveloperID = %v, want %d", found.DeveloperID, developer.ID)
	}
	if !slices.Equal(found.CategoryIDs, []int64{rpg.ID, action.ID}) {
		t.Errorf("CategoryIDs = %v, want %v", found.CategoryIDs, []int64{rpg.ID, action.ID})
	}
}

func TestGameCreate_UnknownCategoryRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	game := &model.Game{Title: "Ghost", CategoryIDs: []int64{404}}
	err := db.Games().Create(ctx, game)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() error = %v, want ErrConflict", err)
	}

	games, err := db.Games().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(games) != 0 {
		t.Errorf("List() returned %d games, want 0 after rolled back create", len(games))
	}
}

func TestGameList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rpg := createTestCategory(t, db, "RPG")
	adventure := createTestCategory(t, db, "Aventura")

	witcher := createTestGame(t, db, "The Witcher 3", rpg.ID, adventure.ID)
	gta := createTestGame(t, db, "GTA V")

	games, err := db.Games().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("List() returned %d games, want 2", len(games))
	}
	if games[0].ID != witcher.ID || !slices.Equal(games[0].CategoryIDs, []int64{rpg.ID, adventure.ID}) {
		t.Errorf("games[0] = %+v", games[0])
	}
	if games[1].ID != gta.ID || len(games[1].CategoryIDs) != 0 {
		t.Errorf("games[1] = %+v", games[1])
	}
	if games[0].ReleaseDate != nil || games[0].DeveloperID != nil {
		t.Errorf("nullable columns should scan as nil, got %+v", games[0])
	}
}

func TestGamePrice_ExactDecimal(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	const price = "12345678901234567.89"
	game := &model.Game{Title: "Elden Ring", Price: decimal.RequireFromString(price)}
	if err := db.Games().Create(ctx, game); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got := game.Price.String(); got != price {
		t.Errorf("Create() Price = %s, want %s", got, price)
	}

	games, err := db.Games().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("List() returned %d games, want 1", len(games))
	}
	if got := games[0].Price.String(); got != price {
		t.Errorf("List() Price = %s, want %s", got, price)
	}

	const cents = "98765432109876543.21"
	updated, err := db.Games().Update(ctx, model.GameUpdate{
		ID:    game.ID,
		Price: ptr(decimal.RequireFromString(cents)),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := updated.Price.String(); got != cents {
		t.Errorf("Update() Price = %s, want %s", got, cents)
	}
}

func TestGameUpdate_TitleOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rpg := createTestCategory(t, db, "RPG")
	game := createTestGame(t, db, "Elden Ring", rpg.ID)

	updated, err := db.Games().Update(ctx, model.GameUpdate{
		ID:    game.ID,
		Title: ptr("Elden Ring GOTY"),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if updated.Title != "Elden Ring GOTY" {
		t.Errorf("Title = %q, want %q", updated.Title, "Elden Ring GOTY")
	}
	if updated.Description != game.Description {
		t.Errorf("Description = %q, want unchanged %q", updated.Description, game.Description)
	}
	if !updated.Price.Equal(game.Price) {
		t.Errorf("Price = %s, want unchanged %s", updated.Price, game.Price)
	}
	if !slices.Equal(updated.CategoryIDs, []int64{rpg.ID}) {
		t.Errorf("CategoryIDs = %v, want unchanged [%d]", updated.CategoryIDs, rpg.ID)
	}
}

func TestGameUpdate_ReplaceCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c1 := createTestCategory(t, db, "RPG")
	c2 := createTestCategory(t, db, "Ação")
	c3 := createTestCategory(t, db, "Aventura")
	game := createTestGame(t, db, "The Witcher 3", c1.ID)

	updated, err := db.Games().Update(ctx, model.GameUpdate{
		ID:                game.ID,
		Price:             ptr(decimal.RequireFromString("99.90")),
		ReplaceCategories: true,
		CategoryIDs:       []int64{c2.ID, c3.ID},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !slices.Equal(updated.CategoryIDs, []int64{c2.ID, c3.ID}) {
		t.Errorf("CategoryIDs = %v, want [%d %d]", updated.CategoryIDs, c2.ID, c3.ID)
	}
	if !updated.Price.Equal(decimal.RequireFromString("99.9")) {
		t.Errorf("Price = %s, want 99.9", updated.Price)
	}
}

func TestGameUpdate_ClearCategories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c1 := createTestCategory(t, db, "RPG")
	game := createTestGame(t, db, "Elden Ring", c1.ID)

	updated, err := db.Games().Update(ctx, model.GameUpdate{
		ID:                game.ID,
		ReplaceCategories: true,
		CategoryIDs:       []int64{},
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.CategoryIDs == nil || len(updated.CategoryIDs) != 0 {
		t.Errorf("CategoryIDs = %#v, want empty non-nil slice", updated.CategoryIDs)
	}

	games, err := db.Games().List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(games) != 1 || games[0].CategoryIDs == nil {
		t.Errorf("List() CategoryIDs = %#v, want empty non-nil slice", games)
	}

	// With no links left the category can be deleted.
	if _, err := db.Categories().Delete(ctx, c1.ID); err != nil {
		t.Errorf("Delete() of unlinked category error = %v", err)
	}
}

func TestGameUpdate_UnknownCategoryKeepsOldLinks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c1 := createTestCategory(t, db, "RPG")
	c2 := createTestCategory(t, db, "Ação")
	game := createTestGame(t, db, "Elden Ring", c1.ID)

	_, err := db.Games().Update(ctx, model.GameUpdate{
		ID:                game.ID,
		Title:             ptr("renamed"),
		ReplaceCategories: true,
		CategoryIDs:       []int64{c2.ID, 999},
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Update() error = %v, want ErrConflict", err)
	}

	found, err := db.Games().GetByID(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.Title != "Elden Ring" {
		t.Errorf("Title = %q, want rolled back to %q", found.Title, "Elden Ring")
	}
	if !slices.Equal(found.CategoryIDs, []int64{c1.ID}) {
		t.Errorf("CategoryIDs = %v, want rolled back to [%d]", found.CategoryIDs, c1.ID)
	}
}

func TestGameUpdate_FailureAfterUnlinkKeepsOldLinks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c1 := createTestCategory(t, db, "RPG")
	c2 := createTestCategory(t, db, "Ação")
	game := createTestGame(t, db, "GTA V", c1.ID, c2.ID)

	errCrash := errors.New("simulated crash")
	testHookAfterUnlink = func() error { return errCrash }
	t.Cleanup(func() { testHookAfterUnlink = nil })

	_, err := db.Games().Update(ctx, model.GameUpdate{
		ID:                game.ID,
		ReplaceCategories: true,
		CategoryIDs:       []int64{c2.ID},
	})
	if !errors.Is(err, errCrash) {
		t.Fatalf("Update() error = %v, want simulated crash", err)
	}

	found, err := db.Games().GetByID(ctx, game.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if !slices.Equal(found.CategoryIDs, []int64{c1.ID, c2.ID}) {
		t.Errorf("CategoryIDs = %v, want original [%d %d]", found.CategoryIDs, c1.ID, c2.ID)
	}
}

func TestGameUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Games().Update(context.Background(), model.GameUpdate{ID: 77, Title: ptr("x")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestGameDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	c1 := createTestCategory(t, db, "RPG")
	game := createTestGame(t, db, "Elden Ring", c1.ID)

	deleted, err := db.Games().Delete(ctx, game.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.ID != game.ID || deleted.Title != game.Title {
		t.Errorf("Delete() returned %+v", deleted)
	}

	// Links went with the game, so the category is free to go.
	if _, err := db.Categories().Delete(ctx, c1.ID); err != nil {
		t.Errorf("Delete() of category after game delete error = %v", err)
	}
}

func TestGameDelete_Purchased(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	game := createTestGame(t, db, "Elden Ring")
	user := createTestUser(t, db, "Eduardo", "eduardo@email.com")

	purchase := &model.Purchase{UserID: user.ID, GameID: game.ID, Total: game.Price}
	if err := db.Purchases().Create(ctx, purchase); err != nil {
		t.Fatalf("creating purchase: %v", err)
	}

	_, err := db.Games().Delete(ctx, game.ID)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Delete() error = %v, want ErrConflict", err)
	}
}
