package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/sakif/game-store/internal/apperror"
	"github.com/sakif/game-store/internal/model"
)

// In-memory fakes of the repository interfaces. Each one stores copies so a
// test cannot mutate "stored" rows by accident, and each has an err field
// that, when set, is returned from every method to simulate a database
// failure.

type fakeCategoryRepo struct {
	rows   map[int64]model.Category
	linked map[int64]bool // categories that behave as if a game links them
	nextID int64
	err    error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{rows: map[int64]model.Category{}, linked: map[int64]bool{}}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*model.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("category", id)
	}
	return &c, nil
}

func (f *fakeCategoryRepo) List(context.Context) ([]model.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Category{}
	for id := int64(1); id <= f.nextID; id++ {
		if c, ok := f.rows[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.rows[c.ID]; !ok {
		return apperror.NotFound("category", c.ID)
	}
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) (*model.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("category", id)
	}
	if f.linked[id] {
		return nil, apperror.Conflict("category is still linked to a game")
	}
	delete(f.rows, id)
	return &c, nil
}

type fakeDeveloperRepo struct {
	rows []model.Developer
	err  error
}

func (f *fakeDeveloperRepo) Create(_ context.Context, d *model.Developer) error {
	if f.err != nil {
		return f.err
	}
	d.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *d)
	return nil
}

func (f *fakeDeveloperRepo) List(context.Context) ([]model.Developer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Developer{}, f.rows...), nil
}

// fakeGameRepo records the last update it received so tests can assert on
// what the service passed down.
type fakeGameRepo struct {
	rows       map[int64]model.Game
	nextID     int64
	lastUpdate *model.GameUpdate
	err        error
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{rows: map[int64]model.Game{}}
}

func (f *fakeGameRepo) Create(_ context.Context, g *model.Game) error {
	if f.err != nil {
		return f.err
	}
	f.nextID++
	g.ID = f.nextID
	f.rows[g.ID] = *g
	return nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int64) (*model.Game, error) {
	g, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("game", id)
	}
	return &g, nil
}

func (f *fakeGameRepo) List(context.Context) ([]model.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Game{}
	for id := int64(1); id <= f.nextID; id++ {
		if g, ok := f.rows[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGameRepo) Update(_ context.Context, u model.GameUpdate) (*model.Game, error) {
	f.lastUpdate = &u
	if f.err != nil {
		return nil, f.err
	}
	g, ok := f.rows[u.ID]
	if !ok {
		return nil, apperror.NotFound("game", u.ID)
	}
	if u.Title != nil {
		g.Title = *u.Title
	}
	if u.Description != nil {
		g.Description = *u.Description
	}
	if u.Price != nil {
		g.Price = *u.Price
	}
	if u.ReplaceCategories {
		g.CategoryIDs = u.CategoryIDs
	}
	f.rows[u.ID] = g
	return &g, nil
}

func (f *fakeGameRepo) Delete(_ context.Context, id int64) (*model.Game, error) {
	g, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("game", id)
	}
	delete(f.rows, id)
	return &g, nil
}

type fakeUserRepo struct {
	rows   map[int64]model.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{rows: map[int64]model.User{}}
}

func (f *fakeUserRepo) emailTaken(email string, except int64) bool {
	for id, u := range f.rows {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	if f.err != nil {
		return f.err
	}
	if f.emailTaken(u.Email, 0) {
		return apperror.Conflict("email already registered")
	}
	f.nextID++
	u.ID = f.nextID
	f.rows[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	return &u, nil
}

func (f *fakeUserRepo) List(context.Context) ([]model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.User{}
	for id := int64(1); id <= f.nextID; id++ {
		if u, ok := f.rows[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u model.UserUpdate) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	stored, ok := f.rows[u.ID]
	if !ok {
		return nil, apperror.NotFound("user", u.ID)
	}
	if u.Name != nil {
		stored.Name = *u.Name
	}
	if u.Email != nil {
		if f.emailTaken(*u.Email, u.ID) {
			return nil, apperror.Conflict("email already registered")
		}
		stored.Email = *u.Email
	}
	if u.PasswordHash != nil {
		stored.PasswordHash = *u.PasswordHash
	}
	f.rows[u.ID] = stored
	return &stored, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	delete(f.rows, id)
	return &u, nil
}

// fakePurchaseRepo rejects purchases whose user or game is not in the
// matching fake, mirroring the foreign keys.
type fakePurchaseRepo struct {
	rows   map[int64]model.Purchase
	users  *fakeUserRepo
	games  *fakeGameRepo
	nextID int64
	err    error
}

func newFakePurchaseRepo(users *fakeUserRepo, games *fakeGameRepo) *fakePurchaseRepo {
	return &fakePurchaseRepo{rows: map[int64]model.Purchase{}, users: users, games: games}
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *model.Purchase) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.users.rows[p.UserID]; !ok {
		return apperror.Conflict("user does not exist")
	}
	if _, ok := f.games.rows[p.GameID]; !ok {
		return apperror.Conflict("game does not exist")
	}
	f.nextID++
	p.ID = f.nextID
	f.rows[p.ID] = *p
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, id int64) (*model.Purchase, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("purchase", id)
	}
	return &p, nil
}

func (f *fakePurchaseRepo) List(context.Context) ([]model.Purchase, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []model.Purchase{}
	for id := int64(1); id <= f.nextID; id++ {
		p, ok := f.rows[id]
		if !ok {
			continue
		}
		u := f.users.rows[p.UserID]
		g := f.games.rows[p.GameID]
		p.User = &u
		p.Game = &model.PurchasedGame{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Price:       g.Price,
			ReleaseDate: g.ReleaseDate,
			DeveloperID: g.DeveloperID,
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePurchaseRepo) UpdateTotal(_ context.Context, p *model.Purchase) error {
	if f.err != nil {
		return f.err
	}
	stored, ok := f.rows[p.ID]
	if !ok {
		return apperror.NotFound("purchase", p.ID)
	}
	stored.Total = p.Total
	f.rows[p.ID] = stored
	*p = stored
	return nil
}

func (f *fakePurchaseRepo) Delete(_ context.Context, id int64) (*model.Purchase, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, apperror.NotFound("purchase", id)
	}
	delete(f.rows, id)
	return &p, nil
}

// fakeHasher prefixes the plaintext so tests can see that hashing happened
// without paying for bcrypt.
type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

type fakeRepos struct {
	categories *fakeCategoryRepo
	developers *fakeDeveloperRepo
	games      *fakeGameRepo
	users      *fakeUserRepo
	purchases  *fakePurchaseRepo
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServices wires every service to fresh fakes.
func newTestServices(t *testing.T) (*Services, fakeRepos) {
	t.Helper()
	users := newFakeUserRepo()
	games := newFakeGameRepo()
	repos := fakeRepos{
		categories: newFakeCategoryRepo(),
		developers: &fakeDeveloperRepo{},
		games:      games,
		users:      users,
		purchases:  newFakePurchaseRepo(users, games),
	}
	svc := New(Stores{
		Categories: repos.categories,
		Developers: repos.developers,
		Games:      repos.games,
		Users:      repos.users,
		Purchases:  repos.purchases,
	}, fakeHasher{}, newTestLogger())
	return svc, repos
}

func isHashed(s string) bool { return strings.HasPrefix(s, "hashed:") }
