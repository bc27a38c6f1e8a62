package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ellaliza/stockley/internal/application/inventory"
	"github.com/ellaliza/stockley/internal/application/membership"
	"github.com/ellaliza/stockley/internal/application/usecase"
	"github.com/ellaliza/stockley/internal/domain"
	"github.com/ellaliza/stockley/internal/domain/entity"
	"github.com/ellaliza/stockley/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memDB emula la base de datos. El TxRunner de test toma el mutex durante toda
// la transacción (equivalente al efecto del SELECT FOR UPDATE: dos mutaciones
// concurrentes del mismo producto se serializan) y restaura un snapshot si la
// función devuelve error (rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	stores    map[string]*entity.Store
	members   []*entity.StoreMember
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func newMemDB() *memDB {
	return &memDB{
		users:    make(map[string]*entity.User),
		stores:   make(map[string]*entity.Store),
		products: make(map[string]*entity.Product),
	}
}

type memSnapshot struct {
	users     map[string]*entity.User
	stores    map[string]*entity.Store
	members   []*entity.StoreMember
	products  map[string]*entity.Product
	movements []*entity.StockMovement
}

func (db *memDB) snapshot() memSnapshot {
	s := memSnapshot{
		users:    make(map[string]*entity.User, len(db.users)),
		stores:   make(map[string]*entity.Store, len(db.stores)),
		products: make(map[string]*entity.Product, len(db.products)),
	}
	for k, v := range db.users {
		cp := *v
		s.users[k] = &cp
	}
	for k, v := range db.stores {
		cp := *v
		s.stores[k] = &cp
	}
	for k, v := range db.products {
		cp := *v
		s.products[k] = &cp
	}
	for _, m := range db.members {
		cp := *m
		s.members = append(s.members, &cp)
	}
	for _, m := range db.movements {
		cp := *m
		s.movements = append(s.movements, &cp)
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.users = s.users
	db.stores = s.stores
	db.members = s.members
	db.products = s.products
	db.movements = s.movements
}

// ── repos ─────────────────────────────────────────────────────────────────────

type memUserRepo struct{ db *memDB }

func (r *memUserRepo) Create(u *entity.User) error {
	for _, ex := range r.db.users {
		if ex.Username == u.Username {
			return domain.ErrUsernameAlreadyExists
		}
		if ex.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.db.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	if _, ok := r.db.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	r.db.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.db.users))
	for _, u := range r.db.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type memStoreRepo struct{ db *memDB }

func (r *memStoreRepo) Create(s *entity.Store) error {
	cp := *s
	r.db.stores[s.ID] = &cp
	return nil
}

func (r *memStoreRepo) GetByID(id string) (*entity.Store, error) {
	s, ok := r.db.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memStoreRepo) List(limit, offset int) ([]*entity.Store, error) {
	out := make([]*entity.Store, 0, len(r.db.stores))
	for _, s := range r.db.stores {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memStoreRepo) Delete(id string) error {
	delete(r.db.stores, id)
	return nil
}

type memMemberRepo struct{ db *memDB }

func (r *memMemberRepo) Create(m *entity.StoreMember) error {
	for _, ex := range r.db.members {
		if ex.StoreID == m.StoreID && ex.UserID == m.UserID {
			return domain.ErrAlreadyMember
		}
	}
	cp := *m
	r.db.members = append(r.db.members, &cp)
	return nil
}

func (r *memMemberRepo) GetByStoreAndUser(storeID, userID string) (*entity.StoreMember, error) {
	for _, m := range r.db.members {
		if m.StoreID == storeID && m.UserID == userID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMemberRepo) ListByStore(storeID string) ([]*entity.StoreMember, error) {
	var out []*entity.StoreMember
	for _, m := range r.db.members {
		if m.StoreID == storeID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memMemberRepo) ListWithUsers(storeID string) ([]*entity.MemberWithUser, error) {
	var out []*entity.MemberWithUser
	for _, m := range r.db.members {
		if storeID != "" && m.StoreID != storeID {
			continue
		}
		u, ok := r.db.users[m.UserID]
		if !ok {
			continue
		}
		out = append(out, &entity.MemberWithUser{StoreMember: *m, User: *u})
	}
	return out, nil
}

func (r *memMemberRepo) DeleteByStore(storeID string) error {
	kept := r.db.members[:0]
	for _, m := range r.db.members {
		if m.StoreID != storeID {
			kept = append(kept, m)
		}
	}
	r.db.members = kept
	return nil
}

type memProductRepo struct{ db *memDB }

func (r *memProductRepo) Create(p *entity.Product) error {
	for _, ex := range r.db.products {
		if ex.StoreID == p.StoreID && ex.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.db.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetByStoreAndID(storeID, productID string) (*entity.Product, error) {
	p, ok := r.db.products[productID]
	if !ok || p.StoreID != storeID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

// GetForUpdate: la exclusión real la da el mutex del TxRunner de test,
// que serializa transacciones completas.
func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) ListByStore(storeID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.db.products {
		if p.StoreID == storeID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	if _, ok := r.db.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.db.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateStock(p *entity.Product) error {
	return r.Update(p)
}

func (r *memProductRepo) DeleteByStore(storeID string) error {
	for id, p := range r.db.products {
		if p.StoreID == storeID {
			delete(r.db.products, id)
		}
	}
	return nil
}

type memMovementRepo struct{ db *memDB }

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.db.movements = append(r.db.movements, &cp)
	return nil
}

// ListByProduct devuelve el historial más reciente primero, como la consulta
// ORDER BY created_at DESC del repo real.
func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var all []*entity.StockMovement
	for i := len(r.db.movements) - 1; i >= 0; i-- {
		if r.db.movements[i].ProductID == productID {
			cp := *r.db.movements[i]
			all = append(all, &cp)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memMovementRepo) DeleteByStore(storeID string) error {
	inStore := make(map[string]bool)
	for id, p := range r.db.products {
		if p.StoreID == storeID {
			inStore[id] = true
		}
	}
	kept := r.db.movements[:0]
	for _, m := range r.db.movements {
		if !inStore[m.ProductID] {
			kept = append(kept, m)
		}
	}
	r.db.movements = kept
	return nil
}

// ── tx runner ─────────────────────────────────────────────────────────────────

type memTxRunner struct{ db *memDB }

var (
	_ inventory.TxRunner    = (*memTxRunner)(nil)
	_ usecase.StoreTxRunner = (*memTxRunner)(nil)
)

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	memberRepo repository.StoreMemberRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	snap := r.db.snapshot()
	if err := fn(&memProductRepo{r.db}, &memMovementRepo{r.db}, &memMemberRepo{r.db}); err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

func (r *memTxRunner) RunStore(ctx context.Context, fn func(
	storeRepo repository.StoreRepository,
	memberRepo repository.StoreMemberRepository,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	snap := r.db.snapshot()
	if err := fn(&memStoreRepo{r.db}, &memMemberRepo{r.db}, &memProductRepo{r.db}, &memMovementRepo{r.db}); err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

// ── fixture ───────────────────────────────────────────────────────────────────

type fixture struct {
	db           *memDB
	membershipUC *membership.MembershipUseCase
	storeUC      *usecase.StoreUseCase
	productUC    *usecase.ProductUseCase
}

func newFixture() *fixture {
	db := newMemDB()
	userRepo := &memUserRepo{db}
	storeRepo := &memStoreRepo{db}
	memberRepo := &memMemberRepo{db}
	productRepo := &memProductRepo{db}
	movementRepo := &memMovementRepo{db}
	txRunner := &memTxRunner{db}

	membershipUC := membership.NewMembershipUseCase(memberRepo, userRepo, storeRepo)
	movementUC := inventory.NewMovementUseCase(txRunner)
	return &fixture{
		db:           db,
		membershipUC: membershipUC,
		storeUC:      usecase.NewStoreUseCase(txRunner, storeRepo, memberRepo, productRepo, membershipUC),
		productUC:    usecase.NewProductUseCase(txRunner, movementUC, membershipUC, productRepo, movementRepo),
	}
}

// addUser inserta un usuario directamente (los tests de auth cubren el registro).
func (f *fixture) addUser(t *testing.T, username string) *entity.User {
	t.Helper()
	now := time.Now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		FullName:     username,
		PasswordHash: "x",
		PlatformRole: entity.PlatformRoleRegular,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, (&memUserRepo{f.db}).Create(u))
	return u
}
