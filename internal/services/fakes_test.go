package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pawcat-app/pawcat-backend/internal/models"
	repo "github.com/pawcat-app/pawcat-backend/internal/repository"
	"github.com/shopspring/decimal"
)

// In-memory repository fakes. InTx is not transactional; the tests that rely
// on it only exercise paths where the callback either fully succeeds or fails
// before the first write.

type fakeLedger struct {
	mu     sync.Mutex
	nextID int
	txs    map[string]models.Transaction
	saldo  map[string]decimal.Decimal
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		txs:   make(map[string]models.Transaction),
		saldo: make(map[string]decimal.Decimal),
	}
}

func (f *fakeLedger) CreateTransaction(_ context.Context, t models.Transaction) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = fmt.Sprintf("txn-%d", f.nextID)
	t.CreatedAt = time.Now()
	f.txs[t.ID] = t
	return t, nil
}

func (f *fakeLedger) GetTransaction(_ context.Context, ownerID, id string) (models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.txs[id]
	if !ok || t.UserID != ownerID {
		return models.Transaction{}, repo.ErrNotFound
	}
	return t, nil
}

func (f *fakeLedger) ListTransactions(_ context.Context, ownerID string) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, t := range f.txs {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Time.After(out[j].Date.Time) })
	return out, nil
}

func (f *fakeLedger) ListTransactionsBetween(_ context.Context, ownerID string, from, to models.Date) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, t := range f.txs {
		if t.UserID == ownerID && t.Date.In(from, to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeLedger) UpdateTransaction(_ context.Context, t models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.txs[t.ID]
	if !ok || old.UserID != t.UserID {
		return repo.ErrNotFound
	}
	f.txs[t.ID] = t
	return nil
}

func (f *fakeLedger) DeleteTransaction(_ context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.txs[id]
	if !ok || t.UserID != ownerID {
		return repo.ErrNotFound
	}
	delete(f.txs, id)
	return nil
}

func (f *fakeLedger) GetSaldo(_ context.Context, ownerID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saldo[ownerID], nil
}

func (f *fakeLedger) AdjustSaldo(_ context.Context, ownerID string, delta decimal.Decimal) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := f.saldo[ownerID].Add(delta)
	f.saldo[ownerID] = next
	return next, nil
}

func (f *fakeLedger) InTx(_ context.Context, _ string, fn func(repo.Ledger) error) error {
	return fn(f)
}

type fakeCategories struct {
	mu     sync.Mutex
	nextID int
	cats   map[string]models.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{cats: make(map[string]models.Category)}
}

func (f *fakeCategories) Create(_ context.Context, c models.Category) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.cats[c.ID] = c
	return c, nil
}

func (f *fakeCategories) Get(_ context.Context, ownerID, id string) (models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cats[id]
	if !ok || c.UserID != ownerID {
		return models.Category{}, repo.ErrNotFound
	}
	return c, nil
}

func (f *fakeCategories) List(_ context.Context, ownerID string) ([]models.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Category
	for _, c := range f.cats {
		if c.UserID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategories) Update(_ context.Context, c models.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.cats[c.ID]
	if !ok || old.UserID != c.UserID {
		return repo.ErrNotFound
	}
	f.cats[c.ID] = c
	return nil
}

func (f *fakeCategories) Delete(_ context.Context, ownerID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cats[id]
	if !ok || c.UserID != ownerID {
		return repo.ErrNotFound
	}
	delete(f.cats, id)
	return nil
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int
	users  map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]models.User)}
}

func (f *fakeUsers) Create(_ context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.users {
		if strings.EqualFold(other.Username, u.Username) || strings.EqualFold(other.Email, u.Email) {
			return models.User{}, repo.ErrConflict
		}
	}
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	u.IsActive = true
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByIdentifier(_ context.Context, identifier string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Username, identifier) || strings.EqualFold(u.Email, identifier) {
			return u, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) ListInactiveSince(_ context.Context, cutoff time.Time) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.LastLogin != nil && u.LastLogin.Before(cutoff) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) ListActiveIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, u := range f.users {
		if u.IsActive {
			out = append(out, u.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeUsers) SearchExact(_ context.Context, query string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if strings.EqualFold(u.Username, query) || strings.EqualFold(u.Email, query) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id, fullName, bio string, avatarID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.FullName, u.Bio, u.AvatarID = fullName, bio, avatarID
	f.users[id] = u
	return nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, id, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUsers) TouchLastLogin(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return repo.ErrNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	f.users[id] = u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeFriendships struct {
	mu    sync.Mutex
	rows  []models.Friendship
	users *fakeUsers
}

func newFakeFriendships(users *fakeUsers) *fakeFriendships {
	return &fakeFriendships{users: users}
}

func (f *fakeFriendships) Create(_ context.Context, fr models.Friendship) (models.Friendship, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fr.ID = fmt.Sprintf("fr-%d", len(f.rows)+1)
	f.rows = append(f.rows, fr)
	return fr, nil
}

func (f *fakeFriendships) AreFriends(_ context.Context, a, b string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fr := range f.rows {
		if fr.Status != models.FriendAccepted {
			continue
		}
		if (fr.SenderID == a && fr.ReceiverID == b) || (fr.SenderID == b && fr.ReceiverID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendships) HasPendingFrom(_ context.Context, senderID, receiverID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fr := range f.rows {
		if fr.Status == models.FriendPending && fr.SenderID == senderID && fr.ReceiverID == receiverID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFriendships) AcceptPending(_ context.Context, senderID, receiverID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fr := range f.rows {
		if fr.Status == models.FriendPending && fr.SenderID == senderID && fr.ReceiverID == receiverID {
			f.rows[i].Status = models.FriendAccepted
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeFriendships) public(id string) models.PublicUser {
	if u, ok := f.users.users[id]; ok {
		return u.Public()
	}
	return models.PublicUser{ID: id}
}

func (f *fakeFriendships) ListFriends(_ context.Context, userID string) ([]models.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PublicUser
	for _, fr := range f.rows {
		if fr.Status != models.FriendAccepted {
			continue
		}
		switch userID {
		case fr.SenderID:
			out = append(out, f.public(fr.ReceiverID))
		case fr.ReceiverID:
			out = append(out, f.public(fr.SenderID))
		}
	}
	return out, nil
}

func (f *fakeFriendships) ListIncoming(_ context.Context, userID string) ([]models.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PublicUser
	for _, fr := range f.rows {
		if fr.Status == models.FriendPending && fr.ReceiverID == userID {
			out = append(out, f.public(fr.SenderID))
		}
	}
	return out, nil
}

func (f *fakeFriendships) ListSent(_ context.Context, userID string) ([]models.PublicUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PublicUser
	for _, fr := range f.rows {
		if fr.Status == models.FriendPending && fr.SenderID == userID {
			out = append(out, f.public(fr.ReceiverID))
		}
	}
	return out, nil
}

func (f *fakeFriendships) CountAccepted(ctx context.Context, userID string) (int, error) {
	friends, err := f.ListFriends(ctx, userID)
	return len(friends), err
}

type fakeNotifications struct {
	mu     sync.Mutex
	nextID int
	rows   []models.Notification
}

func newFakeNotifications() *fakeNotifications { return &fakeNotifications{} }

func (f *fakeNotifications) Create(_ context.Context, n models.Notification) (models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	n.ID = fmt.Sprintf("note-%d", f.nextID)
	n.CreatedAt = time.Now()
	f.rows = append(f.rows, n)
	return n, nil
}

func (f *fakeNotifications) CreateBulk(ctx context.Context, ns []models.Notification) error {
	for _, n := range ns {
		if _, err := f.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeNotifications) ListByReceiver(_ context.Context, userID string) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Notification
	for _, n := range f.rows {
		if n.ReceiverID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) ListAll(_ context.Context) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Notification(nil), f.rows...), nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	payments map[string][]models.PaymentMethod
	banks    map[string][]models.BankDetail
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{
		payments: make(map[string][]models.PaymentMethod),
		banks:    make(map[string][]models.BankDetail),
	}
}

func (f *fakeProfiles) UpsertPaymentMethod(_ context.Context, pm models.PaymentMethod) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.payments[pm.UserID] {
		if existing.PaymentType == pm.PaymentType {
			f.payments[pm.UserID][i].AccountNumber = pm.AccountNumber
			return false, nil
		}
	}
	f.payments[pm.UserID] = append(f.payments[pm.UserID], pm)
	return true, nil
}

func (f *fakeProfiles) ListPaymentMethods(_ context.Context, userID string) ([]models.PaymentMethod, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.PaymentMethod(nil), f.payments[userID]...), nil
}

func (f *fakeProfiles) UpsertBankDetail(_ context.Context, bd models.BankDetail) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.banks[bd.UserID] {
		if existing.BankName == bd.BankName {
			f.banks[bd.UserID][i].AccountNumber = bd.AccountNumber
			return false, nil
		}
	}
	f.banks[bd.UserID] = append(f.banks[bd.UserID], bd)
	return true, nil
}

func (f *fakeProfiles) DeleteBankDetail(_ context.Context, userID, bankName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.banks[userID] {
		if existing.BankName == bankName {
			f.banks[userID] = append(f.banks[userID][:i], f.banks[userID][i+1:]...)
			return nil
		}
	}
	return repo.ErrNotFound
}

func (f *fakeProfiles) ListBankDetails(_ context.Context, userID string) ([]models.BankDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.BankDetail(nil), f.banks[userID]...), nil
}

type fakeAuditLogs struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func (f *fakeAuditLogs) Create(_ context.Context, l models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, l)
	return nil
}
