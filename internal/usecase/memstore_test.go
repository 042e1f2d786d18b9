package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/chasepay/processing-service/internal/domain"
)

// memStore is an in-memory domain.Store for exercising usecases without
// a database. Reads hand out copies so mutations only stick through the
// repository write methods, mirroring how rows behave.
type memStore struct {
	mu sync.Mutex

	transactions  map[string]*domain.Transaction
	notifications map[string]*domain.BankNotification
	traders       map[string]*domain.Trader
	merchants     map[string]*domain.Merchant
	methods       map[string]*domain.Method
	requisites    map[string]*domain.BankRequisite
	devices       map[string]*domain.Device
	callbacks     []*domain.CallbackHistory
}

func newMemStore() *memStore {
	return &memStore{
		transactions:  map[string]*domain.Transaction{},
		notifications: map[string]*domain.BankNotification{},
		traders:       map[string]*domain.Trader{},
		merchants:     map[string]*domain.Merchant{},
		methods:       map[string]*domain.Method{},
		requisites:    map[string]*domain.BankRequisite{},
		devices:       map[string]*domain.Device{},
	}
}

func (s *memStore) Transactions() domain.TransactionRepository { return &memTransactions{s} }

func (s *memStore) Notifications() domain.NotificationRepository { return &memNotifications{s} }

func (s *memStore) Traders() domain.TraderRepository { return &memTraders{s} }

func (s *memStore) Merchants() domain.MerchantRepository { return &memMerchants{s} }

func (s *memStore) Methods() domain.MethodRepository { return &memMethods{s} }

func (s *memStore) Devices() domain.DeviceRepository { return &memDevices{s} }

func (s *memStore) Callbacks() domain.CallbackHistoryRepository { return &memCallbacks{s} }

func (s *memStore) WithinTx(ctx context.Context, fn func(st domain.Store) error) error {
	return fn(s)
}

func copyTransaction(tx *domain.Transaction) *domain.Transaction {
	cp := *tx
	return &cp
}

type memTransactions struct{ s *memStore }

func (r *memTransactions) Create(ctx context.Context, tx *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[tx.ID] = copyTransaction(tx)
	return nil
}

func (r *memTransactions) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx, ok := r.s.transactions[id]
	if !ok {
		return nil, nil
	}
	return copyTransaction(tx), nil
}

func (r *memTransactions) GetByIDForUpdate(ctx context.Context, id string) (*domain.Transaction, error) {
	return r.GetByID(ctx, id)
}

func (r *memTransactions) Update(ctx context.Context, tx *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[tx.ID] = copyTransaction(tx)
	return nil
}

func (r *memTransactions) FindMatchCandidate(ctx context.Context, q domain.MatchQuery) (*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var best *domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.TraderID != q.TraderID || tx.Type != domain.TypeIn || tx.Status != domain.StatusInProgress {
			continue
		}
		if tx.Amount < q.Amount-q.Tolerance || tx.Amount > q.Amount+q.Tolerance {
			continue
		}
		if q.BankType != "" {
			req, ok := r.s.requisites[tx.RequisiteID]
			if !ok || req.BankType != q.BankType {
				continue
			}
		}
		if best == nil || tx.CreatedAt.After(best.CreatedAt) {
			best = tx
		}
	}
	if best == nil {
		return nil, nil
	}
	return copyTransaction(best), nil
}

func (r *memTransactions) FindExpired(ctx context.Context, now time.Time, limit int) ([]*domain.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Transaction
	for _, tx := range r.s.transactions {
		if tx.Status != domain.StatusCreated && tx.Status != domain.StatusInProgress {
			continue
		}
		if tx.ExpiredAt.Before(now) {
			out = append(out, copyTransaction(tx))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiredAt.Before(out[j].ExpiredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memNotifications struct{ s *memStore }

func (r *memNotifications) Create(ctx context.Context, n *domain.BankNotification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *n
	r.s.notifications[n.ID] = &cp
	return nil
}

func (r *memNotifications) FindUnprocessed(ctx context.Context, limit int) ([]*domain.BankNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.BankNotification
	for _, n := range r.s.notifications {
		if n.IsProcessed {
			continue
		}
		cp := *n
		if dev, ok := r.s.devices[n.DeviceID]; ok {
			cp.TraderID = dev.TraderID
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNotifications) MarkProcessed(ctx context.Context, id string, reason string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notifications[id]
	if !ok || n.IsProcessed {
		return false, nil
	}
	n.IsProcessed = true
	n.ProcessedReason = reason
	return true, nil
}

func (r *memNotifications) SetProcessedReason(ctx context.Context, id string, reason string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if n, ok := r.s.notifications[id]; ok {
		n.ProcessedReason = reason
	}
	return nil
}

type memTraders struct{ s *memStore }

func (r *memTraders) GetByID(ctx context.Context, id string) (*domain.Trader, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tr, ok := r.s.traders[id]
	if !ok {
		return nil, nil
	}
	cp := *tr
	return &cp, nil
}

func (r *memTraders) GetByIDForUpdate(ctx context.Context, id string) (*domain.Trader, error) {
	return r.GetByID(ctx, id)
}

func (r *memTraders) AdjustBalances(ctx context.Context, id string, delta domain.BalanceDelta) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tr, ok := r.s.traders[id]
	if !ok {
		return nil
	}
	tr.BalanceUsdt += delta.BalanceUsdt
	tr.TrustBalance += delta.TrustBalance
	tr.FrozenUsdt += delta.FrozenUsdt
	tr.ProfitFromDeals += delta.ProfitFromDeals
	return nil
}

type memMerchants struct{ s *memStore }

func (r *memMerchants) GetByID(ctx context.Context, id string) (*domain.Merchant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.merchants[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMerchants) AdjustBalance(ctx context.Context, id string, amountUsdt float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.merchants[id]; ok {
		m.BalanceUsdt += amountUsdt
	}
	return nil
}

type memMethods struct{ s *memStore }

func (r *memMethods) GetByID(ctx context.Context, id string) (*domain.Method, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.methods[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

type memDevices struct{ s *memStore }

func (r *memDevices) GetByID(ctx context.Context, id string) (*domain.Device, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.devices[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDevices) UpdateLiveness(ctx context.Context, id string, pingTime time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.devices[id]; ok {
		d.Online = true
		t := pingTime
		d.LastActiveAt = &t
	}
	return nil
}

func (r *memDevices) MarkOffline(ctx context.Context, threshold time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, d := range r.s.devices {
		if d.Online && d.LastActiveAt != nil && d.LastActiveAt.Before(threshold) {
			d.Online = false
			n++
		}
	}
	return n, nil
}

type memCallbacks struct{ s *memStore }

func (r *memCallbacks) Create(ctx context.Context, h *domain.CallbackHistory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *h
	r.s.callbacks = append(r.s.callbacks, &cp)
	return nil
}

func (r *memCallbacks) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.CallbackHistory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.CallbackHistory
	for _, h := range r.s.callbacks {
		if h.TransactionID == transactionID {
			cp := *h
			out = append(out, &cp)
		}
	}
	return out, nil
}
