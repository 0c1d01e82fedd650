package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/servly/prosettle/internal/domain"
	"github.com/servly/prosettle/internal/usecase"
)

// MockCounterRepository is a mock implementation of CounterRepository.
type MockCounterRepository struct {
	mu       sync.RWMutex
	counters map[string]*domain.DailyCounter

	GetFunc                func(ctx context.Context, tx usecase.Transaction, professionalID, day string) (*domain.DailyCounter, error)
	IncrementFunc          func(ctx context.Context, tx usecase.Transaction, professionalID, day string, now time.Time) (int, error)
	ListByProfessionalFunc func(ctx context.Context, professionalID string, limit, offset int) ([]*domain.DailyCounter, error)
}

func NewMockCounterRepository() *MockCounterRepository {
	return &MockCounterRepository{
		counters: make(map[string]*domain.DailyCounter),
	}
}

func counterKey(professionalID, day string) string {
	return professionalID + "|" + day
}

func (m *MockCounterRepository) Get(ctx context.Context, tx usecase.Transaction, professionalID, day string) (*domain.DailyCounter, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, tx, professionalID, day)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.counters[counterKey(professionalID, day)]; ok {
		copied := *c
		return &copied, nil
	}
	return &domain.DailyCounter{ProfessionalID: professionalID, Day: day}, nil
}

func (m *MockCounterRepository) Increment(ctx context.Context, tx usecase.Transaction, professionalID, day string, now time.Time) (int, error) {
	if m.IncrementFunc != nil {
		return m.IncrementFunc(ctx, tx, professionalID, day, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := counterKey(professionalID, day)
	c, ok := m.counters[key]
	if !ok {
		c = &domain.DailyCounter{ProfessionalID: professionalID, Day: day}
		m.counters[key] = c
	}
	c.CompletedCount++
	c.UpdatedAt = now
	return c.CompletedCount, nil
}

func (m *MockCounterRepository) ListByProfessional(ctx context.Context, professionalID string, limit, offset int) ([]*domain.DailyCounter, error) {
	if m.ListByProfessionalFunc != nil {
		return m.ListByProfessionalFunc(ctx, professionalID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var counters []*domain.DailyCounter
	for _, c := range m.counters {
		if c.ProfessionalID == professionalID {
			copied := *c
			counters = append(counters, &copied)
		}
	}
	return counters, nil
}

// MockLedgerRepository is a mock implementation of LedgerRepository.
type MockLedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.LedgerEntry

	CreateFunc             func(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error
	ListByProfessionalFunc func(ctx context.Context, professionalID string, limit, offset int) ([]*domain.LedgerEntry, error)
	SumByTypeFunc          func(ctx context.Context, professionalID string) (map[domain.EntryType]decimal.Decimal, error)
}

func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{}
}

func (m *MockLedgerRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if entry.OrderID != "" && e.OrderID == entry.OrderID && e.Type == entry.Type {
			return domain.ErrDuplicateLedgerEntry
		}
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockLedgerRepository) ListByProfessional(ctx context.Context, professionalID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	if m.ListByProfessionalFunc != nil {
		return m.ListByProfessionalFunc(ctx, professionalID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.LedgerEntry
	for _, e := range m.entries {
		if e.ProfessionalID == professionalID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockLedgerRepository) SumByType(ctx context.Context, professionalID string) (map[domain.EntryType]decimal.Decimal, error) {
	if m.SumByTypeFunc != nil {
		return m.SumByTypeFunc(ctx, professionalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sums := make(map[domain.EntryType]decimal.Decimal)
	for _, e := range m.entries {
		if e.ProfessionalID == professionalID {
			sums[e.Type] = sums[e.Type].Add(e.Amount)
		}
	}
	return sums, nil
}

// Entries returns all recorded entries, for assertions.
func (m *MockLedgerRepository) Entries() []*domain.LedgerEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// MockWalletRepository is a mock implementation of WalletRepository.
type MockWalletRepository struct {
	mu      sync.RWMutex
	wallets map[string]*domain.WalletSnapshot

	GetByIDFunc              func(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error)
	GetOrCreateForUpdateFunc func(ctx context.Context, tx usecase.Transaction, professionalID string, now time.Time) (*domain.WalletSnapshot, error)
	UpdateTotalsFunc         func(ctx context.Context, tx usecase.Transaction, wallet *domain.WalletSnapshot, updatedAt time.Time) error
}

func NewMockWalletRepository() *MockWalletRepository {
	return &MockWalletRepository{
		wallets: make(map[string]*domain.WalletSnapshot),
	}
}

func (m *MockWalletRepository) GetByID(ctx context.Context, professionalID string) (*domain.WalletSnapshot, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, professionalID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.wallets[professionalID]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, domain.ErrWalletNotFound
}

func (m *MockWalletRepository) GetOrCreateForUpdate(ctx context.Context, tx usecase.Transaction, professionalID string, now time.Time) (*domain.WalletSnapshot, error) {
	if m.GetOrCreateForUpdateFunc != nil {
		return m.GetOrCreateForUpdateFunc(ctx, tx, professionalID, now)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if w, ok := m.wallets[professionalID]; ok {
		copied := *w
		return &copied, nil
	}
	w := domain.NewWalletSnapshot(professionalID, now)
	m.wallets[professionalID] = w
	copied := *w
	return &copied, nil
}

func (m *MockWalletRepository) UpdateTotals(ctx context.Context, tx usecase.Transaction, wallet *domain.WalletSnapshot, updatedAt time.Time) error {
	if m.UpdateTotalsFunc != nil {
		return m.UpdateTotalsFunc(ctx, tx, wallet, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *wallet
	copied.Version++
	copied.UpdatedAt = updatedAt
	m.wallets[wallet.ProfessionalID] = &copied
	return nil
}

// MockDecisionRepository is a mock implementation of DecisionRepository.
type MockDecisionRepository struct {
	mu        sync.RWMutex
	decisions map[string]*domain.FeeDecision

	CreateFunc       func(ctx context.Context, tx usecase.Transaction, decision *domain.FeeDecision) error
	GetByOrderIDFunc func(ctx context.Context, orderID string) (*domain.FeeDecision, error)
}

func NewMockDecisionRepository() *MockDecisionRepository {
	return &MockDecisionRepository{
		decisions: make(map[string]*domain.FeeDecision),
	}
}

func (m *MockDecisionRepository) Create(ctx context.Context, tx usecase.Transaction, decision *domain.FeeDecision) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, decision)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.decisions[decision.OrderID]; ok {
		return domain.ErrDuplicateLedgerEntry
	}
	m.decisions[decision.OrderID] = decision
	return nil
}

func (m *MockDecisionRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.FeeDecision, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.decisions[orderID]; ok {
		return d, nil
	}
	return nil, domain.ErrFeeDecisionNotFound
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockRetrier is a pass-through retrier for tests.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "mock-id-" + string(rune('0'+m.counter))
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
