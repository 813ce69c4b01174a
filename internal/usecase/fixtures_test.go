package usecase_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/coperacha/coperacha-cli/internal/domain"
	"github.com/coperacha/coperacha-cli/internal/domain/config"
	"github.com/coperacha/coperacha-cli/internal/domain/models"
	"github.com/coperacha/coperacha-cli/internal/usecase"
	"github.com/coperacha/coperacha-cli/internal/vault"
)

var (
	alice    = common.HexToAddress("0xA11CE00000000000000000000000000000000001")
	bob      = common.HexToAddress("0xB0B0000000000000000000000000000000000002")
	carol    = common.HexToAddress("0xCA20100000000000000000000000000000000003")
	dave     = common.HexToAddress("0xDA7E000000000000000000000000000000000004")
	shop     = common.HexToAddress("0x5A0B000000000000000000000000000000000099")
	registry = common.HexToAddress("0xFAC7000000000000000000000000000000000000")
)

func ether(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(params.Ether))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAccounts(t *testing.T) *config.AddressBook {
	t.Helper()
	book, err := config.NewAddressBook(map[string]string{
		"alice": alice.Hex(),
		"bob":   bob.Hex(),
		"carol": carol.Hex(),
		"dave":  dave.Hex(),
		"shop":  shop.Hex(),
	})
	require.NoError(t, err)
	return book
}

// memLedgerStore keeps the ledger state as JSON so loads never alias saved
// state, and holds its lock across Update like the bolt store does
type memLedgerStore struct {
	mu     sync.Mutex
	data   []byte
	saves  int
	events *memEventStore
}

func (s *memLedgerStore) decode() (*models.LedgerState, error) {
	state := &models.LedgerState{}
	if s.data == nil {
		return state, nil
	}
	if err := json.Unmarshal(s.data, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *memLedgerStore) Load(context.Context) (*models.LedgerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.decode()
}

func (s *memLedgerStore) Update(_ context.Context, fn func(state *models.LedgerState) ([]domain.EventLog, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.decode()
	if err != nil {
		return err
	}
	logs, err := fn(state)
	if err != nil || len(logs) == 0 {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	s.events.add(logs)
	return nil
}

// memEventStore is an in-memory EventStore
type memEventStore struct {
	mu   sync.Mutex
	logs []domain.EventLog
}

func (s *memEventStore) add(logs []domain.EventLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, logs...)
}

func (s *memEventStore) List(_ context.Context, filter domain.EventFilter) ([]domain.EventLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.EventLog
	for _, l := range s.logs {
		if filter.Emitter != nil && l.Emitter != *filter.Emitter {
			continue
		}
		if filter.Name != "" && l.Event.ContractEventName() != string(filter.Name) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *memEventStore) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.logs))
	for i, l := range s.logs {
		names[i] = l.Event.ContractEventName()
	}
	return names
}

// memPayouts credits every recipient except the refusing ones
type memPayouts struct {
	refusing map[common.Address]bool
}

func (p *memPayouts) Open(records []*models.PayoutRecord) usecase.PayoutBook {
	book := &memBook{refusing: p.refusing, totals: map[common.Address]*models.PayoutRecord{}}
	for _, r := range records {
		cp := *r
		book.totals[r.Recipient] = &cp
		book.order = append(book.order, r.Recipient)
	}
	return book
}

type memBook struct {
	refusing map[common.Address]bool
	totals   map[common.Address]*models.PayoutRecord
	order    []common.Address
}

func (b *memBook) Transfer(_ context.Context, _, to common.Address, amount *big.Int) error {
	if b.refusing[to] {
		return fmt.Errorf("recipient %s refuses funds", to.Hex())
	}
	rec, ok := b.totals[to]
	if !ok {
		rec = &models.PayoutRecord{Recipient: to, Total: "0"}
		b.totals[to] = rec
		b.order = append(b.order, to)
	}
	total, _ := new(big.Int).SetString(rec.Total, 10)
	rec.Total = total.Add(total, amount).String()
	rec.Count++
	return nil
}

func (b *memBook) Records() []*models.PayoutRecord {
	out := make([]*models.PayoutRecord, 0, len(b.order))
	for _, addr := range b.order {
		out = append(out, b.totals[addr])
	}
	return out
}

// MockVaultSelector is a mock implementation of VaultSelector
type MockVaultSelector struct {
	mock.Mock
}

func (m *MockVaultSelector) SelectVault(ctx context.Context, vaults []*vault.Info, prompt string) (*vault.Info, error) {
	args := m.Called(ctx, vaults, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vault.Info), args.Error(1)
}

// MockMemberSelector is a mock implementation of MemberSelector
type MockMemberSelector struct {
	mock.Mock
}

func (m *MockMemberSelector) SelectMembers(ctx context.Context, accounts []config.Account, prompt string) ([]common.Address, error) {
	args := m.Called(ctx, accounts, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]common.Address), args.Error(1)
}

// MockEventStore is a mock implementation of EventStore
type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) List(ctx context.Context, filter domain.EventFilter) ([]domain.EventLog, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EventLog), args.Error(1)
}

// harness wires the use cases against in-memory stores
type harness struct {
	cfg     *config.RuntimeConfig
	store   *memLedgerStore
	events  *memEventStore
	payouts *memPayouts
	ledger  *usecase.Ledger
	vaults  *MockVaultSelector
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		cfg: &config.RuntimeConfig{
			Registry:       registry,
			Accounts:       testAccounts(t),
			NonInteractive: true,
		},
		events:  &memEventStore{},
		payouts: &memPayouts{refusing: map[common.Address]bool{}},
		vaults:  new(MockVaultSelector),
	}
	h.store = &memLedgerStore{events: h.events}
	h.ledger = usecase.NewLedger(h.cfg, h.store, h.payouts, discardLogger())
	return h
}

func (h *harness) resolver() *usecase.VaultResolver {
	return usecase.NewVaultResolver(h.cfg, h.vaults)
}

// as switches the configured sender
func (h *harness) as(addr common.Address) *harness {
	h.cfg.From = addr
	return h
}

func (h *harness) createVault(t *testing.T, name string, members ...common.Address) *vault.Info {
	t.Helper()
	uc := usecase.NewCreateVault(h.cfg, h.ledger, nil, discardLogger())
	res, err := uc.Run(context.Background(), usecase.CreateVaultParams{Name: name, Members: members})
	require.NoError(t, err)
	return res.Vault
}
