// Package memory is an in-process storage backend for development and tests.
//
// A Store serializes transactions with a single mutex and snapshots its
// state when a transaction starts; a failed transaction restores the
// snapshot, so readers never see partial ledger writes.
package memory

import (
	"context"
	"maps"
	"sync"

	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/domain/catalogs/product"
)

// Ledger table names.
const (
	tableStockIn  = "stock_in"
	tableStockOut = "stock_out"
)

// Store holds all data of the memory backend and implements tx.Manager.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

type txKey struct{}

// RunInTransaction executes fn with exclusive access to the store.
// Nested calls reuse the running transaction.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if p := recover(); p != nil {
			s.state = snapshot
			panic(p)
		}
		if err != nil {
			s.state = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// view runs fn against the state, joining the caller's transaction if any.
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if s.inTx(ctx) {
		return fn(s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

type state struct {
	products  map[string]*product.Product // by code
	codeByID  map[id.ID]string
	order     []string // registration order
	sequences map[string]int64
	ledgers   map[string]*ledgerTable
}

func newState() *state {
	return &state{
		products:  make(map[string]*product.Product),
		codeByID:  make(map[id.ID]string),
		sequences: make(map[string]int64),
		ledgers: map[string]*ledgerTable{
			tableStockIn:  newLedgerTable(),
			tableStockOut: newLedgerTable(),
		},
	}
}

func (st *state) clone() *state {
	c := &state{
		products:  make(map[string]*product.Product, len(st.products)),
		codeByID:  maps.Clone(st.codeByID),
		order:     append([]string(nil), st.order...),
		sequences: maps.Clone(st.sequences),
		ledgers:   make(map[string]*ledgerTable, len(st.ledgers)),
	}
	for code, p := range st.products {
		cp := *p
		c.products[code] = &cp
	}
	for name, t := range st.ledgers {
		c.ledgers[name] = t.clone()
	}
	return c
}

func (st *state) productByID(productID id.ID) *product.Product {
	code, ok := st.codeByID[productID]
	if !ok {
		return nil
	}
	return st.products[code]
}

// ledgerTable is a header table with its line table.
type ledgerTable struct {
	headers  []entity.Document // insertion order
	byNumber map[string]int
	byID     map[id.ID]int
	lines    map[id.ID][]entity.DocumentLine
}

func newLedgerTable() *ledgerTable {
	return &ledgerTable{
		byNumber: make(map[string]int),
		byID:     make(map[id.ID]int),
		lines:    make(map[id.ID][]entity.DocumentLine),
	}
}

func (t *ledgerTable) clone() *ledgerTable {
	c := &ledgerTable{
		headers:  append([]entity.Document(nil), t.headers...),
		byNumber: maps.Clone(t.byNumber),
		byID:     maps.Clone(t.byID),
		lines:    make(map[id.ID][]entity.DocumentLine, len(t.lines)),
	}
	for docID, lines := range t.lines {
		c.lines[docID] = append([]entity.DocumentLine(nil), lines...)
	}
	return c
}
