// Package store implements the generic reactive table store the data layer is
// built on: a mapping of table name -> row id -> cell values with synchronous
// change subscription and transactional mutation batching. It knows nothing
// about habits; entity semantics live in the repo package and persistence in
// the persist package.
package store

import (
	"sort"
	"sync"
)

// Row holds the cell values of one row. Values are JSON-compatible: string,
// bool, float64/int, or nil.
type Row = map[string]interface{}

// Change identifies one mutated row.
type Change struct {
	Table string
	RowID string
}

// TableListener is invoked synchronously after a mutation batch commits, once
// per changed row.
type TableListener func(table, rowID string)

type tableListener struct {
	table string // empty matches every table
	fn    TableListener
}

// Store is an in-memory table store. All mutations run inside a transaction;
// bare mutation calls open an implicit single-mutation transaction. Listeners
// and commit hooks fire after the outermost transaction commits.
type Store struct {
	mu sync.RWMutex

	tables map[string]map[string]Row

	listeners     map[int]tableListener
	commitHooks   map[int]func()
	nextListener  int
	txDepth       int
	pendingChange []Change
}

// New creates an empty store.
func New() *Store {
	return &Store{
		tables:      make(map[string]map[string]Row),
		listeners:   make(map[int]tableListener),
		commitHooks: make(map[int]func()),
	}
}

// Transaction runs fn as one mutation batch. Nested calls join the outermost
// transaction. Listener notification and commit hooks are deferred until the
// outermost transaction returns, so a multi-row resequence is observed (and
// persisted) as a single commit.
func (s *Store) Transaction(fn func()) {
	s.mu.Lock()
	s.txDepth++
	s.mu.Unlock()

	fn()

	s.mu.Lock()
	s.txDepth--
	done := s.txDepth == 0
	var changes []Change
	if done {
		changes = s.pendingChange
		s.pendingChange = nil
	}
	listeners, hooks := s.snapshotListeners()
	s.mu.Unlock()

	if done && len(changes) > 0 {
		notify(listeners, changes)
		for _, hook := range hooks {
			hook()
		}
	}
}

// GetTable returns a copy of the table's rows keyed by row id. Missing tables
// yield an empty map.
func (s *Store) GetTable(table string) map[string]Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Row, len(s.tables[table]))
	for id, row := range s.tables[table] {
		out[id] = copyRow(row)
	}
	return out
}

// RowIDs returns the table's row ids in sorted order.
func (s *Store) RowIDs(table string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.tables[table]))
	for id := range s.tables[table] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetRow returns a copy of one row and whether it exists.
func (s *Store) GetRow(table, rowID string) (Row, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.tables[table][rowID]
	if !ok {
		return nil, false
	}
	return copyRow(row), true
}

// HasRow reports whether the row exists.
func (s *Store) HasRow(table, rowID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[table][rowID]
	return ok
}

// GetCell returns one cell value and whether it is set.
func (s *Store) GetCell(table, rowID, cell string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.tables[table][rowID]
	if !ok {
		return nil, false
	}
	v, ok := row[cell]
	return v, ok
}

// SetRow replaces the row's cells.
func (s *Store) SetRow(table, rowID string, row Row) {
	s.mutate(table, rowID, func() {
		s.ensureTable(table)[rowID] = copyRow(row)
	})
}

// SetPartialRow merges cells into the row, creating it if absent. Cells set
// to nil are removed.
func (s *Store) SetPartialRow(table, rowID string, partial Row) {
	s.mutate(table, rowID, func() {
		t := s.ensureTable(table)
		row, ok := t[rowID]
		if !ok {
			row = make(Row, len(partial))
			t[rowID] = row
		}
		for cell, v := range partial {
			if v == nil {
				delete(row, cell)
			} else {
				row[cell] = v
			}
		}
	})
}

// SetCell sets one cell value.
func (s *Store) SetCell(table, rowID, cell string, value interface{}) {
	s.mutate(table, rowID, func() {
		t := s.ensureTable(table)
		row, ok := t[rowID]
		if !ok {
			row = make(Row, 1)
			t[rowID] = row
		}
		row[cell] = value
	})
}

// DelCell removes one cell from a row, if present.
func (s *Store) DelCell(table, rowID, cell string) {
	s.mutate(table, rowID, func() {
		if row, ok := s.tables[table][rowID]; ok {
			delete(row, cell)
		}
	})
}

// DelRow removes a row, if present.
func (s *Store) DelRow(table, rowID string) {
	s.mutate(table, rowID, func() {
		if t, ok := s.tables[table]; ok {
			delete(t, rowID)
			if len(t) == 0 {
				delete(s.tables, table)
			}
		}
	})
}

// Content returns a deep copy of every table, for persisters.
func (s *Store) Content() map[string]map[string]Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]map[string]Row, len(s.tables))
	for name, t := range s.tables {
		rows := make(map[string]Row, len(t))
		for id, row := range t {
			rows[id] = copyRow(row)
		}
		out[name] = rows
	}
	return out
}

// SetContent replaces the whole store with loaded content. Listeners are
// notified for every loaded row; commit hooks are not invoked, so a load does
// not trigger a save.
func (s *Store) SetContent(tables map[string]map[string]Row) {
	s.mu.Lock()
	s.tables = make(map[string]map[string]Row, len(tables))
	var changes []Change
	for name, t := range tables {
		rows := make(map[string]Row, len(t))
		for id, row := range t {
			rows[id] = copyRow(row)
			changes = append(changes, Change{Table: name, RowID: id})
		}
		s.tables[name] = rows
	}
	listeners, _ := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, changes)
}

// AddTableListener subscribes to changes on one table ("" for all tables).
// The returned function unsubscribes.
func (s *Store) AddTableListener(table string, fn TableListener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.listeners[id] = tableListener{table: table, fn: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// OnCommit registers a hook invoked once after each committed mutation batch.
// The persistence adapter uses this for save-on-every-mutation. The returned
// function unsubscribes.
func (s *Store) OnCommit(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextListener
	s.nextListener++
	s.commitHooks[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.commitHooks, id)
	}
}

func (s *Store) ensureTable(table string) map[string]Row {
	t, ok := s.tables[table]
	if !ok {
		t = make(map[string]Row)
		s.tables[table] = t
	}
	return t
}

// mutate applies fn under the lock and records the change. Outside an
// explicit transaction the change commits (and notifies) immediately.
func (s *Store) mutate(table, rowID string, fn func()) {
	s.mu.Lock()
	fn()
	s.pendingChange = append(s.pendingChange, Change{Table: table, RowID: rowID})
	if s.txDepth > 0 {
		s.mu.Unlock()
		return
	}
	changes := s.pendingChange
	s.pendingChange = nil
	listeners, hooks := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, changes)
	for _, hook := range hooks {
		hook()
	}
}

// snapshotListeners must be called with the lock held.
func (s *Store) snapshotListeners() ([]tableListener, []func()) {
	listeners := make([]tableListener, 0, len(s.listeners))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}

	hookIDs := make([]int, 0, len(s.commitHooks))
	for id := range s.commitHooks {
		hookIDs = append(hookIDs, id)
	}
	sort.Ints(hookIDs)
	hooks := make([]func(), 0, len(hookIDs))
	for _, id := range hookIDs {
		hooks = append(hooks, s.commitHooks[id])
	}
	return listeners, hooks
}

func notify(listeners []tableListener, changes []Change) {
	for _, c := range changes {
		for _, l := range listeners {
			if l.table == "" || l.table == c.Table {
				l.fn(c.Table, c.RowID)
			}
		}
	}
}

func copyRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
