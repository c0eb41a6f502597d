package store

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/localekit/pkg/entry"
)

// Memory is an in-process implementation of Entries and Targets.
type Memory struct {
	entries map[uuid.UUID]map[entry.Key]entry.Entry
	targets map[uuid.UUID]SyncTarget
	mu      sync.RWMutex
}

var (
	_ Entries = (*Memory)(nil)
	_ Targets = (*Memory)(nil)
)

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[uuid.UUID]map[entry.Key]entry.Entry),
		targets: make(map[uuid.UUID]SyncTarget),
	}
}

func (m *Memory) project(id uuid.UUID) map[entry.Key]entry.Entry {
	p, ok := m.entries[id]
	if !ok {
		p = make(map[entry.Key]entry.Entry)
		m.entries[id] = p
	}
	return p
}

func (m *Memory) List(_ context.Context, projectID uuid.UUID) ([]entry.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := slices.Collect(maps.Values(m.entries[projectID]))
	entry.Sort(out)
	return out, nil
}

func (m *Memory) Upsert(_ context.Context, entries []entry.Entry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		p := m.project(e.ProjectID)
		if existing, ok := p[e.Key()]; ok {
			e.ID = existing.ID
		}
		p[e.Key()] = e
	}
	return len(entries), nil
}

func (m *Memory) Replace(_ context.Context, projectID uuid.UUID, scope Scope, entries []entry.Entry) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := maps.Clone(m.project(projectID))
	maps.DeleteFunc(next, func(_ entry.Key, e entry.Entry) bool { return scope.matches(e) })
	for _, e := range entries {
		if _, ok := next[e.Key()]; ok {
			return 0, ErrConflict
		}
		next[e.Key()] = e
	}
	m.entries[projectID] = next
	return len(entries), nil
}

func (m *Memory) Insert(_ context.Context, entries []entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		if _, ok := m.entries[e.ProjectID][e.Key()]; ok {
			return ErrConflict
		}
	}
	for _, e := range entries {
		m.project(e.ProjectID)[e.Key()] = e
	}
	return nil
}

func (m *Memory) Update(_ context.Context, e *entry.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.entries[e.ProjectID]
	existing, ok := p[e.Key()]
	if !ok {
		return ErrNotFound
	}
	e.ID = existing.ID
	p[e.Key()] = *e
	return nil
}

func (m *Memory) RenameKey(_ context.Context, projectID uuid.UUID, namespace, oldKey, newKey string, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.entries[projectID]
	var moved []entry.Entry
	for k, e := range p {
		if k.Namespace != namespace {
			continue
		}
		if k.DotKey == newKey {
			return 0, ErrConflict
		}
		if k.DotKey == oldKey {
			moved = append(moved, e)
		}
	}
	if len(moved) == 0 {
		return 0, ErrNotFound
	}

	for _, e := range moved {
		delete(p, e.Key())
		e.DotKey = newKey
		e.UpdatedAt = at
		p[e.Key()] = e
	}
	return int64(len(moved)), nil
}

func (m *Memory) DeleteKey(_ context.Context, projectID uuid.UUID, namespace, dotKey string) (int64, error) {
	return m.deleteWhere(projectID, func(k entry.Key) bool {
		return k.Namespace == namespace && k.DotKey == dotKey
	}), nil
}

func (m *Memory) DeleteLocale(_ context.Context, projectID uuid.UUID, locale string) (int64, error) {
	return m.deleteWhere(projectID, func(k entry.Key) bool { return k.Locale == locale }), nil
}

func (m *Memory) deleteWhere(projectID uuid.UUID, match func(entry.Key) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for k := range m.entries[projectID] {
		if match(k) {
			delete(m.entries[projectID], k)
			n++
		}
	}
	return n
}

func (m *Memory) GetTarget(_ context.Context, projectID uuid.UUID) (SyncTarget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.targets[projectID]
	if !ok {
		return SyncTarget{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) SaveTarget(_ context.Context, t SyncTarget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.targets[t.ProjectID]; ok {
		t.LastSyncAt = prev.LastSyncAt
		t.LastCommit = prev.LastCommit
	}
	m.targets[t.ProjectID] = t
	return nil
}

func (m *Memory) DueTargets(_ context.Context, now time.Time) ([]SyncTarget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []SyncTarget
	for _, t := range m.targets {
		if t.Due(now) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b SyncTarget) int {
		return slices.Compare(a.ProjectID[:], b.ProjectID[:])
	})
	return out, nil
}

func (m *Memory) MarkSynced(_ context.Context, projectID uuid.UUID, at time.Time, commit string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.targets[projectID]
	if !ok {
		return ErrNotFound
	}
	t.LastSyncAt = &at
	t.LastCommit = commit
	m.targets[projectID] = t
	return nil
}
