package store

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
)

// Memory is an in-process Adapter with the same snapshot semantics as the
// mongo+redis implementation. Sessions sharing one Memory observe each other's
// writes, which is what tests lean on.
type Memory struct {
	mu     sync.Mutex
	data   map[string]map[string]bson.Raw
	subs   map[string]map[int]Snapshot
	unique map[string][]string
	nextID int
}

func NewMemory() *Memory {
	return &Memory{
		data:   make(map[string]map[string]bson.Raw),
		subs:   make(map[string]map[int]Snapshot),
		unique: make(map[string][]string),
	}
}

// EnforceUnique rejects upserts whose named field collides with another
// document in the collection, standing in for the store-side unique index.
func (m *Memory) EnforceUnique(collection, field string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unique[collection] = append(m.unique[collection], field)
}

func (m *Memory) violatesUniqueLocked(collection, id string, raw bson.Raw) bool {
	for _, field := range m.unique[collection] {
		val := raw.Lookup(field)
		if val.Type == 0 {
			continue
		}
		for otherID, other := range m.data[collection] {
			if otherID == id {
				continue
			}
			if existing := other.Lookup(field); existing.Type == val.Type && bytes.Equal(existing.Value, val.Value) {
				return true
			}
		}
	}
	return false
}

// snapshotLocked builds a stable-order copy of one collection.
func (m *Memory) snapshotLocked(collection string) []bson.Raw {
	docs := m.data[collection]
	ids := make([]string, 0, len(docs))
	for id := range docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]bson.Raw, 0, len(docs))
	for _, id := range ids {
		out = append(out, docs[id])
	}
	return out
}

func (m *Memory) notifyLocked(collection string) {
	snap := m.snapshotLocked(collection)
	for _, fn := range m.subs[collection] {
		fn(snap)
	}
}

func (m *Memory) Subscribe(_ context.Context, collection string, fn Snapshot) (Unsubscribe, error) {
	m.mu.Lock()
	if m.subs[collection] == nil {
		m.subs[collection] = make(map[int]Snapshot)
	}
	id := m.nextID
	m.nextID++
	m.subs[collection][id] = fn
	// deliver under the lock so the initial snapshot cannot be reordered
	// after one pushed by a concurrent writer
	fn(m.snapshotLocked(collection))
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs[collection], id)
		m.mu.Unlock()
	}, nil
}

func (m *Memory) ListOnce(_ context.Context, collection string) ([]bson.Raw, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(collection), nil
}

func (m *Memory) Upsert(_ context.Context, collection, id string, doc any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.violatesUniqueLocked(collection, id, raw) {
		return ErrDuplicate
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]bson.Raw)
	}
	m.data[collection][id] = raw
	m.notifyLocked(collection)
	return nil
}

func (m *Memory) Remove(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data[collection], id)
	m.notifyLocked(collection)
	return nil
}

func (m *Memory) UpdateFields(_ context.Context, collection, id string, guard map[string][]string, fields map[string]any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	raw, ok := m.data[collection][id]
	if !ok {
		return false, nil
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return false, err
	}
	for field, allowed := range guard {
		cur := fmt.Sprint(doc[field])
		matched := false
		for _, v := range allowed {
			if cur == v {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	next, err := bson.Marshal(doc)
	if err != nil {
		return false, err
	}
	m.data[collection][id] = next
	m.notifyLocked(collection)
	return true, nil
}

func (m *Memory) ApplyBatch(_ context.Context, writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	touched := map[string]bool{}
	for _, w := range writes {
		if w.Doc == nil {
			delete(m.data[w.Collection], w.ID)
		} else {
			raw, err := bson.Marshal(w.Doc)
			if err != nil {
				return err
			}
			if m.data[w.Collection] == nil {
				m.data[w.Collection] = make(map[string]bson.Raw)
			}
			m.data[w.Collection][w.ID] = raw
		}
		touched[w.Collection] = true
	}
	for collection := range touched {
		m.notifyLocked(collection)
	}
	return nil
}
