package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrDuplicate reports an upsert rejected by a unique constraint on a field
// other than the document id, such as the users mobile index.
var ErrDuplicate = errors.New("duplicate key")

// Snapshot receives the full current contents of one collection. It fires once
// with the initial contents and again after every change, from any client.
type Snapshot func(docs []bson.Raw)

// Unsubscribe tears down one collection subscription.
type Unsubscribe func()

// Write is one entry of a batch: Doc nil means remove, otherwise upsert.
type Write struct {
	Collection string
	ID         string
	Doc        any
}

// Adapter is the remote document-store boundary. Upsert is a wholesale
// create-or-replace of a single document; there are no partial-merge
// semantics. Callers must not assume a write has propagated until the
// corresponding Snapshot fires.
type Adapter interface {
	Subscribe(ctx context.Context, collection string, fn Snapshot) (Unsubscribe, error)
	Upsert(ctx context.Context, collection, id string, doc any) error
	Remove(ctx context.Context, collection, id string) error
	ListOnce(ctx context.Context, collection string) ([]bson.Raw, error)

	// UpdateFields sets the given fields on one document, but only when every
	// guard field currently holds one of its listed values. It reports whether
	// a document matched; false means the guard lost a race or the document is
	// gone, and nothing was written.
	UpdateFields(ctx context.Context, collection, id string, guard map[string][]string, fields map[string]any) (bool, error)

	// ApplyBatch applies the writes in order and defers change notification
	// until all of them have been attempted.
	ApplyBatch(ctx context.Context, writes []Write) error
}
