package store

import (
	"context"
	"log"

	"lotoria/db"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChangeChannel carries collection names; every successful write publishes the
// touched collection so all connected sessions re-read it.
const ChangeChannel = "sync:changed"

// Mongo implements Adapter over MongoDB with redis pub/sub as the change
// fan-out between processes.
type Mongo struct {
	rdb *redis.Client
}

func NewMongo(rdb *redis.Client) *Mongo {
	return &Mongo{rdb: rdb}
}

func (m *Mongo) coll(name string) *mongo.Collection {
	return db.Collection(name)
}

func (m *Mongo) publish(ctx context.Context, collection string) {
	if err := m.rdb.Publish(ctx, ChangeChannel, collection).Err(); err != nil {
		log.Println("change publish failed:", collection, err)
	}
}

func (m *Mongo) ListOnce(ctx context.Context, collection string) ([]bson.Raw, error) {
	cur, err := m.coll(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.Raw
	for cur.Next(ctx) {
		// cursor reuses its buffer between Next calls
		raw := make(bson.Raw, len(cur.Current))
		copy(raw, cur.Current)
		docs = append(docs, raw)
	}
	return docs, cur.Err()
}

func (m *Mongo) Subscribe(ctx context.Context, collection string, fn Snapshot) (Unsubscribe, error) {
	// The channel subscription must be live before the initial read: a write
	// landing in between then costs a redundant re-read instead of a lost
	// update. Receive blocks until redis has acknowledged the SUBSCRIBE.
	loopCtx, cancel := context.WithCancel(context.Background())
	sub := m.rdb.Subscribe(loopCtx, ChangeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		cancel()
		sub.Close()
		return nil, err
	}
	ch := sub.Channel()

	docs, err := m.ListOnce(ctx, collection)
	if err != nil {
		cancel()
		sub.Close()
		return nil, err
	}
	fn(docs)

	go func() {
		for {
			select {
			case <-loopCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload != collection {
					continue
				}
				snap, err := m.ListOnce(loopCtx, collection)
				if err != nil {
					log.Println("snapshot re-read failed:", collection, err)
					continue
				}
				fn(snap)
			}
		}
	}()

	return func() {
		cancel()
		if err := sub.Close(); err != nil {
			log.Println("subscription close error:", collection, err)
		}
	}, nil
}

func (m *Mongo) Upsert(ctx context.Context, collection, id string, doc any) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := m.coll(collection).ReplaceOne(ctx, bson.M{"id": id}, doc, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	m.publish(ctx, collection)
	return nil
}

func (m *Mongo) Remove(ctx context.Context, collection, id string) error {
	if _, err := m.coll(collection).DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return err
	}
	m.publish(ctx, collection)
	return nil
}

func (m *Mongo) UpdateFields(ctx context.Context, collection, id string, guard map[string][]string, fields map[string]any) (bool, error) {
	filter := bson.M{"id": id}
	for field, allowed := range guard {
		filter[field] = bson.M{"$in": allowed}
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}

	res, err := m.coll(collection).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, nil
	}
	m.publish(ctx, collection)
	return true, nil
}

func (m *Mongo) ApplyBatch(ctx context.Context, writes []Write) error {
	// MongoDB without a replica set has no cross-collection transaction, so
	// the batch is sequential; notification is still deferred so sessions see
	// each collection once, after the whole batch.
	touched := map[string]bool{}
	opts := options.Replace().SetUpsert(true)
	for _, w := range writes {
		var err error
		if w.Doc == nil {
			_, err = m.coll(w.Collection).DeleteOne(ctx, bson.M{"id": w.ID})
		} else {
			_, err = m.coll(w.Collection).ReplaceOne(ctx, bson.M{"id": w.ID}, w.Doc, opts)
		}
		if err != nil {
			return err
		}
		touched[w.Collection] = true
	}
	for collection := range touched {
		m.publish(ctx, collection)
	}
	return nil
}
