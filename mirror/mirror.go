package mirror

import (
	"context"
	"log"
	"sync"

	"lotoria/db"
	"lotoria/models"
	"lotoria/seed"
	"lotoria/store"

	"go.mongodb.org/mongo-driver/bson"
)

// Session is one logical sync connection: a subscription per known collection
// feeding a process-wide cache of the latest snapshots. Consumers read freely
// through the getters and are nudged by a single coarse onChange callback;
// they are expected to re-read whatever they care about rather than being told
// which collection moved.
type Session struct {
	adapter  store.Adapter
	onChange func(collection string)

	mu       sync.RWMutex
	config   models.SiteConfig
	services []models.Service
	products []models.Product
	offers   []models.Offer
	team     []models.TeamMember
	gallery  []models.GalleryItem
	pages    []models.CustomPage
	reviews  []models.Review
	users    []models.User
	bookings []models.Booking
	orders   []models.Order

	unsubs []store.Unsubscribe
	closed bool
}

// Open seeds an empty store, then subscribes to every known collection.
// Seeding runs first so the initial snapshots already carry the defaults, but
// consumers may still observe empty snapshots before data arrives and must not
// treat them as terminal. onChange may be nil.
func Open(ctx context.Context, adapter store.Adapter, onChange func(collection string)) (*Session, error) {
	seed.EnsureDefaults(ctx, adapter)

	s := &Session{
		adapter:  adapter,
		onChange: onChange,
		config:   seed.DefaultConfig(),
	}
	for _, name := range db.All {
		name := name
		unsub, err := adapter.Subscribe(ctx, name, func(docs []bson.Raw) {
			s.apply(name, docs)
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.unsubs = append(s.unsubs, unsub)
	}
	return s, nil
}

// Adapter exposes the underlying store for mutators.
func (s *Session) Adapter() store.Adapter {
	return s.adapter
}

// Close tears down every open subscription. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsubs := s.unsubs
	s.unsubs = nil
	s.mu.Unlock()

	for _, unsub := range unsubs {
		unsub()
	}
}

func decodeAll[T any](collection string, docs []bson.Raw) []T {
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		var v T
		if err := bson.Unmarshal(raw, &v); err != nil {
			log.Println("mirror decode error:", collection, err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// apply wholesale-replaces one collection's entry with the latest snapshot.
func (s *Session) apply(collection string, docs []bson.Raw) {
	s.mu.Lock()
	switch collection {
	case db.ColConfig:
		// singleton: an unexpectedly empty snapshot keeps the previous value
		if cfgs := decodeAll[models.SiteConfig](collection, docs); len(cfgs) > 0 {
			s.config = cfgs[0]
		}
	case db.ColServices:
		s.services = decodeAll[models.Service](collection, docs)
	case db.ColProducts:
		s.products = decodeAll[models.Product](collection, docs)
	case db.ColOffers:
		s.offers = decodeAll[models.Offer](collection, docs)
	case db.ColTeam:
		s.team = decodeAll[models.TeamMember](collection, docs)
	case db.ColGallery:
		s.gallery = decodeAll[models.GalleryItem](collection, docs)
	case db.ColPages:
		s.pages = decodeAll[models.CustomPage](collection, docs)
	case db.ColReviews:
		s.reviews = decodeAll[models.Review](collection, docs)
	case db.ColUsers:
		s.users = decodeAll[models.User](collection, docs)
	case db.ColBookings:
		s.bookings = decodeAll[models.Booking](collection, docs)
	case db.ColOrders:
		s.orders = decodeAll[models.Order](collection, docs)
	default:
		log.Println("mirror: snapshot for unknown collection", collection)
	}
	onChange := s.onChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(collection)
	}
}

func copyOf[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func (s *Session) Config() models.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

func (s *Session) Services() []models.Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.services)
}

func (s *Session) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.products)
}

func (s *Session) Offers() []models.Offer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.offers)
}

func (s *Session) Team() []models.TeamMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.team)
}

func (s *Session) Gallery() []models.GalleryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.gallery)
}

func (s *Session) Pages() []models.CustomPage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.pages)
}

func (s *Session) Reviews() []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.reviews)
}

func (s *Session) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.users)
}

func (s *Session) Bookings() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.bookings)
}

func (s *Session) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyOf(s.orders)
}

// LoginUser resolves a user strictly by exact match on the mobile number.
func (s *Session) LoginUser(mobile string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Mobile == mobile {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Session) Booking(id string) (models.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}
	return models.Booking{}, false
}

func (s *Session) Order(id string) (models.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}
