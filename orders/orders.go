package orders

import (
	"context"
	"errors"
	"time"

	"lotoria/db"
	"lotoria/mirror"
	"lotoria/models"
	"lotoria/utils"
)

var (
	// ErrNotFound means the record is absent from the mirror.
	ErrNotFound = errors.New("record not found")
	// ErrConflict means the guarded write matched nothing: either a concurrent
	// transition got there first or the record was removed remotely.
	ErrConflict = errors.New("status changed concurrently")
	// ErrInvalidStatus means the requested transition is not in the lifecycle.
	ErrInvalidStatus = errors.New("invalid status transition")
	// ErrValidation means required fields are missing on a create.
	ErrValidation = errors.New("missing required fields")
)

// AddBooking stores a new booking. The caller supplies the customer and
// service fields; status and timestamp are always forced here, PENDING being
// the only legal creation state.
func AddBooking(ctx context.Context, ses *mirror.Session, b models.Booking) (models.Booking, error) {
	if b.UserID == "" || b.UserName == "" || b.UserMobile == "" || b.ServiceID == "" || b.Date == "" || b.Time == "" {
		return models.Booking{}, ErrValidation
	}
	if b.ID == "" {
		b.ID = utils.GetUUID()
	}
	b.Status = models.StatusPending
	b.StatusNote = ""
	b.Timestamp = time.Now().UnixMilli()

	if err := ses.Adapter().Upsert(ctx, db.ColBookings, b.ID, b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

// AddOrder stores a cart snapshot as a new order. TotalAmount is always
// recomputed from the items here and never again afterwards; later catalog
// price changes do not touch placed orders.
func AddOrder(ctx context.Context, ses *mirror.Session, o models.Order) (models.Order, error) {
	if o.UserID == "" || o.UserName == "" || o.UserMobile == "" || len(o.Items) == 0 {
		return models.Order{}, ErrValidation
	}
	if o.ID == "" {
		o.ID = utils.GetUUID()
	}
	var total float64
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return models.Order{}, ErrValidation
		}
		total += item.Price * float64(item.Quantity)
	}
	o.TotalAmount = total
	o.Status = models.StatusPending
	o.StatusNote = ""
	now := time.Now()
	o.Date = now.Format("02/01/2006")
	o.Timestamp = now.UnixMilli()

	if err := ses.Adapter().Upsert(ctx, db.ColOrders, o.ID, o); err != nil {
		return models.Order{}, err
	}
	return o, nil
}

// updateStatus moves one record through the lifecycle. The write carries a
// guard on the legal source states, so two overlapping updates cannot both
// apply: the loser gets ErrConflict instead of silently clobbering the winner.
func updateStatus(ctx context.Context, ses *mirror.Session, collection, id, next string, exists bool) error {
	if !models.ValidStatus(next) {
		return ErrInvalidStatus
	}
	sources := models.TransitionSources(next)
	if len(sources) == 0 {
		// PENDING is a creation state, never a transition target
		return ErrInvalidStatus
	}
	if !exists {
		return ErrNotFound
	}
	ok, err := ses.Adapter().UpdateFields(ctx, collection, id,
		map[string][]string{"status": sources},
		map[string]any{"status": next})
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func UpdateBookingStatus(ctx context.Context, ses *mirror.Session, id, next string) error {
	_, exists := ses.Booking(id)
	return updateStatus(ctx, ses, db.ColBookings, id, next, exists)
}

func UpdateOrderStatus(ctx context.Context, ses *mirror.Session, id, next string) error {
	_, exists := ses.Order(id)
	return updateStatus(ctx, ses, db.ColOrders, id, next, exists)
}

// updateNote attaches free-text to a record in a non-terminal state.
func updateNote(ctx context.Context, ses *mirror.Session, collection, id, note string, exists bool) error {
	if !exists {
		return ErrNotFound
	}
	ok, err := ses.Adapter().UpdateFields(ctx, collection, id,
		map[string][]string{"status": {models.StatusPending, models.StatusConfirmed}},
		map[string]any{"statusNote": note})
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	return nil
}

func UpdateBookingNote(ctx context.Context, ses *mirror.Session, id, note string) error {
	_, exists := ses.Booking(id)
	return updateNote(ctx, ses, db.ColBookings, id, note, exists)
}

func UpdateOrderNote(ctx context.Context, ses *mirror.Session, id, note string) error {
	_, exists := ses.Order(id)
	return updateNote(ctx, ses, db.ColOrders, id, note, exists)
}
