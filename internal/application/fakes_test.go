package application

import (
	"context"
	"sort"
	"sync"

	"github.com/FieldShare-Rentals/service-rental/internal/domain"
	bookingDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/booking"
	equipmentDomain "github.com/FieldShare-Rentals/service-rental/internal/domain/equipment"
	"github.com/google/uuid"
)

// fakeDirectory is an in-memory equipment catalog.
type fakeDirectory struct {
	items map[uuid.UUID]equipmentDomain.Equipment
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{items: make(map[uuid.UUID]equipmentDomain.Equipment)}
}

func (d *fakeDirectory) add(e equipmentDomain.Equipment) {
	d.items[e.ID] = e
}

func (d *fakeDirectory) GetEquipment(_ context.Context, id uuid.UUID) (*equipmentDomain.Equipment, error) {
	e, ok := d.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("equipment", id.String())
	}
	copied := e
	return &copied, nil
}

// fakeBookingRepo is an in-memory booking store. CreateIfAvailable holds one
// mutex across check+insert, mirroring the serialization the real store
// provides per equipment.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
	owners   map[uuid.UUID]uuid.UUID // equipment -> owner, for owner listings
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]*bookingDomain.Booking),
		owners:   make(map[uuid.UUID]uuid.UUID),
	}
}

func cloneBooking(b *bookingDomain.Booking) *bookingDomain.Booking {
	return bookingDomain.ReconstructBooking(
		b.ID(), b.EquipmentID(), b.RenterID(), b.Interval(),
		b.TotalPrice(), b.Status(), b.Version(), b.CreatedAt(), b.UpdatedAt(),
	)
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id.String())
	}
	return cloneBooking(b), nil
}

func (r *fakeBookingRepo) FindActiveOverlapping(_ context.Context, equipmentID uuid.UUID, interval bookingDomain.Interval) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlappingLocked(equipmentID, interval), nil
}

func (r *fakeBookingRepo) overlappingLocked(equipmentID uuid.UUID, interval bookingDomain.Interval) []*bookingDomain.Booking {
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.EquipmentID() == equipmentID && b.Status().IsActive() && b.Interval().Overlaps(interval) {
			out = append(out, cloneBooking(b))
		}
	}
	return out
}

func (r *fakeBookingRepo) CreateIfAvailable(_ context.Context, b *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.overlappingLocked(b.EquipmentID(), b.Interval())) > 0 {
		return domain.NewConflictError("equipment is not available for the selected window")
	}
	r.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, b *bookingDomain.Booking, previous bookingDomain.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.bookings[b.ID()]
	if !ok {
		return domain.NewNotFoundError("booking", b.ID().String())
	}
	if cur.Status() != previous || cur.Version() != b.Version()-1 {
		return domain.NewConflictError("booking was modified by another actor")
	}
	r.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) FindByRenterID(_ context.Context, renterID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*bookingDomain.Booking
	for _, b := range r.bookings {
		if b.RenterID() == renterID {
			matched = append(matched, cloneBooking(b))
		}
	}
	return paginate(matched, page, limit)
}

func (r *fakeBookingRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*bookingDomain.Booking
	for _, b := range r.bookings {
		if r.owners[b.EquipmentID()] == ownerID {
			matched = append(matched, cloneBooking(b))
		}
	}
	return paginate(matched, page, limit)
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]*bookingDomain.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		matched = append(matched, cloneBooking(b))
	}
	return paginate(matched, page, limit)
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, b := range r.bookings {
		counts[string(b.Status())]++
	}
	return counts, nil
}

func paginate(matched []*bookingDomain.Booking, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
