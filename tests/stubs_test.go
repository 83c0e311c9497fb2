package tests

import (
	"context"
	"sort"
	"strings"
	"time"

	"hotelier/internal/dto"
	"hotelier/internal/model"
	"hotelier/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository stubs. Misses return gorm.ErrRecordNotFound because
// that is what the services match on.

type stubPaymentRepo struct {
	rows []*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo { return &stubPaymentRepo{} }

func (r *stubPaymentRepo) Create(_ context.Context, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	for _, p := range r.rows {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) FindByBooking(_ context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range r.rows {
		if p.BookingID == bookingID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentDate.Before(out[j].PaymentDate) })
	return out, nil
}

func (r *stubPaymentRepo) CountByBooking(_ context.Context, bookingID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.rows {
		if p.BookingID == bookingID {
			n++
		}
	}
	return n, nil
}

func (r *stubPaymentRepo) Update(_ context.Context, p *model.Payment) error {
	for i, row := range r.rows {
		if row.ID == p.ID {
			cp := *p
			r.rows[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) TotalAgg(_ context.Context) (int64, decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range r.rows {
		total = total.Add(p.Amount)
	}
	return int64(len(r.rows)), total, nil
}

func (r *stubPaymentRepo) AggregateByStatus(_ context.Context) ([]repository.GroupAgg, error) {
	return r.groupBy(func(p *model.Payment) string { return p.Status }), nil
}

func (r *stubPaymentRepo) AggregateByMode(_ context.Context) ([]repository.GroupAgg, error) {
	return r.groupBy(func(p *model.Payment) string { return p.PaymentMode }), nil
}

func (r *stubPaymentRepo) groupBy(key func(*model.Payment) string) []repository.GroupAgg {
	byKey := map[string]*repository.GroupAgg{}
	var order []string
	for _, p := range r.rows {
		k := key(p)
		agg, ok := byKey[k]
		if !ok {
			agg = &repository.GroupAgg{Grp: k, Total: decimal.Zero}
			byKey[k] = agg
			order = append(order, k)
		}
		agg.Count++
		agg.Total = agg.Total.Add(p.Amount)
	}
	out := make([]repository.GroupAgg, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

func (r *stubPaymentRepo) Recent(_ context.Context, limit int) ([]model.Payment, error) {
	sorted := make([]model.Payment, 0, len(r.rows))
	for _, p := range r.rows {
		sorted = append(sorted, *p)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PaymentDate.After(sorted[j].PaymentDate) })
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

type stubBookingRepo struct {
	bookings map[uuid.UUID]*model.Booking

	// Optional association stores. When set, reads resolve Guest and Room
	// the way the production repository preloads them.
	guests *stubGuestRepo
	rooms  *stubRoomRepo
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (r *stubBookingRepo) resolve(b *model.Booking) model.Booking {
	cp := *b
	if r.guests != nil {
		if g, ok := r.guests.guests[cp.GuestID]; ok {
			gcp := *g
			cp.Guest = &gcp
		}
	}
	if r.rooms != nil {
		if room, ok := r.rooms.rooms[cp.RoomID]; ok {
			rcp := *room
			cp.Room = &rcp
		}
	}
	return cp
}

func (r *stubBookingRepo) Create(_ context.Context, b *model.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := r.resolve(b)
	return &cp, nil
}

func (r *stubBookingRepo) List(_ context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error) {
	var out []model.Booking
	for _, b := range r.bookings {
		if filter.Active == "true" && !b.IsActive {
			continue
		}
		if filter.Active == "false" && b.IsActive {
			continue
		}
		out = append(out, r.resolve(b))
	}
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *model.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *stubBookingRepo) CountOverlapping(_ context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, exclude *uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.RoomID != roomID || !b.IsActive {
			continue
		}
		if exclude != nil && b.ID == *exclude {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			n++
		}
	}
	return n, nil
}

func (r *stubBookingRepo) ListExpiredActive(_ context.Context, now time.Time, limit int) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range r.bookings {
		if b.IsActive && b.CheckOut.Before(now) {
			out = append(out, *b)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ repository.BookingRepository = (*stubBookingRepo)(nil)

type stubGuestRepo struct {
	guests map[uuid.UUID]*model.Guest
}

func newStubGuestRepo() *stubGuestRepo {
	return &stubGuestRepo{guests: make(map[uuid.UUID]*model.Guest)}
}

func (r *stubGuestRepo) Create(_ context.Context, g *model.Guest) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	cp := *g
	r.guests[g.ID] = &cp
	return nil
}

func (r *stubGuestRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Guest, error) {
	g, ok := r.guests[id]
	if !ok || !g.Active {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *stubGuestRepo) List(_ context.Context, filter dto.GuestFilter) ([]model.Guest, int64, error) {
	var out []model.Guest
	for _, g := range r.guests {
		if !g.Active {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(g.FullName), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (r *stubGuestRepo) Update(_ context.Context, g *model.Guest) error {
	if _, ok := r.guests[g.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *g
	r.guests[g.ID] = &cp
	return nil
}

func (r *stubGuestRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	g, ok := r.guests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	g.Active = false
	return nil
}

var _ repository.GuestRepository = (*stubGuestRepo)(nil)

type stubRoomRepo struct {
	rooms map[uuid.UUID]*model.Room
	log   []model.RoomStatusLog
}

func newStubRoomRepo() *stubRoomRepo {
	return &stubRoomRepo{rooms: make(map[uuid.UUID]*model.Room)}
}

func (r *stubRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *stubRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Room, error) {
	room, ok := r.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *room
	return &cp, nil
}

func (r *stubRoomRepo) FindByNumber(_ context.Context, number string) (*model.Room, error) {
	for _, room := range r.rooms {
		if room.Number == number {
			cp := *room
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubRoomRepo) List(_ context.Context, filter dto.RoomFilter) ([]model.Room, int64, error) {
	var out []model.Room
	for _, room := range r.rooms {
		if !room.Active {
			continue
		}
		if filter.Status != "" && filter.Status != "all" && room.Status != filter.Status {
			continue
		}
		out = append(out, *room)
	}
	return out, int64(len(out)), nil
}

func (r *stubRoomRepo) Update(_ context.Context, room *model.Room) error {
	if _, ok := r.rooms[room.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *room
	r.rooms[room.ID] = &cp
	return nil
}

func (r *stubRoomRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	room, ok := r.rooms[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	room.Active = false
	return nil
}

func (r *stubRoomRepo) CreateStatusLog(_ context.Context, entry *model.RoomStatusLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	entry.CreatedAt = time.Now()
	r.log = append(r.log, *entry)
	return nil
}

func (r *stubRoomRepo) ListStatusLog(_ context.Context, roomID uuid.UUID, limit int) ([]model.RoomStatusLog, error) {
	var out []model.RoomStatusLog
	for i := len(r.log) - 1; i >= 0 && len(out) < limit; i-- {
		if r.log[i].RoomID == roomID {
			out = append(out, r.log[i])
		}
	}
	return out, nil
}

var _ repository.RoomRepository = (*stubRoomRepo)(nil)

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = false
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Active = true
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

type stubSettingRepo struct {
	values map[string]string
}

func newStubSettingRepo() *stubSettingRepo {
	return &stubSettingRepo{values: make(map[string]string)}
}

func (r *stubSettingRepo) LoadAll(_ context.Context) ([]model.Setting, error) {
	out := make([]model.Setting, 0, len(r.values))
	for k, v := range r.values {
		out = append(out, model.Setting{Key: k, Value: v})
	}
	return out, nil
}

func (r *stubSettingRepo) Upsert(_ context.Context, s *model.Setting) error {
	r.values[s.Key] = s.Value
	return nil
}

var _ repository.SettingRepository = (*stubSettingRepo)(nil)
