package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"hostel/internal/model"
)

// Memory is a map-backed Store for dev and tests, mirroring the behavior
// of the Postgres backend without a database.
type Memory struct {
	mu         sync.RWMutex
	users      []model.User
	rooms      []model.Room
	fees       []model.Fee
	complaints []model.Complaint
	notices    []model.Notice
	lostFound  []model.LostFoundItem
	visitors   []model.Visitor
	chat       []model.ChatMessage
	attendance []model.AttendanceRecord

	events      []model.Event
	laundry     []model.LaundryRequest
	maintenance []model.MaintenanceRequest
	feedback    []model.Feedback
	foodMenu    []model.FoodMenuItem
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func newID() string { return uuid.NewString() }

// reversed returns a newest-first copy of a slice appended in insertion order.
func reversed[T any](in []T) []T {
	out := make([]T, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}

// Users

func (m *Memory) CreateUser(_ context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(u.Email)
	for _, existing := range m.users {
		if strings.ToLower(existing.Email) == email {
			return model.User{}, ErrDuplicateEmail
		}
	}
	if u.ID == "" {
		u.ID = newID()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	m.users = append(m.users, u)
	return u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = strings.ToLower(email)
	for _, u := range m.users {
		if strings.ToLower(u.Email) == email {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) GetUserByID(_ context.Context, id string) (model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) ListUsers(_ context.Context, role string) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.User
	for _, u := range m.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *Memory) UpdateUserProfile(_ context.Context, id, name, phone string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			if name != "" {
				m.users[i].Name = name
			}
			if phone != "" {
				m.users[i].Phone = phone
			}
			return m.users[i], nil
		}
	}
	return model.User{}, ErrNotFound
}

func (m *Memory) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].PasswordHash = passwordHash
			return nil
		}
	}
	return ErrNotFound
}

// Rooms

func (m *Memory) ListRooms(_ context.Context) ([]model.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.Room(nil), m.rooms...), nil
}

func (m *Memory) CreateRoom(_ context.Context, r model.Room) (model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = newID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	m.rooms = append(m.rooms, r)
	return r, nil
}

func (m *Memory) UpdateRoom(_ context.Context, r model.Room) (model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rooms {
		if m.rooms[i].ID == r.ID {
			m.rooms[i].RoomNumber = r.RoomNumber
			m.rooms[i].Capacity = r.Capacity
			m.rooms[i].Occupied = r.Occupied
			return m.rooms[i], nil
		}
	}
	return model.Room{}, ErrNotFound
}

// Fees

func (m *Memory) ListFees(_ context.Context, studentID string) ([]model.Fee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Fee
	for _, f := range m.fees {
		if studentID == "" || f.StudentID == studentID {
			out = append(out, f)
		}
	}
	return reversed(out), nil
}

func (m *Memory) CreateFee(_ context.Context, f model.Fee) (model.Fee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == "" {
		f.ID = newID()
	}
	if f.Status == "" {
		f.Status = model.FeePending
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	m.fees = append(m.fees, f)
	return f, nil
}

func (m *Memory) MarkFeePaid(_ context.Context, id string) (model.Fee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.fees {
		if m.fees[i].ID == id {
			now := time.Now().UTC()
			m.fees[i].Status = model.FeePaid
			m.fees[i].PaidAt = &now
			return m.fees[i], nil
		}
	}
	return model.Fee{}, ErrNotFound
}

// Complaints

func (m *Memory) ListComplaints(_ context.Context, studentID string) ([]model.Complaint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Complaint
	for _, cm := range m.complaints {
		if studentID == "" || cm.StudentID == studentID {
			out = append(out, cm)
		}
	}
	return reversed(out), nil
}

func (m *Memory) CreateComplaint(_ context.Context, cm model.Complaint) (model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cm.ID == "" {
		cm.ID = newID()
	}
	if cm.Status == "" {
		cm.Status = model.ComplaintOpen
	}
	if cm.CreatedAt.IsZero() {
		cm.CreatedAt = time.Now().UTC()
	}
	m.complaints = append(m.complaints, cm)
	return cm, nil
}

func (m *Memory) UpdateComplaintStatus(_ context.Context, id, status string) (model.Complaint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.complaints {
		if m.complaints[i].ID == id {
			m.complaints[i].Status = status
			return m.complaints[i], nil
		}
	}
	return model.Complaint{}, ErrNotFound
}

// Notices

func (m *Memory) ListNotices(_ context.Context) ([]model.Notice, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return reversed(m.notices), nil
}

func (m *Memory) CreateNotice(_ context.Context, n model.Notice) (model.Notice, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n.ID == "" {
		n.ID = newID()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	m.notices = append(m.notices, n)
	return n, nil
}

// Lost and found

func (m *Memory) ListLostFound(_ context.Context) ([]model.LostFoundItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return reversed(m.lostFound), nil
}

func (m *Memory) CreateLostFound(_ context.Context, item model.LostFoundItem) (model.LostFoundItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item.ID == "" {
		item.ID = newID()
	}
	if item.Status == "" {
		item.Status = model.ItemLost
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	m.lostFound = append(m.lostFound, item)
	return item, nil
}

func (m *Memory) UpdateLostFoundStatus(_ context.Context, id, status string) (model.LostFoundItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.lostFound {
		if m.lostFound[i].ID == id {
			m.lostFound[i].Status = status
			return m.lostFound[i], nil
		}
	}
	return model.LostFoundItem{}, ErrNotFound
}

// Visitors

func (m *Memory) ListVisitors(_ context.Context, studentID string) ([]model.Visitor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Visitor
	for _, v := range m.visitors {
		if studentID == "" || v.StudentID == studentID {
			out = append(out, v)
		}
	}
	return reversed(out), nil
}

func (m *Memory) CreateVisitor(_ context.Context, v model.Visitor) (model.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v.ID == "" {
		v.ID = newID()
	}
	if v.CheckInAt.IsZero() {
		v.CheckInAt = time.Now().UTC()
	}
	m.visitors = append(m.visitors, v)
	return v, nil
}

func (m *Memory) CheckOutVisitor(_ context.Context, id string) (model.Visitor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.visitors {
		if m.visitors[i].ID == id {
			if m.visitors[i].CheckOutAt == nil {
				now := time.Now().UTC()
				m.visitors[i].CheckOutAt = &now
			}
			return m.visitors[i], nil
		}
	}
	return model.Visitor{}, ErrNotFound
}

// Chat

func (m *Memory) ListChatMessages(_ context.Context, limit int) ([]model.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.chat) {
		limit = len(m.chat)
	}
	// last N in chronological order
	return append([]model.ChatMessage(nil), m.chat[len(m.chat)-limit:]...), nil
}

func (m *Memory) CreateChatMessage(_ context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if msg.ID == "" {
		msg.ID = newID()
	}
	if msg.SentAt.IsZero() {
		msg.SentAt = time.Now().UTC()
	}
	m.chat = append(m.chat, msg)
	return msg, nil
}

// Events

func (m *Memory) ListEvents(_ context.Context) ([]model.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return reversed(m.events), nil
}

func (m *Memory) CreateEvent(_ context.Context, ev model.Event) (model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ev.ID == "" {
		ev.ID = newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}
	m.events = append(m.events, ev)
	return ev, nil
}

// Laundry

func (m *Memory) ListLaundry(_ context.Context, studentID string) ([]model.LaundryRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.LaundryRequest
	for _, lr := range m.laundry {
		if studentID == "" || lr.StudentID == studentID {
			out = append(out, lr)
		}
	}
	return reversed(out), nil
}

func (m *Memory) CreateLaundry(_ context.Context, lr model.LaundryRequest) (model.LaundryRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if lr.ID == "" {
		lr.ID = newID()
	}
	if lr.Status == "" {
		lr.Status = model.LaundryPending
	}
	if lr.Date.IsZero() {
		lr.Date = time.Now().UTC()
	}
	m.laundry = append(m.laundry, lr)
	return lr, nil
}

func (m *Memory) UpdateLaundryStatus(_ context.Context, id, status string) (model.LaundryRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.laundry {
		if m.laundry[i].ID == id {
			m.laundry[i].Status = status
			return m.laundry[i], nil
		}
	}
	return model.LaundryRequest{}, ErrNotFound
}

// Maintenance

func (m *Memory) ListMaintenance(_ context.Context, studentID string) ([]model.MaintenanceRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.MaintenanceRequest
	for _, mr := range m.maintenance {
		if studentID == "" || mr.StudentID == studentID {
			out = append(out, mr)
		}
	}
	return reversed(out), nil
}

func (m *Memory) CreateMaintenance(_ context.Context, mr model.MaintenanceRequest) (model.MaintenanceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mr.ID == "" {
		mr.ID = newID()
	}
	if mr.Status == "" {
		mr.Status = model.MaintenancePending
	}
	if mr.DateReported.IsZero() {
		mr.DateReported = time.Now().UTC()
	}
	m.maintenance = append(m.maintenance, mr)
	return mr, nil
}

func (m *Memory) UpdateMaintenanceStatus(_ context.Context, id, status string) (model.MaintenanceRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.maintenance {
		if m.maintenance[i].ID == id {
			m.maintenance[i].Status = status
			return m.maintenance[i], nil
		}
	}
	return model.MaintenanceRequest{}, ErrNotFound
}

// Feedback

func (m *Memory) ListFeedback(_ context.Context) ([]model.Feedback, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return reversed(m.feedback), nil
}

func (m *Memory) CreateFeedback(_ context.Context, fb model.Feedback) (model.Feedback, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if fb.ID == "" {
		fb.ID = newID()
	}
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now().UTC()
	}
	m.feedback = append(m.feedback, fb)
	return fb, nil
}

// Food menu

func (m *Memory) ListFoodMenu(_ context.Context) ([]model.FoodMenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]model.FoodMenuItem(nil), m.foodMenu...), nil
}

func (m *Memory) UpsertFoodMenu(_ context.Context, item model.FoodMenuItem) (model.FoodMenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.foodMenu {
		if strings.EqualFold(m.foodMenu[i].Day, item.Day) {
			m.foodMenu[i] = item
			return item, nil
		}
	}
	m.foodMenu = append(m.foodMenu, item)
	return item, nil
}

// Attendance

func (m *Memory) InsertAttendance(_ context.Context, rec model.AttendanceRecord) (model.AttendanceRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.MarkedAt.IsZero() {
		rec.MarkedAt = time.Now().UTC()
	}
	m.attendance = append(m.attendance, rec)
	return rec, nil
}

func (m *Memory) GetAttendance(_ context.Context, studentID, date string) (*model.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.attendance {
		if rec.StudentID == studentID && rec.Date == date {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListAttendance(_ context.Context, studentID, date string, limit, offset int) ([]model.AttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.AttendanceRecord
	for _, rec := range m.attendance {
		if studentID != "" && rec.StudentID != studentID {
			continue
		}
		if date != "" && rec.Date != date {
			continue
		}
		out = append(out, rec)
	}
	out = reversed(out)
	if offset > 0 {
		if offset >= len(out) {
			return nil, nil
		}
		out = out[offset:]
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}
