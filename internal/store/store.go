package store

import (
	"context"
	"errors"

	"hostel/internal/model"
)

// Sentinel errors shared by all backends.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store is the persistence boundary for the hostel service. Two backends
// exist: Postgres for production and an in-memory map store for dev/tests,
// selected by STORE_BACKEND.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	GetUserByID(ctx context.Context, id string) (model.User, error)
	ListUsers(ctx context.Context, role string) ([]model.User, error)
	UpdateUserProfile(ctx context.Context, id, name, phone string) (model.User, error)
	UpdateUserPassword(ctx context.Context, id, passwordHash string) error

	// Rooms
	ListRooms(ctx context.Context) ([]model.Room, error)
	CreateRoom(ctx context.Context, r model.Room) (model.Room, error)
	UpdateRoom(ctx context.Context, r model.Room) (model.Room, error)

	// Fees
	ListFees(ctx context.Context, studentID string) ([]model.Fee, error)
	CreateFee(ctx context.Context, f model.Fee) (model.Fee, error)
	MarkFeePaid(ctx context.Context, id string) (model.Fee, error)

	// Complaints
	ListComplaints(ctx context.Context, studentID string) ([]model.Complaint, error)
	CreateComplaint(ctx context.Context, cm model.Complaint) (model.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id, status string) (model.Complaint, error)

	// Notices
	ListNotices(ctx context.Context) ([]model.Notice, error)
	CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error)

	// Lost and found
	ListLostFound(ctx context.Context) ([]model.LostFoundItem, error)
	CreateLostFound(ctx context.Context, item model.LostFoundItem) (model.LostFoundItem, error)
	UpdateLostFoundStatus(ctx context.Context, id, status string) (model.LostFoundItem, error)

	// Visitors
	ListVisitors(ctx context.Context, studentID string) ([]model.Visitor, error)
	CreateVisitor(ctx context.Context, v model.Visitor) (model.Visitor, error)
	CheckOutVisitor(ctx context.Context, id string) (model.Visitor, error)

	// Chat
	ListChatMessages(ctx context.Context, limit int) ([]model.ChatMessage, error)
	CreateChatMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error)

	// Events
	ListEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, ev model.Event) (model.Event, error)

	// Laundry
	ListLaundry(ctx context.Context, studentID string) ([]model.LaundryRequest, error)
	CreateLaundry(ctx context.Context, lr model.LaundryRequest) (model.LaundryRequest, error)
	UpdateLaundryStatus(ctx context.Context, id, status string) (model.LaundryRequest, error)

	// Maintenance
	ListMaintenance(ctx context.Context, studentID string) ([]model.MaintenanceRequest, error)
	CreateMaintenance(ctx context.Context, mr model.MaintenanceRequest) (model.MaintenanceRequest, error)
	UpdateMaintenanceStatus(ctx context.Context, id, status string) (model.MaintenanceRequest, error)

	// Feedback
	ListFeedback(ctx context.Context) ([]model.Feedback, error)
	CreateFeedback(ctx context.Context, fb model.Feedback) (model.Feedback, error)

	// Food menu
	ListFoodMenu(ctx context.Context) ([]model.FoodMenuItem, error)
	UpsertFoodMenu(ctx context.Context, item model.FoodMenuItem) (model.FoodMenuItem, error)

	// Attendance
	InsertAttendance(ctx context.Context, rec model.AttendanceRecord) (model.AttendanceRecord, error)
	GetAttendance(ctx context.Context, studentID, date string) (*model.AttendanceRecord, error)
	ListAttendance(ctx context.Context, studentID, date string, limit, offset int) ([]model.AttendanceRecord, error)
}
