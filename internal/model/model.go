package model

import "time"

// Roles known to the system.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
	RoleWarden  = "warden"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	RoomID       string    `json:"roomId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Room is a hostel room with occupancy tracking.
type Room struct {
	ID         string    `json:"id"`
	RoomNumber string    `json:"roomNumber"`
	Capacity   int       `json:"capacity"`
	Occupied   int       `json:"occupied"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Fee statuses.
const (
	FeePending = "pending"
	FeePaid    = "paid"
	FeeOverdue = "overdue"
)

// Fee is a charge raised against a student.
type Fee struct {
	ID        string     `json:"id"`
	StudentID string     `json:"studentId"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	DueDate   time.Time  `json:"dueDate"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Complaint statuses.
const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in-progress"
	ComplaintResolved   = "resolved"
)

// Complaint is a maintenance or service issue raised by a student.
type Complaint struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notice is an announcement published by an admin.
type Notice struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	PostedBy  string    `json:"postedBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Lost and found item statuses.
const (
	ItemLost    = "lost"
	ItemFound   = "found"
	ItemClaimed = "claimed"
)

// LostFoundItem is an item reported lost or found on the premises.
type LostFoundItem struct {
	ID          string    `json:"id"`
	ReportedBy  string    `json:"reportedBy"`
	ItemName    string    `json:"itemName"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Visitor is a guest registered against a student, checked out on departure.
type Visitor struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"studentId"`
	Name       string     `json:"name"`
	Contact    string     `json:"contact"`
	Purpose    string     `json:"purpose"`
	Remarks    string     `json:"remarks,omitempty"`
	CheckInAt  time.Time  `json:"checkInAt"`
	CheckOutAt *time.Time `json:"checkOutAt,omitempty"`
}

// ChatMessage is one entry in the common-room chat.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sentAt"`
}

// Event is a hostel event announced to students.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Laundry request statuses.
const (
	LaundryPending    = "pending"
	LaundryInProgress = "in-progress"
	LaundryDelivered  = "delivered"
)

// LaundryRequest is a batch of clothes handed in for washing.
type LaundryRequest struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	ClothesCount int       `json:"clothesCount"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

// Maintenance request statuses.
const (
	MaintenancePending    = "pending"
	MaintenanceInProgress = "in-progress"
	MaintenanceResolved   = "resolved"
)

// MaintenanceRequest is a repair request for a room.
type MaintenanceRequest struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	RoomNumber   string    `json:"roomNumber"`
	Status       string    `json:"status"`
	DateReported time.Time `json:"dateReported"`
}

// Feedback is a rating plus free-text message from a student.
type Feedback struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Rating    int       `json:"rating"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// FoodMenuItem is one day's mess menu.
type FoodMenuItem struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// AttendanceRecord marks a student present on a calendar day.
// Date is a plain YYYY-MM-DD string; one record per student per day.
type AttendanceRecord struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Date      string    `json:"date"`
	Method    string    `json:"method"`
	MarkedAt  time.Time `json:"markedAt"`
}
