package client

import (
	"context"
	"time"
)

// Thin typed accessors for the CRUD resources. Every screen follows the
// same shape: fetch a collection, submit a mutation, re-fetch.

// Room mirrors the server's room record.
type Room struct {
	ID         string `json:"id"`
	RoomNumber string `json:"roomNumber"`
	Capacity   int    `json:"capacity"`
	Occupied   int    `json:"occupied"`
}

// Fee mirrors the server's fee record.
type Fee struct {
	ID        string     `json:"id"`
	StudentID string     `json:"studentId"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	DueDate   time.Time  `json:"dueDate"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// Complaint mirrors the server's complaint record.
type Complaint struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Status      string `json:"status"`
}

// Notice mirrors the server's notice record.
type Notice struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	PostedBy string `json:"postedBy"`
}

// LostFoundItem mirrors the server's lost-and-found record.
type LostFoundItem struct {
	ID          string `json:"id"`
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// Visitor mirrors the server's visitor record.
type Visitor struct {
	ID         string     `json:"id"`
	StudentID  string     `json:"studentId"`
	Name       string     `json:"name"`
	Contact    string     `json:"contact"`
	Purpose    string     `json:"purpose"`
	CheckInAt  time.Time  `json:"checkInAt"`
	CheckOutAt *time.Time `json:"checkOutAt,omitempty"`
}

// Event mirrors the server's event record.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location,omitempty"`
}

// LaundryRequest mirrors the server's laundry record.
type LaundryRequest struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	ClothesCount int       `json:"clothesCount"`
	Status       string    `json:"status"`
	Date         time.Time `json:"date"`
}

// MaintenanceRequest mirrors the server's maintenance record.
type MaintenanceRequest struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"studentId"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	RoomNumber   string    `json:"roomNumber"`
	Status       string    `json:"status"`
	DateReported time.Time `json:"dateReported"`
}

// FoodMenuItem mirrors one day of the server's mess menu.
type FoodMenuItem struct {
	Day       string `json:"day"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
}

// ChatMessage mirrors the server's chat record.
type ChatMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sentAt"`
}

func (a *API) ListRooms(ctx context.Context) ([]Room, error) {
	var resp struct {
		Data struct {
			Rooms []Room `json:"rooms"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/rooms", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Rooms, nil
}

func (a *API) ListStudents(ctx context.Context) ([]User, error) {
	var resp struct {
		Data struct {
			Users []User `json:"users"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/users?role=student", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Users, nil
}

func (a *API) ListFees(ctx context.Context) ([]Fee, error) {
	var resp struct {
		Data struct {
			Fees []Fee `json:"fees"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/fees", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Fees, nil
}

func (a *API) PayFee(ctx context.Context, id string) error {
	return a.Put(ctx, "/fees/"+id+"/pay", nil, nil)
}

func (a *API) ListComplaints(ctx context.Context) ([]Complaint, error) {
	var resp struct {
		Data struct {
			Complaints []Complaint `json:"complaints"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/complaints", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Complaints, nil
}

// SubmitComplaint files a complaint; image may be an empty string or a
// base64 data URL.
func (a *API) SubmitComplaint(ctx context.Context, category, description, image string) error {
	return a.Post(ctx, "/complaints", map[string]string{
		"category":    category,
		"description": description,
		"image":       image,
	}, nil)
}

func (a *API) ListNotices(ctx context.Context) ([]Notice, error) {
	var resp struct {
		Data struct {
			Notices []Notice `json:"notices"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/notices", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Notices, nil
}

func (a *API) PublishNotice(ctx context.Context, title, message string) error {
	return a.Post(ctx, "/notices", map[string]string{"title": title, "message": message}, nil)
}

func (a *API) ListLostFound(ctx context.Context) ([]LostFoundItem, error) {
	var resp struct {
		Data struct {
			Items []LostFoundItem `json:"items"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/lost-found", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Items, nil
}

func (a *API) ReportLostItem(ctx context.Context, itemName, description, location, status string) error {
	return a.Post(ctx, "/lost-found", map[string]string{
		"itemName":    itemName,
		"description": description,
		"location":    location,
		"status":      status,
	}, nil)
}

func (a *API) ListVisitors(ctx context.Context) ([]Visitor, error) {
	var resp struct {
		Data struct {
			Visitors []Visitor `json:"visitors"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/visitors", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Visitors, nil
}

func (a *API) AddVisitor(ctx context.Context, name, contact, purpose, remarks string) error {
	return a.Post(ctx, "/visitors", map[string]string{
		"name":    name,
		"contact": contact,
		"purpose": purpose,
		"remarks": remarks,
	}, nil)
}

func (a *API) CheckOutVisitor(ctx context.Context, id string) error {
	return a.Put(ctx, "/visitors/"+id+"/checkout", nil, nil)
}

func (a *API) ListChat(ctx context.Context) ([]ChatMessage, error) {
	var resp struct {
		Data struct {
			Messages []ChatMessage `json:"messages"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/chat", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Messages, nil
}

func (a *API) SendChat(ctx context.Context, message string) error {
	return a.Post(ctx, "/chat", map[string]string{"message": message}, nil)
}

func (a *API) ListEvents(ctx context.Context) ([]Event, error) {
	var resp struct {
		Data struct {
			Events []Event `json:"events"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/events", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Events, nil
}

func (a *API) ListLaundry(ctx context.Context) ([]LaundryRequest, error) {
	var resp struct {
		Data struct {
			Requests []LaundryRequest `json:"requests"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/laundry", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Requests, nil
}

func (a *API) RequestLaundry(ctx context.Context, clothesCount int) error {
	return a.Post(ctx, "/laundry", map[string]int{"clothesCount": clothesCount}, nil)
}

func (a *API) ListMaintenance(ctx context.Context) ([]MaintenanceRequest, error) {
	var resp struct {
		Data struct {
			Requests []MaintenanceRequest `json:"requests"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/maintenance", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Requests, nil
}

func (a *API) RequestMaintenance(ctx context.Context, category, description, roomNumber string) error {
	return a.Post(ctx, "/maintenance", map[string]string{
		"category":    category,
		"description": description,
		"roomNumber":  roomNumber,
	}, nil)
}

func (a *API) SubmitFeedback(ctx context.Context, rating int, message string) error {
	return a.Post(ctx, "/feedback", map[string]any{"rating": rating, "message": message}, nil)
}

func (a *API) FoodMenu(ctx context.Context) ([]FoodMenuItem, error) {
	var resp struct {
		Data struct {
			Menu []FoodMenuItem `json:"menu"`
		} `json:"data"`
	}
	if err := a.Get(ctx, "/food-menu", &resp); err != nil {
		return nil, err
	}
	return resp.Data.Menu, nil
}
