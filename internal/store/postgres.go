package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"hostel/internal/model"
)

// Postgres persists hostel data via database/sql over the pgx driver.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// Users

func (p *Postgres) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, phone, room_id)
		VALUES ($1, $2, lower($3), $4, $5, $6, NULLIF($7, ''))
		RETURNING created_at
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone, u.RoomID)
	if err := row.Scan(&u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, err
	}
	return u, nil
}

func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, COALESCE(phone, ''), COALESCE(room_id, ''), created_at
		FROM users WHERE email = lower($1)
	`, email))
}

func (p *Postgres) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return p.scanUser(p.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, COALESCE(phone, ''), COALESCE(room_id, ''), created_at
		FROM users WHERE id = $1
	`, id))
}

func (p *Postgres) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.RoomID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func (p *Postgres) ListUsers(ctx context.Context, role string) ([]model.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, COALESCE(phone, ''), COALESCE(room_id, ''), created_at
		FROM users`
	args := []any{}
	if role != "" {
		query += ` WHERE role = $1`
		args = append(args, role)
	}
	query += ` ORDER BY name`
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Phone, &u.RoomID, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *Postgres) UpdateUserProfile(ctx context.Context, id, name, phone string) (model.User, error) {
	_, err := p.db.ExecContext(ctx, `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    phone = COALESCE(NULLIF($3, ''), phone)
		WHERE id = $1
	`, id, name, phone)
	if err != nil {
		return model.User{}, err
	}
	return p.GetUserByID(ctx, id)
}

func (p *Postgres) UpdateUserPassword(ctx context.Context, id, passwordHash string) error {
	res, err := p.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Rooms

func (p *Postgres) ListRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, room_number, capacity, occupied, created_at
		FROM rooms ORDER BY room_number
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rooms []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.RoomNumber, &r.Capacity, &r.Occupied, &r.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (p *Postgres) CreateRoom(ctx context.Context, r model.Room) (model.Room, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO rooms (id, room_number, capacity, occupied)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.ID, r.RoomNumber, r.Capacity, r.Occupied)
	if err := row.Scan(&r.CreatedAt); err != nil {
		return model.Room{}, err
	}
	return r, nil
}

func (p *Postgres) UpdateRoom(ctx context.Context, r model.Room) (model.Room, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE rooms SET room_number = $2, capacity = $3, occupied = $4
		WHERE id = $1
		RETURNING created_at
	`, r.ID, r.RoomNumber, r.Capacity, r.Occupied)
	if err := row.Scan(&r.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Room{}, ErrNotFound
		}
		return model.Room{}, err
	}
	return r, nil
}

// Fees

func (p *Postgres) ListFees(ctx context.Context, studentID string) ([]model.Fee, error) {
	query := `
		SELECT id, student_id, amount, status, due_date, paid_at, created_at
		FROM fees`
	args := []any{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var fees []model.Fee
	for rows.Next() {
		var f model.Fee
		if err := rows.Scan(&f.ID, &f.StudentID, &f.Amount, &f.Status, &f.DueDate, &f.PaidAt, &f.CreatedAt); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

func (p *Postgres) CreateFee(ctx context.Context, f model.Fee) (model.Fee, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.Status == "" {
		f.Status = model.FeePending
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO fees (id, student_id, amount, status, due_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, f.ID, f.StudentID, f.Amount, f.Status, f.DueDate)
	if err := row.Scan(&f.CreatedAt); err != nil {
		return model.Fee{}, err
	}
	return f, nil
}

func (p *Postgres) MarkFeePaid(ctx context.Context, id string) (model.Fee, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE fees SET status = 'paid', paid_at = NOW()
		WHERE id = $1
		RETURNING id, student_id, amount, status, due_date, paid_at, created_at
	`, id)
	var f model.Fee
	if err := row.Scan(&f.ID, &f.StudentID, &f.Amount, &f.Status, &f.DueDate, &f.PaidAt, &f.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Fee{}, ErrNotFound
		}
		return model.Fee{}, err
	}
	return f, nil
}

// Complaints

func (p *Postgres) ListComplaints(ctx context.Context, studentID string) ([]model.Complaint, error) {
	query := `
		SELECT id, student_id, category, description, COALESCE(image_url, ''), status, created_at
		FROM complaints`
	args := []any{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY created_at DESC`
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var complaints []model.Complaint
	for rows.Next() {
		var cm model.Complaint
		if err := rows.Scan(&cm.ID, &cm.StudentID, &cm.Category, &cm.Description, &cm.ImageURL, &cm.Status, &cm.CreatedAt); err != nil {
			return nil, err
		}
		complaints = append(complaints, cm)
	}
	return complaints, rows.Err()
}

func (p *Postgres) CreateComplaint(ctx context.Context, cm model.Complaint) (model.Complaint, error) {
	if cm.ID == "" {
		cm.ID = uuid.NewString()
	}
	if cm.Status == "" {
		cm.Status = model.ComplaintOpen
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO complaints (id, student_id, category, description, image_url, status)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		RETURNING created_at
	`, cm.ID, cm.StudentID, cm.Category, cm.Description, cm.ImageURL, cm.Status)
	if err := row.Scan(&cm.CreatedAt); err != nil {
		return model.Complaint{}, err
	}
	return cm, nil
}

func (p *Postgres) UpdateComplaintStatus(ctx context.Context, id, status string) (model.Complaint, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE complaints SET status = $2
		WHERE id = $1
		RETURNING id, student_id, category, description, COALESCE(image_url, ''), status, created_at
	`, id, status)
	var cm model.Complaint
	if err := row.Scan(&cm.ID, &cm.StudentID, &cm.Category, &cm.Description, &cm.ImageURL, &cm.Status, &cm.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Complaint{}, ErrNotFound
		}
		return model.Complaint{}, err
	}
	return cm, nil
}

// Notices

func (p *Postgres) ListNotices(ctx context.Context) ([]model.Notice, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, title, message, posted_by, created_at
		FROM notices ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var notices []model.Notice
	for rows.Next() {
		var n model.Notice
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.PostedBy, &n.CreatedAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (p *Postgres) CreateNotice(ctx context.Context, n model.Notice) (model.Notice, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO notices (id, title, message, posted_by)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, n.ID, n.Title, n.Message, n.PostedBy)
	if err := row.Scan(&n.CreatedAt); err != nil {
		return model.Notice{}, err
	}
	return n, nil
}

// Lost and found

func (p *Postgres) ListLostFound(ctx context.Context) ([]model.LostFoundItem, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, reported_by, item_name, description, location, status, created_at
		FROM lost_found ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []model.LostFoundItem
	for rows.Next() {
		var item model.LostFoundItem
		if err := rows.Scan(&item.ID, &item.ReportedBy, &item.ItemName, &item.Description, &item.Location, &item.Status, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (p *Postgres) CreateLostFound(ctx context.Context, item model.LostFoundItem) (model.LostFoundItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Status == "" {
		item.Status = model.ItemLost
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO lost_found (id, reported_by, item_name, description, location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, item.ID, item.ReportedBy, item.ItemName, item.Description, item.Location, item.Status)
	if err := row.Scan(&item.CreatedAt); err != nil {
		return model.LostFoundItem{}, err
	}
	return item, nil
}

func (p *Postgres) UpdateLostFoundStatus(ctx context.Context, id, status string) (model.LostFoundItem, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE lost_found SET status = $2
		WHERE id = $1
		RETURNING id, reported_by, item_name, description, location, status, created_at
	`, id, status)
	var item model.LostFoundItem
	if err := row.Scan(&item.ID, &item.ReportedBy, &item.ItemName, &item.Description, &item.Location, &item.Status, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LostFoundItem{}, ErrNotFound
		}
		return model.LostFoundItem{}, err
	}
	return item, nil
}

// Visitors

func (p *Postgres) ListVisitors(ctx context.Context, studentID string) ([]model.Visitor, error) {
	query := `
		SELECT id, student_id, name, contact, purpose, COALESCE(remarks, ''), check_in_at, check_out_at
		FROM visitors`
	args := []any{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY check_in_at DESC`
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var visitors []model.Visitor
	for rows.Next() {
		var v model.Visitor
		if err := rows.Scan(&v.ID, &v.StudentID, &v.Name, &v.Contact, &v.Purpose, &v.Remarks, &v.CheckInAt, &v.CheckOutAt); err != nil {
			return nil, err
		}
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

func (p *Postgres) CreateVisitor(ctx context.Context, v model.Visitor) (model.Visitor, error) {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CheckInAt.IsZero() {
		v.CheckInAt = time.Now().UTC()
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO visitors (id, student_id, name, contact, purpose, remarks, check_in_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
	`, v.ID, v.StudentID, v.Name, v.Contact, v.Purpose, v.Remarks, v.CheckInAt)
	if err != nil {
		return model.Visitor{}, err
	}
	return v, nil
}

func (p *Postgres) CheckOutVisitor(ctx context.Context, id string) (model.Visitor, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE visitors SET check_out_at = COALESCE(check_out_at, NOW())
		WHERE id = $1
		RETURNING id, student_id, name, contact, purpose, COALESCE(remarks, ''), check_in_at, check_out_at
	`, id)
	var v model.Visitor
	if err := row.Scan(&v.ID, &v.StudentID, &v.Name, &v.Contact, &v.Purpose, &v.Remarks, &v.CheckInAt, &v.CheckOutAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Visitor{}, ErrNotFound
		}
		return model.Visitor{}, err
	}
	return v, nil
}

// Chat

func (p *Postgres) ListChatMessages(ctx context.Context, limit int) ([]model.ChatMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, sender_id, sender_name, message, sent_at FROM (
			SELECT id, sender_id, sender_name, message, sent_at
			FROM chat_messages ORDER BY sent_at DESC LIMIT $1
		) latest ORDER BY sent_at ASC
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var msgs []model.ChatMessage
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.SenderID, &msg.SenderName, &msg.Message, &msg.SentAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, rows.Err()
}

func (p *Postgres) CreateChatMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO chat_messages (id, sender_id, sender_name, message)
		VALUES ($1, $2, $3, $4)
		RETURNING sent_at
	`, msg.ID, msg.SenderID, msg.SenderName, msg.Message)
	if err := row.Scan(&msg.SentAt); err != nil {
		return model.ChatMessage{}, err
	}
	return msg, nil
}

// Events

func (p *Postgres) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, title, COALESCE(description, ''), event_date, COALESCE(location, ''), created_by, created_at
		FROM events ORDER BY event_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var events []model.Event
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Location, &ev.CreatedBy, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (p *Postgres) CreateEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO events (id, title, description, event_date, location, created_by)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), $6)
		RETURNING created_at
	`, ev.ID, ev.Title, ev.Description, ev.Date, ev.Location, ev.CreatedBy)
	if err := row.Scan(&ev.CreatedAt); err != nil {
		return model.Event{}, err
	}
	return ev, nil
}

// Laundry

func (p *Postgres) ListLaundry(ctx context.Context, studentID string) ([]model.LaundryRequest, error) {
	query := `
		SELECT id, student_id, clothes_count, status, requested_at
		FROM laundry_requests`
	args := []any{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY requested_at DESC`
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reqs []model.LaundryRequest
	for rows.Next() {
		var lr model.LaundryRequest
		if err := rows.Scan(&lr.ID, &lr.StudentID, &lr.ClothesCount, &lr.Status, &lr.Date); err != nil {
			return nil, err
		}
		reqs = append(reqs, lr)
	}
	return reqs, rows.Err()
}

func (p *Postgres) CreateLaundry(ctx context.Context, lr model.LaundryRequest) (model.LaundryRequest, error) {
	if lr.ID == "" {
		lr.ID = uuid.NewString()
	}
	if lr.Status == "" {
		lr.Status = model.LaundryPending
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO laundry_requests (id, student_id, clothes_count, status)
		VALUES ($1, $2, $3, $4)
		RETURNING requested_at
	`, lr.ID, lr.StudentID, lr.ClothesCount, lr.Status)
	if err := row.Scan(&lr.Date); err != nil {
		return model.LaundryRequest{}, err
	}
	return lr, nil
}

func (p *Postgres) UpdateLaundryStatus(ctx context.Context, id, status string) (model.LaundryRequest, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE laundry_requests SET status = $2
		WHERE id = $1
		RETURNING id, student_id, clothes_count, status, requested_at
	`, id, status)
	var lr model.LaundryRequest
	if err := row.Scan(&lr.ID, &lr.StudentID, &lr.ClothesCount, &lr.Status, &lr.Date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LaundryRequest{}, ErrNotFound
		}
		return model.LaundryRequest{}, err
	}
	return lr, nil
}

// Maintenance

func (p *Postgres) ListMaintenance(ctx context.Context, studentID string) ([]model.MaintenanceRequest, error) {
	query := `
		SELECT id, student_id, category, description, room_number, status, reported_at
		FROM maintenance_requests`
	args := []any{}
	if studentID != "" {
		query += ` WHERE student_id = $1`
		args = append(args, studentID)
	}
	query += ` ORDER BY reported_at DESC`
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reqs []model.MaintenanceRequest
	for rows.Next() {
		var mr model.MaintenanceRequest
		if err := rows.Scan(&mr.ID, &mr.StudentID, &mr.Category, &mr.Description, &mr.RoomNumber, &mr.Status, &mr.DateReported); err != nil {
			return nil, err
		}
		reqs = append(reqs, mr)
	}
	return reqs, rows.Err()
}

func (p *Postgres) CreateMaintenance(ctx context.Context, mr model.MaintenanceRequest) (model.MaintenanceRequest, error) {
	if mr.ID == "" {
		mr.ID = uuid.NewString()
	}
	if mr.Status == "" {
		mr.Status = model.MaintenancePending
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO maintenance_requests (id, student_id, category, description, room_number, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING reported_at
	`, mr.ID, mr.StudentID, mr.Category, mr.Description, mr.RoomNumber, mr.Status)
	if err := row.Scan(&mr.DateReported); err != nil {
		return model.MaintenanceRequest{}, err
	}
	return mr, nil
}

func (p *Postgres) UpdateMaintenanceStatus(ctx context.Context, id, status string) (model.MaintenanceRequest, error) {
	row := p.db.QueryRowContext(ctx, `
		UPDATE maintenance_requests SET status = $2
		WHERE id = $1
		RETURNING id, student_id, category, description, room_number, status, reported_at
	`, id, status)
	var mr model.MaintenanceRequest
	if err := row.Scan(&mr.ID, &mr.StudentID, &mr.Category, &mr.Description, &mr.RoomNumber, &mr.Status, &mr.DateReported); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MaintenanceRequest{}, ErrNotFound
		}
		return model.MaintenanceRequest{}, err
	}
	return mr, nil
}

// Feedback

func (p *Postgres) ListFeedback(ctx context.Context) ([]model.Feedback, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, student_id, rating, message, created_at
		FROM feedback ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []model.Feedback
	for rows.Next() {
		var fb model.Feedback
		if err := rows.Scan(&fb.ID, &fb.StudentID, &fb.Rating, &fb.Message, &fb.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, fb)
	}
	return entries, rows.Err()
}

func (p *Postgres) CreateFeedback(ctx context.Context, fb model.Feedback) (model.Feedback, error) {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO feedback (id, student_id, rating, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, fb.ID, fb.StudentID, fb.Rating, fb.Message)
	if err := row.Scan(&fb.CreatedAt); err != nil {
		return model.Feedback{}, err
	}
	return fb, nil
}

// Food menu

func (p *Postgres) ListFoodMenu(ctx context.Context) ([]model.FoodMenuItem, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT day, breakfast, lunch, dinner
		FROM food_menu
		ORDER BY array_position(ARRAY['monday','tuesday','wednesday','thursday','friday','saturday','sunday'], lower(day))
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var menu []model.FoodMenuItem
	for rows.Next() {
		var item model.FoodMenuItem
		if err := rows.Scan(&item.Day, &item.Breakfast, &item.Lunch, &item.Dinner); err != nil {
			return nil, err
		}
		menu = append(menu, item)
	}
	return menu, rows.Err()
}

func (p *Postgres) UpsertFoodMenu(ctx context.Context, item model.FoodMenuItem) (model.FoodMenuItem, error) {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO food_menu (day, breakfast, lunch, dinner)
		VALUES (lower($1), $2, $3, $4)
		ON CONFLICT (day) DO UPDATE
		SET breakfast = EXCLUDED.breakfast, lunch = EXCLUDED.lunch, dinner = EXCLUDED.dinner
	`, item.Day, item.Breakfast, item.Lunch, item.Dinner)
	if err != nil {
		return model.FoodMenuItem{}, err
	}
	return item, nil
}

// Attendance

func (p *Postgres) InsertAttendance(ctx context.Context, rec model.AttendanceRecord) (model.AttendanceRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO attendance_records (id, student_id, day, method)
		VALUES ($1, $2, $3, $4)
		RETURNING marked_at
	`, rec.ID, rec.StudentID, rec.Date, rec.Method)
	if err := row.Scan(&rec.MarkedAt); err != nil {
		return model.AttendanceRecord{}, err
	}
	return rec, nil
}

func (p *Postgres) GetAttendance(ctx context.Context, studentID, date string) (*model.AttendanceRecord, error) {
	row := p.db.QueryRowContext(ctx, `
		SELECT id, student_id, day, method, marked_at
		FROM attendance_records WHERE student_id = $1 AND day = $2
	`, studentID, date)
	var rec model.AttendanceRecord
	if err := row.Scan(&rec.ID, &rec.StudentID, &rec.Date, &rec.Method, &rec.MarkedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (p *Postgres) ListAttendance(ctx context.Context, studentID, date string, limit, offset int) ([]model.AttendanceRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT id, student_id, day, method, marked_at FROM attendance_records`
	args := []any{}
	clauses := []string{}
	if studentID != "" {
		args = append(args, studentID)
		clauses = append(clauses, "student_id = $"+strconv.Itoa(len(args)))
	}
	if date != "" {
		args = append(args, date)
		clauses = append(clauses, "day = $"+strconv.Itoa(len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY day DESC LIMIT $" + strconv.Itoa(len(args)+1) + " OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.Date, &rec.Method, &rec.MarkedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
