package attendance

import (
	"context"
	"errors"
	"time"

	"hostel/internal/model"
	"hostel/internal/qr"
	"hostel/internal/store"
)

// Service errors surfaced to handlers.
var (
	ErrAlreadyMarked   = errors.New("attendance already marked for today")
	ErrStudentMismatch = errors.New("code was issued for a different student")
	ErrWrongDay        = errors.New("code is not valid for today")
	ErrUnknownStudent  = errors.New("unknown student")
)

// Service coordinates QR issuance and attendance marking.
type Service struct {
	store store.Store
	now   func() time.Time
}

// NewService creates a service backed by a store.
func NewService(st store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// GenerateCode builds the encoded payload and scannable PNG for a student
// and date. Only existing students get codes.
func (s *Service) GenerateCode(ctx context.Context, studentID, date, issuedBy string) (string, []byte, error) {
	student, err := s.store.GetUserByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, ErrUnknownStudent
		}
		return "", nil, err
	}
	if student.Role != model.RoleStudent {
		return "", nil, ErrUnknownStudent
	}
	if date == "" {
		date = s.now().UTC().Format(qr.DateLayout)
	}
	payload := qr.Payload{StudentID: studentID, Date: date, IssuedBy: issuedBy}
	encoded, err := qr.Encode(payload)
	if err != nil {
		return "", nil, err
	}
	png, err := qr.PNG(payload, 256)
	if err != nil {
		return "", nil, err
	}
	return encoded, png, nil
}

// Mark redeems a scanned code for the calling student. The scanned payload
// is validated here: it must name the caller and today's date, and a
// student can only be marked present once per day.
func (s *Service) Mark(ctx context.Context, callerID, encoded string) (model.AttendanceRecord, error) {
	payload, err := qr.Decode(encoded)
	if err != nil {
		return model.AttendanceRecord{}, err
	}
	if payload.StudentID != callerID {
		return model.AttendanceRecord{}, ErrStudentMismatch
	}
	today := s.now().UTC().Format(qr.DateLayout)
	if payload.Date != today {
		return model.AttendanceRecord{}, ErrWrongDay
	}
	if existing, err := s.store.GetAttendance(ctx, callerID, today); err != nil {
		return model.AttendanceRecord{}, err
	} else if existing != nil {
		return model.AttendanceRecord{}, ErrAlreadyMarked
	}
	return s.store.InsertAttendance(ctx, model.AttendanceRecord{
		StudentID: callerID,
		Date:      today,
		Method:    "qr",
		MarkedAt:  s.now().UTC(),
	})
}

// Summary holds a student's records plus their attendance percentage.
type Summary struct {
	Records    []model.AttendanceRecord `json:"records"`
	Percentage float64                  `json:"attendancePercentage"`
}

// StudentSummary returns all records for a student and the percentage of
// calendar days marked present since the earliest record.
func (s *Service) StudentSummary(ctx context.Context, studentID string) (Summary, error) {
	records, err := s.store.ListAttendance(ctx, studentID, "", 0, 0)
	if err != nil {
		return Summary{}, err
	}
	if len(records) == 0 {
		return Summary{Records: []model.AttendanceRecord{}}, nil
	}

	earliest := records[0].Date
	for _, rec := range records {
		if rec.Date < earliest {
			earliest = rec.Date
		}
	}
	first, err := time.Parse(qr.DateLayout, earliest)
	if err != nil {
		return Summary{Records: records}, nil
	}
	days := int(s.now().UTC().Sub(first).Hours()/24) + 1
	if days < len(records) {
		days = len(records)
	}
	pct := float64(len(records)) / float64(days) * 100
	return Summary{Records: records, Percentage: pct}, nil
}
