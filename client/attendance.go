package client

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"
	"sync"
	"time"
)

// ErrScanDebounced is returned when a scan arrives within the debounce
// window of the previous submission and is dropped locally.
var ErrScanDebounced = errors.New("scan ignored: previous submission still settling")

// AttendanceRecord is a day a student was marked present.
type AttendanceRecord struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	Method    string `json:"method"`
}

// AttendanceSummary is a student's records plus their percentage.
type AttendanceSummary struct {
	Records    []AttendanceRecord `json:"records"`
	Percentage float64            `json:"attendancePercentage"`
}

// QRCode is a generated attendance code: the encoded payload plus its
// scannable PNG rendering.
type QRCode struct {
	Code  string
	Image []byte
}

// SaveImage writes the PNG rendering to path.
func (q QRCode) SaveImage(path string) error {
	if len(q.Image) == 0 {
		return errors.New("no image to save")
	}
	return os.WriteFile(path, q.Image, 0o644)
}

// AttendanceFlow submits scanned codes, debouncing repeated scans of the
// same code before the camera view changes.
type AttendanceFlow struct {
	api    *API
	window time.Duration

	mu            sync.Mutex
	lastSubmitted time.Time
}

// NewAttendanceFlow creates a flow with the given debounce window;
// window <= 0 defaults to 2 seconds.
func NewAttendanceFlow(api *API, window time.Duration) *AttendanceFlow {
	if window <= 0 {
		window = 2 * time.Second
	}
	return &AttendanceFlow{api: api, window: window}
}

// Scan submits a scanned code for check-in. The scanned payload itself is
// forwarded so the server can validate its content. A scan inside the
// debounce window returns ErrScanDebounced without a request.
func (f *AttendanceFlow) Scan(ctx context.Context, scanned string) (AttendanceRecord, error) {
	f.mu.Lock()
	if time.Since(f.lastSubmitted) < f.window {
		f.mu.Unlock()
		return AttendanceRecord{}, ErrScanDebounced
	}
	f.lastSubmitted = time.Now()
	f.mu.Unlock()

	var resp struct {
		Data struct {
			Record AttendanceRecord `json:"record"`
		} `json:"data"`
	}
	if err := f.api.Post(ctx, "/attendance/mark", map[string]string{"qrCode": scanned}, &resp); err != nil {
		return AttendanceRecord{}, err
	}
	return resp.Data.Record, nil
}

// GenerateAttendanceQR asks the server for a code identifying a student
// and date (admin only). date may be empty for today.
func (a *API) GenerateAttendanceQR(ctx context.Context, studentID, date string) (QRCode, error) {
	var resp struct {
		Data struct {
			QRCode string `json:"qrCode"`
			Image  string `json:"image"`
		} `json:"data"`
	}
	err := a.Post(ctx, "/attendance/qr", map[string]string{
		"studentId": studentID,
		"date":      date,
	}, &resp)
	if err != nil {
		return QRCode{}, err
	}

	code := QRCode{Code: resp.Data.QRCode}
	if img := resp.Data.Image; img != "" {
		if idx := strings.Index(img, ","); idx >= 0 {
			img = img[idx+1:]
		}
		if decoded, err := base64.StdEncoding.DecodeString(img); err == nil {
			code.Image = decoded
		}
	}
	return code, nil
}

// StudentAttendance fetches a student's records and percentage.
func (a *API) StudentAttendance(ctx context.Context, studentID string) (AttendanceSummary, error) {
	var resp struct {
		Data AttendanceSummary `json:"data"`
	}
	if err := a.Get(ctx, "/attendance/student/"+studentID, &resp); err != nil {
		return AttendanceSummary{}, err
	}
	return resp.Data, nil
}
