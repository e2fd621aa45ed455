package qr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// DateLayout is the calendar-day format used across attendance.
const DateLayout = "2006-01-02"

// Payload identifies a student and the day an attendance code is valid for.
// It is serialized reversibly, not cryptographically; the server re-checks
// identity and date on redemption.
type Payload struct {
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	IssuedBy  string `json:"issuedBy,omitempty"`
}

// Encode serializes a payload as base64(JSON), the format scanners hand back.
func Encode(p Payload) (string, error) {
	if p.StudentID == "" {
		return "", errors.New("student id required")
	}
	if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return "", errors.New("date must be YYYY-MM-DD")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode. It tolerates payloads whose date carries a time
// component, normalizing it to the calendar day.
func Decode(encoded string) (Payload, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, errors.New("malformed code")
	}
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Payload{}, errors.New("malformed code")
	}
	if p.StudentID == "" || p.Date == "" {
		return Payload{}, errors.New("incomplete code")
	}
	if t, err := time.Parse(time.RFC3339, p.Date); err == nil {
		p.Date = t.Format(DateLayout)
	} else if _, err := time.Parse(DateLayout, p.Date); err != nil {
		return Payload{}, errors.New("invalid date in code")
	}
	return p, nil
}

// PNG renders the encoded payload as a scannable PNG image.
func PNG(p Payload, size int) ([]byte, error) {
	encoded, err := Encode(p)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(encoded, qrcode.Medium, size)
}
