package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hostel/internal/attendance"
	"hostel/internal/auth"
	"hostel/internal/model"
	"hostel/internal/queue"
)

func (h *Handler) handleGenerateQR(c *gin.Context) {
	var req struct {
		StudentID string `json:"studentId" binding:"required"`
		Date      string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "studentId required")
		return
	}

	claims := auth.ClaimsFrom(c)
	encoded, png, err := h.att.GenerateCode(c.Request.Context(), req.StudentID, req.Date, claims.Name)
	if err != nil {
		if errors.Is(err, attendance.ErrUnknownStudent) {
			fail(c, http.StatusNotFound, "student not found")
			return
		}
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	ok(c, http.StatusOK, "QR generated", gin.H{
		"qrCode": encoded,
		"image":  "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	})
}

func (h *Handler) handleMarkAttendance(c *gin.Context) {
	var req struct {
		QRCode string `json:"qrCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "qrCode required")
		return
	}

	claims := auth.ClaimsFrom(c)
	rec, err := h.att.Mark(c.Request.Context(), claims.Subject, req.QRCode)
	if err != nil {
		// Business rejections stay 4xx outside 401/403: those two codes
		// make clients treat the response as an auth failure and drop
		// their session.
		switch {
		case errors.Is(err, attendance.ErrAlreadyMarked):
			fail(c, http.StatusConflict, err.Error())
		case errors.Is(err, attendance.ErrStudentMismatch), errors.Is(err, attendance.ErrWrongDay):
			fail(c, http.StatusUnprocessableEntity, err.Error())
		default:
			fail(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	if h.queue != nil {
		body, _ := json.Marshal(gin.H{"studentId": rec.StudentID, "date": rec.Date})
		if err := h.queue.Publish(c.Request.Context(), queue.Message{Type: "checkin", Body: body}); err != nil {
			log.Printf("queue publish failed: %v", err)
		}
	}

	ok(c, http.StatusOK, "Attendance marked!", gin.H{"record": rec})
}

func (h *Handler) handleStudentAttendance(c *gin.Context) {
	studentID := c.Param("id")
	claims := auth.ClaimsFrom(c)
	if claims.Role != model.RoleAdmin && claims.Subject != studentID {
		fail(c, http.StatusForbidden, "forbidden")
		return
	}

	summary, err := h.att.StudentSummary(c.Request.Context(), studentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load attendance")
		return
	}
	ok(c, http.StatusOK, "", summary)
}

func (h *Handler) handleListAttendance(c *gin.Context) {
	limit, offset := 50, 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	records, err := h.store.ListAttendance(c.Request.Context(), c.Query("studentId"), c.Query("date"), limit, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load attendance")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"records": records})
}
