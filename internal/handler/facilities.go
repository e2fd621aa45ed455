package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel/internal/auth"
	"hostel/internal/model"
	"hostel/internal/store"
)

// Events

func (h *Handler) handleListEvents(c *gin.Context) {
	events, err := h.store.ListEvents(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load events")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"events": events})
}

func (h *Handler) handleCreateEvent(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Date        string `json:"date" binding:"required"`
		Location    string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "title and date are required")
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		fail(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	claims := auth.ClaimsFrom(c)
	event, err := h.store.CreateEvent(c.Request.Context(), model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		CreatedBy:   claims.Name,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create event")
		return
	}
	ok(c, http.StatusCreated, "Event created", gin.H{"event": event})
}

// Laundry

func (h *Handler) handleListLaundry(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	studentID := ""
	if claims.Role != model.RoleAdmin {
		studentID = claims.Subject
	}
	requests, err := h.store.ListLaundry(c.Request.Context(), studentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load laundry requests")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"requests": requests})
}

func (h *Handler) handleCreateLaundry(c *gin.Context) {
	var req struct {
		ClothesCount int `json:"clothesCount" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "clothesCount must be a positive number")
		return
	}
	claims := auth.ClaimsFrom(c)
	lr, err := h.store.CreateLaundry(c.Request.Context(), model.LaundryRequest{
		StudentID:    claims.Subject,
		ClothesCount: req.ClothesCount,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to submit laundry request")
		return
	}
	ok(c, http.StatusCreated, "Laundry request submitted", gin.H{"request": lr})
}

func (h *Handler) handleLaundryStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=pending in-progress delivered"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "status must be pending, in-progress or delivered")
		return
	}
	lr, err := h.store.UpdateLaundryStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "laundry request not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update laundry request")
		return
	}
	ok(c, http.StatusOK, "Laundry request updated", gin.H{"request": lr})
}

// Maintenance

func (h *Handler) handleListMaintenance(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	studentID := ""
	if claims.Role != model.RoleAdmin {
		studentID = claims.Subject
	}
	requests, err := h.store.ListMaintenance(c.Request.Context(), studentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load maintenance requests")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"requests": requests})
}

func (h *Handler) handleCreateMaintenance(c *gin.Context) {
	var req struct {
		Category    string `json:"category" binding:"required"`
		Description string `json:"description" binding:"required"`
		RoomNumber  string `json:"roomNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "category, description and roomNumber are required")
		return
	}
	claims := auth.ClaimsFrom(c)
	mr, err := h.store.CreateMaintenance(c.Request.Context(), model.MaintenanceRequest{
		StudentID:   claims.Subject,
		Category:    req.Category,
		Description: req.Description,
		RoomNumber:  req.RoomNumber,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to submit maintenance request")
		return
	}
	ok(c, http.StatusCreated, "Maintenance request submitted", gin.H{"request": mr})
}

func (h *Handler) handleMaintenanceStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=pending in-progress resolved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "status must be pending, in-progress or resolved")
		return
	}
	mr, err := h.store.UpdateMaintenanceStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "maintenance request not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update maintenance request")
		return
	}
	ok(c, http.StatusOK, "Maintenance request updated", gin.H{"request": mr})
}

// Feedback

func (h *Handler) handleListFeedback(c *gin.Context) {
	entries, err := h.store.ListFeedback(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load feedback")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"feedback": entries})
}

func (h *Handler) handleCreateFeedback(c *gin.Context) {
	var req struct {
		Rating  int    `json:"rating" binding:"required,min=1,max=5"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "rating (1-5) and message are required")
		return
	}
	claims := auth.ClaimsFrom(c)
	fb, err := h.store.CreateFeedback(c.Request.Context(), model.Feedback{
		StudentID: claims.Subject,
		Rating:    req.Rating,
		Message:   req.Message,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to submit feedback")
		return
	}
	ok(c, http.StatusCreated, "Feedback submitted", gin.H{"feedback": fb})
}

// Food menu

func (h *Handler) handleFoodMenu(c *gin.Context) {
	menu, err := h.store.ListFoodMenu(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load menu")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"menu": menu})
}

func (h *Handler) handleUpsertFoodMenu(c *gin.Context) {
	var req struct {
		Day       string `json:"day" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
		Breakfast string `json:"breakfast" binding:"required"`
		Lunch     string `json:"lunch" binding:"required"`
		Dinner    string `json:"dinner" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "day (a weekday name), breakfast, lunch and dinner are required")
		return
	}
	item, err := h.store.UpsertFoodMenu(c.Request.Context(), model.FoodMenuItem{
		Day:       req.Day,
		Breakfast: req.Breakfast,
		Lunch:     req.Lunch,
		Dinner:    req.Dinner,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to save menu")
		return
	}
	ok(c, http.StatusOK, "Menu saved", gin.H{"item": item})
}

// Reports

func (h *Handler) handleReport(c *gin.Context) {
	ctx := c.Request.Context()
	switch c.Param("type") {
	case "attendance":
		recs, err := h.store.ListAttendance(ctx, "", "", 1000, 0)
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to build report")
			return
		}
		byDay := map[string]int{}
		for _, rec := range recs {
			byDay[rec.Date]++
		}
		ok(c, http.StatusOK, "", gin.H{"total": len(recs), "byDay": byDay})
	case "payments":
		fees, err := h.store.ListFees(ctx, "")
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to build report")
			return
		}
		var collected, pending float64
		for _, f := range fees {
			if f.Status == model.FeePaid {
				collected += f.Amount
			} else {
				pending += f.Amount
			}
		}
		ok(c, http.StatusOK, "", gin.H{"total": len(fees), "collected": collected, "pending": pending})
	case "complaints":
		complaints, err := h.store.ListComplaints(ctx, "")
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to build report")
			return
		}
		byStatus := map[string]int{}
		for _, cm := range complaints {
			byStatus[cm.Status]++
		}
		ok(c, http.StatusOK, "", gin.H{"total": len(complaints), "byStatus": byStatus})
	default:
		fail(c, http.StatusBadRequest, "report type must be attendance, payments or complaints")
	}
}
