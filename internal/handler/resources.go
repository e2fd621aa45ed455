package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hostel/internal/auth"
	"hostel/internal/model"
	"hostel/internal/store"
)

// Users

func (h *Handler) handleListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context(), c.Query("role"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"users": users})
}

// Rooms

func (h *Handler) handleListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"rooms": rooms})
}

func (h *Handler) handleCreateRoom(c *gin.Context) {
	var req struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		Capacity   int    `json:"capacity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "roomNumber and a positive capacity are required")
		return
	}
	room, err := h.store.CreateRoom(c.Request.Context(), model.Room{
		RoomNumber: req.RoomNumber,
		Capacity:   req.Capacity,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	ok(c, http.StatusCreated, "Room created", gin.H{"room": room})
}

func (h *Handler) handleUpdateRoom(c *gin.Context) {
	var req struct {
		RoomNumber string `json:"roomNumber" binding:"required"`
		Capacity   int    `json:"capacity" binding:"required,min=1"`
		Occupied   int    `json:"occupied"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Occupied > req.Capacity {
		fail(c, http.StatusBadRequest, "occupied cannot exceed capacity")
		return
	}
	room, err := h.store.UpdateRoom(c.Request.Context(), model.Room{
		ID:         c.Param("id"),
		RoomNumber: req.RoomNumber,
		Capacity:   req.Capacity,
		Occupied:   req.Occupied,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "room not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update room")
		return
	}
	ok(c, http.StatusOK, "Room updated", gin.H{"room": room})
}

// Fees

func (h *Handler) handleListFees(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	studentID := ""
	if claims.Role != model.RoleAdmin {
		studentID = claims.Subject
	}
	fees, err := h.store.ListFees(c.Request.Context(), studentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load fees")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"fees": fees})
}

func (h *Handler) handleCreateFee(c *gin.Context) {
	var req struct {
		StudentID string  `json:"studentId" binding:"required"`
		Amount    float64 `json:"amount" binding:"required,gt=0"`
		DueDate   string  `json:"dueDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "studentId, amount and dueDate are required")
		return
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		fail(c, http.StatusBadRequest, "dueDate must be YYYY-MM-DD")
		return
	}
	fee, err := h.store.CreateFee(c.Request.Context(), model.Fee{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		DueDate:   due,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create fee")
		return
	}
	ok(c, http.StatusCreated, "Fee created", gin.H{"fee": fee})
}

func (h *Handler) handlePayFee(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	id := c.Param("id")

	if claims.Role != model.RoleAdmin {
		// Students may only settle their own fees.
		fees, err := h.store.ListFees(c.Request.Context(), claims.Subject)
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to load fees")
			return
		}
		owned := false
		for _, f := range fees {
			if f.ID == id {
				owned = true
				break
			}
		}
		if !owned {
			fail(c, http.StatusForbidden, "forbidden")
			return
		}
	}

	fee, err := h.store.MarkFeePaid(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "fee not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update fee")
		return
	}
	ok(c, http.StatusOK, "Fee marked paid", gin.H{"fee": fee})
}

// Complaints

func (h *Handler) handleListComplaints(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	studentID := ""
	if claims.Role != model.RoleAdmin {
		studentID = claims.Subject
	}
	complaints, err := h.store.ListComplaints(c.Request.Context(), studentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load complaints")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"complaints": complaints})
}

func (h *Handler) handleCreateComplaint(c *gin.Context) {
	var req struct {
		Category    string `json:"category" binding:"required"`
		Description string `json:"description" binding:"required"`
		Image       string `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "category and description are required")
		return
	}

	imageURL := ""
	if req.Image != "" && h.images != nil {
		result, err := h.images.UploadBase64(req.Image)
		if err != nil {
			log.Printf("complaint image upload failed: %v", err)
		} else {
			imageURL = result.SecureURL
		}
	}

	claims := auth.ClaimsFrom(c)
	complaint, err := h.store.CreateComplaint(c.Request.Context(), model.Complaint{
		StudentID:   claims.Subject,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    imageURL,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to submit complaint")
		return
	}
	ok(c, http.StatusCreated, "Complaint submitted", gin.H{"complaint": complaint})
}

func (h *Handler) handleComplaintStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=open in-progress resolved"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "status must be open, in-progress or resolved")
		return
	}
	complaint, err := h.store.UpdateComplaintStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "complaint not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update complaint")
		return
	}
	ok(c, http.StatusOK, "Complaint updated", gin.H{"complaint": complaint})
}

// Notices

func (h *Handler) handleListNotices(c *gin.Context) {
	notices, err := h.store.ListNotices(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load notices")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"notices": notices})
}

func (h *Handler) handleCreateNotice(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "title and message are required")
		return
	}
	claims := auth.ClaimsFrom(c)
	notice, err := h.store.CreateNotice(c.Request.Context(), model.Notice{
		Title:    req.Title,
		Message:  req.Message,
		PostedBy: claims.Name,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to publish notice")
		return
	}
	ok(c, http.StatusCreated, "Notice published", gin.H{"notice": notice})
}

// Lost and found

func (h *Handler) handleListLostFound(c *gin.Context) {
	items, err := h.store.ListLostFound(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load items")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"items": items})
}

func (h *Handler) handleCreateLostFound(c *gin.Context) {
	var req struct {
		ItemName    string `json:"itemName" binding:"required"`
		Description string `json:"description" binding:"required"`
		Location    string `json:"location"`
		Status      string `json:"status" binding:"omitempty,oneof=lost found"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "itemName and description are required")
		return
	}
	claims := auth.ClaimsFrom(c)
	item, err := h.store.CreateLostFound(c.Request.Context(), model.LostFoundItem{
		ReportedBy:  claims.Subject,
		ItemName:    req.ItemName,
		Description: req.Description,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to add item")
		return
	}
	ok(c, http.StatusCreated, "Item added", gin.H{"item": item})
}

func (h *Handler) handleLostFoundStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=lost found claimed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "status must be lost, found or claimed")
		return
	}
	item, err := h.store.UpdateLostFoundStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "item not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update item")
		return
	}
	ok(c, http.StatusOK, "Item updated", gin.H{"item": item})
}

// Visitors

func (h *Handler) handleListVisitors(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	studentID := ""
	if claims.Role != model.RoleAdmin {
		studentID = claims.Subject
	}
	visitors, err := h.store.ListVisitors(c.Request.Context(), studentID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load visitors")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"visitors": visitors})
}

func (h *Handler) handleCreateVisitor(c *gin.Context) {
	var req struct {
		StudentID string `json:"studentId"`
		Name      string `json:"name" binding:"required"`
		Contact   string `json:"contact" binding:"required"`
		Purpose   string `json:"purpose" binding:"required"`
		Remarks   string `json:"remarks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "name, contact and purpose are required")
		return
	}

	claims := auth.ClaimsFrom(c)
	studentID := claims.Subject
	if claims.Role == model.RoleAdmin && req.StudentID != "" {
		studentID = req.StudentID
	}

	visitor, err := h.store.CreateVisitor(c.Request.Context(), model.Visitor{
		StudentID: studentID,
		Name:      req.Name,
		Contact:   req.Contact,
		Purpose:   req.Purpose,
		Remarks:   req.Remarks,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to add visitor")
		return
	}
	ok(c, http.StatusCreated, "Visitor added", gin.H{"visitor": visitor})
}

func (h *Handler) handleCheckoutVisitor(c *gin.Context) {
	visitor, err := h.store.CheckOutVisitor(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(c, http.StatusNotFound, "visitor not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to check out visitor")
		return
	}
	ok(c, http.StatusOK, "Visitor checked out", gin.H{"visitor": visitor})
}

// Chat

func (h *Handler) handleListChat(c *gin.Context) {
	msgs, err := h.store.ListChatMessages(c.Request.Context(), h.cfg.ChatHistoryLimit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to load messages")
		return
	}
	ok(c, http.StatusOK, "", gin.H{"messages": msgs})
}

func (h *Handler) handleSendChat(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "message required")
		return
	}
	claims := auth.ClaimsFrom(c)
	msg, err := h.store.CreateChatMessage(c.Request.Context(), model.ChatMessage{
		SenderID:   claims.Subject,
		SenderName: claims.Name,
		Message:    req.Message,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to send message")
		return
	}
	ok(c, http.StatusCreated, "", gin.H{"message": msg})
}
