package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hostel/internal/auth"
	"hostel/internal/model"
	"hostel/internal/store"
)

func (h *Handler) handleRegister(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "name, email and a password of at least 6 characters are required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "registration failed")
		return
	}

	user, err := h.store.CreateUser(c.Request.Context(), model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         model.RoleStudent,
		Phone:        req.Phone,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			fail(c, http.StatusConflict, "email already registered")
			return
		}
		fail(c, http.StatusInternalServerError, "registration failed")
		return
	}

	ok(c, http.StatusCreated, "Registration successful", gin.H{"user": user})
}

func (h *Handler) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := auth.Issue(user.ID, user.Role, user.Name, h.cfg.JWTIssuer, h.cfg.JWTSigningKey, h.cfg.AccessTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "token issue failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "login successful",
		"token":   token.Value,
		"user":    user,
	})
}

func (h *Handler) handleProfile(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	user, err := h.store.GetUserByID(c.Request.Context(), claims.Subject)
	if err != nil {
		fail(c, http.StatusUnauthorized, "account no longer exists")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (h *Handler) handleUpdateProfile(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	claims := auth.ClaimsFrom(c)
	user, err := h.store.UpdateUserProfile(c.Request.Context(), claims.Subject, req.Name, req.Phone)
	if err != nil {
		fail(c, http.StatusInternalServerError, "profile update failed")
		return
	}
	ok(c, http.StatusOK, "Profile updated", gin.H{"user": user})
}

func (h *Handler) handleLogout(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := h.sessions.Revoke(c.Request.Context(), auth.TokenFrom(c), ttl); err != nil {
		log.Printf("token revoke failed: %v", err)
		fail(c, http.StatusInternalServerError, "logout failed")
		return
	}
	ok(c, http.StatusOK, "logged out", nil)
}

func (h *Handler) handleForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "email required")
		return
	}

	// Response is identical whether or not the account exists.
	resp := gin.H{}
	user, err := h.store.GetUserByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err == nil {
		token := uuid.NewString()
		if err := h.sessions.PutResetToken(c.Request.Context(), token, user.ID, h.cfg.ResetTokenTTL); err != nil {
			log.Printf("reset token store failed: %v", err)
		} else if h.cfg.Env == "dev" {
			// No mailer in dev; hand the token back so the flow is usable.
			resp["resetToken"] = token
		}
	}
	ok(c, http.StatusOK, "If the account exists, a reset link has been sent", resp)
}

func (h *Handler) handleResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "token and a new password of at least 6 characters are required")
		return
	}

	userID, err := h.sessions.ConsumeResetToken(c.Request.Context(), req.Token)
	if err != nil {
		fail(c, http.StatusBadRequest, "reset link is invalid or expired")
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		fail(c, http.StatusInternalServerError, "password reset failed")
		return
	}
	if err := h.store.UpdateUserPassword(c.Request.Context(), userID, hash); err != nil {
		fail(c, http.StatusInternalServerError, "password reset failed")
		return
	}
	ok(c, http.StatusOK, "Password reset successfully", nil)
}
