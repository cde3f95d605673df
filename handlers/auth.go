package handlers

import (
	"net/http"

	"food-ordering-api/apperror"
	"food-ordering-api/middleware"
	"food-ordering-api/services"

	"github.com/gin-gonic/gin"
)

// Signup creates a customer or restaurant account
func (h *Handler) Signup(c *gin.Context) {
	var req services.SignupInput
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.Accounts.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    user,
	})
}

// Login authenticates a customer or restaurant owner and returns a JWT
func (h *Handler) Login(c *gin.Context) {
	var req services.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Accounts.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       sess.Principal,
	})
}

// AdminLogin authenticates against the admins table
func (h *Handler) AdminLogin(c *gin.Context) {
	var req services.LoginInput
	if !bindJSON(c, &req) {
		return
	}
	sess, err := h.Accounts.AdminLogin(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"admin":      sess.Principal,
	})
}

// Logout revokes the presented token
func (h *Handler) Logout(c *gin.Context) {
	tok := middleware.GetToken(c)
	if tok == "" {
		respondError(c, apperror.Auth("authorization header required (Bearer <token>)"))
		return
	}
	if err := h.Accounts.Logout(c.Request.Context(), tok); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
