package httpserver

import (
	"net/http"

	usersvc "sunnyside-shop/internal/service/user"

	"github.com/gin-gonic/gin"
)

func (h *handlers) signup(c *gin.Context) {
	var in usersvc.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	u, err := h.deps.UserSvc.Signup(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}
	sess, err := h.deps.UserSvc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":    sess.Token,
		"username": sess.Username,
		"role":     sess.Role,
	})
}

func (h *handlers) logout(c *gin.Context) {
	sess := currentSession(c)
	h.deps.UserSvc.Logout(sess.Token)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
