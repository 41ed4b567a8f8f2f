package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/pkg/resp"
	"github.com/spywithcode/ReStro/services"
	"github.com/spywithcode/ReStro/utils"

	"github.com/gin-gonic/gin"
)

const (
	authCookie      = "auth-token"
	cookieMaxAge    = 7 * 24 * 3600 // 7 days
	maxProfileImage = 5 << 20       // 5MB
	profileImageDir = "uploads/profiles"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{Service: service}
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookie, token, cookieMaxAge, "/", "", false, true)
}

func userJSON(u *entity.User) gin.H {
	return gin.H{
		"id": u.ID, "email": u.Email, "name": u.Name, "phone": u.Phone,
		"role": u.Role, "restaurantId": u.RestaurantID, "imageUrl": u.ImageURL,
		"createdAt": u.CreatedAt,
	}
}

// POST /auth/register
func (a *AuthController) Register(c *gin.Context) {
	var req services.RegisterIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := a.Service.Register(c.Request.Context(), &req)
	if err != nil {
		resp.Error(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Registration successful",
		"user":         userJSON(user),
		"restaurantId": user.RestaurantID,
		"token":        token,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
func (a *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, utils.BindingViolations(err))
		return
	}

	token, user, err := a.Service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    userJSON(user),
	})
}

// POST /auth/logout (ต้อง login)
func (a *AuthController) Logout(c *gin.Context) {
	c.SetCookie(authCookie, "", -1, "/", "", false, true)
	resp.OKMessage(c, "Logged out successfully", nil)
}

// GET /auth/me (ต้อง login)
func (a *AuthController) Me(c *gin.Context) {
	user, err := a.Service.GetProfile(c.Request.Context(), utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, userJSON(user))
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /auth/forgot-password — ตอบเหมือนกันทุกกรณี กัน enumeration
func (a *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, utils.BindingViolations(err))
		return
	}

	if err := a.Service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, services.ForgotPasswordMessage, nil)
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /auth/reset-password
func (a *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, utils.BindingViolations(err))
		return
	}

	token, err := a.Service.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}

	setAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password has been reset successfully",
		"token":   token,
	})
}

// PUT /auth/update-profile (multipart; image ≤5MB, image/* เท่านั้น)
func (a *AuthController) UpdateProfile(c *gin.Context) {
	userID := utils.CurrentUserID(c)
	updates := map[string]any{}

	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		updates["name"] = name
	}
	if phone := strings.TrimSpace(c.PostForm("phone")); phone != "" {
		updates["phone"] = phone
	}

	if file, err := c.FormFile("image"); err == nil {
		if file.Size > maxProfileImage {
			resp.BadRequest(c, "Image cannot exceed 5MB")
			return
		}
		contentType := file.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			resp.BadRequest(c, "Only image uploads are allowed")
			return
		}
		filename := fmt.Sprintf("%d_%d%s", userID, time.Now().UnixNano(), filepath.Ext(file.Filename))
		dst := filepath.Join(profileImageDir, filename)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			resp.ServerError(c, err)
			return
		}
		updates["image_url"] = "/" + dst
	}

	if len(updates) == 0 {
		resp.BadRequest(c, "Nothing to update")
		return
	}

	user, err := a.Service.UpdateProfile(c.Request.Context(), userID, updates)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OKMessage(c, "Profile updated successfully", userJSON(user))
}
