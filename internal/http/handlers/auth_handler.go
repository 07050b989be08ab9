package handlers

import (
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/config"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/http/middleware"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/services"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/utils"
)

// MediaStore stores uploaded files and returns their public URL.
type MediaStore interface {
	Upload(ctx context.Context, data []byte, filename, contentType string) (string, error)
}

type AuthHandler struct {
	auth   *services.AuthService
	media  MediaStore
	cfg    *config.Config
	logger *slog.Logger
}

func NewAuthHandler(auth *services.AuthService, media MediaStore, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, media: media, cfg: cfg, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// Register accepts a multipart form so an optional profile photo can ride
// along with the account fields.
func (h *AuthHandler) Register(c *gin.Context) {
	in := services.RegisterInput{
		Fullname:    c.PostForm("fullname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Password:    c.PostForm("password"),
		Role:        c.PostForm("role"),
	}

	if file, err := c.FormFile("file"); err == nil {
		url, err := h.uploadFile(c.Request.Context(), file)
		if err != nil {
			h.logger.Error("profile photo upload failed", "error", err)
			utils.RespondError(c, err)
			return
		}
		in.ProfilePhotoURL = url
	}

	if err := h.auth.Register(c.Request.Context(), in); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondCreated(c, "Account created. Please verify your email before login.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ValidationError("Something is missing"))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.SessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome back " + user.Fullname,
		"user":    user.Public(),
	})
}

// Logout instructs the client to drop the session cookie. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	utils.RespondOK(c, "Logged out successfully")
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	if err := h.auth.VerifyEmail(c.Request.Context(), c.Param("token")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Email verified successfully. You can now login.")
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ValidationError("Something is missing"))
		return
	}

	if err := h.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Reset password link sent to your email")
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.ValidationError("Something is missing"))
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondOK(c, "Password reset successful")
}

// setSessionCookie writes the session cookie with the attributes the frontend
// relies on: HTTP-only, secure, SameSite=None.
func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", h.cfg.CookieSecure, true)
}

func (h *AuthHandler) uploadFile(ctx context.Context, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	return h.media.Upload(ctx, data, file.Filename, file.Header.Get("Content-Type"))
}
