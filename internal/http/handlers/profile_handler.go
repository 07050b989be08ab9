package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/http/middleware"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/services"
	"github.com/student-nirajkumar/Job-potal-for-Fresher/internal/utils"
)

type ProfileHandler struct {
	auth   *services.AuthService
	media  MediaStore
	logger *slog.Logger
}

func NewProfileHandler(auth *services.AuthService, media MediaStore, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{auth: auth, media: media, logger: logger}
}

// Update applies profile changes for the session's user. The optional file is
// stored as the resume.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		utils.RespondError(c, utils.AuthError("User not authenticated"))
		return
	}

	in := services.UpdateProfileInput{
		Fullname:    c.PostForm("fullname"),
		Email:       c.PostForm("email"),
		PhoneNumber: c.PostForm("phoneNumber"),
		Bio:         c.PostForm("bio"),
		Skills:      splitSkills(c.PostForm("skills")),
	}

	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		data, readErr := io.ReadAll(src)
		src.Close()
		if readErr != nil {
			utils.RespondError(c, readErr)
			return
		}

		url, err := h.media.Upload(c.Request.Context(), data, file.Filename, file.Header.Get("Content-Type"))
		if err != nil {
			h.logger.Error("resume upload failed", "error", err)
			utils.RespondError(c, err)
			return
		}
		in.ResumeURL = url
		in.ResumeOriginalName = file.Filename
	}

	user, err := h.auth.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
