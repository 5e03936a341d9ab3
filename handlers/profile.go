package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"streambook/middleware"
	"streambook/models"
	"streambook/services/user"
	"streambook/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler exposes the settings page: profile fields, password,
// avatar and cover images.
type ProfileHandler struct {
	Users user.UserService
}

func NewProfileHandler(users user.UserService) *ProfileHandler {
	return &ProfileHandler{Users: users}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	u, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "profile not found", "")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	u, err := h.Users.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	var input struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Users.ChangePassword(c.Request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		if err == user.ErrInvalidCredentials {
			utils.JSONError(c, http.StatusUnauthorized, "current password is incorrect", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to change password", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// UploadImage handles avatar and cover uploads; :kind is "avatar" or "cover".
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	kind := c.Param("kind")
	if kind != "avatar" && kind != "cover" {
		utils.JSONError(c, http.StatusBadRequest, "unknown image kind", kind)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missing image file", err.Error())
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s%s", uuid.New().String(), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to stage upload", err.Error())
		return
	}
	defer os.Remove(tmpPath)

	u, err := h.Users.UploadProfileImage(c.Request.Context(), userID, tmpPath, kind)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to upload image", err.Error())
		return
	}
	c.JSON(http.StatusOK, u)
}
