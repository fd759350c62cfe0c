package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}
	httpresp.OK(c, gin.H{"user": newUserResponse(user)})
}

// currentUser loads the authenticated user. Tokens of deleted users are rejected.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	id := middleware.UserID(c)
	if id == nil {
		httperr.Unauthorized(c, "user_not_in_context", "authentication required")
		return nil, false
	}

	var user models.User
	if err := db.WithContext(c.Request.Context()).First(&user, "id = ?", *id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "user_not_found", "user no longer exists")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &user, true
}
