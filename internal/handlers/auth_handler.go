package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/config"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/infra/repository"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/validators"
)

var errEmailTaken = httperr.Conflict("email_already_registered", "a user with this email already exists")

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: audit}
}

// --------- Requests ---------

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,max=60"`
	LastName  string `json:"lastName" binding:"max=60"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"omitempty,oneof=admin staff"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=60"`
	LastName  *string `json:"lastName" binding:"omitempty,max=60"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// --------- Responses ---------

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		LastLogin: u.LastLogin,
	}
}

// --------- Handlers ---------

// Register creates the first account as admin without authentication. Every
// later account must be created by an admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	var users int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	role := middleware.RoleAdmin
	if users > 0 {
		if middleware.UserID(c) == nil {
			httperr.Unauthorized(c, "authentication_required", "only an admin can create users")
			return
		}
		if !middleware.IsAdmin(c) {
			httperr.Forbidden(c, "forbidden", "only an admin can create users")
			return
		}
		if req.Role != "" {
			role = req.Role
		}
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if h.config.CheckEmailDomain && !validators.EmailDomainResolves(ctx, email) {
		httperr.BadRequest(c, "invalid_email_domain", "the email domain does not accept mail")
		return
	}

	var taken int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&taken).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	if taken > 0 {
		httperr.Respond(c, errEmailTaken)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "could not store the password")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	}
	if err := h.db.WithContext(ctx).Create(&user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			err = errEmailTaken
		}
		httperr.Respond(c, err)
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue a token")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserID(c),
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"email": user.Email, "role": user.Role},
	})

	httpresp.Created(c, gin.H{
		"user":  newUserResponse(&user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
			return
		}
		httperr.Respond(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}
	if !user.IsActive {
		httperr.Unauthorized(c, "user_inactive", "this account is disabled")
		return
	}

	now := time.Now()
	if err := h.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	user.LastLogin = &now

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue a token")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  newUserResponse(&user),
		"token": token,
	})
}

// SetupStatus tells the first-run wizard whether an admin exists yet.
func (h *AuthHandler) SetupStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var users int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Count(&users).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	cfg, err := repository.NewConfigGormRepository(h.db).Get(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"hasUsers":       users > 0,
		"setupCompleted": cfg.SetupCompleted,
	})
}

// UpdateProfile changes the caller's name and email. Omitted fields are kept.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	updates := map[string]any{}
	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
		updates["first_name"] = user.FirstName
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
		updates["last_name"] = user.LastName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			var taken int64
			if err := h.db.WithContext(ctx).Model(&models.User{}).
				Where("email = ? AND id <> ?", email, user.ID).
				Count(&taken).Error; err != nil {
				httperr.Respond(c, err)
				return
			}
			if taken > 0 {
				httperr.Respond(c, errEmailTaken)
				return
			}
			user.Email = email
			updates["email"] = email
		}
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				err = errEmailTaken
			}
			httperr.Respond(c, err)
			return
		}

		fields := make([]string, 0, len(updates))
		for k := range updates {
			fields = append(fields, k)
		}
		h.audit.Dispatch(audit.Event{
			UserID:   &user.ID,
			Action:   "profile_updated",
			Entity:   "user",
			EntityID: &user.ID,
			Metadata: map[string]any{"fields": fields},
		})
	}

	httpresp.OK(c, gin.H{"user": newUserResponse(user)})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	user, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		httperr.BadRequest(c, "invalid_current_password", "current password is incorrect")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "could not store the password")
		return
	}
	if err := h.db.WithContext(c.Request.Context()).
		Model(user).
		Update("password_hash", string(hashed)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_changed",
		Entity:   "user",
		EntityID: &user.ID,
	})
	httpresp.OK(c, gin.H{"message": "password updated"})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": user.Role,
		"exp":  now.Add(h.config.JWTTTL).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
