package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"appointment-booking-server/internal/config"
	"appointment-booking-server/internal/models"
	"appointment-booking-server/internal/repository"
	"appointment-booking-server/internal/specification"
	"appointment-booking-server/internal/utils"
)

// UserHandler handles user management requests.
type UserHandler struct {
	Store repository.Store
	Cfg   *config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store repository.Store, cfg *config.Config) *UserHandler {
	return &UserHandler{Store: store, Cfg: cfg}
}

// UserResponse pairs a user with a fresh bearer credential. Token is empty
// on endpoints that act on somebody other than the requester.
type UserResponse struct {
	User  models.UserSanitized `json:"user"`
	Token string               `json:"token,omitempty"`
}

// GetUsers handles the paged user listing. Admins and employees only.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var params specification.UserParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsPrivileged() {
		utils.Forbidden(c, "You are not authorized to list users")
		return
	}

	spec := specification.NewUsersSpecification(params)

	users, err := uow.Users().ListWithSpec(c.Request.Context(), spec)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	countSpec := &specification.Specification[models.User]{Criteria: spec.Criteria}
	totalCount, err := uow.Users().CountWithSpec(c.Request.Context(), countSpec)
	if err != nil {
		utils.InternalServerError(c, "Failed to count users: "+err.Error())
		return
	}

	sanitized := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitize()
	}

	utils.Success(c, utils.Pagination{
		PageIndex: params.PageIndex(),
		PageSize:  params.PageSize(),
		Count:     totalCount,
		Data:      sanitized,
	})
}

// GetCurrentUser returns the requesting user together with a fresh token.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	token, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, UserResponse{User: user.Sanitize(), Token: token})
}

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	UserName        string `json:"userName" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=5,max=15"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
	PhoneNumber     string `json:"phoneNumber" binding:"required"`
}

// Register handles public user registration. New users start without any
// role flags.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	uow := h.Store.NewUnitOfWork()

	if _, err := uow.Users().GetWithSpec(c.Request.Context(), specification.UserByEmail(req.Email)); err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		UserName:    req.UserName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	uow.Users().Add(&user)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to register user")
		return
	}

	token, err := utils.GenerateAccessToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Created(c, UserResponse{User: user.Sanitize(), Token: token})
}

// GetUser handles fetching a single user by ID. Admins and employees only.
func (h *UserHandler) GetUser(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsPrivileged() {
		utils.Forbidden(c, "You are not authorized to view other users")
		return
	}

	target, err := uow.Users().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, UserResponse{User: target.Sanitize()})
}

// DeleteUser handles deleting a user by ID. Admin only; the privilege gate
// runs before the target lookup on this endpoint.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsAdmin {
		utils.Forbidden(c, "Only admins can delete users")
		return
	}

	target, err := uow.Users().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	uow.Users().Delete(target)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to delete user")
		return
	}

	utils.NoContent(c)
}

// UpdatePhoneNumberRequest represents the request body for a phone change.
type UpdatePhoneNumberRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// UpdatePhoneNumber lets a user change their own phone number. There is no
// privileged override: the route ID must match the requester.
func (h *UserHandler) UpdatePhoneNumber(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if user.ID != c.Param("id") {
		utils.Forbidden(c, "You can only change your own phone number")
		return
	}

	var req UpdatePhoneNumberRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user.PhoneNumber = req.PhoneNumber

	uow.Users().Update(user)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to update phone number")
		return
	}

	token, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, UserResponse{User: user.Sanitize(), Token: token})
}

// UpdateEmailRequest represents the request body for an email change.
type UpdateEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateEmail lets a user change their own email. The response carries a
// fresh token because the token claims embed the email.
func (h *UserHandler) UpdateEmail(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if user.ID != c.Param("id") {
		utils.Forbidden(c, "You can only change your own email")
		return
	}

	var req UpdateEmailRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user.Email = req.Email

	uow.Users().Update(user)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to update email")
		return
	}

	token, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, UserResponse{User: user.Sanitize(), Token: token})
}

// UpdatePasswordRequest represents the request body for a password change.
type UpdatePasswordRequest struct {
	CurrentPassword    string `json:"currentPassword" binding:"required"`
	NewPassword        string `json:"newPassword" binding:"required,min=5,max=15"`
	ConfirmNewPassword string `json:"confirmNewPassword" binding:"required,eqfield=NewPassword"`
}

// UpdatePassword lets a user change their own password after proving the
// current one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if user.ID != c.Param("id") {
		utils.Forbidden(c, "You can only change your own password")
		return
	}

	var req UpdatePasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !user.CheckPassword(req.CurrentPassword) {
		utils.BadRequest(c, "Current password is incorrect")
		return
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	uow.Users().Update(user)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to update password")
		return
	}

	token, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, UserResponse{User: user.Sanitize(), Token: token})
}

// GrantAdmin grants the admin flag to a user. Admin only. Granting a flag
// the target already holds is rejected.
func (h *UserHandler) GrantAdmin(c *gin.Context) {
	h.setRoleFlag(c, func(target *models.User) bool {
		if target.IsAdmin {
			return false
		}
		target.IsAdmin = true
		return true
	}, "User already has admin permission", "Failed to grant admin permission")
}

// RevokeAdmin removes the admin flag from a user. Admin only. Revoking a
// flag the target lacks is rejected.
func (h *UserHandler) RevokeAdmin(c *gin.Context) {
	h.setRoleFlag(c, func(target *models.User) bool {
		if !target.IsAdmin {
			return false
		}
		target.IsAdmin = false
		return true
	}, "User does not have admin permission", "Failed to revoke admin permission")
}

// GrantEmployee grants the employee flag to a user. Admin only.
func (h *UserHandler) GrantEmployee(c *gin.Context) {
	h.setRoleFlag(c, func(target *models.User) bool {
		if target.IsEmployee {
			return false
		}
		target.IsEmployee = true
		return true
	}, "User already has employee permission", "Failed to grant employee permission")
}

// RevokeEmployee removes the employee flag from a user. Admin only.
func (h *UserHandler) RevokeEmployee(c *gin.Context) {
	h.setRoleFlag(c, func(target *models.User) bool {
		if !target.IsEmployee {
			return false
		}
		target.IsEmployee = false
		return true
	}, "User does not have employee permission", "Failed to revoke employee permission")
}

// setRoleFlag implements the shared role-change sequence: requester 404,
// admin gate 403, target 404, idempotence check 400, then persist.
func (h *UserHandler) setRoleFlag(c *gin.Context, flip func(*models.User) bool, idempotenceDetails, failureDetails string) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsAdmin {
		utils.Forbidden(c, "Only admins can change role permissions")
		return
	}

	target, err := uow.Users().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !flip(target) {
		utils.BadRequest(c, idempotenceDetails)
		return
	}

	uow.Users().Update(target)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, failureDetails)
		return
	}

	utils.Success(c, UserResponse{User: target.Sanitize()})
}
