package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"appointment-booking-server/internal/config"
	"appointment-booking-server/internal/models"
	"appointment-booking-server/internal/repository"
	"appointment-booking-server/internal/specification"
	"appointment-booking-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Store repository.Store
	Cfg   *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(store repository.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Store: store, Cfg: cfg}
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken  string               `json:"accessToken"`
	RefreshToken string               `json:"refreshToken"`
	User         models.UserSanitized `json:"user"`
}

// Login handles user login. A failed lookup and a wrong password produce
// the same 401 so the response does not reveal which emails exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	uow := h.Store.NewUnitOfWork()

	user, err := uow.Users().GetWithSpec(c.Request.Context(), specification.UserByEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Unauthorized(c, "Invalid email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshTokenString, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate tokens: "+err.Error())
		return
	}

	refreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	uow.RefreshTokens().Add(&refreshToken)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.InternalServerError(c, "Failed to store refresh token")
		return
	}

	h.setRefreshCookie(c, refreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		User:         user.Sanitize(),
	})
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response body for successful token refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken rotates the refresh token: the presented token is revoked
// and a new pair is issued.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	// Prefer the HTTP-only cookie, fall back to the request body
	presented, err := c.Cookie("refresh_token")
	if err != nil || presented == "" {
		var req RefreshTokenRequest
		if !utils.BindAndValidate(c, &req) {
			return
		}
		presented = req.RefreshToken
	}

	claims, err := utils.ValidateToken(presented, h.Cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid refresh token: "+err.Error())
		return
	}

	uow := h.Store.NewUnitOfWork()

	storedToken, err := uow.RefreshTokens().GetWithSpec(c.Request.Context(),
		specification.ActiveRefreshToken(presented, claims.UserID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.Unauthorized(c, "Refresh token not found, expired, or revoked")
		} else {
			utils.InternalServerError(c, "Database error checking refresh token: "+err.Error())
		}
		return
	}

	user, err := uow.Users().GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "User associated with token no longer exists")
		return
	}

	newAccessToken, newRefreshTokenString, err := utils.GenerateTokens(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate new tokens: "+err.Error())
		return
	}

	storedToken.IsRevoked = true
	uow.RefreshTokens().Update(storedToken)

	newRefreshToken := models.RefreshToken{
		UserID:    user.ID,
		Token:     newRefreshTokenString,
		ExpiresAt: time.Now().Add(time.Duration(h.Cfg.JWTRefreshExpirationHours) * time.Hour),
		IsRevoked: false,
	}
	uow.RefreshTokens().Add(&newRefreshToken)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	h.setRefreshCookie(c, newRefreshTokenString, h.Cfg.JWTRefreshExpirationHours*60*60)

	utils.Success(c, RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshTokenString,
	})
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Logout revokes the presented refresh token and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	uow := h.Store.NewUnitOfWork()

	storedToken, err := uow.RefreshTokens().GetWithSpec(c.Request.Context(),
		specification.RefreshTokenByValue(req.RefreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Already invalid, which is acceptable for logout
			h.setRefreshCookie(c, "", -1)
			utils.Success(c, nil)
		} else {
			utils.InternalServerError(c, "Database error during logout: "+err.Error())
		}
		return
	}

	storedToken.IsRevoked = true
	storedToken.ExpiresAt = time.Now()
	uow.RefreshTokens().Update(storedToken)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.InternalServerError(c, "Failed to revoke refresh token")
		return
	}

	h.setRefreshCookie(c, "", -1)

	utils.Success(c, nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, value string, maxAge int) {
	c.SetCookie(
		"refresh_token",
		value,
		maxAge,
		"/",
		"",
		h.Cfg.Environment != "development",
		true,
	)
}
