// Package handlers contains the HTTP handlers. Authorization gates run
// inside the handlers, in a fixed order per endpoint: resolve the
// requester, then check existence and privilege in the documented sequence
// for that operation.
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"appointment-booking-server/internal/middleware"
	"appointment-booking-server/internal/models"
	"appointment-booking-server/internal/repository"
	"appointment-booking-server/internal/specification"
	"appointment-booking-server/internal/utils"
)

// currentUser resolves the requesting user's row from the email carried in
// the validated token. An unresolvable identity is a 404, matching the
// behaviour of every gated endpoint. Returns false after writing the
// response when resolution fails.
func currentUser(c *gin.Context, uow repository.UnitOfWork) (*models.User, bool) {
	email, exists := middleware.GetUserEmailFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}

	user, err := uow.Users().GetWithSpec(c.Request.Context(), specification.UserByEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}
	return user, true
}
