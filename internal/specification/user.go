package specification

import (
	"strings"
	"time"

	"appointment-booking-server/internal/models"
)

// UserParams carries the caller-supplied filters for listing users.
type UserParams struct {
	PaginationParams
	NameSearch string `form:"nameSearch"`
}

// NewUsersSpecification builds the user listing specification: a
// case-insensitive substring match on the username, always ordered
// ascending by username, with the standard paging window. Row-level role
// filtering does not apply here; the admin-or-employee gate runs at the
// handler boundary before this specification is built.
func NewUsersSpecification(params UserParams) *Specification[models.User] {
	spec := &Specification[models.User]{
		Criteria: UsersCriteria(params.NameSearch),
	}

	spec.ApplyPaging(params.PageSize()*(params.PageIndex()-1), params.PageSize())

	spec.OrderBy(func(a, b models.User) bool {
		return a.UserName < b.UserName
	})

	return spec
}

// UsersCriteria matches users whose username contains the search term,
// ignoring case. An empty term matches everyone.
func UsersCriteria(nameSearch string) func(models.User) bool {
	search := strings.ToLower(nameSearch)
	return func(u models.User) bool {
		return search == "" || strings.Contains(strings.ToLower(u.UserName), search)
	}
}

// UserByEmail matches the single user holding the given email.
func UserByEmail(email string) *Specification[models.User] {
	return &Specification[models.User]{
		Criteria: func(u models.User) bool { return u.Email == email },
	}
}

// ActiveRefreshToken matches a stored refresh token that is still usable:
// same token string, same user, not revoked, not expired.
func ActiveRefreshToken(token, userID string) *Specification[models.RefreshToken] {
	now := time.Now()
	return &Specification[models.RefreshToken]{
		Criteria: func(rt models.RefreshToken) bool {
			return rt.Token == token && rt.UserID == userID && rt.Active(now)
		},
	}
}

// RefreshTokenByValue matches a stored, unrevoked refresh token regardless
// of owner or expiry. Used by logout, where an expired token is still
// worth revoking.
func RefreshTokenByValue(token string) *Specification[models.RefreshToken] {
	return &Specification[models.RefreshToken]{
		Criteria: func(rt models.RefreshToken) bool {
			return rt.Token == token && !rt.IsRevoked
		},
	}
}
