package specification

import (
	"strings"
	"time"

	"appointment-booking-server/internal/models"
)

// AppointmentParams carries the caller-supplied filters for listing
// appointments. Dates are compared on their calendar day only.
type AppointmentParams struct {
	PaginationParams
	Sort         string    `form:"sort"`
	StartingDate time.Time `form:"startingDate" time_format:"2006-01-02"`
	EndingDate   time.Time `form:"endingDate" time_format:"2006-01-02"`
	NameSearch   string    `form:"nameSearch"`
}

// NewAppointmentsSpecification builds the listing specification for the
// given caller. Admins and employees see all users' appointments; everyone
// else only sees rows whose booking email matches their own. Sort tokens
// "dateAsc" and "dateDesc" order by estimated start time; anything else
// falls back to ascending.
func NewAppointmentsSpecification(params AppointmentParams, user *models.User) *Specification[models.Appointment] {
	spec := &Specification[models.Appointment]{
		Criteria: AppointmentsCriteria(params.StartingDate, params.EndingDate, params.NameSearch, user),
	}

	spec.ApplyPaging(params.PageSize()*(params.PageIndex()-1), params.PageSize())

	switch params.Sort {
	case "dateDesc":
		spec.OrderByDescending(byEstimatedStart)
	default:
		spec.OrderBy(byEstimatedStart)
	}

	return spec
}

// NewAppointmentsForCountSpecification wraps an already-built criteria with
// no ordering or paging, so the total row count stays accurate while the
// main query is paged.
func NewAppointmentsForCountSpecification(criteria func(models.Appointment) bool) *Specification[models.Appointment] {
	return &Specification[models.Appointment]{Criteria: criteria}
}

// AppointmentsCriteria translates the filter parameters plus the caller's
// role into a single predicate.
//
// When both dates are unset, no name filter is given and the caller is an
// admin, the criteria is nil: every row is considered. Otherwise an unset
// date bound defaults to today on that side, so a half-specified range
// collapses toward today. Callers must be aware of that default.
func AppointmentsCriteria(startingDate, endingDate time.Time, nameSearch string, user *models.User) func(models.Appointment) bool {
	if startingDate.IsZero() && endingDate.IsZero() && nameSearch == "" && user.IsAdmin {
		return nil
	}

	if startingDate.IsZero() {
		startingDate = time.Now()
	}
	if endingDate.IsZero() {
		endingDate = time.Now()
	}
	start := dateOnly(startingDate)
	end := dateOnly(endingDate)
	search := strings.ToLower(nameSearch)

	inRange := func(a models.Appointment) bool {
		d := dateOnly(a.Date)
		return !d.Before(start) && !d.After(end)
	}
	matchesName := func(a models.Appointment) bool {
		return search == "" || strings.Contains(strings.ToLower(a.AppUserName), search)
	}

	if user.IsPrivileged() {
		return func(a models.Appointment) bool {
			return inRange(a) && matchesName(a)
		}
	}
	return func(a models.Appointment) bool {
		return a.AppUserEmail == user.Email && inRange(a) && matchesName(a)
	}
}

func byEstimatedStart(a, b models.Appointment) bool {
	return a.EstimatedStartTime.Before(b.EstimatedStartTime)
}

// dateOnly reduces t to its calendar day, pinned to UTC so values parsed in
// different zones (query params parse to UTC, rows carry the server zone)
// still compare by day rather than by instant.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
