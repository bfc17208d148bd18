package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"appointment-booking-server/internal/models"
	"appointment-booking-server/internal/repository"
	"appointment-booking-server/internal/specification"
	"appointment-booking-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Store repository.Store
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(store repository.Store) *AppointmentHandler {
	return &AppointmentHandler{Store: store}
}

// CreateOrUpdateAppointmentRequest represents the request body for creating
// or fully updating an appointment.
type CreateOrUpdateAppointmentRequest struct {
	Date               time.Time `json:"date" binding:"required"`
	EstimatedStartTime time.Time `json:"estimatedStartTime" binding:"required"`
	EstimatedEndTime   time.Time `json:"estimatedEndTime" binding:"required"`
	Description        string    `json:"description" binding:"required"`
	Price              float64   `json:"price" binding:"required"`
	AppUserName        string    `json:"appUserName" binding:"required"`
	AppUserEmail       string    `json:"appUserEmail" binding:"required,email"`
	IsCancelled        bool      `json:"isCancelled"`
	Done               bool      `json:"done"`
}

func (req *CreateOrUpdateAppointmentRequest) apply(appointment *models.Appointment) {
	appointment.Date = req.Date
	appointment.EstimatedStartTime = req.EstimatedStartTime
	appointment.EstimatedEndTime = req.EstimatedEndTime
	appointment.Description = req.Description
	appointment.Price = req.Price
	appointment.AppUserName = req.AppUserName
	appointment.AppUserEmail = req.AppUserEmail
	appointment.IsCancelled = req.IsCancelled
	appointment.Done = req.Done
}

// GetAppointments handles the paged appointment listing. Admins and
// employees see every user's appointments; everyone else only their own.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	var params specification.AppointmentParams
	if err := c.ShouldBindQuery(&params); err != nil {
		utils.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	spec := specification.NewAppointmentsSpecification(params, user)

	// The count runs against the bare criteria so the reported total stays
	// accurate while the main query is paged.
	countSpec := specification.NewAppointmentsForCountSpecification(spec.Criteria)

	totalItems, err := uow.Appointments().CountWithSpec(c.Request.Context(), countSpec)
	if err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}

	appointments, err := uow.Appointments().ListWithSpec(c.Request.Context(), spec)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	if len(appointments) == 0 {
		utils.NotFound(c, "No appointments found")
		return
	}

	utils.Success(c, utils.Pagination{
		PageIndex: params.PageIndex(),
		PageSize:  params.PageSize(),
		Count:     totalItems,
		Data:      appointments,
	})
}

// GetAppointment handles fetching a single appointment. Accessible by the
// booking user, employees, and admins.
func (h *AppointmentHandler) GetAppointment(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	appointment, err := uow.Appointments().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.IsPrivileged() && appointment.AppUserEmail != user.Email {
		utils.Forbidden(c, "You are not authorized to view this appointment")
		return
	}

	utils.Success(c, appointment)
}

// CreateAppointment handles creating a new appointment on behalf of a
// customer. Only admins and employees may book.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsPrivileged() {
		utils.Forbidden(c, "Only employees and admins can create appointments")
		return
	}

	var req CreateOrUpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	req.apply(&appointment)

	uow.Appointments().Add(&appointment)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to create appointment")
		return
	}

	utils.Created(c, appointment)
}

// UpdateAppointment handles a full edit of an appointment. Only admins and
// employees may edit; the privilege gate runs before the target lookup.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsPrivileged() {
		utils.Forbidden(c, "Only employees and admins can update appointments")
		return
	}

	var req CreateOrUpdateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, err := uow.Appointments().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	req.apply(appointment)

	uow.Appointments().Update(appointment)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to update appointment")
		return
	}

	utils.Success(c, appointment)
}

// CancelAppointment flags an appointment as cancelled. The booking user may
// cancel their own; employees and admins may cancel any. Existence is
// checked before privilege on this endpoint.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	appointment, err := uow.Appointments().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.IsPrivileged() && user.Email != appointment.AppUserEmail {
		utils.Forbidden(c, "You are not authorized to cancel this appointment")
		return
	}

	appointment.IsCancelled = true

	uow.Appointments().Update(appointment)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to cancel appointment")
		return
	}

	utils.Success(c, appointment)
}

// DeleteAppointment removes an appointment entirely. Admin only; the
// privilege gate runs before the target lookup.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	uow := h.Store.NewUnitOfWork()
	user, ok := currentUser(c, uow)
	if !ok {
		return
	}

	if !user.IsAdmin {
		utils.Forbidden(c, "Only admins can delete appointments")
		return
	}

	appointment, err := uow.Appointments().GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	uow.Appointments().Delete(appointment)

	if affected, err := uow.Complete(c.Request.Context()); err != nil || affected <= 0 {
		utils.BadRequest(c, "Failed to delete appointment")
		return
	}

	utils.NoContent(c)
}
