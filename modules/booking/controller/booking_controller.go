package controller

import (
	"net/http"

	"space-booking-api/core/config"
	"space-booking-api/core/controller"
	"space-booking-api/core/errors"
	"space-booking-api/core/middleware"
	"space-booking-api/core/params"
	"space-booking-api/modules/booking/dto"
	"space-booking-api/modules/booking/entity"
	"space-booking-api/modules/booking/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingController struct {
	service service.AdmissionServiceInterface
	controller.BaseController
}

func NewBookingController(svc service.AdmissionServiceInterface) *BookingController {
	return &BookingController{
		service:        svc,
		BaseController: controller.NewBaseController(),
	}
}

// SubmitBooking submits a booking request and waits for the decision
// @Summary Submit a booking request
// @Description Enqueues the request through the admission pipeline and waits
// @Description for the accept/reject decision. Returns 202 when the decision
// @Description did not arrive within the wait window; the job keeps running.
// @Tags Booking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SubmitBookingRequest true "Booking request"
// @Success 200 {object} controller.SuccessResponse
// @Success 202 {object} controller.SuccessResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/bookings [post]
func (b *BookingController) SubmitBooking(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return b.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	orgID, _ := middleware.GetOrgID(c)

	req := new(dto.SubmitBookingRequest)
	if err := c.Bind(req); err != nil {
		return b.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	cfg := config.Get()
	result, appErr := b.service.Submit(c.Request().Context(), &entity.BookingRequest{
		SpaceID:      req.SpaceID,
		UserID:       userID,
		UserName:     middleware.GetUserName(c),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Participants: req.Participants,
		Notes:        req.Notes,
		SlotIndex:    req.SlotIndex,
		SlotID:       req.SlotID,
		OrgID:        orgID,
		IsAdmin:      middleware.IsAdmin(c),
	}, cfg.Booking.SubmitTimeout)
	if appErr != nil {
		return b.ErrorResponse(c, appErr)
	}

	switch result.Status {
	case dto.SubmitAccepted:
		return b.SuccessResponse(c, result, "Booking confirmed")
	case dto.SubmitTimedOut:
		return b.AcceptedResponse(c, result, "Booking decision pending")
	default:
		return c.JSON(http.StatusConflict, controller.NewSuccessResponse(http.StatusConflict, result, "Booking rejected"))
	}
}

// ListMyBookings lists the caller's bookings
// @Summary List my bookings
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/bookings [get]
func (b *BookingController) ListMyBookings(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return b.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	queryParams := params.NewQueryParams(c)
	result, err := b.service.ListMyBookings(c.Request().Context(), userID, *queryParams)
	if err != nil {
		return b.InternalServerError(errors.ErrInternalServer, "Failed to list bookings")
	}
	return b.SuccessResponse(c, result, "Bookings retrieved")
}

// GetBooking returns one booking
// @Summary Get a booking
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/bookings/{id} [get]
func (b *BookingController) GetBooking(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return b.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return b.BadRequest(errors.ErrInvalidInput, "Invalid booking id")
	}

	booking, appErr := b.service.GetBooking(c.Request().Context(), id, userID, middleware.IsAdmin(c))
	if appErr != nil {
		return b.ErrorResponse(c, appErr)
	}
	return b.SuccessResponse(c, booking, "Booking retrieved")
}

// CancelBooking cancels a confirmed booking
// @Summary Cancel a booking
// @Description Transitions the booking to CANCELLED under the same per-space
// @Description lock the admission pipeline uses.
// @Tags Booking
// @Security BearerAuth
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} controller.SuccessResponse
// @Router /private/bookings/{id} [delete]
func (b *BookingController) CancelBooking(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return b.Unauthorized(errors.ErrUnauthorized, "Unauthorized")
	}
	orgID, _ := middleware.GetOrgID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return b.BadRequest(errors.ErrInvalidInput, "Invalid booking id")
	}

	cancelled, appErr := b.service.Cancel(c.Request().Context(), id, userID, orgID, middleware.IsAdmin(c))
	if appErr != nil {
		return b.ErrorResponse(c, appErr)
	}
	return b.SuccessResponse(c, cancelled, "Booking cancelled")
}
