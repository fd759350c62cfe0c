package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	bookingdomain "github.com/BruksfildServices01/studio-booking/internal/domain/booking"
	"github.com/BruksfildServices01/studio-booking/internal/dto"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	ucBooking "github.com/BruksfildServices01/studio-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/studio-booking/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

type BookingUseCases struct {
	Create       *ucBooking.CreateBooking
	Update       *ucBooking.UpdateBooking
	ChangeStatus *ucBooking.ChangeStatus
	Availability *ucBooking.CheckAvailability
	Quote        *ucBooking.QuotePrice
	Slots        *ucBooking.ListSlots
	Get          *ucBooking.GetBooking
	Lookup       *ucBooking.LookupBooking
	List         *ucBooking.ListBookings
	Calendar     *ucBooking.ListCalendar
	Dashboard    *ucBooking.DashboardStats
}

type BookingHandler struct {
	uc               BookingUseCases
	checkEmailDomain bool
}

func NewBookingHandler(uc BookingUseCases, checkEmailDomain bool) *BookingHandler {
	return &BookingHandler{
		uc:               uc,
		checkEmailDomain: checkEmailDomain,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"clientName" binding:"required,max=120"`
	ClientEmail string `json:"clientEmail" binding:"required,email"`
	ClientPhone string `json:"clientPhone" binding:"required,max=30"`

	SessionDate string           `json:"sessionDate" binding:"required,date"`
	StartTime   string           `json:"startTime" binding:"required,clock"`
	EndTime     string           `json:"endTime" binding:"omitempty,clock"`
	Duration    *decimal.Decimal `json:"duration"`

	ServiceTypeID      *uuid.UUID `json:"serviceTypeId"`
	ContentType        string     `json:"contentType" binding:"max=30"`
	ProjectDescription string     `json:"projectDescription"`
	ClientNotes        string     `json:"clientNotes"`
	PaymentMethod      string     `json:"paymentMethod" binding:"omitempty,oneof=cash transfer card azul other"`

	Equipment []bookingdomain.EquipmentSelection `json:"equipment" binding:"omitempty,dive"`
}

type CheckAvailabilityRequest struct {
	SessionDate      string     `json:"sessionDate" binding:"required,date"`
	StartTime        string     `json:"startTime" binding:"required,clock"`
	EndTime          string     `json:"endTime" binding:"omitempty,clock"`
	ServiceTypeID    *uuid.UUID `json:"serviceTypeId"`
	ExcludeBookingID *uuid.UUID `json:"excludeBookingId"`
}

type QuoteRequest struct {
	ServiceTypeID *uuid.UUID                         `json:"serviceTypeId"`
	Duration      *decimal.Decimal                   `json:"duration"`
	StartTime     string                             `json:"startTime" binding:"omitempty,clock"`
	EndTime       string                             `json:"endTime" binding:"omitempty,clock"`
	Equipment     []bookingdomain.EquipmentSelection `json:"equipment" binding:"omitempty,dive"`
}

type UpdateBookingRequest struct {
	SessionDate *string `json:"sessionDate" binding:"omitempty,date"`
	StartTime   *string `json:"startTime" binding:"omitempty,clock"`
	EndTime     *string `json:"endTime" binding:"omitempty,clock"`

	Status             *string `json:"status"`
	CancellationReason string  `json:"cancellationReason"`

	ClientName         *string `json:"clientName" binding:"omitempty,min=1,max=120"`
	ClientEmail        *string `json:"clientEmail" binding:"omitempty,email"`
	ClientPhone        *string `json:"clientPhone" binding:"omitempty,min=1,max=30"`
	ContentType        *string `json:"contentType" binding:"omitempty,max=30"`
	ProjectDescription *string `json:"projectDescription"`
	PaymentMethod      *string `json:"paymentMethod" binding:"omitempty,oneof=cash transfer card azul other"`
	AdminNotes         *string `json:"adminNotes"`

	Equipment *[]bookingdomain.EquipmentSelection `json:"equipment" binding:"omitempty,dive"`
}

type StatusChangeRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	if h.checkEmailDomain && !validators.EmailDomainResolves(c.Request.Context(), req.ClientEmail) {
		httperr.BadRequest(c, "invalid_email_domain", "the email domain does not accept mail")
		return
	}

	// Staff creating a booking for a client skip the reservation-flow rules.
	admin := middleware.IsAdmin(c)
	b, err := h.uc.Create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		ClientPhone:        req.ClientPhone,
		SessionDate:        req.SessionDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Duration:           req.Duration,
		ServiceTypeID:      req.ServiceTypeID,
		ContentType:        req.ContentType,
		ProjectDescription: req.ProjectDescription,
		ClientNotes:        req.ClientNotes,
		PaymentMethod:      req.PaymentMethod,
		Equipment:          req.Equipment,
		Public:             !admin,
		ActorID:            middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if admin {
		httpresp.Created(c, dto.NewBookingDTO(b))
		return
	}
	httpresp.Created(c, dto.NewPublicBookingDTO(b))
}

func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	free, err := h.uc.Availability.Execute(c.Request.Context(), ucBooking.CheckAvailabilityInput{
		SessionDate:      req.SessionDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ServiceTypeID:    req.ServiceTypeID,
		ExcludeBookingID: req.ExcludeBookingID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"available": free})
}

func (h *BookingHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.uc.Quote.Execute(c.Request.Context(), ucBooking.QuoteInput{
		ServiceTypeID: req.ServiceTypeID,
		Duration:      req.Duration,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Equipment:     req.Equipment,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewQuoteDTO(q))
}

func (h *BookingHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date query parameter is required")
		return
	}
	serviceID, ok := optionalUUIDQuery(c, "serviceTypeId")
	if !ok {
		return
	}

	res, err := h.uc.Slots.Execute(c.Request.Context(), date, serviceID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *BookingHandler) Calendar(c *gin.Context) {
	start, end := c.Query("startDate"), c.Query("endDate")
	if start == "" || end == "" {
		httperr.BadRequest(c, "missing_range", "startDate and endDate are required")
		return
	}

	bookings, err := h.uc.Calendar.Execute(c.Request.Context(), start, end)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewCalendarEntries(bookings))
}

func (h *BookingHandler) Lookup(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		httperr.BadRequest(c, "missing_email", "email query parameter is required")
		return
	}

	b, err := h.uc.Lookup.Execute(c.Request.Context(), c.Param("bookingNumber"), email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewPublicBookingDTO(b))
}

// ======================================================
// ADMIN
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	bookings, total, err := h.uc.List.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("paymentStatus"),
		StartDate:     c.Query("startDate"),
		EndDate:       c.Query("endDate"),
		ClientEmail:   c.Query("clientEmail"),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewBookingDTOs(bookings), total, page, limit)
}

func (h *BookingHandler) Dashboard(c *gin.Context) {
	stats, err := h.uc.Dashboard.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewDashboardDTO(stats))
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	b, err := h.uc.Get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(b))
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.uc.Update.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		BookingID:          id,
		SessionDate:        req.SessionDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Status:             req.Status,
		CancellationReason: req.CancellationReason,
		ClientName:         req.ClientName,
		ClientEmail:        req.ClientEmail,
		ClientPhone:        req.ClientPhone,
		ContentType:        req.ContentType,
		ProjectDescription: req.ProjectDescription,
		PaymentMethod:      req.PaymentMethod,
		AdminNotes:         req.AdminNotes,
		Equipment:          req.Equipment,
		ActorID:            middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(b))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, bookingdomain.StatusConfirmed)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, bookingdomain.StatusCancelled)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.changeStatus(c, bookingdomain.StatusCompleted)
}

func (h *BookingHandler) NoShow(c *gin.Context) {
	h.changeStatus(c, bookingdomain.StatusNoShow)
}

func (h *BookingHandler) changeStatus(c *gin.Context, target bookingdomain.Status) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req StatusChangeRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	b, err := h.uc.ChangeStatus.Execute(c.Request.Context(), ucBooking.ChangeStatusInput{
		BookingID:   id,
		Target:      target,
		Reason:      req.Reason,
		CancelledBy: bookingdomain.CancelledByAdmin,
		ActorID:     middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.NewBookingDTO(b))
}
