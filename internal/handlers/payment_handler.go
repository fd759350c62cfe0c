package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	paymentdomain "github.com/BruksfildServices01/studio-booking/internal/domain/payment"
	"github.com/BruksfildServices01/studio-booking/internal/dto"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
	ucPayment "github.com/BruksfildServices01/studio-booking/internal/usecase/payment"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	ledger *ucPayment.Ledger
	list   *ucPayment.ListPayments
	stats  *ucPayment.PaymentStats
	loc    *time.Location
}

func NewPaymentHandler(
	ledger *ucPayment.Ledger,
	list *ucPayment.ListPayments,
	stats *ucPayment.PaymentStats,
	loc *time.Location,
) *PaymentHandler {
	return &PaymentHandler{
		ledger: ledger,
		list:   list,
		stats:  stats,
		loc:    loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RecordPaymentRequest struct {
	BookingID     uuid.UUID       `json:"bookingId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	PaymentType   string          `json:"paymentType"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transactionId" binding:"max=120"`
	Reference     string          `json:"reference" binding:"max=120"`
	Notes         string          `json:"notes"`
	PaymentDate   *time.Time      `json:"paymentDate"`
}

type UpdatePaymentRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	PaymentMethod *string          `json:"paymentMethod"`
	PaymentType   *string          `json:"paymentType"`
	Status        *string          `json:"status"`
	TransactionID *string          `json:"transactionId" binding:"omitempty,max=120"`
	Reference     *string          `json:"reference" binding:"omitempty,max=120"`
	Notes         *string          `json:"notes"`
	PaymentDate   *time.Time       `json:"paymentDate"`
}

type ledgerResponse struct {
	Payment *dto.PaymentDTO   `json:"payment,omitempty"`
	Booking dto.SettlementDTO `json:"booking"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	bookingID, ok := optionalUUIDQuery(c, "bookingId")
	if !ok {
		return
	}

	f := paymentdomain.ListFilter{
		BookingID: bookingID,
		Method:    c.Query("paymentMethod"),
		Status:    c.Query("status"),
		Page:      page,
		Limit:     limit,
	}
	if s := c.Query("startDate"); s != "" {
		from, err := time.ParseInLocation(timezone.DateLayout, s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "startDate must be YYYY-MM-DD")
			return
		}
		f.From = &from
	}
	if s := c.Query("endDate"); s != "" {
		to, err := time.ParseInLocation(timezone.DateLayout, s, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "endDate must be YYYY-MM-DD")
			return
		}
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}

	payments, total, err := h.list.Execute(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.NewPaymentDTOs(payments), total, page, limit)
}

func (h *PaymentHandler) ForBooking(c *gin.Context) {
	id, ok := uuidParam(c, "bookingId")
	if !ok {
		return
	}

	payments, err := h.list.ForBooking(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.NewPaymentDTOs(payments))
}

func (h *PaymentHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewPaymentStatsDTO(stats))
}

// ======================================================
// LEDGER
// ======================================================

func (h *PaymentHandler) Create(c *gin.Context) {
	var req RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, b, err := h.ledger.Record(c.Request.Context(), ucPayment.RecordPaymentInput{
		BookingID:     req.BookingID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentType:   req.PaymentType,
		Status:        req.Status,
		TransactionID: req.TransactionID,
		Reference:     req.Reference,
		Notes:         req.Notes,
		PaymentDate:   req.PaymentDate,
		ProcessedBy:   middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := dto.NewPaymentDTO(p)
	httpresp.Created(c, ledgerResponse{Payment: &out, Booking: dto.NewSettlementDTO(b)})
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	p, b, err := h.ledger.Update(c.Request.Context(), ucPayment.UpdatePaymentInput{
		PaymentID:     id,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentType:   req.PaymentType,
		Status:        req.Status,
		TransactionID: req.TransactionID,
		Reference:     req.Reference,
		Notes:         req.Notes,
		PaymentDate:   req.PaymentDate,
		ActorID:       middleware.UserID(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := dto.NewPaymentDTO(p)
	httpresp.OK(c, ledgerResponse{Payment: &out, Booking: dto.NewSettlementDTO(b)})
}

func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	b, err := h.ledger.Delete(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ledgerResponse{Booking: dto.NewSettlementDTO(b)})
}
