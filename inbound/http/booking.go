package http

import (
	"travel-ties/common"
	"travel-ties/common/constant"
	"travel-ties/common/coupon"
	"travel-ties/common/errs"
	"travel-ties/common/otel"
	"travel-ties/model"
	"travel-ties/outbound/sqlgen"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log/slog"
	"net/http"
	"time"
)

type BookingHttp struct {
	Querier   *sqlgen.Queries
	Cache     *redis.Client
	Publisher jetstream.Publisher
	Validate  *validator.Validate
	Coupons   coupon.Table

	TimeNow func() time.Time

	cancellationLead time.Duration
}

func RegisterBookingHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	querier *sqlgen.Queries,
	cache *redis.Client,
	publisher jetstream.Publisher,
	validate *validator.Validate,
	coupons coupon.Table,
) *BookingHttp {
	in := &BookingHttp{
		Querier:   querier,
		Cache:     cache,
		Publisher: publisher,
		Validate:  validate,
		Coupons:   coupons,
		TimeNow:   time.Now,

		cancellationLead: cfg.GetDuration("booking.cancellation_lead"),
	}

	mux.HandleFunc("POST /api/bookings", in.create)
	mux.HandleFunc("GET /api/bookings", in.list)
	mux.HandleFunc("GET /api/bookings/cart", in.cart)
	mux.HandleFunc("POST /api/bookings/coupon", in.applyCoupon)
	mux.HandleFunc("GET /api/bookings/{id}", in.details)
	mux.HandleFunc("DELETE /api/bookings/{id}", in.cancel)

	return in
}

func (in BookingHttp) create(w http.ResponseWriter, r *http.Request) {
	userId, err := userIdFromRequest(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	var req model.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.create")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "create ticket receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	tour, err := in.Querier.FindTourById(ctx, req.TourId)
	if err == pgx.ErrNoRows {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Tour not found"})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find tour", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	tourDate, _ := time.Parse(time.DateOnly, req.TourDate)
	if tourDate.Before(tour.StartDate.Time) || tourDate.After(tour.EndDate.Time) {
		writeErrorResponse(w, &errs.HttpError{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Data: map[string]any{
				"TourDate": "outside tour date range",
			},
		})
		return
	}

	// Capacity check is advisory: the counter lags bookings by one queue
	// hop, so oversell by a concurrent burst is still possible.
	bookedSeats, err := in.Cache.Get(ctx, fmt.Sprintf(constant.EachTourBookedSeatsKey, tour.ID)).Int64()
	if err != nil && err != redis.Nil {
		slog.ErrorContext(ctx, "failed to get booked seats", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if bookedSeats+int64(req.Seats) > int64(tour.Capacity) {
		slog.DebugContext(ctx, "tour sold out", traceIdAttr)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Tour sold out"})
		return
	}

	pricePerSeat := tour.PricePerSeat - tour.PricePerSeat*int64(tour.DiscountPercent)/100
	totalPrice := pricePerSeat * int64(req.Seats)
	deadline := tourDate.Add(-in.cancellationLead)

	ticketId := ulid.Make().String()
	err = in.Querier.InsertTicket(ctx, sqlgen.InsertTicketParams{
		ID:                   ticketId,
		TourID:               tour.ID,
		UserID:               userId,
		OwnerName:            req.OwnerName,
		Email:                req.Email,
		Phone:                req.Phone,
		TourDate:             pgtype.Date{Time: tourDate, Valid: true},
		Seats:                req.Seats,
		TotalPrice:           totalPrice,
		CancellationDeadline: pgtype.Timestamp{Time: deadline, Valid: true},
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectAdjustTourSeats, model.AdjustTourSeatsEventMessage{
		TourId: tour.ID,
		Seats:  req.Seats,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish adjust tour seats message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	slog.InfoContext(ctx, "insert ticket success", traceIdAttr, slog.Any(constant.LogFieldResponse, ticketId))

	writeJSONResponse(w, http.StatusOK, model.TicketResponse{
		Id:                   ticketId,
		TourId:               tour.ID,
		TourName:             tour.Name,
		Destination:          tour.Destination,
		TourDate:             req.TourDate,
		Seats:                req.Seats,
		TotalPrice:           totalPrice,
		IsPaid:               false,
		CancellationDeadline: deadline.Format(time.RFC3339),
	})
}

func (in BookingHttp) cart(w http.ResponseWriter, r *http.Request) {
	userId, err := userIdFromRequest(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.cart")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	tickets, err := in.Querier.FindUnpaidTicketsByUser(ctx, userId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find unpaid tickets", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp := model.CartResponse{Tickets: make([]model.TicketResponse, 0, len(tickets))}
	prices := make([]int64, 0, len(tickets))
	for _, t := range tickets {
		resp.Tickets = append(resp.Tickets, newTicketResponse(t.ID, t.TourID, t.TourName, t.Destination, t.TourDate, t.Seats, t.TotalPrice, t.PaymentOrderCode, t.IsPaid, t.CancellationDeadline))
		prices = append(prices, t.TotalPrice)
	}

	percent := 0
	if code := r.URL.Query().Get("coupon"); code != "" {
		var ok bool
		percent, ok = in.Coupons.Lookup(code)
		if ok {
			resp.CouponCode = code
		} else {
			// an unknown coupon never fails the cart, checkout proceeds at 0%
			resp.CouponWarning = "Coupon code is not valid"
		}
	}

	resp.Breakdown = coupon.Calculate(prices, percent)

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in BookingHttp) applyCoupon(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyCouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	percent, ok := in.Coupons.Lookup(req.Code)
	if !ok {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Coupon code is not valid"})
		return
	}

	writeJSONResponse(w, http.StatusOK, model.ApplyCouponResponse{
		Code:            req.Code,
		DiscountPercent: percent,
	})
}

func (in BookingHttp) list(w http.ResponseWriter, r *http.Request) {
	userId, err := userIdFromRequest(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.list")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	tickets, err := in.Querier.FindTicketsByUser(ctx, userId)
	if err != nil {
		slog.ErrorContext(ctx, "failed to find tickets", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	resp := make([]model.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, newTicketResponse(t.ID, t.TourID, t.TourName, t.Destination, t.TourDate, t.Seats, t.TotalPrice, t.PaymentOrderCode, t.IsPaid, t.CancellationDeadline))
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in BookingHttp) details(w http.ResponseWriter, r *http.Request) {
	userId, err := userIdFromRequest(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.details")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	ticket, err := in.Querier.FindTicketByIdAndUser(ctx, sqlgen.FindTicketByIdAndUserParams{
		ID:     r.PathValue("id"),
		UserID: userId,
	})
	if err == pgx.ErrNoRows {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Ticket not found"})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, newTicketResponse(ticket.ID, ticket.TourID, ticket.TourName, ticket.Destination, ticket.TourDate, ticket.Seats, ticket.TotalPrice, ticket.PaymentOrderCode, ticket.IsPaid, ticket.CancellationDeadline))
}

func (in BookingHttp) cancel(w http.ResponseWriter, r *http.Request) {
	userId, err := userIdFromRequest(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "BookingHttp.cancel")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	ticketId := r.PathValue("id")

	slog.InfoContext(ctx, "cancel ticket receive request", slog.String("ticket_id", ticketId), traceIdAttr)

	ticket, err := in.Querier.FindTicketByIdAndUser(ctx, sqlgen.FindTicketByIdAndUserParams{
		ID:     ticketId,
		UserID: userId,
	})
	if err == pgx.ErrNoRows {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Ticket not found"})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to find ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if ticket.IsPaid {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Ticket is already paid"})
		return
	}

	// A ticket with an order code attached may have a payment in flight;
	// deleting it here could race a concurrent settlement.
	if ticket.PaymentOrderCode.Valid {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Ticket has a pending payment"})
		return
	}

	cmd, err := in.Querier.DeleteUnpaidTicket(ctx, sqlgen.DeleteUnpaidTicketParams{
		ID:     ticketId,
		UserID: userId,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete ticket", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if cmd.RowsAffected() == 0 {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusConflict, Message: "Ticket is no longer cancellable"})
		return
	}

	err = common.PublishMessage(ctx, in.Publisher, constant.SubjectAdjustTourSeats, model.AdjustTourSeatsEventMessage{
		TourId: ticket.TourID,
		Seats:  -ticket.Seats,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to publish adjust tour seats message", traceIdAttr, slog.Any(constant.LogFieldErr, err))
	}

	slog.InfoContext(ctx, "cancel ticket success", slog.String("ticket_id", ticketId), traceIdAttr)

	writeJSONResponse(w, http.StatusOK, nil)
}

func newTicketResponse(id, tourId, tourName, destination string, tourDate pgtype.Date, seats int32, totalPrice int64, orderCode pgtype.Int8, isPaid bool, deadline pgtype.Timestamp) model.TicketResponse {
	var resp model.TicketResponse
	resp.Id = id
	resp.TourId = tourId
	resp.TourName = tourName
	resp.Destination = destination
	resp.TourDate = tourDate.Time.Format(time.DateOnly)
	resp.Seats = seats
	resp.TotalPrice = totalPrice
	resp.IsPaid = isPaid
	resp.CancellationDeadline = deadline.Time.Format(time.RFC3339)

	if orderCode.Valid {
		code := orderCode.Int64
		resp.PaymentOrderCode = &code
	}

	return resp
}
