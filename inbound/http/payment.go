package http

import (
	"travel-ties/common"
	"travel-ties/common/constant"
	"travel-ties/common/errs"
	"travel-ties/common/otel"
	"travel-ties/model"
	"travel-ties/outbound/payos"
	"travel-ties/outbound/sqlgen"
	"context"
	"encoding/json"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/text/message"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

type PaymentHttp struct {
	Querier              *sqlgen.Queries
	Cache                *redis.Client
	Publisher            jetstream.Publisher
	Gateway              payos.Client
	Validate             *validator.Validate
	VndCurrencyFormatter *message.Printer

	TimeNow func() time.Time

	returnUrl string
	cancelUrl string
}

func RegisterPaymentHttp(
	mux *http.ServeMux,
	cfg *viper.Viper,
	querier *sqlgen.Queries,
	cache *redis.Client,
	publisher jetstream.Publisher,
	gateway payos.Client,
	validate *validator.Validate,
	vndCurrencyFormatter *message.Printer,
) *PaymentHttp {
	in := &PaymentHttp{
		Querier:              querier,
		Cache:                cache,
		Publisher:            publisher,
		Gateway:              gateway,
		Validate:             validate,
		VndCurrencyFormatter: vndCurrencyFormatter,
		TimeNow:              time.Now,

		returnUrl: cfg.GetString("payos.return_url"),
		cancelUrl: cfg.GetString("payos.cancel_url"),
	}

	mux.HandleFunc("POST /api/payments/checkout", in.checkout)
	mux.HandleFunc("GET /payment/return", in.callbackReturn)
	mux.HandleFunc("GET /payment/cancel", in.cancelPage)
	mux.HandleFunc("GET /payment/success/{orderCode}", in.success)
	mux.HandleFunc("GET /payment/failed/{orderCode}", in.failed)
	mux.HandleFunc("GET /api/payments/{orderCode}/info", in.info)

	return in
}

// checkout starts a settlement attempt: it resolves the caller's unpaid
// tickets, recomputes the amount server-side, creates a payment link at the
// gateway and attaches the minted order code to the whole batch.
func (in PaymentHttp) checkout(w http.ResponseWriter, r *http.Request) {
	userId, err := userIdFromRequest(r)
	if err != nil {
		writeErrorResponse(w, err)
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid request"})
		return
	}

	if err := in.Validate.Struct(req); err != nil {
		writeErrorResponse(w, err)
		return
	}

	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.checkout")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)
	slog.InfoContext(ctx, "checkout receive request", slog.Any(constant.LogFieldPayload, req), traceIdAttr)

	tickets, err := in.Querier.FindUnpaidTicketsByIdsAndUser(ctx, sqlgen.FindUnpaidTicketsByIdsAndUserParams{
		Column1: req.TicketIds,
		UserID:  userId,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to find tickets", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if len(tickets) == 0 {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "No payable tickets found"})
		return
	}

	// the server-side sum is authoritative, a differing client amount is
	// logged and overridden
	var amount int64
	for _, t := range tickets {
		amount += t.TotalPrice
	}

	if amount != req.Amount {
		slog.WarnContext(ctx, "client amount differs from server computed amount",
			slog.Int64("client_amount", req.Amount),
			slog.Int64("server_amount", amount),
			traceIdAttr,
		)
	}

	orderCode, err := in.mintOrderCode(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mint order code", traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	items := make([]payos.ItemData, 0, len(tickets))
	ticketIds := make([]string, 0, len(tickets))
	for _, t := range tickets {
		name := t.TourName
		if name == "" {
			name = fmt.Sprintf("Ticket-%s", t.ID)
		}

		seats := t.Seats
		if seats < 1 {
			seats = 1
		}

		items = append(items, payos.ItemData{
			Name:     name,
			Quantity: int(seats),
			Price:    (t.TotalPrice + int64(seats)/2) / int64(seats),
		})
		ticketIds = append(ticketIds, t.ID)
	}

	result, err := in.Gateway.CreatePaymentLink(ctx, payos.PaymentData{
		OrderCode:   orderCode,
		Amount:      amount,
		Description: fmt.Sprintf("Order %d", orderCode),
		Items:       items,
		CancelUrl:   in.cancelUrl,
		ReturnUrl:   in.returnUrl,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create payment link",
			slog.Int64("order_code", orderCode),
			slog.Int64("amount", amount),
			slog.Any("ticket_ids", ticketIds),
			slog.Any(constant.LogFieldErr, err),
			traceIdAttr,
		)
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadGateway, Message: "Payment provider unavailable"})
		return
	}

	// one UPDATE tags the whole batch, a retry re-tagging the same tickets
	// is a no-op
	cmd, err := in.Querier.AttachPaymentOrderCode(ctx, sqlgen.AttachPaymentOrderCodeParams{
		PaymentOrderCode: pgtype.Int8{Int64: orderCode, Valid: true},
		Column2:          ticketIds,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to attach order code", slog.Int64("order_code", orderCode), traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	if cmd.RowsAffected() != int64(len(ticketIds)) {
		slog.WarnContext(ctx, "order code attached to fewer tickets than resolved",
			slog.Int64("order_code", orderCode),
			slog.Int64("tagged", cmd.RowsAffected()),
			slog.Int("resolved", len(ticketIds)),
			traceIdAttr,
		)
	}

	slog.InfoContext(ctx, "checkout success", slog.Int64("order_code", orderCode), traceIdAttr)

	writeJSONResponse(w, http.StatusOK, model.CheckoutResponse{
		OrderCode:   orderCode,
		CheckoutUrl: result.CheckoutUrl,
	})
}

// callbackReturn is the browser redirect target after the customer leaves
// the gateway's checkout page. The status query parameter is informational
// only, the paid decision always comes from a fresh gateway query.
func (in PaymentHttp) callbackReturn(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.callbackReturn")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	orderCode, err := strconv.ParseInt(r.URL.Query().Get("orderCode"), 10, 64)
	if err != nil {
		slog.WarnContext(ctx, "return callback without order code", traceIdAttr)
		http.Redirect(w, r, "/payment/failed/0", http.StatusSeeOther)
		return
	}

	slog.InfoContext(ctx, "return callback receive request", slog.Int64("order_code", orderCode), traceIdAttr)

	info, err := in.Gateway.GetPaymentLinkInformation(ctx, orderCode)
	if err != nil {
		// the provider keeps the true paid state, a later retry of this URL
		// can still settle
		slog.ErrorContext(ctx, "failed to get payment link information", slog.Int64("order_code", orderCode), traceIdAttr, slog.Any(constant.LogFieldErr, err))
		http.Redirect(w, r, fmt.Sprintf("/payment/failed/%d", orderCode), http.StatusSeeOther)
		return
	}

	if !info.Paid() {
		slog.InfoContext(ctx, "payment not confirmed", slog.Int64("order_code", orderCode), slog.String("status", info.Status), traceIdAttr)
		http.Redirect(w, r, fmt.Sprintf("/payment/failed/%d", orderCode), http.StatusSeeOther)
		return
	}

	// one atomic UPDATE marks the whole batch paid, re-running it for an
	// already settled order affects zero rows
	cmd, err := in.Querier.MarkTicketsPaidByOrderCode(ctx, pgtype.Int8{Int64: orderCode, Valid: true})
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark tickets paid", slog.Int64("order_code", orderCode), traceIdAttr, slog.Any(constant.LogFieldErr, err))
		http.Redirect(w, r, fmt.Sprintf("/payment/failed/%d", orderCode), http.StatusSeeOther)
		return
	}

	slog.InfoContext(ctx, "tickets marked paid",
		slog.Int64("order_code", orderCode),
		slog.Int64("tickets", cmd.RowsAffected()),
		traceIdAttr,
	)

	if cmd.RowsAffected() > 0 {
		in.notifyBatch(ctx, orderCode, info, traceIdAttr)
	}

	http.Redirect(w, r, fmt.Sprintf("/payment/success/%d", orderCode), http.StatusSeeOther)
}

// notifyBatch sends one confirmation email per owning user of the settled
// batch. Failures are logged per recipient and never undo the settlement.
func (in PaymentHttp) notifyBatch(ctx context.Context, orderCode int64, info payos.PaymentLinkInformation, traceIdAttr slog.Attr) {
	tickets, err := in.Querier.FindTicketsByOrderCode(ctx, pgtype.Int8{Int64: orderCode, Valid: true})
	if err != nil {
		slog.ErrorContext(ctx, "failed to load settled batch for notification", slog.Int64("order_code", orderCode), traceIdAttr, slog.Any(constant.LogFieldErr, err))
		return
	}

	byUser := make(map[string][]sqlgen.FindTicketsByOrderCodeRow)
	for _, t := range tickets {
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}

	amountPaid := info.AmountPaid
	if amountPaid == 0 {
		amountPaid = info.Amount
	}

	for userId, userTickets := range byUser {
		emailPayload := model.SendEmailEventMessage{
			To:      userTickets[0].Email,
			Subject: fmt.Sprintf("Payment Confirmation - Order #%d", orderCode),
			Body:    in.buildPaymentConfirmationEmailBody(userTickets, orderCode, amountPaid),
		}

		if err := common.PublishMessage(ctx, in.Publisher, constant.SubjectSendEmail, emailPayload); err != nil {
			slog.ErrorContext(ctx, "failed to publish confirmation email",
				slog.Int64("order_code", orderCode),
				slog.String("user_id", userId),
				slog.Any(constant.LogFieldErr, err),
				traceIdAttr,
			)
		}
	}
}

func (in PaymentHttp) buildPaymentConfirmationEmailBody(tickets []sqlgen.FindTicketsByOrderCodeRow, orderCode, amountPaid int64) string {
	var lines string
	for _, t := range tickets {
		lines += fmt.Sprintf(constant.EmailTicketLineTemplate,
			t.TourName,
			t.TourDate.Time.Format("02/01/2006"),
			t.Seats,
			in.VndCurrencyFormatter.Sprintf("%dđ", t.TotalPrice),
			t.CancellationDeadline.Time.Format("02/01/2006 15:04"),
		)
	}

	return fmt.Sprintf(constant.EmailPaymentConfirmationTemplate,
		tickets[0].OwnerName,
		orderCode,
		lines,
		in.VndCurrencyFormatter.Sprintf("%dđ", amountPaid),
	)
}

func (in PaymentHttp) cancelPage(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, model.PaymentResultResponse{
		OrderCode: 0,
		State:     model.PaymentStateCancelled,
		Status:    "CANCELLED",
		Message:   "Payment was cancelled by the customer.",
	})
}

// success is the settled-order status page. The gateway query here is best
// effort: the payment is already settled server-side, so a gateway failure
// degrades to ticket-derived state instead of erroring.
func (in PaymentHttp) success(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.success")
	defer span.End()

	traceIdAttr := common.ExtractTraceIDFromCtx(ctx)

	orderCode, err := strconv.ParseInt(r.PathValue("orderCode"), 10, 64)
	if err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid order code"})
		return
	}

	tickets, err := in.Querier.FindTicketsByOrderCode(ctx, pgtype.Int8{Int64: orderCode, Valid: true})
	if err != nil {
		slog.ErrorContext(ctx, "failed to load batch", slog.Int64("order_code", orderCode), traceIdAttr, slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, err)
		return
	}

	allPaid := len(tickets) > 0
	for _, t := range tickets {
		if !t.IsPaid {
			allPaid = false
			break
		}
	}

	resp := model.PaymentResultResponse{
		OrderCode:    orderCode,
		TicketsCount: len(tickets),
	}

	info, err := in.Gateway.GetPaymentLinkInformation(ctx, orderCode)
	if err != nil {
		slog.WarnContext(ctx, "failed to get payment link information, deriving state from tickets", slog.Int64("order_code", orderCode), traceIdAttr, slog.Any(constant.LogFieldErr, err))
	} else {
		resp.Status = info.Status
		resp.Amount = info.Amount
		resp.AmountPaid = info.AmountPaid
	}

	resp.State = model.DerivePaymentState(len(tickets), allPaid, resp.Status)
	if resp.State == model.PaymentStatePaid {
		resp.Message = "Payment completed successfully."
	} else {
		resp.Message = "Payment is not completed yet."
	}

	writeJSONResponse(w, http.StatusOK, resp)
}

func (in PaymentHttp) failed(w http.ResponseWriter, r *http.Request) {
	orderCode, _ := strconv.ParseInt(r.PathValue("orderCode"), 10, 64)

	writeJSONResponse(w, http.StatusOK, model.PaymentResultResponse{
		OrderCode: orderCode,
		State:     model.PaymentStateFailed,
		Status:    "FAILED",
		Message:   "Payment was not completed or has been cancelled.",
	})
}

// info exposes the raw gateway view of a payment link, useful for support.
func (in PaymentHttp) info(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer.Start(r.Context(), "PaymentHttp.info")
	defer span.End()

	orderCode, err := strconv.ParseInt(r.PathValue("orderCode"), 10, 64)
	if err != nil {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadRequest, Message: "Invalid order code"})
		return
	}

	info, err := in.Gateway.GetPaymentLinkInformation(ctx, orderCode)
	if err == payos.ErrNotFound {
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusNotFound, Message: "Payment link not found"})
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to get payment link information", slog.Int64("order_code", orderCode), slog.Any(constant.LogFieldErr, err))
		writeErrorResponse(w, &errs.HttpError{Code: http.StatusBadGateway, Message: "Payment provider unavailable"})
		return
	}

	writeJSONResponse(w, http.StatusOK, info)
}

// mintOrderCode derives a collision-free order code from the current time
// plus a shared monotonic sequence, so concurrent checkouts in the same
// millisecond still mint distinct codes.
func (in PaymentHttp) mintOrderCode(ctx context.Context) (int64, error) {
	seq, err := in.Cache.Incr(ctx, constant.PaymentOrderSeqKey).Result()
	if err != nil {
		return 0, err
	}

	return in.TimeNow().UnixMilli()*1000 + seq%1000, nil
}
