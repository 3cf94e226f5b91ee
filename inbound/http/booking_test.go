package http

import (
	"travel-ties/common/constant"
	"travel-ties/common/coupon"
	jetsteamMock "travel-ties/common/jetstream/mocks"
	"travel-ties/outbound/sqlgen"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type BookingHttpTestSuite struct {
	suite.Suite

	Cfg *viper.Viper

	Querier *sqlgen.Queries
	PgxMock pgxmock.PgxPoolIface

	Cache     *redis.Client
	CacheMock redismock.ClientMock

	Validate  *validator.Validate
	Publisher *jetsteamMock.MockPublisher
	Coupons   coupon.Table
}

func (s *BookingHttpTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())

	rdb, mock := redismock.NewClientMock()
	s.Cache = rdb
	s.CacheMock = mock

	pool, err := pgxmock.NewPool()
	if err != nil {
		s.T().Fatalf("failed to create pgxmock pool: %v", err)
	}

	s.PgxMock = pool
	s.Querier = sqlgen.New(pool)

	s.Validate = validator.New()
	s.Publisher = jetsteamMock.NewMockPublisher(ctrl)
	s.Coupons = coupon.NewTable(map[string]int{"WELCOME10": 10, "SUMMER20": 20})

	s.Cfg = viper.New()
	s.Cfg.Set("booking.cancellation_lead", "12h")

	slog.SetLogLoggerLevel(slog.LevelDebug)
}

func (s *BookingHttpTestSuite) TearDownTest() {
	s.PgxMock.Close()

	if err := s.Cache.Close(); err != nil {
		s.T().Fatalf("failed to close redis mock: %v", err)
	}
}

func TestBookingHttpTestSuite(t *testing.T) {
	suite.Run(t, new(BookingHttpTestSuite))
}

func (s *BookingHttpTestSuite) newMux() *http.ServeMux {
	mux := http.NewServeMux()
	RegisterBookingHttp(mux, s.Cfg, s.Querier, s.Cache, s.Publisher, s.Validate, s.Coupons)
	return mux
}

func (s *BookingHttpTestSuite) tourRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "name", "destination", "description", "price_per_seat", "capacity",
		"start_date", "end_date", "discount_percent", "company_id", "created_at",
	})
}

func (s *BookingHttpTestSuite) ticketRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "tour_id", "user_id", "owner_name", "email", "phone", "tour_date",
		"seats", "total_price", "payment_order_code", "is_paid", "cancellation_deadline",
		"tour_name", "destination",
	})
}

func (s *BookingHttpTestSuite) TestCreate() {
	startDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	tourDate := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	halongTour := func() *pgxmock.Rows {
		return s.tourRows().AddRow(
			"tour-1", "Ha Long Bay Cruise", "Ha Long", pgtype.Text{},
			int64(500000), int32(20),
			pgtype.Date{Time: startDate, Valid: true},
			pgtype.Date{Time: endDate, Valid: true},
			int16(10), pgtype.Text{}, pgtype.Timestamp{},
		)
	}

	tests := []struct {
		name           string
		userId         string
		reqBody        string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "missing user identity",
			reqBody:        `{}`,
			setupMock:      func() {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"Missing user identity"}`,
		},
		{
			name:           "invalid json",
			userId:         "user-1",
			reqBody:        `{invalid json`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request"}`,
		},
		{
			name:           "validation error - missing tour",
			userId:         "user-1",
			reqBody:        `{"tour_date":"2026-09-05","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"TourId":"required"}}`,
		},
		{
			name:           "validation error - malformed date",
			userId:         "user-1",
			reqBody:        `{"tour_id":"tour-1","tour_date":"05/09/2026","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"TourDate":"datetime"}}`,
		},
		{
			name:    "tour not found",
			userId:  "user-1",
			reqBody: `{"tour_id":"tour-9","tour_date":"2026-09-05","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTourById :one`).
					WithArgs("tour-9").
					WillReturnError(pgx.ErrNoRows)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Tour not found"}`,
		},
		{
			name:    "date outside tour range",
			userId:  "user-1",
			reqBody: `{"tour_id":"tour-1","tour_date":"2026-09-20","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTourById :one`).
					WithArgs("tour-1").
					WillReturnRows(halongTour())
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"TourDate":"outside tour date range"}}`,
		},
		{
			name:    "booked seats cache error",
			userId:  "user-1",
			reqBody: `{"tour_id":"tour-1","tour_date":"2026-09-05","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTourById :one`).
					WithArgs("tour-1").
					WillReturnRows(halongTour())
				s.CacheMock.ExpectGet(fmt.Sprintf(constant.EachTourBookedSeatsKey, "tour-1")).
					SetErr(redis.ErrClosed)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:    "tour sold out",
			userId:  "user-1",
			reqBody: `{"tour_id":"tour-1","tour_date":"2026-09-05","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTourById :one`).
					WithArgs("tour-1").
					WillReturnRows(halongTour())
				s.CacheMock.ExpectGet(fmt.Sprintf(constant.EachTourBookedSeatsKey, "tour-1")).
					SetVal("19")
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Tour sold out"}`,
		},
		{
			name:    "insert ticket error",
			userId:  "user-1",
			reqBody: `{"tour_id":"tour-1","tour_date":"2026-09-05","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTourById :one`).
					WithArgs("tour-1").
					WillReturnRows(halongTour())
				s.CacheMock.ExpectGet(fmt.Sprintf(constant.EachTourBookedSeatsKey, "tour-1")).
					RedisNil()
				s.PgxMock.ExpectExec(`-- name: InsertTicket :exec`).
					WithArgs(
						pgxmock.AnyArg(), "tour-1", "user-1", "John Doe", "john@example.com", "+84901234567",
						pgtype.Date{Time: tourDate, Valid: true},
						int32(2), int64(900000),
						pgtype.Timestamp{Time: tourDate.Add(-12 * time.Hour), Valid: true},
					).
					WillReturnError(fmt.Errorf("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:    "success with discounted price",
			userId:  "user-1",
			reqBody: `{"tour_id":"tour-1","tour_date":"2026-09-05","seats":2,"owner_name":"John Doe","email":"john@example.com","phone":"+84901234567"}`,
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTourById :one`).
					WithArgs("tour-1").
					WillReturnRows(halongTour())
				s.CacheMock.ExpectGet(fmt.Sprintf(constant.EachTourBookedSeatsKey, "tour-1")).
					SetVal("5")
				s.PgxMock.ExpectExec(`-- name: InsertTicket :exec`).
					WithArgs(
						pgxmock.AnyArg(), "tour-1", "user-1", "John Doe", "john@example.com", "+84901234567",
						pgtype.Date{Time: tourDate, Valid: true},
						int32(2), int64(900000),
						pgtype.Timestamp{Time: tourDate.Add(-12 * time.Hour), Valid: true},
					).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))

				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectAdjustTourSeats,
					gomock.Any(),
				).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_price":900000`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			mux := s.newMux()

			tc.setupMock()

			req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(tc.reqBody))
			req.Header.Set("Content-Type", "application/json")
			if tc.userId != "" {
				req.Header.Set("X-User-Id", tc.userId)
			}
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			s.Equal(tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusOK {
				s.Contains(w.Body.String(), tc.expectedBody)
			} else {
				s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
			}

			s.NoError(s.CacheMock.ExpectationsWereMet())
			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *BookingHttpTestSuite) TestCart() {
	tourDate := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)

	unpaidCart := func() *pgxmock.Rows {
		return s.ticketRows().
			AddRow(
				"tkt-1", "tour-1", "user-1", "John Doe", "john@example.com", "+84901234567",
				pgtype.Date{Time: tourDate, Valid: true}, int32(2), int64(900000),
				pgtype.Int8{}, false, pgtype.Timestamp{Time: deadline, Valid: true},
				"Ha Long Bay Cruise", "Ha Long",
			).
			AddRow(
				"tkt-2", "tour-2", "user-1", "John Doe", "john@example.com", "+84901234567",
				pgtype.Date{Time: tourDate, Valid: true}, int32(1), int64(100000),
				pgtype.Int8{}, false, pgtype.Timestamp{Time: deadline, Valid: true},
				"Sapa Trek", "Sapa",
			)
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func()
		expectedStatus int
		expectedParts  []string
	}{
		{
			name: "database error",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindUnpaidTicketsByUser :many`).
					WithArgs("user-1").
					WillReturnError(fmt.Errorf("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedParts:  []string{`{"error":"Internal Server Error"}`},
		},
		{
			name: "no coupon",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindUnpaidTicketsByUser :many`).
					WithArgs("user-1").
					WillReturnRows(unpaidCart())
			},
			expectedStatus: http.StatusOK,
			expectedParts:  []string{`"subtotal":1000000`, `"discount_amount":0`, `"final_total":1000000`},
		},
		{
			name:  "valid coupon",
			query: "?coupon=welcome10",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindUnpaidTicketsByUser :many`).
					WithArgs("user-1").
					WillReturnRows(unpaidCart())
			},
			expectedStatus: http.StatusOK,
			expectedParts: []string{
				`"coupon_code":"welcome10"`,
				`"subtotal":1000000`,
				`"discount_percent":10`,
				`"discount_amount":100000`,
				`"final_total":900000`,
			},
		},
		{
			name:  "unknown coupon never fails the cart",
			query: "?coupon=NOPE",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindUnpaidTicketsByUser :many`).
					WithArgs("user-1").
					WillReturnRows(unpaidCart())
			},
			expectedStatus: http.StatusOK,
			expectedParts: []string{
				`"coupon_warning":"Coupon code is not valid"`,
				`"final_total":1000000`,
			},
		},
		{
			name: "empty cart",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindUnpaidTicketsByUser :many`).
					WithArgs("user-1").
					WillReturnRows(s.ticketRows())
			},
			expectedStatus: http.StatusOK,
			expectedParts:  []string{`"tickets":[]`, `"subtotal":0`},
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			mux := s.newMux()

			tc.setupMock()

			req := httptest.NewRequest(http.MethodGet, "/api/bookings/cart"+tc.query, nil)
			req.Header.Set("X-User-Id", "user-1")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			for _, part := range tc.expectedParts {
				s.Contains(w.Body.String(), part)
			}

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *BookingHttpTestSuite) TestApplyCoupon() {
	tests := []struct {
		name           string
		reqBody        string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid code",
			reqBody:        `{"code":"WELCOME10"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"code":"WELCOME10","discount_percent":10}`,
		},
		{
			name:           "case insensitive",
			reqBody:        `{"code":"summer20"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"code":"summer20","discount_percent":20}`,
		},
		{
			name:           "unknown code",
			reqBody:        `{"code":"NOPE"}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Coupon code is not valid"}`,
		},
		{
			name:           "missing code",
			reqBody:        `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","data":{"Code":"required"}}`,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			mux := s.newMux()

			req := httptest.NewRequest(http.MethodPost, "/api/bookings/coupon", strings.NewReader(tc.reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))
		})
	}
}

func (s *BookingHttpTestSuite) TestCancel() {
	tourDate := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)

	ticketRow := func(orderCode pgtype.Int8, isPaid bool) *pgxmock.Rows {
		return s.ticketRows().AddRow(
			"tkt-1", "tour-1", "user-1", "John Doe", "john@example.com", "+84901234567",
			pgtype.Date{Time: tourDate, Valid: true}, int32(2), int64(900000),
			orderCode, isPaid, pgtype.Timestamp{Time: deadline, Valid: true},
			"Ha Long Bay Cruise", "Ha Long",
		)
	}

	tests := []struct {
		name           string
		setupMock      func()
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "ticket not found",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
					WithArgs("tkt-1", "user-1").
					WillReturnError(pgx.ErrNoRows)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Ticket not found"}`,
		},
		{
			name: "already paid",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
					WithArgs("tkt-1", "user-1").
					WillReturnRows(ticketRow(pgtype.Int8{Int64: 1756300000000001, Valid: true}, true))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Ticket is already paid"}`,
		},
		{
			name: "payment in flight",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
					WithArgs("tkt-1", "user-1").
					WillReturnRows(ticketRow(pgtype.Int8{Int64: 1756300000000001, Valid: true}, false))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Ticket has a pending payment"}`,
		},
		{
			name: "ticket raced away",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
					WithArgs("tkt-1", "user-1").
					WillReturnRows(ticketRow(pgtype.Int8{}, false))
				s.PgxMock.ExpectExec(`-- name: DeleteUnpaidTicket :execresult`).
					WithArgs("tkt-1", "user-1").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"error":"Ticket is no longer cancellable"}`,
		},
		{
			name: "success",
			setupMock: func() {
				s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
					WithArgs("tkt-1", "user-1").
					WillReturnRows(ticketRow(pgtype.Int8{}, false))
				s.PgxMock.ExpectExec(`-- name: DeleteUnpaidTicket :execresult`).
					WithArgs("tkt-1", "user-1").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))

				s.Publisher.EXPECT().Publish(
					gomock.Any(),
					constant.SubjectAdjustTourSeats,
					gomock.Any(),
				).Return(nil, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   ``,
		},
	}

	for _, tc := range tests {
		s.Run(tc.name, func() {
			mux := s.newMux()

			tc.setupMock()

			req := httptest.NewRequest(http.MethodDelete, "/api/bookings/tkt-1", nil)
			req.Header.Set("X-User-Id", "user-1")
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			s.Equal(tc.expectedStatus, w.Code)
			s.Equal(tc.expectedBody, strings.TrimSpace(w.Body.String()))

			s.NoError(s.PgxMock.ExpectationsWereMet())
		})
	}
}

func (s *BookingHttpTestSuite) TestDetails() {
	tourDate := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	deadline := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)

	s.Run("not found", func() {
		s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
			WithArgs("tkt-9", "user-1").
			WillReturnError(pgx.ErrNoRows)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/tkt-9", nil)
		req.Header.Set("X-User-Id", "user-1")
		w := httptest.NewRecorder()

		s.newMux().ServeHTTP(w, req)

		s.Equal(http.StatusNotFound, w.Code)
		s.Equal(`{"error":"Ticket not found"}`, strings.TrimSpace(w.Body.String()))
	})

	s.Run("success", func() {
		s.PgxMock.ExpectQuery(`-- name: FindTicketByIdAndUser :one`).
			WithArgs("tkt-1", "user-1").
			WillReturnRows(s.ticketRows().AddRow(
				"tkt-1", "tour-1", "user-1", "John Doe", "john@example.com", "+84901234567",
				pgtype.Date{Time: tourDate, Valid: true}, int32(2), int64(900000),
				pgtype.Int8{Int64: 1756300000000001, Valid: true}, true,
				pgtype.Timestamp{Time: deadline, Valid: true},
				"Ha Long Bay Cruise", "Ha Long",
			))

		req := httptest.NewRequest(http.MethodGet, "/api/bookings/tkt-1", nil)
		req.Header.Set("X-User-Id", "user-1")
		w := httptest.NewRecorder()

		s.newMux().ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"id":"tkt-1"`)
		s.Contains(w.Body.String(), `"payment_order_code":1756300000000001`)
		s.Contains(w.Body.String(), `"is_paid":true`)
	})
}
