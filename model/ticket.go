package model

import "travel-ties/common/coupon"

type CreateTicketRequest struct {
	TourId    string `json:"tour_id" validate:"required"`
	TourDate  string `json:"tour_date" validate:"required,datetime=2006-01-02"`
	Seats     int32  `json:"seats" validate:"required,min=1"`
	OwnerName string `json:"owner_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,max=20"`
}

type TicketResponse struct {
	Id                   string `json:"id"`
	TourId               string `json:"tour_id"`
	TourName             string `json:"tour_name"`
	Destination          string `json:"destination,omitempty"`
	TourDate             string `json:"tour_date"`
	Seats                int32  `json:"seats"`
	TotalPrice           int64  `json:"total_price"`
	IsPaid               bool   `json:"is_paid"`
	PaymentOrderCode     *int64 `json:"payment_order_code,omitempty"`
	CancellationDeadline string `json:"cancellation_deadline"`
}

type CartResponse struct {
	Tickets       []TicketResponse `json:"tickets"`
	CouponCode    string           `json:"coupon_code,omitempty"`
	CouponWarning string           `json:"coupon_warning,omitempty"`
	coupon.Breakdown
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

type ApplyCouponResponse struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
}
