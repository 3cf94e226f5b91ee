package constant

const (
	EachTourBookedSeatsKey = "tour:%s:booked_seats"
	PaymentOrderSeqKey     = "payment:order_code:seq"
)
