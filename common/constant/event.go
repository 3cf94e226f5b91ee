package constant

const (
	QueueStreamName = "travel_ties_queue_stream"
)

const (
	AllWildcard   = "events.>"
	TourWildcard  = "events.tour.>"
	EmailWildcard = "events.email.>"

	SubjectAdjustTourSeats = "events.tour.adjust_seats"
	SubjectSendEmail       = "events.email.send"
)
