package model

type TourResponse struct {
	Id              string `json:"id"`
	Name            string `json:"name"`
	Destination     string `json:"destination"`
	PricePerSeat    int64  `json:"price_per_seat"`
	Capacity        int32  `json:"capacity"`
	BookedSeats     int32  `json:"booked_seats"`
	RemainingSeats  int32  `json:"remaining_seats"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	DiscountPercent int16  `json:"discount_percent"`
}

type AdjustTourSeatsEventMessage struct {
	TourId string `json:"tour_id"`
	Seats  int32  `json:"seats"`
}
