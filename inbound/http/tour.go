package http

import (
	"travel-ties/common/vars"
	"net/http"
)

type TourHttp struct{}

func RegisterTourHttp(mux *http.ServeMux) *TourHttp {
	in := &TourHttp{}

	mux.HandleFunc("GET /api/tours", in.list)

	return in
}

func (in *TourHttp) list(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, vars.GetTours())
}
