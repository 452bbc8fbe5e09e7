package handler

import (
	"net/http"
)

type wishlistRequest struct {
	Note string `json:"note" validate:"max=500"`
}

// AddToWishlist handles POST /single_trip/{trip_id}: bookmark the trip on
// the customer's wishlist, optionally with a note. Re-adding an already
// wishlisted trip just replaces the note.
func (s *Server) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	tripID, err := pathUUID(r, "trip_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	var req wishlistRequest
	if err := s.decodeOptional(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	item, err := s.wishlist.Add(r.Context(), cid, tripID, req.Note)
	if err != nil {
		writeDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// ListWishlist handles GET /user_wishlist.
func (s *Server) ListWishlist(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}

	items, err := s.wishlist.List(r.Context(), cid)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, items)
}
