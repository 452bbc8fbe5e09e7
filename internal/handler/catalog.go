package handler

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tripmarket/api/internal/domain"
)

type sellRequest struct {
	Title       string  `json:"title" validate:"required"`
	TripTypeID  string  `json:"trip_type_id" validate:"required,uuid"`
	NumOfNights int     `json:"num_of_nights" validate:"required,gt=0"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Price       string  `json:"price" validate:"required"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
}

type deleteTripRequest struct {
	TripID string `json:"trip_id" validate:"required,uuid"`
}

type tripTypeRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type tripListResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type tripsByTypeResponse struct {
	TripType domain.TripType `json:"trip_type"`
	Trips    []domain.Trip   `json:"trips"`
}

// Index handles GET /.
// The storefront: the newest listings, most recent first.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	trips, err := s.catalog.Index(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// ListTrips handles GET /trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	params := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	trips, total, err := s.catalog.List(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, tripListResponse{
		Data: trips,
		Pagination: pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /single_trip/{trip_id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "trip_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	trip, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, "trip not found")
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// SellTrip handles POST /sell.
// The authenticated customer becomes the seller of the new listing.
func (s *Server) SellTrip(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req sellRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("price must be a decimal number"))
		return
	}

	created, err := s.catalog.Sell(r.Context(), cid, domain.Trip{
		TripTypeID:  mustUUID(req.TripTypeID),
		Title:       req.Title,
		NumOfNights: req.NumOfNights,
		Location:    req.Location,
		Description: req.Description,
		Price:       price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, r, err, "trip type not found")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Search handles GET /search?q=.
// A blank query returns an empty result set rather than the full catalog.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	trips, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// ListUserTrips handles GET /user_trips: the listings the authenticated
// customer is selling.
func (s *Server) ListUserTrips(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}

	trips, err := s.catalog.ListBySeller(r.Context(), cid)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, trips)
}

// DeleteUserTrip handles POST /delete_user_trip.
// Only the seller may delete a listing, and only while no line item
// references it.
func (s *Server) DeleteUserTrip(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}
	var req deleteTripRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	if err := s.catalog.DeleteListing(r.Context(), cid, mustUUID(req.TripID)); err != nil {
		writeDomainError(w, r, err, "trip not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTripTypes handles GET /trip_types: every category with its trip count
// and a preview of its newest listings.
func (s *Server) ListTripTypes(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.catalog.TripTypes(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

// GetTripsByType handles GET /trip_type_trips/{type_id}.
func (s *Server) GetTripsByType(w http.ResponseWriter, r *http.Request) {
	typeID, err := pathUUID(r, "type_id")
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	tt, trips, err := s.catalog.TripsByType(r.Context(), typeID)
	if err != nil {
		writeDomainError(w, r, err, "trip type not found")
		return
	}

	writeJSON(w, http.StatusOK, tripsByTypeResponse{TripType: tt, Trips: trips})
}

// CreateTripType handles POST /trip_types.
func (s *Server) CreateTripType(w http.ResponseWriter, r *http.Request) {
	var req tripTypeRequest
	if err := s.decode(r, &req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
		return
	}

	tt, err := s.catalog.CreateTripType(r.Context(), req.Name)
	if err != nil {
		writeDomainError(w, r, err, "trip type not found")
		return
	}

	writeJSON(w, http.StatusCreated, tt)
}

// queryInt parses an optional positive integer query parameter, returning
// nil when absent or malformed so pagination defaults apply.
func queryInt(r *http.Request, name string) *int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
