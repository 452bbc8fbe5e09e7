package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/tripmarket/api/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"order_id", "placed_at", "payment_method",
	"trip_title", "location", "unit_price",
}

// exportRowResponse is the JSON shape of one export row.
type exportRowResponse struct {
	OrderID       string `json:"order_id"`
	PlacedAt      string `json:"placed_at"`
	PaymentMethod string `json:"payment_method"`
	TripTitle     string `json:"trip_title"`
	Location      string `json:"location,omitempty"`
	UnitPrice     string `json:"unit_price"`
}

// GetExport handles GET /export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	cid, ok := customerID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, unauthorizedBody("authentication required"))
		return
	}

	rows, err := s.export.Export(r.Context(), cid)
	if err != nil {
		writeDomainError(w, r, err, "")
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}

	out := make([]exportRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, exportRowResponse{
			OrderID:       row.OrderID,
			PlacedAt:      row.PlacedAt,
			PaymentMethod: row.PaymentMethod,
			TripTitle:     row.TripTitle,
			Location:      row.Location,
			UnitPrice:     row.UnitPrice.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	// Writes to a bytes.Buffer cannot fail.
	//nolint:errcheck
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.OrderID,
			r.PlacedAt,
			r.PaymentMethod,
			r.TripTitle,
			r.Location,
			r.UnitPrice.StringFixed(2),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
