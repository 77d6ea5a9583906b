package handlers

import (
	"backoffice/internal/httpx"
	"backoffice/internal/view"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
)

const dateLayout = "2006-01-02"

// Export: GET /invoices/export[?ids=1,2,3] – row-oriented CSV, one row
// per invoice, with the total taken from the derived aggregate.
func (h *InvoiceHandler) Export(w http.ResponseWriter, r *http.Request) {
	var ids []uint
	if raw := strings.TrimSpace(r.URL.Query().Get("ids")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
			if err != nil || n == 0 {
				httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
				return
			}
			ids = append(ids, uint(n))
		}
	}
	invoices, err := h.Svc.List(ids)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="invoices.csv"`)
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"Invoice ID", "Customer", "Invoice Date", "Due Date", "Status", "Total Price"})
	for _, inv := range invoices {
		_ = cw.Write([]string{
			strconv.FormatUint(uint64(inv.ID), 10),
			inv.CustomerName,
			inv.InvoiceDate.Format(dateLayout),
			inv.DueDate.Format(dateLayout),
			string(inv.Status),
			inv.TotalPrice().StringFixed(2),
		})
	}
	cw.Flush()
}

// Print: GET /invoices/print?id= – a printable HTML invoice document.
// Unknown ids surface as a not-found outcome, like the admin print view.
func (h *InvoiceHandler) Print(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderInvoice(w, inv, h.Svc.Now()); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "render_error", nil)
	}
}
