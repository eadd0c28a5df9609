package orders

import (
	"bytes"
	"fmt"
	"net/http"

	"lotoria/middleware"
	"lotoria/models"
	"lotoria/pay"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
)

// OrderReceipt renders an order as a PDF with an embedded UPI payment QR.
// Customers can only fetch their own orders.
func (h *Handler) OrderReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	claims := middleware.RequestClaims(r)
	order, ok := h.Ses.Order(ps.ByName("id"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if claims.Role != models.RoleAdmin && order.UserID != claims.UserID {
		http.Error(w, "Access denied", http.StatusForbidden)
		return
	}

	cfg := h.Ses.Config()
	qrPNG, err := qrcode.Encode(pay.Link(cfg.UpiID, cfg.SalonName, order.TotalAmount), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, cfg.SalonName)
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order #%s", order.ID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Customer: %s (%s)", order.UserName, order.UserMobile))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Date: %s    Status: %s", order.Date, order.Status))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(100, 8, "Item")
	pdf.Cell(25, 8, "Qty")
	pdf.Cell(40, 8, "Amount")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 12)
	for _, item := range order.Items {
		pdf.Cell(100, 8, item.Name)
		pdf.Cell(25, 8, fmt.Sprintf("%d", item.Quantity))
		pdf.Cell(40, 8, fmt.Sprintf("Rs %.2f", item.Price*float64(item.Quantity)))
		pdf.Ln(8)
	}
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Total: Rs %.2f", order.TotalAmount))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Pay via UPI: %s", cfg.UpiID))

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("upiqr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("upiqr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=order-"+order.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
