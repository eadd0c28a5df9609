package pay

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"lotoria/mirror"
	"lotoria/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// Link builds a UPI deep link: upi://pay?pa=<id>&pn=<name>[&am=<amount>]&cu=INR.
// The amount parameter is omitted when the amount is zero (e.g. an Offer with
// no fixed price); the payer then types it in their UPI app.
func Link(upiID, payeeName string, amount float64) string {
	link := fmt.Sprintf("upi://pay?pa=%s&pn=%s", url.QueryEscape(upiID), url.QueryEscape(payeeName))
	if amount > 0 {
		link += fmt.Sprintf("&am=%s", strconv.FormatFloat(amount, 'f', 2, 64))
	}
	return link + "&cu=INR"
}

type Handler struct {
	Ses *mirror.Session
}

func NewHandler(ses *mirror.Session) *Handler {
	return &Handler{Ses: ses}
}

// UPILink returns the deep link for an arbitrary amount against the salon's
// configured UPI id. Completion of the payment is never verified here; the
// user asserts it by confirming their booking or order.
func (h *Handler) UPILink(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	amount, _ := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	cfg := h.Ses.Config()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"upiId": cfg.UpiID,
		"link":  Link(cfg.UpiID, cfg.SalonName, amount),
	})
}

// UPIQR streams a QR code PNG encoding the same deep link.
func (h *Handler) UPIQR(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	amount, _ := strconv.ParseFloat(r.URL.Query().Get("amount"), 64)
	cfg := h.Ses.Config()

	png, err := qrcode.Encode(Link(cfg.UpiID, cfg.SalonName, amount), qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
