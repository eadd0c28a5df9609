package orders

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"lotoria/middleware"
	"lotoria/mirror"
	"lotoria/models"
	"lotoria/utils"

	"github.com/julienschmidt/httprouter"
)

type Handler struct {
	Ses *mirror.Session
}

func NewHandler(ses *mirror.Session) *Handler {
	return &Handler{Ses: ses}
}

func respondMutationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, ErrConflict):
		utils.RespondWithError(w, http.StatusConflict, "Record changed concurrently, reload and retry")
	case errors.Is(err, ErrInvalidStatus):
		utils.RespondWithError(w, http.StatusBadRequest, "Illegal status transition")
	case errors.Is(err, ErrValidation):
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
	default:
		log.Println("mutation failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Operation failed")
	}
}

// CreateBooking books a service or an offer for the authenticated user. The
// bookable item is resolved from the mirror so its name and price are copied
// at booking time.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.RequestClaims(r)
	var input struct {
		ServiceID string `json:"serviceId"`
		Name      string `json:"name"`
		Mobile    string `json:"mobile"`
		Address   string `json:"address"`
		Date      string `json:"date"`
		Time      string `json:"time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	serviceName, amount, found := h.resolveBookable(input.ServiceID)
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "Service not found")
		return
	}

	booking, err := AddBooking(r.Context(), h.Ses, models.Booking{
		UserID:      claims.UserID,
		UserName:    input.Name,
		UserMobile:  input.Mobile,
		UserAddress: input.Address,
		ServiceID:   input.ServiceID,
		ServiceName: serviceName,
		Date:        input.Date,
		Time:        input.Time,
		Amount:      amount,
	})
	if err != nil {
		respondMutationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"booking": booking})
}

// resolveBookable finds a service or offer by id. Offers without a final price
// book with amount zero, which drops the amount from the UPI link.
func (h *Handler) resolveBookable(id string) (string, float64, bool) {
	for _, s := range h.Ses.Services() {
		if s.ID == id {
			return s.Name, s.Price, true
		}
	}
	for _, o := range h.Ses.Offers() {
		if o.ID == id {
			return o.Title, o.FinalPrice, true
		}
	}
	return "", 0, false
}

// MyBookings lists the caller's bookings; admins see every booking.
func (h *Handler) MyBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.RequestClaims(r)
	all := h.Ses.Bookings()
	if claims.Role == models.RoleAdmin {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": all})
		return
	}
	mine := make([]models.Booking, 0)
	for _, b := range all {
		if b.UserID == claims.UserID {
			mine = append(mine, b)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"bookings": mine})
}

// Checkout turns the submitted cart into an order. Prices are copied from the
// current catalog, quantities come from the client, the total is computed
// server-side.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.RequestClaims(r)
	var input struct {
		Name    string `json:"name"`
		Mobile  string `json:"mobile"`
		Address string `json:"address"`
		Items   []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	products := h.Ses.Products()
	items := make([]models.CartItem, 0, len(input.Items))
	for _, in := range input.Items {
		found := false
		for _, p := range products {
			if p.ID == in.ProductID {
				items = append(items, models.CartItem{Product: p, Quantity: in.Quantity})
				found = true
				break
			}
		}
		if !found {
			utils.RespondWithError(w, http.StatusNotFound, "Product not found: "+in.ProductID)
			return
		}
	}

	order, err := AddOrder(r.Context(), h.Ses, models.Order{
		UserID:      claims.UserID,
		UserName:    input.Name,
		UserMobile:  input.Mobile,
		UserAddress: input.Address,
		Items:       items,
	})
	if err != nil {
		respondMutationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"order": order})
}

// MyOrders lists the caller's orders; admins see every order.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.RequestClaims(r)
	all := h.Ses.Orders()
	if claims.Role == models.RoleAdmin {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": all})
		return
	}
	mine := make([]models.Order, 0)
	for _, o := range all {
		if o.UserID == claims.UserID {
			mine = append(mine, o)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": mine})
}

// ---------- Admin transitions ----------

func (h *Handler) SetBookingStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := UpdateBookingStatus(r.Context(), h.Ses, ps.ByName("id"), input.Status); err != nil {
		respondMutationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) SetOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := UpdateOrderStatus(r.Context(), h.Ses, ps.ByName("id"), input.Status); err != nil {
		respondMutationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) SetBookingNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := UpdateBookingNote(r.Context(), h.Ses, ps.ByName("id"), input.Note); err != nil {
		respondMutationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func (h *Handler) SetOrderNote(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Note string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := UpdateOrderNote(r.Context(), h.Ses, ps.ByName("id"), input.Note); err != nil {
		respondMutationError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
