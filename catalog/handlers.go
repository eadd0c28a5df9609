package catalog

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

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

// ---------- Public reads (served straight from the mirror) ----------

func (h *Handler) GetSiteConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"config": h.Ses.Config()})
}

func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"services": h.Ses.Services()})
}

func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": h.Ses.Products()})
}

func (h *Handler) GetOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"offers": h.Ses.Offers()})
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"team": h.Ses.Team()})
}

func (h *Handler) GetGallery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"gallery": h.Ses.Gallery()})
}

func (h *Handler) GetReviews(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": h.Ses.Reviews()})
}

func (h *Handler) GetPages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"pages": h.Ses.Pages()})
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	for _, p := range h.Ses.Pages() {
		if p.ID == id {
			utils.RespondWithJSON(w, http.StatusOK, utils.M{"page": p})
			return
		}
	}
	utils.RespondWithError(w, http.StatusNotFound, "Page not found")
}

// ---------- Customer writes ----------

// AddReview appends one review from the authenticated user.
func (h *Handler) AddReview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.RequestClaims(r)
	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Rating < 1 || input.Rating > 5 || input.Comment == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating (1-5) and comment are required")
		return
	}

	review := models.Review{
		ID:       utils.GetUUID(),
		UserID:   claims.UserID,
		UserName: claims.Name,
		Rating:   input.Rating,
		Comment:  input.Comment,
		Date:     time.Now().Format("02/01/2006"),
	}
	if err := SaveReviews(r.Context(), h.Ses, append(h.Ses.Reviews(), review)); err != nil {
		log.Println("review save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"review": review})
}

// ---------- Admin saves ----------
// Each takes the full desired list; removed elements are deleted remotely.

func (h *Handler) SaveServices(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.Service
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].Name == "" || list[i].Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Each service needs a name and a price")
			return
		}
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SaveServices(r.Context(), h.Ses, list); err != nil {
		log.Println("services save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save services")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"services": list})
}

func (h *Handler) SaveProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.Product
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].Name == "" || list[i].Price <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Each product needs a name and a price")
			return
		}
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SaveProducts(r.Context(), h.Ses, list); err != nil {
		log.Println("products save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save products")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": list})
}

func (h *Handler) SaveOffers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.Offer
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].Title == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Each offer needs a title")
			return
		}
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SaveOffers(r.Context(), h.Ses, list); err != nil {
		log.Println("offers save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save offers")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"offers": list})
}

func (h *Handler) SaveTeam(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.TeamMember
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].Name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Each team member needs a name")
			return
		}
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SaveTeam(r.Context(), h.Ses, list); err != nil {
		log.Println("team save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save team")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"team": list})
}

func (h *Handler) SaveGallery(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.GalleryItem
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].ImageURL == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Each gallery item needs an image")
			return
		}
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SaveGallery(r.Context(), h.Ses, list); err != nil {
		log.Println("gallery save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save gallery")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"gallery": list})
}

func (h *Handler) SaveReviewsAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.Review
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SaveReviews(r.Context(), h.Ses, list); err != nil {
		log.Println("reviews save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save reviews")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"reviews": list})
}

func (h *Handler) SavePages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var list []models.CustomPage
	if err := json.NewDecoder(r.Body).Decode(&list); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for i := range list {
		if list[i].Title == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Each page needs a title")
			return
		}
		if list[i].ID == "" {
			list[i].ID = utils.GetUUID()
		}
	}
	if err := SavePages(r.Context(), h.Ses, list); err != nil {
		log.Println("pages save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save pages")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"pages": list})
}

func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var cfg models.SiteConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if cfg.SalonName == "" || cfg.UpiID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Salon name and UPI id are required")
		return
	}
	if err := UpdateSiteConfig(r.Context(), h.Ses, cfg); err != nil {
		log.Println("config save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save config")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"config": cfg})
}

// GetUsers lists accounts for the admin panel.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"users": h.Ses.Users()})
}
