package catalog

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"lotoria/models"
	"lotoria/utils"

	"github.com/disintegration/imaging"
	"github.com/julienschmidt/httprouter"
)

const galleryUploadDir = "static/gallerypic"

// UploadGalleryImage stores an admin-uploaded photo, writes a resized
// thumbnail next to it and appends the item to the gallery collection.
func (h *Handler) UploadGalleryImage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to decode image")
		return
	}

	name := fmt.Sprintf("%d.jpg", time.Now().UnixNano())
	thumbDir := filepath.Join(galleryUploadDir, "thumb")
	if err := utils.EnsureDir(galleryUploadDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create upload directory")
		return
	}
	if err := utils.EnsureDir(thumbDir); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create thumbnail directory")
		return
	}

	if err := imaging.Save(img, filepath.Join(galleryUploadDir, name)); err != nil {
		log.Println("gallery image save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}
	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(thumbDir, name)); err != nil {
		log.Println("gallery thumbnail save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save thumbnail")
		return
	}

	item := models.GalleryItem{
		ID:       utils.GetUUID(),
		ImageURL: "/static/gallerypic/" + name,
		Caption:  r.FormValue("caption"),
		Category: r.FormValue("category"),
	}
	if err := SaveGallery(r.Context(), h.Ses, append(h.Ses.Gallery(), item)); err != nil {
		log.Println("gallery save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save gallery item")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"item": item})
}
