package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"lotoria/catalog"
	"lotoria/globals"
	"lotoria/middleware"
	"lotoria/mirror"
	"lotoria/models"
	"lotoria/seed"
	"lotoria/store"
	"lotoria/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL = 24 * time.Hour
	unlockTokenTTL = 30 * time.Minute
)

type Handler struct {
	Ses *mirror.Session
}

func NewHandler(ses *mirror.Session) *Handler {
	return &Handler{Ses: ses}
}

func generateToken(u models.User, unlocked bool, ttl time.Duration) (string, error) {
	claims := middleware.Claims{
		UserID:   u.ID,
		Name:     u.Name,
		Role:     u.Role,
		Unlocked: unlocked,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}

// RequestOTP issues a one-time code for the given mobile number.
func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Mobile string `json:"mobile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Mobile == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Mobile number is required")
		return
	}
	if err := issueOTP(input.Mobile); err != nil {
		log.Println("otp issue failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send OTP")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// Login resolves a user strictly by exact mobile match after OTP verification.
// A missing user is reported, never auto-created.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Mobile string `json:"mobile"`
		OTP    string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Mobile == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Mobile number is required")
		return
	}
	if !verifyOTP(input.Mobile, input.OTP) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}

	user, ok := h.Ses.LoginUser(input.Mobile)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	token, err := generateToken(user, false, accessTokenTTL)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "user": user})
}

// Register creates a new customer account keyed by mobile number.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Mobile   string `json:"mobile"`
		Email    string `json:"email"`
		Address  string `json:"address"`
		Password string `json:"password"`
		OTP      string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Mobile == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and mobile are required")
		return
	}
	if !verifyOTP(input.Mobile, input.OTP) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}
	if _, exists := h.Ses.LoginUser(input.Mobile); exists {
		utils.RespondWithError(w, http.StatusConflict, "Mobile number already registered")
		return
	}

	user := models.User{
		ID:      utils.GetUUID(),
		Name:    input.Name,
		Mobile:  input.Mobile,
		Email:   input.Email,
		Address: input.Address,
		Role:    models.RoleCustomer,
	}
	if input.Mobile == seed.AdminMobile() {
		user.Role = models.RoleAdmin
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store password")
			return
		}
		user.Password = string(hash)
	}

	// the mirror check above is a fast path; the store's unique mobile index
	// decides races between simultaneous signups
	if err := catalog.SaveUser(r.Context(), h.Ses, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.RespondWithError(w, http.StatusConflict, "Mobile number already registered")
			return
		}
		log.Println("signup save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	token, err := generateToken(user, false, accessTokenTTL)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"token": token, "user": user})
}

// UpdateProfile lets an authenticated user change their own details.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := middleware.RequestUserID(r)
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Address  string `json:"address"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	found := false
	for _, u := range h.Ses.Users() {
		if u.ID == userID {
			user, found = u, true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Email != "" {
		user.Email = input.Email
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store password")
			return
		}
		user.Password = string(hash)
	}

	if err := catalog.SaveUser(r.Context(), h.Ses, user); err != nil {
		log.Println("profile save failed:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"user": user})
}

// Unlock is the secondary password gate in front of the admin panel. It checks
// the caller's stored password hash, falling back to ADMIN_UNLOCK_FALLBACK,
// and mints a short-lived elevated token.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	claims := middleware.RequestClaims(r)
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Password is required")
		return
	}

	var admin models.User
	found := false
	for _, u := range h.Ses.Users() {
		if u.ID == claims.UserID {
			admin, found = u, true
			break
		}
	}
	if !found {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	ok := false
	if admin.Password != "" {
		ok = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(input.Password)) == nil
	}
	if !ok {
		fallback := globals.Getenv("ADMIN_UNLOCK_FALLBACK", "")
		ok = fallback != "" && input.Password == fallback
	}
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Wrong password")
		return
	}

	token, err := generateToken(admin, true, unlockTokenTTL)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token})
}
