package middleware

import (
	"context"
	"net/http"

	"lotoria/globals"
	"lotoria/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

// JWT claims
type Claims struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Unlocked bool   `json:"unlocked,omitempty"`
	jwt.RegisteredClaims
}

type claimsKeyType struct{}

var claimsKey claimsKeyType

func parseClaims(tokenString string) (*Claims, bool) {
	if len(tokenString) < 8 || tokenString[:7] != "Bearer " {
		return nil, false
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString[7:], claims, func(token *jwt.Token) (any, error) {
		return globals.JwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	return claims, true
}

func Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := parseClaims(r.Header.Get("Authorization"))
		if !ok {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), globals.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, globals.RoleKey, claims.Role)
		ctx = context.WithValue(ctx, claimsKey, claims)
		next(w, r.WithContext(ctx), ps)
	}
}

// AdminOnly requires an authenticated ADMIN token.
func AdminOnly(next httprouter.Handle) httprouter.Handle {
	return Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if RequestClaims(r) == nil || RequestClaims(r).Role != models.RoleAdmin {
			http.Error(w, "Access denied", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	})
}

// AdminUnlocked additionally requires the secondary admin-lock gate to have
// been passed; mutation routes in the admin panel sit behind it.
func AdminUnlocked(next httprouter.Handle) httprouter.Handle {
	return AdminOnly(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if !RequestClaims(r).Unlocked {
			http.Error(w, "Admin panel locked", http.StatusForbidden)
			return
		}
		next(w, r, ps)
	})
}

// RequestClaims returns the verified claims stashed by Authenticate, or nil.
func RequestClaims(r *http.Request) *Claims {
	claims, _ := r.Context().Value(claimsKey).(*Claims)
	return claims
}

// RequestUserID returns the authenticated user id, or "".
func RequestUserID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}
