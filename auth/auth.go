// Package auth owns registration, login and logout. It is a thin wrapper:
// all listing semantics live elsewhere and only consume the identity this
// package puts into the request context.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"soko/apperrors"
	"soko/config"
	"soko/db"
	"soko/middleware"
	"soko/models"
	"soko/rdx"
	"soko/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

type registerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Vendor    *struct {
		Categories []string `json:"categories"`
	} `json:"vendor"`
}

// Register handles POST /api/auth/register. Vendor accounts start with a
// pending approval status and stay inactive until an admin approves them.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input registerInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validateRegister(input); err != nil {
		utils.RespondError(w, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		utils.RespondError(w, apperrors.Storage("register", err))
		return
	}
	if count > 0 {
		utils.RespondError(w, apperrors.Validation("email", "email is already registered"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		utils.RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	user := models.User{
		UserID:    utils.GetUUID(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(input.Phone),
		Password:  string(hash),
		Role:      input.Role,
		IsActive:  input.Role != models.RoleVendor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Role == models.RoleVendor {
		user.Vendor = &models.VendorProfile{
			Categories:     input.Vendor.Categories,
			ApprovalStatus: models.VendorPending,
		}
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondError(w, apperrors.Storage("register", err))
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"message": "Account created successfully",
		"data":    user,
	})
}

// Login handles POST /api/auth/login.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   token,
		"userId":  user.UserID,
		"role":    user.Role,
	})
}

// Logout handles POST /api/auth/logout, dropping the session marker.
func Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	token := r.Header.Get("Authorization")
	if token == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "No token provided")
		return
	}
	if err := rdx.RdxDel("auth:token:" + token); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to invalidate session")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out successfully"})
}

func issueToken(user models.User) (string, error) {
	claims := middleware.Claims{
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.UserID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.App.JwtSecret)
}

func validateRegister(input registerInput) error {
	ve := &apperrors.ValidationError{}

	if strings.TrimSpace(input.FirstName) == "" {
		ve.Add("firstName", "first name is required")
	}
	if strings.TrimSpace(input.LastName) == "" {
		ve.Add("lastName", "last name is required")
	}
	if !utils.IsEmailLike(input.Email) {
		ve.Add("email", "a valid email is required")
	}
	if !utils.IsPhoneLike(input.Phone) {
		ve.Add("phone", "a valid phone number is required")
	}
	if n := len(input.Password); n < 8 || n > 32 {
		ve.Add("password", "password must be between 8 and 32 characters")
	}

	switch input.Role {
	case models.RoleUser:
	case models.RoleVendor:
		if input.Vendor == nil || len(input.Vendor.Categories) == 0 {
			ve.Add("vendor.categories", "vendors must pick at least one category")
		} else {
			for i, c := range input.Vendor.Categories {
				if !models.IsValidCategory(c) {
					ve.Add(fmt.Sprintf("vendor.categories[%d]", i), "unknown category")
				}
			}
		}
	default:
		ve.Add("role", "role must be user or vendor")
	}

	return ve.OrNil()
}
