package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Sudheer2002-ui/employeedirbackend/models"
	"github.com/Sudheer2002-ui/employeedirbackend/repository"
)

// Claims is the JWT payload issued at login. The username travels as a
// custom claim; the credential-row id, where the backend has one, becomes
// the subject.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type AuthHandler struct {
	UserRepo   repository.UserRepository
	JWTSecret  []byte
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthHandler(userRepo repository.UserRepository, secret string, ttlMinutes, bcryptCost int) *AuthHandler {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &AuthHandler{
		UserRepo:   userRepo,
		JWTSecret:  []byte(secret),
		TokenTTL:   time.Duration(ttlMinutes) * time.Minute,
		BcryptCost: bcryptCost,
	}
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload: " + err.Error()})
		return
	}

	if payload.Username == "" || payload.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username and password are required."})
		return
	}

	user := &models.User{Username: payload.Username}
	if err := user.SetPassword(payload.Password, h.BcryptCost); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	if err := h.UserRepo.Create(r.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username is already taken."})
			return
		}
		log.Printf("Error registering user '%s': %v", payload.Username, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully."})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request payload: " + err.Error()})
		return
	}

	if payload.Username == "" || payload.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Username and password are required."})
		return
	}

	user, err := h.UserRepo.GetByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password."})
			return
		}
		log.Printf("Error looking up user '%s': %v", payload.Username, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	if !user.CheckPassword(payload.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password."})
		return
	}

	tokenString, err := h.issueToken(user)
	if err != nil {
		log.Printf("Error signing token for user '%s': %v", payload.Username, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error.", "error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Login successful.", "token": tokenString})
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if user.ID != 0 {
		claims.Subject = fmt.Sprint(user.ID)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.JWTSecret)
}
