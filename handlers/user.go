package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/config"
	"github.com/ZEESHAN8692/restaurant-backend/database"
	"github.com/ZEESHAN8692/restaurant-backend/database/dbhelper"
	"github.com/ZEESHAN8692/restaurant-backend/middlewares"
	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

func Register(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Username string      `json:"username"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}
	if !utils.IsValidEmail(req.Email) {
		utils.RespondError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if len(req.Password) < 6 {
		utils.RespondError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	// back-office accounts are the only thing registration is used for
	if req.Role == "" {
		req.Role = models.RoleAdmin
	}
	if !req.Role.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid role")
		return
	}

	exists, err := dbhelper.IsUserExists(req.Email)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to check user existence")
		return
	}
	if exists {
		utils.RespondError(w, http.StatusConflict, "email already exists")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	var userID uuid.UUID
	txErr := database.Tx(func(tx *sql.Tx) error {
		userID, err = dbhelper.CreateUser(tx, req.Username, req.Email, hashedPassword, req.Role)
		return err
	})
	if txErr != nil {
		logrus.WithError(txErr).Error("failed to create user")
		utils.RespondError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user_id": userID,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if !utils.IsValidEmail(req.Email) {
		utils.RespondError(w, http.StatusBadRequest, "invalid email format")
		return
	}

	user, err := dbhelper.GetUserByEmail(req.Email)
	if err == sql.ErrNoRows {
		utils.RespondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	} else if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		utils.RespondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}

	setRefreshCookie(w, refreshToken, time.Now().Add(7*24*time.Hour))

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"message":      "Logged in successfully",
		"user_id":      user.ID,
		"username":     user.Username,
		"role":         user.Role,
		"access_token": accessToken,
	})
}

func RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "refresh token missing")
		return
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return config.SecretKey, nil
	})
	if err != nil || !token.Valid {
		utils.RespondError(w, http.StatusUnauthorized, "invalid or expired refresh token")
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "invalid refresh token subject")
		return
	}

	user, err := dbhelper.GetUserByID(userID)
	if err == sql.ErrNoRows {
		utils.RespondError(w, http.StatusUnauthorized, "user no longer exists")
		return
	} else if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "server error")
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(user.ID, user.Role)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate tokens")
		return
	}

	setRefreshCookie(w, refreshToken, time.Now().Add(7*24*time.Hour))

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"access_token": accessToken,
	})
}

func Logout(w http.ResponseWriter, r *http.Request) {
	setRefreshCookie(w, "", time.Unix(0, 0))
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

func CurrentUserDetails(w http.ResponseWriter, r *http.Request) {
	claims, err := middlewares.GetAuthenticatedUser(r)
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := dbhelper.GetUserByID(claims.UserID)
	if err == sql.ErrNoRows {
		utils.RespondError(w, http.StatusNotFound, "user not found")
		return
	} else if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	utils.RespondJSON(w, http.StatusOK, user)
}

func setRefreshCookie(w http.ResponseWriter, value string, expires time.Time) {
	cookie := &http.Cookie{
		Name:     "refresh_token",
		Value:    value,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		Expires:  expires,
	}
	if value == "" {
		cookie.MaxAge = -1
	}
	http.SetCookie(w, cookie)
}
