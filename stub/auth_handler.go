package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/harvesthub-seeder/models"
	"github.com/raushankrgupta/harvesthub-seeder/utils"
	"golang.org/x/crypto/bcrypt"
)

// LoginHandler handles POST /api/auth/login
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	if r.Method != http.MethodPost {
		utils.RespondError(w, &logMessageBuilder, "Method not allowed", "", http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Invalid request body: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", "", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, &logMessageBuilder, "Username and password are required", "VALIDATION_ERROR", http.StatusBadRequest)
		return
	}

	user, ok := s.lookupUser(req.Username)
	if !ok || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Rejected credentials for %s", req.Username))
		utils.RespondError(w, &logMessageBuilder, "Invalid username or password", "INVALID_CREDENTIALS", http.StatusBadRequest)
		return
	}

	token, err := utils.GenerateToken(user.Username, s.secret, s.tokenTTL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to generate token: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to generate token", "", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Login successful for %s", user.Username))
	utils.RespondJSON(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    &user,
	})
}
