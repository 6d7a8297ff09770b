package handlers

import (
	"errors"
	"net/http"

	"github.com/Phaneesh28/project-backend/internal/domain"
	"github.com/Phaneesh28/project-backend/internal/http/response"
	"github.com/Phaneesh28/project-backend/pkg/logger"
)

// Register handles account registration. No token is issued; the client
// logs in separately.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	account, err := h.authService.Register(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	case errors.Is(err, domain.ErrAccountExists):
		response.AlreadyExists(w, "User Already Exists")
		return
	default:
		logger.ErrorContext(r.Context(), "Registration failed", "error", err)
		response.InternalError(w, "Internal Server Error")
		return
	}

	logger.InfoContext(r.Context(), "Account registered", "username", account.Username)
	response.WriteJSON(w, http.StatusCreated, response.MessageResponse{Message: "Registered Successfully"})
}

// Login exchanges a username and password for a bearer token. Unknown
// usernames and wrong passwords get the same answer.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	if h.config.Auth.Base64LoginPassword {
		if err := req.DecodePassword(); err != nil {
			response.BadRequest(w, err.Error())
			return
		}
	}

	resp, err := h.authService.Login(r.Context(), &req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(w, err.Error())
		return
	case errors.Is(err, domain.ErrInvalidCredentials):
		logger.WarnContext(r.Context(), "Login rejected", "username", req.Username, "reason", err.Error())
		response.InvalidCredentials(w, "Invalid Credentials")
		return
	default:
		logger.ErrorContext(r.Context(), "Login failed", "error", err)
		response.InternalError(w, "Internal Server Error")
		return
	}

	response.WriteJSON(w, http.StatusOK, resp)
}
