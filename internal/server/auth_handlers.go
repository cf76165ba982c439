package server

import (
	"net/http"

	"github.com/mmynk/planboard/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *models.UserAccount `json:"user"`
	Token string              `json:"token"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, token, err := s.authSvc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, loginResponse{User: user, Token: token})
}

// handleLogout exists so clients have an explicit endpoint to call; with
// stateless tokens the session ends when the client discards its token.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims := sessionClaims(r.Context())

	user, err := s.authSvc.CurrentUser(r.Context(), claims.Username)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	claims := sessionClaims(r.Context())
	if err := s.authSvc.ChangePassword(r.Context(), claims.Username, req.OldPassword, req.NewPassword); err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

type addUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Username == "" || req.Name == "" {
		s.writeError(w, http.StatusBadRequest, "username and name are required")
		return
	}

	user, err := s.authSvc.AddUser(r.Context(), req.Username, req.Name, req.Password, req.IsAdmin)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.authSvc.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, users)
}
