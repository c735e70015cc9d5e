package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/inkwellapp/inkwell-server/internal/http/response"
	"github.com/inkwellapp/inkwell-server/internal/service"
)

// handleRegister creates a new account and returns tokens. Shares the
// credential-endpoint rate limit with login.
// POST /api/v1/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(r.RemoteAddr) {
		response.Detail(w, http.StatusTooManyRequests, response.MsgTooManyRequests, s.logger.Logger)
		return
	}

	var req service.RegisterRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, response.MsgInvalidJSON, s.logger.Logger)
		return
	}

	resp, err := s.authService.Register(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Created(w, resp, s.logger.Logger)
}

// handleLogin verifies credentials and opens a session. Attempts are rate
// limited per client address to slow down credential guessing.
// POST /api/v1/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.loginLimiter.Allow(r.RemoteAddr) {
		response.Detail(w, http.StatusTooManyRequests, response.MsgTooManyRequests, s.logger.Logger)
		return
	}

	var req service.LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, response.MsgInvalidJSON, s.logger.Logger)
		return
	}
	req.IPAddress = r.RemoteAddr
	req.UserAgent = r.UserAgent()

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, resp, s.logger.Logger)
}

// handleRefresh rotates session tokens.
// POST /api/v1/auth/refresh
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req service.RefreshRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, response.MsgInvalidJSON, s.logger.Logger)
		return
	}
	req.IPAddress = r.RemoteAddr

	resp, err := s.authService.Refresh(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.Success(w, resp, s.logger.Logger)
}

// handleLogout revokes the session behind a refresh token.
// POST /api/v1/auth/logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req service.LogoutRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, response.MsgInvalidJSON, s.logger.Logger)
		return
	}

	if err := s.authService.Logout(r.Context(), req); err != nil {
		response.HandleError(w, err, s.logger.Logger)
		return
	}

	response.NoContent(w)
}
