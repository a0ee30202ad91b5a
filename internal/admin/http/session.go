package http

import (
	"net/http"

	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
)

var (
	loginErrors   = opErrors{Internal: "Error logging in"}
	refreshErrors = opErrors{Internal: "Error refreshing token"}
	logoutErrors  = opErrors{NotFound: "Refresh token not found", Internal: "Error logging out"}
)

type SessionHandler struct {
	SessionService *service.SessionService
}

// HandleLogin exchanges credentials for a token pair.
//
//	@Summary		Login
//	@Description	Unknown email and wrong password produce the same response.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	adminsdk.LoginResponse
//	@Failure		400		{object}	adminsdk.APIError	"Email and password are required"
//	@Failure		401		{object}	adminsdk.APIError	"Invalid email or password"
//	@Router			/login [post].
func (h *SessionHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.SessionService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err, loginErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.LoginResponse{
		Message:      "Login successful",
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// HandleRefresh mints a new access token from a stored refresh token.
//
//	@Summary	Refresh access token
//	@Tags		Session
//	@Accept		json
//	@Produce	json
//	@Param		request	body		adminsdk.RefreshTokenRequest	true	"Refresh token"
//	@Success	200		{object}	adminsdk.RefreshTokenResponse
//	@Failure	400		{object}	adminsdk.APIError	"Refresh token is required"
//	@Failure	401		{object}	adminsdk.APIError	"Invalid or expired refresh token"
//	@Router		/refresh-token [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RefreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	access, err := h.SessionService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err, refreshErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.RefreshTokenResponse{AccessToken: access})
}

// HandleLogout deletes a stored refresh token.
//
//	@Summary	Logout
//	@Tags		Session
//	@Accept		json
//	@Produce	json
//	@Param		request	body		adminsdk.RefreshTokenRequest	true	"Refresh token"
//	@Success	200		{object}	adminsdk.MessageResponse
//	@Failure	400		{object}	adminsdk.APIError	"Refresh token is required"
//	@Failure	404		{object}	adminsdk.APIError	"Refresh token not found"
//	@Router		/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.RefreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.SessionService.Logout(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, r, err, logoutErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.MessageResponse{Message: "Logged out successfully"})
}
