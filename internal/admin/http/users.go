package http

import (
	"net/http"

	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
)

var (
	createUserErrors = opErrors{Conflict: "Username or email already exists", Internal: "Error creating user"}
	listUsersErrors  = opErrors{Internal: "Error fetching users"}
	getUserErrors    = opErrors{NotFound: "User not found", Internal: "Error fetching user"}
	updateUserErrors = opErrors{NotFound: "User not found", Conflict: "Username or email already exists", Internal: "Error updating user"}
	deleteUserErrors = opErrors{NotFound: "User not found", Internal: "Error deleting user"}
)

type UsersHandler struct {
	AccountService *service.AccountService
}

// HandleCreate registers an account.
//
//	@Summary		Create user
//	@Description	Creates a user, resolving or creating its tenant by name, assigns the role and returns a fresh token pair.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		adminsdk.CreateUserRequest	true	"New account"
//	@Success		201		{object}	adminsdk.CreateUserResponse
//	@Failure		400		{object}	adminsdk.APIError	"Missing fields or unknown role"
//	@Failure		409		{object}	adminsdk.APIError	"Username or email already exists"
//	@Failure		500		{object}	adminsdk.APIError
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.AccountService.Create(r.Context(), service.CreateAccountInput{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		TenantName: req.TenantName,
	})
	if err != nil {
		writeServiceError(w, r, err, createUserErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.CreateUserResponse{
		Message:      "User created successfully",
		User:         toUser(res.User),
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// HandleList returns every user.
//
//	@Summary		List users
//	@Description	Any authenticated caller can list all users across tenants.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		adminsdk.User
//	@Failure		401	{object}	adminsdk.APIError
//	@Failure		500	{object}	adminsdk.APIError
//	@Security		BearerAuth
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.AccountService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, listUsersErrors)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(users, toUser))
}

// HandleGet returns one user.
//
//	@Summary	Get user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	adminsdk.User
//	@Failure	401	{object}	adminsdk.APIError
//	@Failure	404	{object}	adminsdk.APIError	"User not found"
//	@Security	BearerAuth
//	@Router		/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	u, err := h.AccountService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, getUserErrors)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUpdate changes a user's profile, role or tenant.
//
//	@Summary	Update user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"User ID"
//	@Param		request	body		adminsdk.UpdateUserRequest	true	"Fields to change"
//	@Success	200		{object}	adminsdk.UserResponse
//	@Failure	400		{object}	adminsdk.APIError
//	@Failure	401		{object}	adminsdk.APIError
//	@Failure	404		{object}	adminsdk.APIError	"User not found"
//	@Failure	409		{object}	adminsdk.APIError
//	@Security	BearerAuth
//	@Router		/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.UpdateUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := h.AccountService.Update(r.Context(), r.PathValue("id"), service.UpdateAccountInput{
		Username:   req.Username,
		Email:      req.Email,
		Role:       req.Role,
		TenantName: req.TenantName,
	})
	if err != nil {
		writeServiceError(w, r, err, updateUserErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.UserResponse{
		Message: "User updated successfully",
		User:    toUser(u),
	})
}

// HandleDelete removes a user together with its role assignments and refresh
// tokens.
//
//	@Summary	Delete user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		string	true	"User ID"
//	@Success	200	{object}	adminsdk.UserResponse
//	@Failure	401	{object}	adminsdk.APIError
//	@Failure	404	{object}	adminsdk.APIError	"User not found"
//	@Security	BearerAuth
//	@Router		/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	u, err := h.AccountService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err, deleteUserErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.UserResponse{
		Message: "User deleted successfully",
		User:    toUser(u),
	})
}
