package http

import (
	"net/http"

	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
)

const msgSidebarNotFound = "Sidebar config not found or access denied"

var (
	createSidebarErrors = opErrors{Internal: "Error creating sidebar config"}
	listSidebarErrors   = opErrors{Internal: "Error fetching sidebar configs"}
	updateSidebarErrors = opErrors{NotFound: msgSidebarNotFound, Internal: "Error updating sidebar config"}
	deleteSidebarErrors = opErrors{NotFound: msgSidebarNotFound, Internal: "Error deleting sidebar config"}
)

// SidebarHandler serves the caller's sidebar configs. Every route sits behind
// AuthnMiddleware.
type SidebarHandler struct {
	SidebarService *service.SidebarService
}

// HandleCreate stores a config document for the caller.
//
//	@Summary	Create sidebar config
//	@Tags		Sidebar
//	@Accept		json
//	@Produce	json
//	@Param		request	body		adminsdk.CreateSidebarConfigRequest	true	"Config"
//	@Success	201		{object}	adminsdk.SidebarConfigResponse
//	@Failure	400		{object}	adminsdk.APIError	"tenant_id and config_json are required"
//	@Failure	401		{object}	adminsdk.APIError
//	@Failure	404		{object}	adminsdk.APIError	"Tenant not found"
//	@Security	BearerAuth
//	@Router		/sidebar-configs [post].
func (h *SidebarHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req adminsdk.CreateSidebarConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.SidebarService.Create(r.Context(), service.CreateSidebarConfigInput{
		TenantID:   req.TenantID,
		UserID:     userID,
		ConfigJSON: req.ConfigJSON,
	})
	if err != nil {
		writeServiceError(w, r, err, createSidebarErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.SidebarConfigResponse{
		Message: "Sidebar config created",
		Sidebar: toSidebarConfig(c),
	})
}

// HandleList returns the caller's configs.
//
//	@Summary	List sidebar configs
//	@Tags		Sidebar
//	@Produce	json
//	@Success	200	{array}		adminsdk.SidebarConfig
//	@Failure	401	{object}	adminsdk.APIError
//	@Security	BearerAuth
//	@Router		/sidebar-configs [get].
func (h *SidebarHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	configs, err := h.SidebarService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, listSidebarErrors)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(configs, toSidebarConfig))
}

// HandleUpdate replaces the document of one of the caller's configs.
//
//	@Summary	Update sidebar config
//	@Tags		Sidebar
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Config ID"
//	@Param		request	body		adminsdk.UpdateSidebarConfigRequest	true	"Config"
//	@Success	200		{object}	adminsdk.SidebarConfigResponse
//	@Failure	400		{object}	adminsdk.APIError
//	@Failure	404		{object}	adminsdk.APIError	"Sidebar config not found or access denied"
//	@Security	BearerAuth
//	@Router		/sidebar-configs/{id} [put].
func (h *SidebarHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	var req adminsdk.UpdateSidebarConfigRequest
	if !decodeBody(w, r, &req) {
		return
	}

	c, err := h.SidebarService.Update(r.Context(), r.PathValue("id"), userID, req.ConfigJSON)
	if err != nil {
		writeServiceError(w, r, err, updateSidebarErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.SidebarConfigResponse{
		Message: "Sidebar config updated",
		Sidebar: toSidebarConfig(c),
	})
}

// HandleDelete removes one of the caller's configs.
//
//	@Summary	Delete sidebar config
//	@Tags		Sidebar
//	@Produce	json
//	@Param		id	path		string	true	"Config ID"
//	@Success	200	{object}	adminsdk.SidebarConfigResponse
//	@Failure	404	{object}	adminsdk.APIError	"Sidebar config not found or access denied"
//	@Security	BearerAuth
//	@Router		/sidebar-configs/{id} [delete].
func (h *SidebarHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := httpx.UserIDFromContext(r.Context())

	c, err := h.SidebarService.Delete(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(w, r, err, deleteSidebarErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, adminsdk.SidebarConfigResponse{
		Message: "Sidebar config deleted",
		Sidebar: toSidebarConfig(c),
	})
}
