package http

import (
	"net/http"

	"github.com/aussiebroadwan/saasadmin/internal/admin/service"
	"github.com/aussiebroadwan/saasadmin/pkg/adminsdk"
	"github.com/aussiebroadwan/saasadmin/pkg/httpx"
)

var (
	createTenantErrors = opErrors{Conflict: "Tenant already exists", Internal: "Error creating tenant"}
	listTenantsErrors  = opErrors{Internal: "Error fetching tenants"}
	createOrgErrors    = opErrors{Internal: "Error creating organization"}
	listOrgsErrors     = opErrors{Internal: "Error fetching organizations"}
)

type TenantsHandler struct {
	TenantService       *service.TenantService
	OrganizationService *service.OrganizationService
}

// HandleCreate creates a tenant.
//
//	@Summary	Create tenant
//	@Tags		Tenants
//	@Accept		json
//	@Produce	json
//	@Param		request	body		adminsdk.CreateTenantRequest	true	"Tenant"
//	@Success	201		{object}	adminsdk.TenantResponse
//	@Failure	400		{object}	adminsdk.APIError	"Tenant name is required"
//	@Failure	409		{object}	adminsdk.APIError	"Tenant already exists"
//	@Router		/tenants [post].
func (h *TenantsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.TenantService.Create(r.Context(), service.CreateTenantInput{Name: req.Name})
	if err != nil {
		writeServiceError(w, r, err, createTenantErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.TenantResponse{Message: "Tenant created", Tenant: toTenant(t)})
}

// HandleList returns every tenant.
//
//	@Summary	List tenants
//	@Tags		Tenants
//	@Produce	json
//	@Success	200	{array}		adminsdk.Tenant
//	@Failure	401	{object}	adminsdk.APIError
//	@Security	BearerAuth
//	@Router		/tenants [get].
func (h *TenantsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.TenantService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, listTenantsErrors)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(tenants, toTenant))
}

// HandleCreateOrganization creates an organization under an existing tenant.
//
//	@Summary	Create organization
//	@Tags		Organizations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		adminsdk.CreateOrganizationRequest	true	"Organization"
//	@Success	201		{object}	adminsdk.OrganizationResponse
//	@Failure	400		{object}	adminsdk.APIError
//	@Failure	500		{object}	adminsdk.APIError	"Organization requires an existing tenant"
//	@Router		/organizations [post].
func (h *TenantsHandler) HandleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req adminsdk.CreateOrganizationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.OrganizationService.Create(r.Context(), service.CreateOrganizationInput{
		Name:      req.Name,
		TenantID:  req.TenantID,
		CreatedBy: req.CreatedBy,
	})
	if err != nil {
		writeServiceError(w, r, err, createOrgErrors)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, adminsdk.OrganizationResponse{
		Message:      "Organization created",
		Organization: toOrganization(o),
	})
}

// HandleListOrganizations returns every organization.
//
//	@Summary	List organizations
//	@Tags		Organizations
//	@Produce	json
//	@Success	200	{array}		adminsdk.Organization
//	@Failure	401	{object}	adminsdk.APIError
//	@Security	BearerAuth
//	@Router		/organizations [get].
func (h *TenantsHandler) HandleListOrganizations(w http.ResponseWriter, r *http.Request) {
	orgs, err := h.OrganizationService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, listOrgsErrors)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mapSlice(orgs, toOrganization))
}
