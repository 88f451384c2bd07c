// Package http provides HTTP handlers for the provider resource
// directory.
package http

import (
	"context"
	"net/http"

	"github.com/teamsalmon/transponder/internal/models"
	"github.com/teamsalmon/transponder/internal/service"
)

// ResourceService defines the interface for directory operations
// required by the ResourceHandler.
type ResourceService interface {
	// Create validates and stores a newly submitted resource.
	Create(ctx context.Context, sub service.ResourceSubmission) error
	// List returns verified resources in a category matching the filters.
	List(ctx context.Context, category string, filters models.ResourceFilters) ([]models.Resource, error)
	// ListUnverified returns resources awaiting volunteer review.
	ListUnverified(ctx context.Context) ([]models.Resource, error)
	// Verify marks a (category, name) resource verified.
	Verify(ctx context.Context, category, name string) error
	// Delete removes a (category, name) resource.
	Delete(ctx context.Context, category, name string) error
	// Categories returns distinct category values, optionally
	// restricted by verified state.
	Categories(ctx context.Context, verified *bool) ([]string, error)
}

// ResourceHandler handles HTTP requests for browsing, submitting,
// verifying, and deleting directory resources.
type ResourceHandler struct {
	ResourceService ResourceService
}

// filterActive reports whether a capability filter query parameter is
// switched on. Anything other than "true" (including absence) leaves
// the filter off.
func filterActive(r *http.Request, param string) bool {
	return r.URL.Query().Get(param) == "true"
}

// resourceList keeps JSON output a list even when empty, so the client
// script can iterate without a null check.
func resourceList(resources []models.Resource) map[string]any {
	if resources == nil {
		resources = []models.Resource{}
	}
	return map[string]any{"resources": resources}
}

func categoryList(categories []string) map[string]any {
	if categories == nil {
		categories = []string{}
	}
	return map[string]any{"types": categories}
}

// Disp handles GET /_disp requests: the public listing of verified
// resources in a category, narrowed by any active capability filters.
func (h *ResourceHandler) Disp(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("res_type")
	filters := models.ResourceFilters{
		TakesOHP:         filterActive(r, "filter_ohp"),
		MonitorsHormones: filterActive(r, "filter_monitor_hormones"),
		TakesPrivateIns:  filterActive(r, "filter_pvt_ins"),
	}

	resources, err := h.ResourceService.List(r.Context(), category, filters)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, resourceList(resources))
}

// Create handles GET /_create requests, one query parameter per
// resource attribute. The submission always enters the directory
// unverified.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sub := service.ResourceSubmission{
		Category:   q.Get("res_type"),
		Name:       q.Get("res_name"),
		OfficeName: q.Get("office_name"),
		Address:    q.Get("address"),
		Phone:      q.Get("phone"),
		Email:      q.Get("email"),
		Website:    q.Get("website"),

		TakesOHP:           q.Get("takes_ohp"),
		TakesPrivateIns:    q.Get("takes_pvt_ins"),
		SlidingScale:       q.Get("sliding_scale"),
		DiversityTrained:   q.Get("diversity_trained"),
		InclusivePaperwork: q.Get("inclusive_paperwork"),
		AsksPronoun:        q.Get("asks_pronoun"),
		MonitorsHormones:   q.Get("monitors_hormones"),

		Notes: q.Get("notes"),
	}

	if err := h.ResourceService.Create(r.Context(), sub); err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, map[string]string{"message": "Resource submitted for review"})
}

// Unverified handles GET /_unverified requests (volunteer-only),
// listing every resource awaiting review.
func (h *ResourceHandler) Unverified(w http.ResponseWriter, r *http.Request) {
	resources, err := h.ResourceService.ListUnverified(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, resourceList(resources))
}

// Verify handles GET /_verify requests (volunteer-only). On success it
// responds with the remaining unverified resources so the review page
// can refresh in place.
func (h *ResourceHandler) Verify(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("res_type")
	name := r.URL.Query().Get("res_name")

	if err := h.ResourceService.Verify(r.Context(), category, name); err != nil {
		writeError(w, err)
		return
	}
	h.Unverified(w, r)
}

// Del handles GET /_del requests (volunteer-only). Like Verify, it
// responds with the remaining unverified resources.
func (h *ResourceHandler) Del(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("res_type")
	name := r.URL.Query().Get("res_name")

	if err := h.ResourceService.Delete(r.Context(), category, name); err != nil {
		writeError(w, err)
		return
	}
	h.Unverified(w, r)
}

// AllCategories handles GET /_allcategories requests.
func (h *ResourceHandler) AllCategories(w http.ResponseWriter, r *http.Request) {
	h.categories(w, r, nil)
}

// VerifiedCategories handles GET /_verifiedcategories requests.
func (h *ResourceHandler) VerifiedCategories(w http.ResponseWriter, r *http.Request) {
	verified := true
	h.categories(w, r, &verified)
}

// UnverifiedCategories handles GET /_unverifiedcategories requests.
func (h *ResourceHandler) UnverifiedCategories(w http.ResponseWriter, r *http.Request) {
	verified := false
	h.categories(w, r, &verified)
}

func (h *ResourceHandler) categories(w http.ResponseWriter, r *http.Request, verified *bool) {
	categories, err := h.ResourceService.Categories(r.Context(), verified)
	if err != nil {
		writeError(w, err)
		return
	}
	writeResult(w, categoryList(categories))
}
