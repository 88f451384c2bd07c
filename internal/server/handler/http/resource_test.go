package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/teamsalmon/transponder/internal/models"
	"github.com/teamsalmon/transponder/internal/service"
)

// fakeResourceService implements ResourceService for testing.
type fakeResourceService struct {
	createdSub   service.ResourceSubmission
	createErr    error
	listCategory string
	listFilters  models.ResourceFilters
	listResult   []models.Resource
	listErr      error
	unverified   []models.Resource
	verifyErr    error
	deleteErr    error

	verifiedKey [2]string
	deletedKey  [2]string
	catVerified *bool
	categories  []string
}

func (f *fakeResourceService) Create(ctx context.Context, sub service.ResourceSubmission) error {
	f.createdSub = sub
	return f.createErr
}
func (f *fakeResourceService) List(ctx context.Context, category string, filters models.ResourceFilters) ([]models.Resource, error) {
	f.listCategory = category
	f.listFilters = filters
	return f.listResult, f.listErr
}
func (f *fakeResourceService) ListUnverified(ctx context.Context) ([]models.Resource, error) {
	return f.unverified, nil
}
func (f *fakeResourceService) Verify(ctx context.Context, category, name string) error {
	f.verifiedKey = [2]string{category, name}
	return f.verifyErr
}
func (f *fakeResourceService) Delete(ctx context.Context, category, name string) error {
	f.deletedKey = [2]string{category, name}
	return f.deleteErr
}
func (f *fakeResourceService) Categories(ctx context.Context, verified *bool) ([]string, error) {
	f.catVerified = verified
	return f.categories, nil
}

func TestResourceHandler_Disp_FilterParsing(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		filters models.ResourceFilters
	}{
		{
			name:    "no filters",
			query:   "res_type=Chiropractor",
			filters: models.ResourceFilters{},
		},
		{
			name:    "all filters on",
			query:   "res_type=Chiropractor&filter_ohp=true&filter_monitor_hormones=true&filter_pvt_ins=true",
			filters: models.ResourceFilters{TakesOHP: true, MonitorsHormones: true, TakesPrivateIns: true},
		},
		{
			name:    "non-true values leave filters off",
			query:   "res_type=Chiropractor&filter_ohp=yes&filter_pvt_ins=1",
			filters: models.ResourceFilters{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeResourceService{}
			h := &ResourceHandler{ResourceService: svc}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/_disp?"+tt.query, nil)
			h.Disp(rec, req)

			if svc.listCategory != "Chiropractor" {
				t.Errorf("category = %q; want %q", svc.listCategory, "Chiropractor")
			}
			if svc.listFilters != tt.filters {
				t.Errorf("filters = %+v; want %+v", svc.listFilters, tt.filters)
			}
		})
	}
}

func TestResourceHandler_Disp_EmptyListStaysList(t *testing.T) {
	h := &ResourceHandler{ResourceService: &fakeResourceService{}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/_disp?res_type=Dental", nil)
	h.Disp(rec, req)

	result := decodeResult(t, rec.Body).(map[string]any)
	resources, ok := result["resources"].([]any)
	if !ok {
		t.Fatalf("resources is %T; want a list", result["resources"])
	}
	if len(resources) != 0 {
		t.Errorf("expected empty list, got %v", resources)
	}
}

func TestResourceHandler_Create(t *testing.T) {
	svc := &fakeResourceService{}
	h := &ResourceHandler{ResourceService: svc}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET",
		"/_create?res_type=Chiropractor&res_name=Dr.+X&takes_ohp=yes&takes_pvt_ins=N%2FA&notes=friendly", nil)
	h.Create(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if svc.createdSub.Category != "Chiropractor" || svc.createdSub.Name != "Dr. X" {
		t.Errorf("unexpected submission key: %+v", svc.createdSub)
	}
	if svc.createdSub.TakesOHP != "yes" || svc.createdSub.TakesPrivateIns != "N/A" {
		t.Errorf("tokens not passed through raw: %+v", svc.createdSub)
	}
	if svc.createdSub.Notes != "friendly" {
		t.Errorf("notes = %q", svc.createdSub.Notes)
	}
}

func TestResourceHandler_Create_Duplicate(t *testing.T) {
	h := &ResourceHandler{ResourceService: &fakeResourceService{createErr: models.ErrDuplicateResource}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/_create?res_type=Dental&res_name=Dr.+Y", nil)
	h.Create(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if got := resultError(t, rec.Body); got != "resource already exists" {
		t.Errorf("error = %q", got)
	}
}

func TestResourceHandler_Verify_RespondsWithRemainingUnverified(t *testing.T) {
	svc := &fakeResourceService{
		unverified: []models.Resource{{Category: "Dental", Name: "Dr. Still Waiting"}},
	}
	h := &ResourceHandler{ResourceService: svc}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/_verify?res_type=Chiropractor&res_name=Dr.+X", nil)
	h.Verify(rec, req)

	if svc.verifiedKey != [2]string{"Chiropractor", "Dr. X"} {
		t.Errorf("verify keyed by %v", svc.verifiedKey)
	}
	result := decodeResult(t, rec.Body).(map[string]any)
	resources := result["resources"].([]any)
	if len(resources) != 1 {
		t.Errorf("expected the remaining unverified resource, got %v", resources)
	}
}

func TestResourceHandler_Verify_NotFound(t *testing.T) {
	h := &ResourceHandler{ResourceService: &fakeResourceService{verifyErr: models.ErrNotFound}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/_verify?res_type=Chiropractor&res_name=Dr.+Ghost", nil)
	h.Verify(rec, req)

	if got := resultError(t, rec.Body); got != "not found" {
		t.Errorf("error = %q", got)
	}
}

func TestResourceHandler_Del(t *testing.T) {
	svc := &fakeResourceService{}
	h := &ResourceHandler{ResourceService: svc}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/_del?res_type=Chiropractor&res_name=Dr.+X", nil)
	h.Del(rec, req)

	if svc.deletedKey != [2]string{"Chiropractor", "Dr. X"} {
		t.Errorf("delete keyed by %v", svc.deletedKey)
	}
}

func TestResourceHandler_Categories(t *testing.T) {
	tests := []struct {
		name         string
		call         func(h *ResourceHandler, w http.ResponseWriter, r *http.Request)
		wantVerified *bool
	}{
		{"all", (*ResourceHandler).AllCategories, nil},
		{"verified", (*ResourceHandler).VerifiedCategories, boolPtr(true)},
		{"unverified", (*ResourceHandler).UnverifiedCategories, boolPtr(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeResourceService{categories: []string{"Chiropractor"}}
			h := &ResourceHandler{ResourceService: svc}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/_categories", nil)
			tt.call(h, rec, req)

			if (svc.catVerified == nil) != (tt.wantVerified == nil) {
				t.Fatalf("verified restriction = %v; want %v", svc.catVerified, tt.wantVerified)
			}
			if svc.catVerified != nil && *svc.catVerified != *tt.wantVerified {
				t.Errorf("verified = %v; want %v", *svc.catVerified, *tt.wantVerified)
			}
			result := decodeResult(t, rec.Body).(map[string]any)
			types := result["types"].([]any)
			if len(types) != 1 || types[0] != "Chiropractor" {
				t.Errorf("unexpected types: %v", types)
			}
		})
	}
}

func boolPtr(b bool) *bool { return &b }
