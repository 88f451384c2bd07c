// Package service provides business logic for the provider resource
// directory, delegating persistence to a ResourceRepository.
package service

import (
	"context"
	"fmt"

	"github.com/teamsalmon/transponder/internal/models"
)

// ResourceRepository defines the persistence operations needed by the
// ResourceService.
type ResourceRepository interface {
	// Exists reports whether a resource with the (category, name) pair exists.
	Exists(ctx context.Context, category, name string) (bool, error)
	// Insert stores a new resource. Returns models.ErrDuplicateResource
	// if the (category, name) pair is taken.
	Insert(ctx context.Context, res *models.Resource) error
	// ListVerified fetches verified resources in a category that satisfy
	// the active filters, ordered by name.
	ListVerified(ctx context.Context, category string, filters models.ResourceFilters) ([]models.Resource, error)
	// ListUnverified fetches all resources awaiting review, ordered by name.
	ListUnverified(ctx context.Context) ([]models.Resource, error)
	// Verify marks a resource verified, or models.ErrNotFound.
	Verify(ctx context.Context, category, name string) error
	// Delete removes a resource, or models.ErrNotFound.
	Delete(ctx context.Context, category, name string) error
	// Categories returns the distinct categories, optionally restricted
	// by verified state.
	Categories(ctx context.Context, verified *bool) ([]string, error)
}

// ResourceSubmission carries the raw form tokens of a new resource
// before tri-state normalization.
type ResourceSubmission struct {
	Category   string
	Name       string
	OfficeName string
	Address    string
	Phone      string
	Email      string
	Website    string

	TakesOHP           string
	TakesPrivateIns    string
	SlidingScale       string
	DiversityTrained   string
	InclusivePaperwork string
	AsksPronoun        string
	MonitorsHormones   string

	Notes string
}

// ResourceService implements the directory's create, list, verify, and
// delete operations.
type ResourceService struct {
	repo ResourceRepository
}

// NewResourceService constructs a ResourceService with the provided
// repository.
func NewResourceService(repo ResourceRepository) *ResourceService {
	return &ResourceService{repo: repo}
}

// Create validates and stores a newly submitted resource. Each
// capability token is normalized to a tri-state flag, and the record
// always starts unverified no matter what the client sent. Returns
// models.ErrDuplicateResource when the (category, name) pair is taken.
func (s *ResourceService) Create(ctx context.Context, sub ResourceSubmission) error {
	if sub.Category == "" {
		return &models.ValidationError{Field: "res_type", Reason: "must not be blank"}
	}
	if sub.Name == "" {
		return &models.ValidationError{Field: "res_name", Reason: "must not be blank"}
	}

	exists, err := s.repo.Exists(ctx, sub.Category, sub.Name)
	if err != nil {
		return fmt.Errorf("check resource: %w", err)
	}
	if exists {
		return models.ErrDuplicateResource
	}

	res := &models.Resource{
		Category:   sub.Category,
		Name:       sub.Name,
		OfficeName: sub.OfficeName,
		Address:    sub.Address,
		Phone:      sub.Phone,
		Email:      sub.Email,
		Website:    sub.Website,

		TakesOHP:           models.ParseTriState(sub.TakesOHP),
		TakesPrivateIns:    models.ParseTriState(sub.TakesPrivateIns),
		SlidingScale:       models.ParseTriState(sub.SlidingScale),
		DiversityTrained:   models.ParseTriState(sub.DiversityTrained),
		InclusivePaperwork: models.ParseTriState(sub.InclusivePaperwork),
		AsksPronoun:        models.ParseTriState(sub.AsksPronoun),
		MonitorsHormones:   models.ParseTriState(sub.MonitorsHormones),

		Notes:    sub.Notes,
		Verified: false,
	}
	return s.repo.Insert(ctx, res)
}

// List returns the verified resources in a category that satisfy the
// active capability filters, name-ascending.
func (s *ResourceService) List(ctx context.Context, category string, filters models.ResourceFilters) ([]models.Resource, error) {
	if category == "" {
		return nil, &models.ValidationError{Field: "res_type", Reason: "must not be blank"}
	}
	return s.repo.ListVerified(ctx, category, filters)
}

// ListUnverified returns every resource still awaiting volunteer
// review, name-ascending. Authorization is enforced at the handler
// boundary by the volunteer guard.
func (s *ResourceService) ListUnverified(ctx context.Context) ([]models.Resource, error) {
	return s.repo.ListUnverified(ctx)
}

// Verify marks the (category, name) resource verified. Re-verifying an
// already verified resource succeeds as a no-op.
func (s *ResourceService) Verify(ctx context.Context, category, name string) error {
	return s.repo.Verify(ctx, category, name)
}

// Delete removes the (category, name) resource, verified or not.
func (s *ResourceService) Delete(ctx context.Context, category, name string) error {
	return s.repo.Delete(ctx, category, name)
}

// Categories returns the distinct category values across all
// resources. A non-nil verified restricts the set to records in that
// verified state.
func (s *ResourceService) Categories(ctx context.Context, verified *bool) ([]string, error) {
	return s.repo.Categories(ctx, verified)
}
