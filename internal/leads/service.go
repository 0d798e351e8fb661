package leads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db"
	"github.com/wortheat/wortheat-backend/pkg/db/models"
	pkgerrors "github.com/wortheat/wortheat-backend/pkg/errors"
)

const defaultSource = "app"

// CreateInput carries the optional lead attribution.
type CreateInput struct {
	Source string `json:"source,omitempty"`
}

// LeadDTO is the lead shape exposed by the API.
type LeadDTO struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Source     string    `json:"source"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service defines the behavior needed by the leads controller.
type Service interface {
	Create(ctx context.Context, customerID uuid.UUID, input CreateInput) (*LeadDTO, error)
}

type service struct {
	repo Repository
}

// NewService constructs a leads service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("leads repository is required")
	}
	return &service{repo: repo}, nil
}

// Create records the customer's interest exactly once. Re-submitting returns
// the original lead; a concurrent duplicate insert resolves the same way via
// the unique constraint.
func (s *service) Create(ctx context.Context, customerID uuid.UUID, input CreateInput) (*LeadDTO, error) {
	if existing, err := s.repo.FindByCustomer(ctx, customerID); err == nil {
		return fromModel(existing), nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find lead")
	}

	source := strings.TrimSpace(input.Source)
	if source == "" {
		source = defaultSource
	}

	lead, err := s.repo.Create(ctx, &models.Lead{
		CustomerID: customerID,
		Source:     source,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			existing, findErr := s.repo.FindByCustomer(ctx, customerID)
			if findErr != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, findErr, "find lead after duplicate insert")
			}
			return fromModel(existing), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create lead")
	}
	return fromModel(lead), nil
}

func fromModel(lead *models.Lead) *LeadDTO {
	return &LeadDTO{
		ID:         lead.ID,
		CustomerID: lead.CustomerID,
		Source:     lead.Source,
		CreatedAt:  lead.CreatedAt,
	}
}
