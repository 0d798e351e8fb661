package leads

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wortheat/wortheat-backend/pkg/db/models"
)

type stubLeadRepo struct {
	byCustomer map[uuid.UUID]*models.Lead
	createErr  error
	creates    int
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{byCustomer: map[uuid.UUID]*models.Lead{}}
}

func (s *stubLeadRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubLeadRepo) Create(_ context.Context, lead *models.Lead) (*models.Lead, error) {
	s.creates++
	if s.createErr != nil {
		return nil, s.createErr
	}
	lead.ID = uuid.New()
	s.byCustomer[lead.CustomerID] = lead
	return lead, nil
}

func (s *stubLeadRepo) FindByCustomer(_ context.Context, customerID uuid.UUID) (*models.Lead, error) {
	if lead, ok := s.byCustomer[customerID]; ok {
		return lead, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestCreateLeadIsIdempotent(t *testing.T) {
	repo := newStubLeadRepo()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	customerID := uuid.New()

	first, err := svc.Create(context.Background(), customerID, CreateInput{})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.Source != "app" {
		t.Fatalf("expected default source, got %s", first.Source)
	}

	second, err := svc.Create(context.Background(), customerID, CreateInput{Source: "referral"})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same lead, got %s and %s", first.ID, second.ID)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one insert, got %d", repo.creates)
	}
}
