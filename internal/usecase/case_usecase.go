package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"nyayapath/internal/domain/entity"
	"nyayapath/internal/domain/repository"
	"nyayapath/pkg/errors"
)

type CaseUseCase struct {
	caseRepo repository.CaseRepository
}

func NewCaseUseCase(caseRepo repository.CaseRepository) *CaseUseCase {
	return &CaseUseCase{caseRepo: caseRepo}
}

func (uc *CaseUseCase) GetCase(ctx context.Context, id string) (*entity.CaseScenario, error) {
	scenario, err := uc.caseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NotFound("Case", err)
	}
	return scenario, nil
}

func (uc *CaseUseCase) ListCases(ctx context.Context, difficulty entity.Difficulty, limit, offset int) ([]*entity.CaseScenario, int64, error) {
	if difficulty != "" && !difficulty.Valid() {
		return nil, 0, errors.BadRequest("Invalid difficulty filter", nil)
	}
	return uc.caseRepo.List(ctx, difficulty, limit, offset)
}

func (uc *CaseUseCase) CreateCase(ctx context.Context, scenario *entity.CaseScenario) (*entity.CaseScenario, error) {
	if scenario.ID == "" {
		scenario.ID = uuid.New().String()
	}
	if scenario.Status == "" {
		scenario.Status = "active"
	}
	if err := scenario.Validate(); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	now := time.Now()
	scenario.CreatedAt = now
	scenario.UpdatedAt = now

	if err := uc.caseRepo.Create(ctx, scenario); err != nil {
		return nil, errors.Internal("Failed to create case", err)
	}
	return scenario, nil
}

func (uc *CaseUseCase) UpdateCase(ctx context.Context, scenario *entity.CaseScenario) (*entity.CaseScenario, error) {
	existing, err := uc.caseRepo.GetByID(ctx, scenario.ID)
	if err != nil {
		return nil, errors.NotFound("Case", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, errors.BadRequest(err.Error(), err)
	}

	scenario.CreatedAt = existing.CreatedAt
	scenario.UpdatedAt = time.Now()

	if err := uc.caseRepo.Update(ctx, scenario); err != nil {
		return nil, errors.Internal("Failed to update case", err)
	}
	return scenario, nil
}

func (uc *CaseUseCase) DeleteCase(ctx context.Context, id string) error {
	if _, err := uc.caseRepo.GetByID(ctx, id); err != nil {
		return errors.NotFound("Case", err)
	}
	if err := uc.caseRepo.Delete(ctx, id); err != nil {
		return errors.Internal("Failed to delete case", err)
	}
	return nil
}
