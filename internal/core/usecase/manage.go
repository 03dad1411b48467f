package usecase

import (
	"context"
	"fmt"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/ports"
)

// ManageReportsUseCase covers the read and delete side of the report store.
type ManageReportsUseCase struct {
	repo    ports.ReportRepository
	storage ports.ObjectStorage
}

func NewManageReportsUseCase(repo ports.ReportRepository, storage ports.ObjectStorage) *ManageReportsUseCase {
	return &ManageReportsUseCase{repo: repo, storage: storage}
}

func (uc *ManageReportsUseCase) Get(ctx context.Context, id string) (*domain.Report, error) {
	report, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch report by id: %w", err)
	}
	return report, nil
}

func (uc *ManageReportsUseCase) List(ctx context.Context, limit, offset int) ([]domain.Report, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	reports, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

// Delete removes the metadata row first, then the stored files. A file that
// fails to delete is reported but does not resurrect the report.
func (uc *ManageReportsUseCase) Delete(ctx context.Context, id string) error {
	report, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch report by id: %w", err)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete report metadata: %w", err)
	}

	for _, file := range report.Files {
		if err := uc.storage.Delete(ctx, file.StoragePath); err != nil {
			return fmt.Errorf("delete stored file %q: %w", file.StoragePath, err)
		}
	}
	return nil
}
