package service

import (
	"context"
	"time"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/repository"
)

// QualityService persists inspection results. The store is a side channel:
// it is not cross-referenced with batch state and closing a batch does not
// require results to exist.
type QualityService interface {
	GetResults(ctx context.Context, inspectionID string) (*dto.QualityResultListResponse, error)
	ReplaceResults(ctx context.Context, inspectionID string, req dto.SaveQualityResultsRequest) (*dto.QualityResultListResponse, error)
}

type qualityService struct {
	repo repository.QualityRepository
}

func NewQualityService(repo repository.QualityRepository) QualityService {
	return &qualityService{repo: repo}
}

func (s *qualityService) GetResults(ctx context.Context, inspectionID string) (*dto.QualityResultListResponse, error) {
	results, err := s.repo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return resultsToResponse(inspectionID, results), nil
}

// ReplaceResults swaps the inspection's whole result set atomically — there
// is no merge path, and a reader never observes the set half-replaced.
func (s *qualityService) ReplaceResults(ctx context.Context, inspectionID string, req dto.SaveQualityResultsRequest) (*dto.QualityResultListResponse, error) {
	rows := make([]model.QualityResult, 0, len(req.Results))
	for _, r := range req.Results {
		rows = append(rows, model.QualityResult{
			InspectionID:  inspectionID,
			ParameterName: r.ParameterName,
			Value:         r.Value,
			UOM:           r.UOM,
			Passed:        r.Passed,
		})
	}
	if err := s.repo.Replace(ctx, inspectionID, rows); err != nil {
		return nil, err
	}
	stored, err := s.repo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	return resultsToResponse(inspectionID, stored), nil
}

func resultsToResponse(inspectionID string, results []model.QualityResult) *dto.QualityResultListResponse {
	out := make([]dto.QualityResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.QualityResultResponse{
			ID:            r.ID.String(),
			InspectionID:  r.InspectionID,
			ParameterName: r.ParameterName,
			Value:         r.Value,
			UOM:           r.UOM,
			Passed:        r.Passed,
			CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.QualityResultListResponse{InspectionID: inspectionID, Results: out}
}
