package service

import (
	"context"

	"batchforge/internal/dto"
	"batchforge/internal/model"
	"batchforge/internal/repository"

	"github.com/google/uuid"
)

// GenealogyService answers single-hop traceability queries against the
// transaction ledger: the transactions at a lot, those at each immediate
// parent lot, and those consuming the lot downstream. Callers wanting the
// full lineage graph walk the returned parent/child lots themselves.
type GenealogyService interface {
	GetGenealogy(ctx context.Context, lotNumber string) (*dto.GenealogyResponse, error)
}

type genealogyService struct {
	txRepo repository.TransactionRepository
}

func NewGenealogyService(txRepo repository.TransactionRepository) GenealogyService {
	return &genealogyService{txRepo: txRepo}
}

func (s *genealogyService) GetGenealogy(ctx context.Context, lotNumber string) (*dto.GenealogyResponse, error) {
	atLot, err := s.txRepo.ListByLot(ctx, lotNumber)
	if err != nil {
		return nil, err
	}

	// Immediate ancestry: the lots this lot's material came from
	parentLots := make([]string, 0, len(atLot))
	seenParents := make(map[string]struct{})
	for _, t := range atLot {
		if t.ParentLotID == nil || *t.ParentLotID == "" {
			continue
		}
		if _, ok := seenParents[*t.ParentLotID]; ok {
			continue
		}
		seenParents[*t.ParentLotID] = struct{}{}
		parentLots = append(parentLots, *t.ParentLotID)
	}

	parents, err := s.txRepo.ListByLots(ctx, parentLots)
	if err != nil {
		return nil, err
	}

	// Immediate descendants: transactions that consumed this lot
	children, err := s.txRepo.ListByParentLot(ctx, lotNumber)
	if err != nil {
		return nil, err
	}

	// Flatten and de-duplicate — a transaction can match more than one slice
	seen := make(map[uuid.UUID]struct{})
	flat := make([]dto.TransactionResponse, 0, len(atLot)+len(parents)+len(children))
	appendAll := func(txs []model.BatchTransaction) {
		for i := range txs {
			if _, ok := seen[txs[i].ID]; ok {
				continue
			}
			seen[txs[i].ID] = struct{}{}
			flat = append(flat, transactionToResponse(&txs[i]))
		}
	}
	appendAll(atLot)
	appendAll(parents)
	appendAll(children)

	return &dto.GenealogyResponse{LotNumber: lotNumber, Transactions: flat}, nil
}
