package service

import (
	"context"
	"errors"
	"fmt"

	"taxportal/internal/model"
	"taxportal/internal/repository"

	"github.com/google/uuid"
)

// TransactionService serves the read side of payment history. Writes happen
// only through TaxService.Pay.
type TransactionService interface {
	ListTransactions(ctx context.Context, actorID string, actorRole string, page, limit int) ([]TransactionResponse, int64, error)
}

type transactionService struct {
	transactions repository.TransactionRepository
}

func NewTransactionService(transactions repository.TransactionRepository) TransactionService {
	return &transactionService{transactions: transactions}
}

func (s *transactionService) ListTransactions(ctx context.Context, actorID string, actorRole string, page, limit int) ([]TransactionResponse, int64, error) {
	var filter *uuid.UUID
	if actorRole != model.RoleAdmin {
		ownerID, err := uuid.Parse(actorID)
		if err != nil {
			return nil, 0, errors.New("invalid user id")
		}
		filter = &ownerID
	}

	txs, total, err := s.transactions.List(ctx, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	res := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		res = append(res, toTransactionResponse(t))
	}

	return res, total, nil
}
