// Package notification exposes the append-only delivery log to the client
// app. Read-only: the log is an audit trail, written solely by the delivery
// adapter.
package notification

import (
	"context"

	"github.com/JuanDluna/biosafe/internal/domain"
)

type Service interface {
	History(ctx context.Context, userID string) ([]domain.Notification, error)
}

type store interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Notification, error)
}

type service struct {
	repo store
}

func NewService(repo store) Service {
	return &service{repo: repo}
}

func (s *service) History(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID)
}
