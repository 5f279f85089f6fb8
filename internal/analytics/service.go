package analytics

import (
	"context"

	"studenthub/internal/kafka"

	"go.uber.org/zap"
)

type Service struct {
	repo   PopularityRepo
	logger *zap.SugaredLogger
}

func NewService(repo PopularityRepo, logger *zap.SugaredLogger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ProcessEvent добавление в корзину повышает вес проекта, удаление понижает.
// Очистка корзины и скидка на популярность не влияют
func (s *Service) ProcessEvent(ctx context.Context, event kafka.Event) error {
	if event.ItemID == "" {
		return nil // Игнорируем события без позиции
	}

	weights := make(map[string]int)
	switch event.Type {
	case kafka.EventTypeAddToCart:
		weights[event.ItemID] += 1
	case kafka.EventTypeRemoveFromCart:
		weights[event.ItemID] -= 1
	}

	if len(weights) == 0 {
		return nil
	}

	return s.repo.UpdatePopularity(ctx, weights)
}

func (s *Service) GetTopProjects(ctx context.Context, limit int) ([]string, error) {
	return s.repo.GetTopProjects(ctx, limit)
}
