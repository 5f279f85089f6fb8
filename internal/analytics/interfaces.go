package analytics

import (
	"context"

	"studenthub/internal/kafka"
)

// PopularityRepo — интерфейс репозитория популярности проектов.
type PopularityRepo interface {
	UpdatePopularity(ctx context.Context, weights map[string]int) error
	GetTopProjects(ctx context.Context, limit int) ([]string, error)
}

// PopularityService — интерфейс сервиса аналитики корзин.
type PopularityService interface {
	ProcessEvent(ctx context.Context, event kafka.Event) error
	GetTopProjects(ctx context.Context, limit int) ([]string, error)
}
