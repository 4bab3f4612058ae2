package port

import (
	"context"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/dto"
)

// InteractionPublisher публикует события взаимодействия пользователя с дашбордом (Port)
// Реализация в Infrastructure слое (NATS)
type InteractionPublisher interface {
	// PublishInteraction отправляет событие выполнения правила
	PublishInteraction(ctx context.Context, event *dto.InteractionEventDTO) error

	// Close закрывает соединение с брокером
	Close() error
}
