package route

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/scenic-route-service/internal/domain"
	"github.com/scenic-route-service/internal/domain/repository"
	"github.com/scenic-route-service/internal/usecase/dto"
	"github.com/scenic-route-service/internal/worker"
	"go.uber.org/zap"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
)

// RouteProcessor выполняет пайплайн генерации для события из стрима
type RouteProcessor interface {
	Process(ctx context.Context, event dto.RouteGenerateEvent) error
}

// RouteGenerationWorker обрабатывает события генерации маршрутов из стрима
type RouteGenerationWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	routeUC      RouteProcessor
	consumerName string
	batchSize    int
}

// NewRouteGenerationWorker создает новый RouteGenerationWorker
func NewRouteGenerationWorker(
	streamRepo repository.StreamRepository,
	routeUC RouteProcessor,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *RouteGenerationWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &RouteGenerationWorker{
		BaseWorker:   worker.NewBaseWorker("route-generation", consumerGroup, logger),
		streamRepo:   streamRepo,
		routeUC:      routeUC,
		consumerName: consumerName,
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *RouteGenerationWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting RouteGenerationWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamRouteGenerate, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				time.Sleep(time.Second) // пауза при ошибке
				continue
			}

			if processed == 0 {
				time.Sleep(emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и обрабатывает пачку сообщений.
// Возвращает количество обработанных сообщений
func (w *RouteGenerationWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamRouteGenerate,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil // очередь пуста
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := w.parseMessage(msg)
		if err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			// ACK битое сообщение чтобы не застревало
			w.ack(ctx, msg.ID)
			continue
		}

		if err := w.routeUC.Process(ctx, *event); err != nil {
			logger.Error("Route generation failed",
				zap.String("message_id", msg.ID),
				zap.String("generation_id", event.GenerationID.String()),
				zap.Error(err))

			// Пайплайн уже зафиксировал failed-статус в хранилище, а
			// повтор был бы no-op: запись терминальна и все UPDATE
			// предикатированы на status = 'processing'. ACK сразу,
			// иначе сообщение навсегда зависает в pending-списке группы.
			w.ack(ctx, msg.ID)
			continue
		}

		w.ack(ctx, msg.ID)
	}

	return len(messages), nil
}

// parseMessage десериализует событие генерации из сообщения стрима
func (w *RouteGenerationWorker) parseMessage(msg domain.StreamMessage) (*dto.RouteGenerateEvent, error) {
	var event dto.RouteGenerateEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &event, nil
}

func (w *RouteGenerationWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamRouteGenerate, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
