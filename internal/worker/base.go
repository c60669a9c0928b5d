package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - встраиваемая база для воркеров: имя, логгер,
// consumer group и сигнал остановки. Закрытие stopChan - единственный
// способ остановки; повторный Stop безопасен.
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewBaseWorker создает базу воркера с открытым каналом остановки
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger,
		stopChan:      make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки; повторные вызовы - no-op
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker", zap.String("name", w.name))
		close(w.stopChan)
	})
	return nil
}

// IsStopped проверяет, был ли воркер остановлен
func (w *BaseWorker) IsStopped() bool {
	select {
	case <-w.stopChan:
		return true
	default:
		return false
	}
}

// StopChan возвращает канал остановки для select в цикле обработки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// ConsumerGroup возвращает имя consumer group
func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
