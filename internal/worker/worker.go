package worker

import (
	"context"
)

// Worker - общий контракт фоновых обработчиков очередей.
// Start блокирует до отмены контекста или вызова Stop.
type Worker interface {
	// Start запускает цикл обработки
	Start(ctx context.Context) error

	// Stop сигнализирует о завершении; идемпотентен
	Stop() error

	// Name возвращает имя воркера для логов
	Name() string
}
