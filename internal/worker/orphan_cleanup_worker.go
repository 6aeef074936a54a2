package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"pdfsearch/internal/model"
	rabbitmqClient "pdfsearch/internal/platform/rabbitmq"
)

var errForeignLocation = errors.New("orphan location outside storage")

// FileDeleter removes a stored file by location. Contains reports whether a
// location belongs to the storage at all.
type FileDeleter interface {
	Contains(location string) bool
	Delete(ctx context.Context, location string) error
}

// ChannelOpener is satisfied by *amqp.Connection.
type ChannelOpener interface {
	Channel() (*amqp.Channel, error)
}

// OrphanCleanupWorker deletes uploads that never became a Document.
type OrphanCleanupWorker struct {
	conn      ChannelOpener
	files     FileDeleter
	queueName string
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOrphanCleanupWorker(conn ChannelOpener, files FileDeleter, queueName string, logger *slog.Logger) *OrphanCleanupWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &OrphanCleanupWorker{
		conn:      conn,
		files:     files,
		queueName: queueName,
		logger:    logger.With("component", "orphan_cleanup_worker"),
	}
}

func (w *OrphanCleanupWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	ch, err := w.conn.Channel()
	if err != nil {
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := rabbitmqClient.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		return err
	}
	if err := ch.Qos(8, 0, false); err != nil {
		_ = ch.Close()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	// set only once consuming, so a failed Start can be retried
	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.handle(workerCtx, d.Body); err != nil {
					w.logger.Warn("orphan cleanup failed", "error", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *OrphanCleanupWorker) handle(ctx context.Context, body []byte) error {
	var orphan model.OrphanedFile
	if err := json.Unmarshal(body, &orphan); err != nil {
		return fmt.Errorf("decode orphan message failed: %w", err)
	}
	if orphan.Location == "" {
		return fmt.Errorf("orphan message has no location")
	}
	if !w.files.Contains(orphan.Location) {
		return fmt.Errorf("%w: %s", errForeignLocation, orphan.Location)
	}
	if err := w.files.Delete(ctx, orphan.Location); err != nil {
		return err
	}
	w.logger.Info("orphaned upload deleted",
		"location", orphan.Location,
		"storage_name", orphan.StorageName,
		"reason", orphan.Reason,
	)
	return nil
}

func (w *OrphanCleanupWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
