package workers

import (
	"context"
	"time"

	"board/internal/core/notification"
	notificationPort "board/internal/ports/notification"
	postPort "board/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// NotificationWorker drains the notification queue. Every pending row becomes
// a notification for the post owner and an entry in the owner's inbox.
type NotificationWorker struct {
	QueueRepo        notificationPort.QueueRepository
	PostRepo         postPort.PostRepository
	NotificationRepo notificationPort.NotificationRepository
	Inbox            notificationPort.Inbox
	BatchSize        int
	Interval         time.Duration
	Logger           *zap.Logger
}

func NewNotificationWorker(
	queueRepo notificationPort.QueueRepository,
	postRepo postPort.PostRepository,
	notificationRepo notificationPort.NotificationRepository,
	inbox notificationPort.Inbox,
	batchSize int,
	logger *zap.Logger,
) *NotificationWorker {
	return &NotificationWorker{
		QueueRepo:        queueRepo,
		PostRepo:         postRepo,
		NotificationRepo: notificationRepo,
		Inbox:            inbox,
		BatchSize:        batchSize,
		Interval:         time.Second,
		Logger:           logger,
	}
}

// Run polls the queue until ctx is cancelled.
func (w *NotificationWorker) Run(ctx context.Context) {
	w.Logger.Info("Notification worker started")
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		if _, err := w.ProcessPending(ctx); err != nil {
			w.Logger.Error("Error fetching pending notifications", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			w.Logger.Info("Notification worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// ProcessPending handles one batch of pending rows and reports how many were marked done.
func (w *NotificationWorker) ProcessPending(ctx context.Context) (int, error) {
	pending, err := w.QueueRepo.GetPending(ctx, int64(w.BatchSize))
	if err != nil {
		return 0, err
	}

	done := 0
	for _, q := range pending {
		if w.process(ctx, q) {
			done++
		}
	}
	return done, nil
}

// process returns false when the row must stay pending for a retry.
func (w *NotificationWorker) process(ctx context.Context, q *notification.Queue) bool {
	if q == nil {
		w.Logger.Error("Invalid notification queue record")
		return false
	}

	if q.PostID == uuid.Nil || q.ActorID == uuid.Nil {
		w.Logger.Error("Invalid notification queue record, dropping it", zap.Any("record", q))
		return w.markDone(ctx, q)
	}

	p, err := w.PostRepo.FindByID(ctx, q.PostID)
	if err != nil {
		w.Logger.Error("Error loading post of notification", zap.String("postID", q.PostID.String()), zap.Error(err))
		return false
	}

	switch {
	case p == nil:
		w.Logger.Debug("Post is gone, dropping notification", zap.String("queueID", q.ID.String()))
	case p.UserID == q.ActorID:
		w.Logger.Debug("Skipping notification for own action", zap.String("queueID", q.ID.String()))
	default:
		if !w.deliver(ctx, q, p.UserID) {
			return false
		}
	}
	return w.markDone(ctx, q)
}

func (w *NotificationWorker) markDone(ctx context.Context, q *notification.Queue) bool {
	if err := w.QueueRepo.MarkDone(ctx, q.ID); err != nil {
		w.Logger.Warn("Could not mark notification queue row done", zap.String("queueID", q.ID.String()), zap.Error(err))
		return false
	}
	return true
}

func (w *NotificationWorker) deliver(ctx context.Context, q *notification.Queue, recipient uuid.UUID) bool {
	createdAt := q.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	// notification id == queue id
	n := &notification.Notification{
		ID:        q.ID,
		UserID:    recipient,
		ActorID:   q.ActorID,
		PostID:    q.PostID,
		Kind:      q.Kind,
		CreatedAt: createdAt,
	}
	if err := w.NotificationRepo.Add(ctx, n); err != nil {
		w.Logger.Error("Error storing notification", zap.String("queueID", q.ID.String()), zap.Error(err))
		return false
	}

	if err := w.Inbox.Push(ctx, recipient.String(), n.ID.String(), createdAt); err != nil {
		w.Logger.Error("Error pushing notification to inbox", zap.String("userID", recipient.String()), zap.Error(err))
	} else {
		w.Logger.Info("Delivered notification", zap.String("userID", recipient.String()), zap.String("kind", string(q.Kind)))
	}
	return true
}
