package telegram

import (
	"context"
	"fmt"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/metrics"
	log "github.com/sirupsen/logrus"
	"sync"
)

type userLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// Notifier forwards notifications to the Telegram chats linked in user profiles. Deliver only queues;
// a single goroutine started by Run does the sending.
type Notifier struct {
	api    apiInterface
	users  userLookup
	queue  chan models.Notification
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

func NewNotifier(api apiInterface, users userLookup, queueSize int) *Notifier {
	return &Notifier{
		api:   api,
		users: users,
		queue: make(chan models.Notification, queueSize),
		done:  make(chan struct{}),
	}
}

// Deliver queues the notification, dropping it when the queue is full or the notifier is stopped.
func (n *Notifier) Deliver(notification models.Notification) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		metrics.TelegramDeliveriesCounter.WithLabelValues("dropped").Inc()
		return
	}

	select {
	case n.queue <- notification:
	default:
		metrics.TelegramDeliveriesCounter.WithLabelValues("dropped").Inc()
		log.Warnf("telegram queue is full, notification %s dropped", notification.ID)
	}
}

func (n *Notifier) Run() {
	defer close(n.done)
	for notification := range n.queue {
		n.send(notification)
	}
}

// Stop sends what is queued and waits for Run to return.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()
	<-n.done
}

func (n *Notifier) send(notification models.Notification) {
	user, err := n.users.GetByID(context.Background(), notification.UserID)
	if err != nil {
		log.Warnf("skipping telegram delivery of notification %s: %v", notification.ID, err)
		metrics.TelegramDeliveriesCounter.WithLabelValues("failed").Inc()
		return
	}
	if user.TelegramChatID == nil {
		metrics.TelegramDeliveriesCounter.WithLabelValues("unlinked").Inc()
		return
	}

	msg := tgbotapi.NewMessage(*user.TelegramChatID, formatNotification(notification))
	if _, err = sendWithLogError(n.api, msg); err != nil {
		metrics.TelegramDeliveriesCounter.WithLabelValues("failed").Inc()
		return
	}
	metrics.TelegramDeliveriesCounter.WithLabelValues("sent").Inc()
}

func formatNotification(notification models.Notification) string {
	return fmt.Sprintf("%s\n%s", notification.Title, notification.Message)
}
