package webhook

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// Dispatcher is the post-commit observer the services invoke after a
// successful persist. Delivery is fire-and-forget: implementations must never
// propagate failures back to the triggering operation.
type Dispatcher interface {
	Dispatch(event string, data interface{})
}

// Broadcaster receives every dispatched event, subscribed or not. The
// websocket hub implements it.
type Broadcaster interface {
	Broadcast(event string, data interface{})
}

// hookInfo mirrors the subscription block of the delivery payload.
type hookInfo struct {
	ID     uuid.UUID `json:"id"`
	Event  string    `json:"event"`
	Target string    `json:"target"`
}

// payload is the body POSTed to each subscribed target.
type payload struct {
	Hook hookInfo    `json:"hook"`
	Data interface{} `json:"data"`
}

// HTTPDispatcher delivers events to subscribed targets over HTTP POST.
type HTTPDispatcher struct {
	hookRepo    repository.WebhookRepository
	client      *http.Client
	broadcaster Broadcaster
}

// NewHTTPDispatcher creates a dispatcher. broadcaster may be nil.
func NewHTTPDispatcher(hookRepo repository.WebhookRepository, timeout time.Duration, broadcaster Broadcaster) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPDispatcher{
		hookRepo:    hookRepo,
		client:      &http.Client{Timeout: timeout},
		broadcaster: broadcaster,
	}
}

// Dispatch looks up the subscriptions for the event and delivers the payload
// to each target in the background. Lookup and delivery failures are logged
// and swallowed.
func (d *HTTPDispatcher) Dispatch(event string, data interface{}) {
	if d.broadcaster != nil {
		d.broadcaster.Broadcast(event, data)
	}

	go func() {
		hooks, err := d.hookRepo.ListByEvent(event)
		if err != nil {
			log.Printf("[Webhook] Failed to list subscriptions for %s: %v", event, err)
			return
		}

		for _, hook := range hooks {
			body, err := json.Marshal(payload{
				Hook: hookInfo{ID: hook.ID, Event: hook.Event, Target: hook.Target},
				Data: data,
			})
			if err != nil {
				log.Printf("[Webhook] Failed to encode %s payload: %v", event, err)
				continue
			}

			target := hook.Target
			go func() {
				resp, err := d.client.Post(target, "application/json", bytes.NewReader(body))
				if err != nil {
					log.Printf("[Webhook] Delivery of %s to %s failed: %v", event, target, err)
					return
				}
				defer resp.Body.Close()
				if resp.StatusCode >= 300 {
					log.Printf("[Webhook] Delivery of %s to %s returned %d", event, target, resp.StatusCode)
				}
			}()
		}
	}()
}

// NoopDispatcher discards every event. Used where no delivery is wanted
// (tests, operator CLI).
type NoopDispatcher struct{}

// Dispatch does nothing.
func (NoopDispatcher) Dispatch(event string, data interface{}) {}
