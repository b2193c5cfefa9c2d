package slackhook

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

// defaultTimeout bounds a delivery attempt when the configuration does not
// set one. The source of truth for per-sink timeouts is Config.Timeout.
const defaultTimeout = 30 * time.Second

// Transport delivers a formatted Message. Send must not block on network
// I/O and must never surface a delivery failure to the caller.
type Transport interface {
	Send(m Message)
}

// WebhookTransport posts messages to a Slack incoming webhook as
// form-encoded `payload=<JSON>` requests. Each Send dispatches a goroutine
// that owns the request for its lifetime; the delivery is registered in an
// in-flight set before any network I/O begins and deregistered exactly once
// on completion or failure. All delivery errors are absorbed silently:
// log forwarding must never slow down or crash the logging call site.
type WebhookTransport struct {
	webhookURL string
	client     *http.Client
	metrics    *deliveryMetrics

	mu       sync.Mutex
	inflight map[uuid.UUID]struct{}
	wg       sync.WaitGroup
}

// TransportOption configures a WebhookTransport.
type TransportOption func(*WebhookTransport)

// WithHTTPClient sets the HTTP client used for deliveries. The client's
// own timeout takes precedence over WithTimeout.
func WithHTTPClient(c *http.Client) TransportOption {
	return func(t *WebhookTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout bounds each delivery attempt. A non-positive duration keeps
// the default.
func WithTimeout(d time.Duration) TransportOption {
	return func(t *WebhookTransport) {
		if d > 0 {
			t.client.Timeout = d
		}
	}
}

// WithMetrics registers delivery counters and an in-flight gauge with reg.
func WithMetrics(reg prometheus.Registerer) TransportOption {
	return func(t *WebhookTransport) {
		if reg != nil {
			t.metrics = newDeliveryMetrics(reg)
		}
	}
}

// NewWebhookTransport creates a transport posting to webhookURL.
func NewWebhookTransport(webhookURL string, opts ...TransportOption) *WebhookTransport {
	t := &WebhookTransport{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: defaultTimeout},
		inflight:   make(map[uuid.UUID]struct{}),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Send serializes the message and dispatches the POST on its own goroutine.
// It returns immediately; the outcome of the delivery is not reported.
func (t *WebhookTransport) Send(m Message) {
	body, err := m.Marshal()
	if err != nil {
		// Message is a plain value type; this cannot happen in practice.
		return
	}

	id := uuid.New()

	t.track(id)
	t.wg.Add(1)

	go t.post(id, body)
}

// post performs one delivery attempt. It deregisters the delivery exactly
// once, whether the attempt completes or fails at any step.
func (t *WebhookTransport) post(id uuid.UUID, body []byte) {
	defer t.wg.Done()
	defer t.untrack(id)

	form := url.Values{"payload": {string(body)}}

	resp, err := t.client.Post(t.webhookURL,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.metrics.observe(outcomeError)

		return
	}

	defer resp.Body.Close()

	// The response body is never inspected; any response that arrives
	// without a transport-level error counts as a completed delivery.
	io.Copy(io.Discard, resp.Body)

	t.metrics.observe(outcomeOK)
}

// InFlight reports the number of deliveries currently outstanding.
func (t *WebhookTransport) InFlight() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.inflight)
}

// Flush blocks until every outstanding delivery has completed or failed.
func (t *WebhookTransport) Flush() {
	t.wg.Wait()
}

// Close flushes outstanding deliveries. It always returns nil.
func (t *WebhookTransport) Close() error {
	t.wg.Wait()

	return nil
}

func (t *WebhookTransport) track(id uuid.UUID) {
	t.mu.Lock()
	t.inflight[id] = struct{}{}
	t.mu.Unlock()

	t.metrics.trackInFlight(1)
}

func (t *WebhookTransport) untrack(id uuid.UUID) {
	t.mu.Lock()
	delete(t.inflight, id)
	t.mu.Unlock()

	t.metrics.trackInFlight(-1)
}
