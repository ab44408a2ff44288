package webhookpubsub

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/errgroup"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type webhookService struct {
	store      *hookStore
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewWebhookPubSubService returns a ports.SecurePubSub notifying subscribers
// with HTTP POST requests. Requests to secured webhooks carry a bearer token
// signed with the webhook secret.
func NewWebhookPubSubService(requestTimeout time.Duration) ports.SecurePubSub {
	return &webhookService{
		store:      newHookStore(),
		httpClient: newHTTPClient(requestTimeout),
		cb:         newCircuitBreaker(),
	}
}

func (ws *webhookService) Subscribe(topic ports.Topic, endpoint, secret string) (string, error) {
	hook, err := NewWebhook(topic, endpoint, secret)
	if err != nil {
		return "", err
	}
	ws.store.add(hook)
	return hook.ID, nil
}

func (ws *webhookService) Unsubscribe(_ ports.Topic, id string) error {
	ws.store.remove(id)
	return nil
}

func (ws *webhookService) ListSubscriptionsForTopic(topic ports.Topic) []ports.Subscription {
	hooks := ws.store.forTopic(topic)
	subs := make([]ports.Subscription, len(hooks))
	for i, h := range hooks {
		subs[i] = h
	}
	return subs
}

// Publish makes a POST request to every webhook endpoint registered for the
// given topic. A circuit breaker maximizes the chances that every webhook
// gets invoked without errors.
func (ws *webhookService) Publish(topic ports.Topic, message string) error {
	hooks := ws.store.forTopic(topic)

	eg := &errgroup.Group{}
	for i := range hooks {
		hook := hooks[i]
		eg.Go(func() error { return ws.doRequest(hook, message) })
	}
	return eg.Wait()
}

func (ws *webhookService) doRequest(hook *Webhook, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if hook.IsSecured() {
			token := jwt.New(jwt.SigningMethodHS256)
			secret := []byte(hook.Secret)
			tokenString, _ := token.SignedString(secret)
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(hook.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("webhook replied with status %d: %s", status, resp)
		}
		return nil, nil
	})
	return err
}

func newCircuitBreaker() *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "webhook",
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(log.Fields{
				"from": from.String(),
				"to":   to.String(),
			}).Debugf("%s circuit breaker changed state", name)
		},
	})
}
