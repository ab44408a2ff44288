package webhookpubsub

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

var knownTopics = map[ports.Topic]struct{}{
	ports.TopicListingCreated:    {},
	ports.TopicListingRemoved:    {},
	ports.TopicPurchaseCompleted: {},
	ports.TopicSwapInitiated:     {},
	ports.TopicSwapAccepted:      {},
	ports.TopicSwapCancelled:     {},
	ports.AnyTopic:               {},
}

// Webhook is a subscription notified with a POST request for every message
// published on its topic.
type Webhook struct {
	ID          string      `json:"id"`
	EventTopic  ports.Topic `json:"topic"`
	Endpoint    string      `json:"endpoint"`
	Secret      string      `json:"secret"`
}

// NewWebhook returns a webhook with a fresh id after validating the topic and
// the endpoint.
func NewWebhook(topic ports.Topic, endpoint, secret string) (*Webhook, error) {
	if _, ok := knownTopics[topic]; !ok {
		return nil, ErrInvalidTopic
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, ErrInvalidEndpoint
	}
	id := uuid.New().String()
	return &Webhook{id, topic, endpoint, secret}, nil
}

func (h *Webhook) Topic() ports.Topic {
	return h.EventTopic
}

func (h *Webhook) Id() string {
	return h.ID
}

func (h *Webhook) NotifyAt() string {
	return h.Endpoint
}

func (h *Webhook) IsSecured() bool {
	return len(h.Secret) > 0
}
