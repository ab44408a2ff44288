package ports

// Topic identifies the kind of notification published by the registries.
type Topic string

// Topics published by the registries. Subscribers can use AnyTopic to receive
// every notification.
const (
	TopicListingCreated    Topic = "LISTING_CREATED"
	TopicListingRemoved    Topic = "LISTING_REMOVED"
	TopicPurchaseCompleted Topic = "PURCHASE_COMPLETED"
	TopicSwapInitiated     Topic = "SWAP_INITIATED"
	TopicSwapAccepted      Topic = "SWAP_ACCEPTED"
	TopicSwapCancelled     Topic = "SWAP_CANCELLED"

	AnyTopic Topic = "*"
)

func (t Topic) String() string {
	return string(t)
}

// Subscription is the info of a client subscribed for a topic.
type Subscription interface {
	Topic() Topic
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// SecurePubSub defines the methods of the notification service the registries
// publish on after every committed operation. Publish failures never
// propagate into the operation result: notifications are decoupled from the
// success or failure of the state transition they describe.
type SecurePubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic Topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the subscription with the given id for a topic.
	Unsubscribe(topic Topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed for
	// a certain topic.
	ListSubscriptionsForTopic(topic Topic) []Subscription
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic Topic, message string) error
}
