package marketplace

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type listingCreatedEvent struct {
	ListingId     uint64         `json:"listing_id"`
	AssetContract common.Address `json:"asset_contract"`
	AssetId       uint64         `json:"asset_id"`
	Price         uint64         `json:"price"`
	Seller        common.Address `json:"seller"`
}

type listingRemovedEvent struct {
	ListingId uint64         `json:"listing_id"`
	Seller    common.Address `json:"seller"`
}

type purchaseCompletedEvent struct {
	ListingId uint64         `json:"listing_id"`
	Buyer     common.Address `json:"buyer"`
	Seller    common.Address `json:"seller"`
	Price     uint64         `json:"price"`
}

// publish serializes the event and hands it to the pubsub service.
// Notifications fire only after commit and their failures are never
// propagated into the operation result.
func (s *Service) publish(topic ports.Topic, event interface{}) {
	message, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Warnf("failed to serialize %s notification", topic)
		return
	}
	if err := s.pubsub.Publish(topic, string(message)); err != nil {
		log.WithError(err).Warnf("failed to publish %s notification", topic)
	}
}
