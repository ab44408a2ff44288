package swap

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	log "github.com/sirupsen/logrus"

	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
)

type swapEvent struct {
	SwapId       common.Hash    `json:"swap_id"`
	Initiator    common.Address `json:"initiator"`
	Counterparty common.Address `json:"counterparty"`
}

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
