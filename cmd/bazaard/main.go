package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/bazaar-network/bazaar-daemon/internal/config"
	"github.com/bazaar-network/bazaar-daemon/internal/core/application/marketplace"
	"github.com/bazaar-network/bazaar-daemon/internal/core/application/swap"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
	localcustody "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/custody/local"
	"github.com/bazaar-network/bazaar-daemon/internal/infrastructure/guard"
	webhookpubsub "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/pubsub/webhook"
	dbbadger "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/storage/db/badger"
	"github.com/bazaar-network/bazaar-daemon/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/bazaar-network/bazaar-daemon/internal/interfaces/http"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("error while opening storage")
	}
	defer repoManager.Close()

	registryAddress := config.GetAddress(config.RegistryAddressKey)
	feeOwner := config.GetAddress(config.FeeOwnerKey)

	ledger := localcustody.NewLedger(registryAddress)
	accessGuard := guard.NewSingleOwnerGuard(feeOwner)
	pubsubSvc := webhookpubsub.NewWebhookPubSubService(
		config.GetDuration(config.WebhookTimeoutKey),
	)

	marketplaceSvc, err := marketplace.NewService(
		repoManager, ledger, accessGuard, pubsubSvc, registryAddress,
	)
	if err != nil {
		log.WithError(err).Fatal("error while starting marketplace service")
	}
	swapSvc, err := swap.NewService(repoManager, ledger, pubsubSvc)
	if err != nil {
		log.WithError(err).Fatal("error while starting swap service")
	}

	addr := fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey))
	server, err := httpinterface.NewServer(addr, marketplaceSvc, swapSvc, pubsubSvc, ledger)
	if err != nil {
		log.WithError(err).Fatal("error while starting http interface")
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("error while serving http interface")
		}
	}()

	log.WithFields(log.Fields{
		"registry":  registryAddress.Hex(),
		"fee_owner": feeOwner.Hex(),
	}).Info("daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	server.Stop()
	log.Info("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	percentageFee := config.GetUint32(config.DefaultPercentageFeeKey)

	switch config.GetString(config.DBTypeKey) {
	case "inmemory":
		return inmemory.NewRepoManager(percentageFee)
	default:
		return dbbadger.NewRepoManager(config.GetDbDir(), nil, percentageFee)
	}
}
