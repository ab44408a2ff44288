package httpinterface

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/bazaar-network/bazaar-daemon/internal/core/application/marketplace"
	"github.com/bazaar-network/bazaar-daemon/internal/core/application/swap"
	"github.com/bazaar-network/bazaar-daemon/internal/core/ports"
	localcustody "github.com/bazaar-network/bazaar-daemon/internal/infrastructure/custody/local"
)

// Server exposes the two registries over a JSON API. Caller identities are
// taken from the request payloads: the surface is meant for sandbox and
// single-tenant deployments where the daemon is trusted by its callers.
type Server struct {
	marketplace *marketplace.Service
	swap        *swap.Service
	pubsub      ports.SecurePubSub
	ledger      *localcustody.Ledger

	server *http.Server
}

// NewServer returns a server listening on the given address once started.
// With a non-nil ledger the sandbox custody endpoints are exposed too.
func NewServer(
	addr string,
	marketplaceSvc *marketplace.Service,
	swapSvc *swap.Service,
	pubsub ports.SecurePubSub,
	ledger *localcustody.Ledger,
) (*Server, error) {
	if marketplaceSvc == nil {
		return nil, fmt.Errorf("missing marketplace service")
	}
	if swapSvc == nil {
		return nil, fmt.Errorf("missing swap service")
	}
	if pubsub == nil {
		return nil, fmt.Errorf("missing pubsub service")
	}

	s := &Server{
		marketplace: marketplaceSvc,
		swap:        swapSvc,
		pubsub:      pubsub,
		ledger:      ledger,
	}
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router(),
	}
	return s, nil
}

// Start serves the API until Stop is called. It blocks like
// http.Server.ListenAndServe and returns http.ErrServerClosed on a graceful
// shutdown.
func (s *Server) Start() error {
	log.Infof("http interface is listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("error while shutting down http interface")
	}
}

func (s *Server) router() *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	v1 := router.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/listings", s.listAsset).Methods(http.MethodPost)
	v1.HandleFunc("/listings/{id:[0-9]+}", s.getListing).Methods(http.MethodGet)
	v1.HandleFunc("/listings/{id:[0-9]+}", s.delistAsset).Methods(http.MethodDelete)
	v1.HandleFunc("/listings/{id:[0-9]+}/fulfill", s.fulfillListing).Methods(http.MethodPost)
	v1.HandleFunc("/history/{account}", s.getUserTrades).Methods(http.MethodGet)
	v1.HandleFunc("/fees", s.setPercentageFee).Methods(http.MethodPut)
	v1.HandleFunc("/fees/withdraw", s.withdrawFees).Methods(http.MethodPost)

	v1.HandleFunc("/swaps", s.initiateSwap).Methods(http.MethodPost)
	v1.HandleFunc("/swaps/{id}", s.getSwap).Methods(http.MethodGet)
	v1.HandleFunc("/swaps/{id}/accept", s.acceptSwap).Methods(http.MethodPost)
	v1.HandleFunc("/swaps/{id}", s.cancelSwap).Methods(http.MethodDelete)

	v1.HandleFunc("/webhooks", s.subscribeWebhook).Methods(http.MethodPost)
	v1.HandleFunc("/webhooks", s.listWebhooks).Methods(http.MethodGet)
	v1.HandleFunc("/webhooks/{id}", s.unsubscribeWebhook).Methods(http.MethodDelete)

	if s.ledger != nil {
		s.registerLedgerRoutes(v1)
	}

	router.Handle("/metrics", promhttp.Handler())
	return router
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(start).String(),
		}).Trace("handled request")
	})
}
