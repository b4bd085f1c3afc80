// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gitlab.com/tokenmesh/tokenmesh/config"
	"gitlab.com/tokenmesh/tokenmesh/internal/api"
	"gitlab.com/tokenmesh/tokenmesh/internal/bridge"
	"gitlab.com/tokenmesh/tokenmesh/internal/events"
	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/internal/logging"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue/badger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/keyvalue/memory"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
	"golang.org/x/sync/errgroup"
)

var cmdRun = &cobra.Command{
	Use:   "run",
	Short: "Run the ledger daemon",
	Run:   runNode,
}

func init() {
	cmdMain.AddCommand(cmdRun)
}

func runNode(*cobra.Command, []string) {
	c, err := config.Load(flagMain.WorkDir)
	checkf(err, "load configuration")
	check(c.Validate())

	logger, err := logging.New(os.Stderr, c.LogFormat, c.LogLevel)
	checkf(err, "initialize logging")

	var store keyvalue.Beginner
	if c.DataDir == "" {
		logger.Warn().Msg("No data directory configured, state will not survive shutdown")
		store = memory.New()
	} else {
		store, err = badger.New(c.DataDir)
		checkf(err, "open database")
	}
	defer func() { _ = store.Close() }()

	owner, err := protocol.ParseAccountID(c.Owner)
	checkf(err, "parse owner")

	bus := events.NewBus(logger)
	events.SubscribeAll(bus, func(e events.Event) {
		logger.Info().Str("event", e.EventType()).Interface("data", e).Msg("Audit event")
	})

	l := ledger.New(c.TokenName, store, bus, logger)
	adapterID := protocol.AccountIDFromSeed(c.AdapterSeed)

	err = l.Initialize(owner)
	switch {
	case err == nil:
		// Fresh ledger. Bootstrap the owner as an admin so roles can be
		// granted, and in spoke mode let the adapter mint and burn.
		checkf(l.Access().Grant(owner, protocol.RoleAdmin, owner), "bootstrap admin")
		if c.Mode == config.ModeSpoke {
			checkf(l.Access().Grant(owner, protocol.RoleMinter, adapterID), "bootstrap adapter")
		}
		logger.Info().Str("owner", owner.String()).Msg("Ledger initialized")
	case errors.Code(err) == errors.Conflict:
		// Already initialized
	default:
		checkf(err, "initialize ledger")
	}

	loop := bridge.NewLoopback(big.NewInt(0), logger)
	var adapter *bridge.Adapter
	if c.Mode == config.ModeHub {
		adapter = bridge.NewLockRelease(l, loop.Endpoint(c.ChainID), store, bus, logger, adapterID)
	} else {
		adapter = bridge.NewBurnMint(l, loop.Endpoint(c.ChainID), store, bus, logger, adapterID)
	}
	loop.Attach(c.ChainID, adapter)

	mux := http.NewServeMux()
	mux.Handle("/v1/", api.NewHandler(l, adapter, logger))
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: c.ListenAddress, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info().
			Str("address", c.ListenAddress).
			Uint64("chain", c.ChainID).
			Str("mode", adapter.Mode()).
			Msg("Daemon started")
		err := server.ListenAndServe()
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})
	group.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	check(group.Wait())
}
