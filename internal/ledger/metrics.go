// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package ledger

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ledger metrics
var (
	mOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenmesh",
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Number of committed balance-affecting operations",
	}, []string{"op"})
	mSupply = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tokenmesh",
		Subsystem: "ledger",
		Name:      "total_supply",
		Help:      "Total supply of the ledger",
	}, []string{"ledger"})
)

func setSupplyGauge(name string, supply *big.Int) {
	f, _ := new(big.Float).SetInt(supply).Float64()
	mSupply.WithLabelValues(name).Set(f)
}
