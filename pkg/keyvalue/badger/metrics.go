// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package badger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Badger database driver metrics
var (
	mDbOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenmesh",
		Subsystem: "badger",
		Name:      "db_open",
		Help:      "Number of open databases",
	})
	mTxnOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenmesh",
		Subsystem: "badger",
		Name:      "txn_open",
		Help:      "Number of open transactions",
	})
	mTxnCommit = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tokenmesh",
		Subsystem: "badger",
		Name:      "txn_commit",
		Help:      "Number of committed transactions",
	})
)
