// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package bridge

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Adapter metrics
var (
	mSends = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenmesh",
		Subsystem: "bridge",
		Name:      "sends_total",
		Help:      "Number of outbound transfers debited and handed off",
	}, []string{"mode"})
	mDelivers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenmesh",
		Subsystem: "bridge",
		Name:      "delivers_total",
		Help:      "Number of inbound transfers credited",
	}, []string{"mode"})
)
