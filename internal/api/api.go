// Copyright 2026 The TokenMesh Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package api exposes the persisted state surface - supply, balances, freeze
// flags, role membership, pause state, and the peer table - as a read-only
// HTTP JSON API for operators and auditors.
package api

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"gitlab.com/tokenmesh/tokenmesh/internal/bridge"
	"gitlab.com/tokenmesh/tokenmesh/internal/ledger"
	"gitlab.com/tokenmesh/tokenmesh/pkg/errors"
	"gitlab.com/tokenmesh/tokenmesh/protocol"
)

type Handler struct {
	router  *httprouter.Router
	ledger  *ledger.Ledger
	adapter *bridge.Adapter
	logger  zerolog.Logger
}

func NewHandler(l *ledger.Ledger, a *bridge.Adapter, logger zerolog.Logger) *Handler {
	h := new(Handler)
	h.ledger = l
	h.adapter = a
	h.logger = logger.With().Str("module", "api").Logger()

	h.router = httprouter.New()
	h.router.GET("/v1/status", h.status)
	h.router.GET("/v1/supply", h.supply)
	h.router.GET("/v1/account/:id", h.account)
	h.router.GET("/v1/roles/:role", h.roleMembers)
	h.router.GET("/v1/frozen", h.frozen)
	h.router.GET("/v1/peers", h.peers)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) write(w http.ResponseWriter, v interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")

	if err != nil {
		code := http.StatusInternalServerError
		switch {
		case errors.Is(err, errors.NotFound):
			code = http.StatusNotFound
		case errors.Code(err).IsClientError():
			code = http.StatusBadRequest
		}
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	err = json.NewEncoder(w).Encode(v)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

type StatusResponse struct {
	Ledger string `json:"ledger"`
	Mode   string `json:"mode"`
	Paused bool   `json:"paused"`
}

func (h *Handler) status(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	paused, err := h.ledger.Paused()
	if err != nil {
		h.write(w, nil, err)
		return
	}
	h.write(w, &StatusResponse{Ledger: h.ledger.Name(), Mode: h.adapter.Mode(), Paused: paused}, nil)
}

type SupplyResponse struct {
	TotalSupply string `json:"totalSupply"`
}

func (h *Handler) supply(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	supply, err := h.ledger.TotalSupply()
	if err != nil {
		h.write(w, nil, err)
		return
	}
	h.write(w, &SupplyResponse{TotalSupply: supply.String()}, nil)
}

type AccountResponse struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
	Frozen  bool   `json:"frozen"`
}

func (h *Handler) account(w http.ResponseWriter, _ *http.Request, p httprouter.Params) {
	id, err := protocol.ParseAccountID(p.ByName("id"))
	if err != nil {
		h.write(w, nil, errors.BadRequest.WithCauseAndFormat(err, "invalid account ID"))
		return
	}

	balance, err := h.ledger.BalanceOf(id)
	if err != nil {
		h.write(w, nil, err)
		return
	}
	frozen, err := h.ledger.Compliance().IsFrozen(id)
	if err != nil {
		h.write(w, nil, err)
		return
	}
	h.write(w, &AccountResponse{Account: id.String(), Balance: balance.String(), Frozen: frozen}, nil)
}

type RoleMembersResponse struct {
	Role    string   `json:"role"`
	Members []string `json:"members"`
}

func (h *Handler) roleMembers(w http.ResponseWriter, _ *http.Request, p httprouter.Params) {
	role, err := protocol.RoleByName(p.ByName("role"))
	if err != nil {
		h.write(w, nil, err)
		return
	}

	members, err := h.ledger.Access().Members(role)
	if err != nil {
		h.write(w, nil, err)
		return
	}
	resp := &RoleMembersResponse{Role: role.String(), Members: []string{}}
	for _, m := range members {
		resp.Members = append(resp.Members, m.String())
	}
	h.write(w, resp, nil)
}

func (h *Handler) frozen(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	frozen, err := h.ledger.Compliance().Frozen()
	if err != nil {
		h.write(w, nil, err)
		return
	}
	accounts := []string{}
	for _, a := range frozen {
		accounts = append(accounts, a.String())
	}
	h.write(w, map[string][]string{"frozen": accounts}, nil)
}

func (h *Handler) peers(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	peers, err := h.adapter.Peers()
	if err != nil {
		h.write(w, nil, err)
		return
	}
	resp := map[string]string{}
	for chain, peer := range peers {
		resp[strconv.FormatUint(chain, 10)] = hex.EncodeToString(peer[:])
	}
	h.write(w, resp, nil)
}
