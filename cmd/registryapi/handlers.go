package main

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type submitRequest struct {
	Signer     string `json:"signer"`
	PayloadHex string `json:"payload_hex"`
	Wait       bool   `json:"wait"`
}

type submitResponse struct {
	BatchID        string `json:"batch_id"`
	Status         string `json:"status"`
	InvalidMessage string `json:"invalid_message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// submitBatch decodes a hex-encoded payload (as produced by
// core.EncodeTransfer and friends), submits it, and either returns
// immediately with PENDING or, if wait=true, blocks through the bounded
// retry policy until the batch settles.
func (g *gateway) submitBatch(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed request body"})
		return
	}
	payload, err := hex.DecodeString(req.PayloadHex)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "payload_hex is not valid hex"})
		return
	}

	batch := g.submit(req.Signer, payload)
	if req.Wait {
		batch = pollUntilSettled(func() (*Batch, bool) { return g.lookup(batch.ID) }, 10*time.Millisecond, g.retryAttempts)
	}

	writeJSON(w, http.StatusAccepted, submitResponse{
		BatchID:        batch.ID,
		Status:         string(batch.Status),
		InvalidMessage: batch.InvalidMessage,
	})
}

func (g *gateway) batchStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "batchID")
	batch, ok := g.lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown batch id"})
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{
		BatchID:        batch.ID,
		Status:         string(batch.Status),
		InvalidMessage: batch.InvalidMessage,
	})
}

func (g *gateway) listAccounts(w http.ResponseWriter, r *http.Request) {
	accs, err := g.registry.Accounts()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, accs)
}

func (g *gateway) listTokens(w http.ResponseWriter, r *http.Request) {
	toks, err := g.registry.Tokens()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, toks)
}

func (g *gateway) tokenHolders(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "identifier")
	holders, err := g.registry.HoldersOf(identifier)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, holders)
}

func (g *gateway) accountTokens(w http.ResponseWriter, r *http.Request) {
	pkey := chi.URLParam(r, "pkey")
	held, err := g.registry.TokensHeldBy(pkey)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, held)
}
