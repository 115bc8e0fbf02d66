package main

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/synnergy-registry/registry/core"
)

// BatchStatus mirrors the §6 submission collaborator contract.
type BatchStatus string

const (
	StatusPending   BatchStatus = "PENDING"
	StatusCommitted BatchStatus = "COMMITTED"
	StatusInvalid   BatchStatus = "INVALID"
	StatusUnknown   BatchStatus = "UNKNOWN"
)

// Batch tracks one submitted transaction through the gateway's simulated
// consensus latency.
type Batch struct {
	ID             string
	Status         BatchStatus
	InvalidMessage string
}

// gateway owns the state facade, a concurrency-safe read registry over it,
// and the in-memory batch ledger; it is the REST analogue of registrycli's
// applyPayload.
type gateway struct {
	state         *core.StateFacade
	registry      *core.Registry
	retryAttempts int

	mu      sync.Mutex
	batches map[string]*Batch
}

func newGateway(state *core.StateFacade, retryAttempts int) *gateway {
	return &gateway{
		state:         state,
		registry:      core.NewRegistry(state),
		retryAttempts: retryAttempts,
		batches:       make(map[string]*Batch),
	}
}

// submit creates a batch, applies it against the state facade in the
// background (simulating the latency of a real consensus round), and
// returns the batch id immediately.
func (g *gateway) submit(signer string, payload []byte) *Batch {
	b := &Batch{ID: uuid.NewString(), Status: StatusPending}

	g.mu.Lock()
	g.batches[b.ID] = b
	g.mu.Unlock()

	go func() {
		// Simulated consensus/commit latency; a real validator network
		// would report PENDING for an unbounded, non-deterministic time.
		time.Sleep(25 * time.Millisecond)

		err := core.Apply(g.state, signer, payload)

		g.mu.Lock()
		defer g.mu.Unlock()
		if err == nil {
			b.Status = StatusCommitted
			return
		}
		if coreErr, ok := err.(*core.Error); ok {
			b.Status = StatusInvalid
			b.InvalidMessage = coreErr.Error()
			return
		}
		b.Status = StatusUnknown
		logrus.WithError(err).Warn("registryapi: batch result unknown")
	}()

	return b
}

func (g *gateway) lookup(id string) (*Batch, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	b, ok := g.batches[id]
	if !ok {
		return nil, false
	}
	cpy := *b
	return &cpy, true
}
