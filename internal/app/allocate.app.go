package app

import (
	"context"
	"sync"

	"assetbot/internal/domain"
	"assetbot/pkg/allocation"

	"go.uber.org/zap"
)

// AllocationSubmitter is the outbound seam to the allocation service.
type AllocationSubmitter interface {
	Submit(ctx context.Context, tickers []string, capital float64) (allocation.RawResponse, error)
}

// ResultSet is one submission's normalized outcome together with the
// tickers that produced it, so display order can follow request order.
type ResultSet struct {
	Requested []string
	Response  domain.AllocationResponse
}

// AllocateHandler runs submissions and owns the single current result set.
// The set is cleared when a submission begins and wholly replaced when it
// succeeds; two submissions' results are never mixed. Each submission gets a
// monotonic sequence number and only the latest one may install its result,
// so a slow response for a superseded submission is discarded
// (last-request-wins).
type AllocateHandler struct {
	Client AllocationSubmitter
	Logger *zap.SugaredLogger

	mu      sync.Mutex
	seq     uint64
	current *ResultSet
}

// Current returns the installed result set, nil when none is live.
func (h *AllocateHandler) Current() *ResultSet {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Run performs one submission end to end: validate and submit via the
// client, normalize the raw body, install the canonical result set. Client
// and normalizer failures abort the whole submission and leave no result set
// behind - a cleared view beats a stale one.
func (h *AllocateHandler) Run(ctx context.Context, tickers []string, capital float64) (*ResultSet, error) {
	seq := h.begin()

	raw, err := h.Client.Submit(ctx, tickers, capital)
	if err != nil {
		return nil, err
	}

	normalized, err := allocation.Normalize(raw)
	if err != nil {
		return nil, err
	}

	resultSet := &ResultSet{
		Requested: tickers,
		Response:  *normalized,
	}
	if !h.install(seq, resultSet) {
		if h.Logger != nil {
			h.Logger.Warnf("discarding response for superseded submission %d", seq)
		}
		return nil, nil
	}

	return resultSet, nil
}

// begin clears the current result set and hands out this submission's
// sequence number.
func (h *AllocateHandler) begin() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	h.current = nil
	return h.seq
}

func (h *AllocateHandler) install(seq uint64, resultSet *ResultSet) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if seq != h.seq {
		return false
	}
	h.current = resultSet
	return true
}
