package ledgertest

import "github.com/quorumnet/ledger"

// Handler is a mock implementing ledger.Handler interface.
type Handler struct {
	checkCall   int
	CheckResult ledger.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult ledger.DeliverResult
	DeliverErr    error
}

var _ ledger.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
