package pool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/AshishBagdane/go-faas-scheduler/internal/errors"
	"github.com/AshishBagdane/go-faas-scheduler/internal/health"
	"github.com/AshishBagdane/go-faas-scheduler/internal/resilience"
	"github.com/AshishBagdane/go-faas-scheduler/internal/wire"
	"github.com/AshishBagdane/go-faas-scheduler/pkg/api"
)

// remoteExecutor is a long-lived HTTP client bound to one Globus-Compute-
// style endpoint. Grounded on internal/provider/rest.go's request
// construction, with resilience.CircuitBreaker wrapping each dispatch —
// the breaker may reject a call outright but never retries it; the
// scheduler's no-chunk-retry contract is preserved because neither the
// breaker nor this executor resubmits a chunk on failure.
type remoteExecutor struct {
	id      api.WorkerId
	baseURL string
	client  *http.Client
	breaker *resilience.CircuitBreaker
	online  bool
}

func newRemoteExecutor(id api.WorkerId, baseURL string, timeout time.Duration) *remoteExecutor {
	return &remoteExecutor{
		id:      id,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		breaker: resilience.NewCircuitBreaker(string(id), 5, 60*time.Second),
	}
}

// probe checks the endpoint's externally-reported status. It runs once at
// pool construction, not per chunk, through retrier, which retries only
// errors classified as retryable; the HTTP and decode errors returned by op
// are not classified, so a failed probe is not retried.
func (e *remoteExecutor) probe(ctx context.Context, retrier *resilience.Retrier) error {
	op := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+"/status", nil)
		if err != nil {
			return err
		}
		resp, err := e.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		var status struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
			return err
		}
		e.online = status.Status == "online"
		return nil
	}

	return retrier.Execute(ctx, op)
}

func (e *remoteExecutor) dispatch(serializedFn []byte, chunk []any, f *future) {
	var resp wire.LocalTaskResponse

	op := func() error {
		body, err := json.Marshal(wire.LocalTaskRequest{SerializedFn: serializedFn, Chunk: chunk})
		if err != nil {
			return err
		}

		req, err := http.NewRequest(http.MethodPost, e.baseURL+"/execute", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		httpResp, err := e.client.Do(req)
		if err != nil {
			return err
		}
		defer httpResp.Body.Close()

		respBody, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return err
		}
		if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
			return fmt.Errorf("endpoint returned status %d: %s", httpResp.StatusCode, string(respBody))
		}

		return json.Unmarshal(respBody, &resp)
	}

	if err := e.breaker.Execute(op); err != nil {
		f.resolve(api.Outcome{Err: errors.ErrSubmission(string(e.id), err)})
		return
	}
	if resp.Error != "" {
		kind := errors.ParseErrorType(resp.ErrorKind)
		f.resolve(api.Outcome{Err: errors.ErrWorkerExecutionKind(string(e.id), kind, fmt.Errorf("%s", resp.Error))})
		return
	}

	f.resolve(api.Outcome{Value: wire.Normalize(resp.Value)})
}

// RemoteFaasPool maintains one long-lived executor per endpoint, filtering
// active_worker_ids to endpoints whose externally-reported status was
// "online" at initialization.
type RemoteFaasPool struct {
	mu        sync.RWMutex
	executors map[api.WorkerId]*remoteExecutor
	closed    bool
}

// NewRemoteFaasPool instantiates one executor per endpoint and probes its
// status. endpointURL maps an endpoint id to its base URL; in this engine
// that mapping is the caller's responsibility since config.go only
// consumes the id field, per the core contract.
func NewRemoteFaasPool(ctx context.Context, endpoints []EndpointConfig, endpointURL func(id string) string, timeout time.Duration) (*RemoteFaasPool, error) {
	retrier := resilience.NewRetrier(resilience.DefaultRetryPolicy)

	p := &RemoteFaasPool{
		executors: make(map[api.WorkerId]*remoteExecutor, len(endpoints)),
	}

	for _, ep := range endpoints {
		id := api.WorkerId(ep.ID)
		exec := newRemoteExecutor(id, endpointURL(ep.ID), timeout)
		if err := exec.probe(ctx, retrier); err != nil {
			exec.online = false
		}
		p.executors[id] = exec
	}

	return p, nil
}

// ActiveWorkerIDs implements api.WorkerPool.
func (p *RemoteFaasPool) ActiveWorkerIDs() []api.WorkerId {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ids := make([]api.WorkerId, 0, len(p.executors))
	for id, e := range p.executors {
		if e.online {
			ids = append(ids, id)
		}
	}
	return ids
}

// WorkerCount implements api.WorkerPool.
func (p *RemoteFaasPool) WorkerCount() int {
	return len(p.ActiveWorkerIDs())
}

// Submit implements api.WorkerPool.
func (p *RemoteFaasPool) Submit(workerID api.WorkerId, serializedFn []byte, chunk []any) (api.DeferredResult, error) {
	p.mu.RLock()
	closed := p.closed
	exec, ok := p.executors[workerID]
	p.mu.RUnlock()

	if closed {
		return nil, errors.ErrPoolClosed(string(workerID))
	}
	if !ok || !exec.online {
		return nil, errors.ErrSubmission(string(workerID), fmt.Errorf("no such online endpoint"))
	}

	f := newFuture(workerID)
	go exec.dispatch(serializedFn, chunk, f)
	return f, nil
}

// Shutdown implements api.WorkerPool. Idempotent.
func (p *RemoteFaasPool) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	for _, e := range p.executors {
		e.client.CloseIdleConnections()
	}
	return nil
}

// CheckHealth implements health.Checker.
func (p *RemoteFaasPool) CheckHealth(_ context.Context) (health.Result, error) {
	active := p.WorkerCount()
	total := len(p.executors)

	switch {
	case active == 0:
		return health.Result{Status: health.StatusDown}, nil
	case active < total:
		return health.Result{
			Status:  health.StatusDegraded,
			Details: map[string]interface{}{"active": active, "total": total},
		}, nil
	default:
		return health.Result{Status: health.StatusUp}, nil
	}
}

var (
	_ api.WorkerPool = (*RemoteFaasPool)(nil)
	_ health.Checker = (*RemoteFaasPool)(nil)
)
