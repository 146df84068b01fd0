package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrWorkerClosed is returned by Submit after Shutdown.
var ErrWorkerClosed = errors.New("engine worker is shut down")

// Request is one move computation. The board is cloned on submit so the
// worker never observes caller mutation.
type Request struct {
	Board     Board
	Player    Player
	GameType  GameType
	Level     Difficulty
	PrevHash  uint64
	MoveCount int
}

type pendingRequest struct {
	req   Request
	reply chan Decision
}

// Worker is the explicit engine handle: a single goroutine draining a request
// queue, started and torn down by its owner. It replaces any lazily
// initialized global compute state; callers hold exactly one per process (or
// more, if they want parallelism across games).
type Worker struct {
	log      *zap.SugaredLogger
	requests chan pendingRequest
	done     chan struct{}
}

func NewWorker(log *zap.SugaredLogger, queueSize int) *Worker {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Worker{
		log:      log,
		requests: make(chan pendingRequest, queueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the compute loop. It returns when ctx is cancelled or
// Shutdown is called.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case pending := <-w.requests:
				r := pending.req
				decision := AIMove(r.Board, r.Player, r.GameType, r.Level, r.PrevHash, r.MoveCount, nil)
				w.log.Debugw("engine move computed",
					"game_type", r.GameType,
					"player", r.Player.String(),
					"level", r.Level.String(),
					"kind", decision.Kind)
				pending.reply <- decision
			}
		}
	}()
}

// Submit queues a request and waits for its decision. The context bounds the
// wait; a caller that gives up must simply not resume the computation.
func (w *Worker) Submit(ctx context.Context, req Request) (Decision, error) {
	req.Board = req.Board.Clone()
	pending := pendingRequest{req: req, reply: make(chan Decision, 1)}
	select {
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	case <-w.done:
		return Decision{}, ErrWorkerClosed
	case w.requests <- pending:
	}
	select {
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	case <-w.done:
		return Decision{}, ErrWorkerClosed
	case decision := <-pending.reply:
		return decision, nil
	}
}

// Shutdown stops the loop once the in-flight request, if any, finishes.
func (w *Worker) Shutdown() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}
