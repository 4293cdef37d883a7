package payflow

import "sync"

// Pending holds at most one operation awaiting confirmation per goal.
// Confirming a different amount for the same goal replaces the earlier entry.
type Pending struct {
	mu  sync.Mutex
	ops map[int]Operation
}

// NewPending returns an empty registry.
func NewPending() *Pending {
	return &Pending{ops: make(map[int]Operation)}
}

// Set records op for its goal.
func (p *Pending) Set(op Operation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ops[op.GoalIndex] = op
}

// Get returns the pending operation for a goal.
func (p *Pending) Get(index int) (Operation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	op, ok := p.ops[index]
	return op, ok
}

// Take returns and removes the pending operation for a goal.
func (p *Pending) Take(index int) (Operation, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	op, ok := p.ops[index]
	delete(p.ops, index)
	return op, ok
}

// Clear drops the pending operation for a goal.
func (p *Pending) Clear(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.ops, index)
}

// Len returns the number of goals with a pending operation.
func (p *Pending) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ops)
}
