package email

import (
	"context"
	"sync"
)

// Outcome is the settled result of one operation passed to Settle.
type Outcome[T any] struct {
	Value T
	Err   error
}

func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Settle runs ops concurrently and waits for all of them. Outcomes are
// returned in the order of ops; a failure never cancels the others.
func Settle[T any](ctx context.Context, ops ...func(context.Context) (T, error)) []Outcome[T] {
	outcomes := make([]Outcome[T], len(ops))
	var wg sync.WaitGroup
	for i, op := range ops {
		if op == nil {
			continue
		}
		wg.Add(1)
		go func(i int, op func(context.Context) (T, error)) {
			defer wg.Done()
			value, err := op(ctx)
			outcomes[i] = Outcome[T]{Value: value, Err: err}
		}(i, op)
	}
	wg.Wait()
	return outcomes
}
