// Package enrich cleans up point of interest records before they reach the
// map. Independent steps run in parallel inside a stage, stages run one after
// another.
package enrich

import (
	"context"
)

// Step mutates one item in place. Steps of the same stage must not write the
// same fields.
type Step[T any] func(ctx context.Context, item *T) error

// Stage groups steps that may run concurrently on one item.
type Stage[T any] struct {
	steps []Step[T]
}

func NewStage[T any](steps ...Step[T]) Stage[T] {
	return Stage[T]{steps: steps}
}
