package enrich

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Pipeline runs a sequence of stages over every item read from a channel.
// Steps of one stage run concurrently, stages run in order. Step errors are
// logged and the item moves on to the next stage.
type Pipeline[T any] struct {
	stages []Stage[T]
}

func NewPipeline[T any](stages ...Stage[T]) *Pipeline[T] {
	return &Pipeline[T]{stages: stages}
}

// Process applies all stages to each item until in is closed. The context is
// handed to every step.
func (p *Pipeline[T]) Process(ctx context.Context, in <-chan *T) {
	for item := range in {
		item := item
		for i, stage := range p.stages {
			var g errgroup.Group
			for _, step := range stage.steps {
				step := step
				g.Go(func() error { return step(ctx, item) })
			}
			if err := g.Wait(); err != nil {
				log.Printf("Stage %d failed: %v", i, err)
			}
		}
	}
}
