package generator

import (
	"github.com/go-faker/faker/v4"
	"github.com/go-faker/faker/v4/pkg/interfaces"
	"github.com/go-faker/faker/v4/pkg/options"
	"github.com/pkg/errors"

	"github.com/Pavelavl/btrees/btree"
)

// Generator produces random integer keys within [lo, hi] using go-faker.
type Generator struct {
	boundary interfaces.RandomIntegerBoundary
}

func New(lo, hi int) (*Generator, error) {
	if lo > hi {
		return nil, errors.Errorf("min %d is above max %d", lo, hi)
	}
	return &Generator{
		boundary: interfaces.RandomIntegerBoundary{Start: lo, End: hi},
	}, nil
}

// Keys returns n random keys. Repeats are possible and kept.
func (g *Generator) Keys(n int) ([]int, error) {
	keys := make([]int, n)
	for i := range keys {
		if err := faker.FakeData(&keys[i], options.WithRandomIntegerBoundaries(g.boundary)); err != nil {
			return nil, errors.Wrap(err, "generate key")
		}
	}
	return keys, nil
}

// Populate inserts n random keys into t.
func (g *Generator) Populate(t *btree.Tree[int], n int) error {
	keys, err := g.Keys(n)
	if err != nil {
		return err
	}
	for _, k := range keys {
		t.Insert(k)
	}
	return nil
}
