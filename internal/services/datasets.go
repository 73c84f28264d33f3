package services

import (
	"context"

	"github.com/vvka-141/foodetl/internal/frame"
	"github.com/vvka-141/foodetl/internal/model"
	"github.com/vvka-141/foodetl/internal/schema"
	"github.com/vvka-141/foodetl/internal/store"
	"github.com/vvka-141/foodetl/internal/transform"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

// batch is a decoded dataset waiting to be appended.
type batch interface {
	append(ctx context.Context, conn foodetl.DBConnection) (int64, error)
}

type records[R model.Record] struct {
	table schema.Table
	rows  []R
}

func (r records[R]) append(ctx context.Context, conn foodetl.DBConnection) (int64, error) {
	return store.Append(ctx, conn, r.table, r.rows)
}

type decodeFunc func(t schema.Table, f *frame.Frame) (batch, error)

func decodeWith[R model.Record](decode func(*frame.Frame) ([]R, error)) decodeFunc {
	return func(t schema.Table, f *frame.Frame) (batch, error) {
		rows, err := decode(f)
		if err != nil {
			return nil, err
		}
		return records[R]{table: t, rows: rows}, nil
	}
}

// dataset describes how one input file becomes rows of one table.
type dataset struct {
	table     schema.Table
	path      func(foodetl.Inputs) string
	transform transform.Func
	decode    decodeFunc
}

// datasets is in load order: parents before the table referencing them.
var datasets = []dataset{
	{
		table:     schema.Users,
		path:      func(in foodetl.Inputs) string { return in.Users },
		transform: transform.Users,
		decode:    decodeWith(model.Users),
	},
	{
		table:     schema.Recipes,
		path:      func(in foodetl.Inputs) string { return in.Recipes },
		transform: transform.Recipes,
		decode:    decodeWith(model.Recipes),
	},
	{
		table:     schema.Interactions,
		path:      func(in foodetl.Inputs) string { return in.Interactions },
		transform: transform.Interactions,
		decode:    decodeWith(model.Interactions),
	},
}

// staged is a dataset after reading, transforming and decoding.
type staged struct {
	dataset
	report foodetl.DatasetReport
	batch  batch
}
