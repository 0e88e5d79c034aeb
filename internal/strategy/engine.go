package strategy

import (
	"fmt"

	"SignalScanner/internal/model"
)

// DefaultOBVLookback compares OBV against the previous row.
const DefaultOBVLookback = 1

// Evaluator scores the latest indicator rows of a symbol. The zero value is
// not usable; build one with NewEvaluator.
type Evaluator struct {
	obvLookback int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithOBVLookback compares the current OBV with the row n periods back
// instead of the previous row. Values below 1 are ignored.
func WithOBVLookback(n int) Option {
	return func(e *Evaluator) {
		if n >= 1 {
			e.obvLookback = n
		}
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{obvLookback: DefaultOBVLookback}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MinRows returns how many valid rows Evaluate needs.
func (e *Evaluator) MinRows() int {
	if e.obvLookback+1 > 2 {
		return e.obvLookback + 1
	}
	return 2
}

// Evaluate scores the two most recent rows. It returns
// model.ErrInsufficientHistory when fewer than MinRows rows are given.
func (e *Evaluator) Evaluate(rows []model.IndicatorRow) (*model.Evaluation, error) {
	if len(rows) < e.MinRows() {
		return nil, fmt.Errorf("%w: %d valid rows, need %d", model.ErrInsufficientHistory, len(rows), e.MinRows())
	}
	n := len(rows)
	prev, curr := &rows[n-2], &rows[n-1]
	obvRef := &rows[n-1-e.obvLookback]

	conds := evaluate(prev, curr, obvRef)
	return &model.Evaluation{Score: conds.Count(), Conditions: conds}, nil
}

var defaultEvaluator = NewEvaluator()

// Evaluate scores rows with the default evaluator.
func Evaluate(rows []model.IndicatorRow) (*model.Evaluation, error) {
	return defaultEvaluator.Evaluate(rows)
}
