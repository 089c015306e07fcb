package typeinference

import (
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// CreateToken returns a fresh ordering token.
func CreateToken() (output shapes.Shape, err error) {
	return shapes.MakeToken(), nil
}

// AfterAll joins the given tokens into one, ordering everything that produced
// them before everything that consumes the result.
func AfterAll(tokens []shapes.Shape) (output shapes.Shape, err error) {
	for i, token := range tokens {
		if !token.Token {
			return shapes.Invalid(), errors.Errorf("after_all requires token operands, got %s at position %d", token, i)
		}
	}
	return shapes.MakeToken(), nil
}

// OptimizationBarrier passes its operands through unchanged, blocking
// optimizations from moving computations across it.
func OptimizationBarrier(operands []shapes.Shape) (outputs []shapes.Shape, err error) {
	outputs = make([]shapes.Shape, len(operands))
	for i, operand := range operands {
		if !operand.Ok() {
			return nil, errors.Errorf("invalid operand %d shape %s for optimization_barrier", i, operand)
		}
		outputs[i] = operand.Clone()
	}
	return outputs, nil
}
