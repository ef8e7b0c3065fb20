package utils

import (
	"fmt"

	"gorgonia.org/tensor"
)

// NewBoxTable wraps a flat (x1, y1, x2, y2, ...) backing slice into an (N, 4) Float32 tensor.
func NewBoxTable(backing []float32) (*tensor.Dense, error) {
	if len(backing)%4 != 0 {
		return nil, fmt.Errorf("box table backing length %d is not a multiple of 4", len(backing))
	}
	return tensor.New(
		tensor.Of(tensor.Float32),
		tensor.WithShape(len(backing)/4, 4),
		tensor.WithBacking(backing),
	), nil
}

// VStack concatenates (N, 4) tables row-wise, skipping empty ones.
// The result never shares memory with the inputs.
func VStack(tensors []*tensor.Dense) (*tensor.Dense, error) {
	var nonEmptyTensors []*tensor.Dense
	for _, t := range tensors {
		if t == nil {
			continue
		}
		shape := t.Shape()
		if len(shape) != 2 {
			return nil, fmt.Errorf("expected a 2D tensor, got shape %v", shape)
		}
		if shape[0] > 0 {
			nonEmptyTensors = append(nonEmptyTensors, t)
		}
	}

	if len(nonEmptyTensors) == 0 {
		return nil, fmt.Errorf("nothing to stack")
	}

	if len(nonEmptyTensors) == 1 {
		return nonEmptyTensors[0].Clone().(*tensor.Dense), nil
	}

	result, err := nonEmptyTensors[0].Vstack(nonEmptyTensors[1:]...)
	if err != nil {
		return nil, fmt.Errorf("error concatenating tensors: %v", err)
	}

	return result, nil
}

// Row reads row i of a 2D Float32 tensor.
func Row(t *tensor.Dense, i int) ([]float32, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("expected a 2D tensor, got shape %v", shape)
	}
	if i < 0 || i >= shape[0] {
		return nil, fmt.Errorf("index %d is out of bounds", i)
	}

	row := make([]float32, shape[1])
	for j := range row {
		v, err := t.At(i, j)
		if err != nil {
			return nil, err
		}
		f, ok := v.(float32)
		if !ok {
			return nil, fmt.Errorf("expected float32 element, got %T", v)
		}
		row[j] = f
	}
	return row, nil
}

// Rows returns every row of a 2D Float32 tensor.
func Rows(t *tensor.Dense) ([][]float32, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, fmt.Errorf("expected a 2D tensor, got shape %v", shape)
	}
	rows := make([][]float32, 0, shape[0])
	for i := 0; i < shape[0]; i++ {
		row, err := Row(t, i)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
