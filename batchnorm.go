package typeinference

import (
	"github.com/gomlx/typeinference/types/shapes"
	"github.com/pkg/errors"
)

// verifyBatchNormArgs checks the parts shared by the batch normalization
// variants: a float operand, a valid feature axis and rank-1 feature vectors
// (scale, offset, mean, variance) matching the feature axis extent. It
// returns the adjusted feature axis.
func verifyBatchNormArgs(operand shapes.Shape, featureIndex int, featureVectors map[string]shapes.Shape) (axis int, err error) {
	if !operand.DType.IsFloat() || operand.IsQuantized() {
		return 0, errors.Errorf("batch normalization requires a float operand, got %s", operand)
	}
	axis, err = AdjustAxisToRank(featureIndex, operand.Rank())
	if err != nil {
		return 0, errors.WithMessagef(err, "feature_index for operand %s", operand)
	}
	featureDim := operand.Dimensions[axis]
	for name, vector := range featureVectors {
		if vector.DType != operand.DType {
			return 0, errors.Errorf("%s must have the operand's data type, got operand=%s and %s=%s", name, operand, name, vector)
		}
		if vector.Rank() != 1 {
			return 0, errors.Errorf("%s must be rank-1, got %s", name, vector)
		}
		if !shapes.CompatibleDims(vector.Dimensions[0], featureDim) {
			return 0, errors.Errorf("%s extent (%s) must match the feature axis %d of operand %s", name, vector.Dimensions[0], axis, operand)
		}
	}
	return axis, nil
}

// featureVector builds the rank-1 shape of per-feature statistics.
func featureVector(operand shapes.Shape, axis int) shapes.Shape {
	output := shapes.MakeDyn(operand.DType, operand.Dimensions[axis])
	return output
}

// BatchNormTraining normalizes the operand across all axes but the feature
// axis. It returns the normalized operand plus the computed per-feature mean
// and variance.
func BatchNormTraining(operand, scale, offset shapes.Shape, featureIndex int) (outputs []shapes.Shape, err error) {
	axis, err := verifyBatchNormArgs(operand, featureIndex, map[string]shapes.Shape{
		"scale":  scale,
		"offset": offset,
	})
	if err != nil {
		return nil, err
	}
	return []shapes.Shape{operand.Clone(), featureVector(operand, axis), featureVector(operand, axis)}, nil
}

// BatchNormInference normalizes the operand with precomputed per-feature mean
// and variance. It returns only the normalized operand.
func BatchNormInference(operand, scale, offset, mean, variance shapes.Shape, featureIndex int) (output shapes.Shape, err error) {
	_, err = verifyBatchNormArgs(operand, featureIndex, map[string]shapes.Shape{
		"scale":    scale,
		"offset":   offset,
		"mean":     mean,
		"variance": variance,
	})
	if err != nil {
		return shapes.Invalid(), err
	}
	return operand.Clone(), nil
}

// BatchNormGrad computes the gradients of BatchNormTraining: the gradient
// with respect to the operand plus the per-feature gradients of scale and
// offset.
func BatchNormGrad(operand, scale, mean, variance, gradOutput shapes.Shape, featureIndex int) (outputs []shapes.Shape, err error) {
	axis, err := verifyBatchNormArgs(operand, featureIndex, map[string]shapes.Shape{
		"scale":    scale,
		"mean":     mean,
		"variance": variance,
	})
	if err != nil {
		return nil, err
	}
	if gradOutput.DType != operand.DType {
		return nil, errors.Errorf("grad_output must have the operand's data type, got operand=%s and grad_output=%s", operand, gradOutput)
	}
	if _, err = mergeShapes(operand, gradOutput); err != nil {
		return nil, errors.WithMessagef(err, "grad_output must have the operand's shape, got operand=%s and grad_output=%s", operand, gradOutput)
	}
	return []shapes.Shape{operand.Clone(), featureVector(operand, axis), featureVector(operand, axis)}, nil
}
