package processing

import (
	"math"
	"sort"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/okieraised/go-rpn-anchors/config"
	"github.com/okieraised/go-rpn-anchors/utils"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// Box is a window in inclusive pixel coordinates: (x1, y1, x2, y2).
type Box [4]float32

// StrideAnchors is the anchor table of one feature pyramid level.
type StrideAnchors struct {
	Stride        int
	AllowedBorder int
	Anchors       *tensor.Dense
}

// ValidateParams rejects a non-positive base size and empty, non-positive or
// infinite ratios and scales.
func ValidateParams(baseSize int, ratios, scales []float32) error {
	if baseSize <= 0 {
		return errors.Wrapf(ErrInvalidParameter, "base size must be positive, got %d", baseSize)
	}
	if err := validatePositive("ratio", ratios); err != nil {
		return err
	}
	return validatePositive("scale", scales)
}

func validatePositive(name string, values []float32) error {
	if len(values) == 0 {
		return errors.Wrapf(ErrInvalidParameter, "at least one %s is required", name)
	}
	for i, v := range values {
		// NaN fails this comparison too.
		if !(v > 0) || math32.IsInf(v, 1) {
			return errors.Wrapf(ErrInvalidParameter, "%s at index %d must be positive and finite, got %v", name, i, v)
		}
	}
	return nil
}

// GenerateDefaultAnchors returns the 9-row table for config.DefaultAnchorParams.
func GenerateDefaultAnchors() (*tensor.Dense, error) {
	return GenerateAnchorsFromParams(config.DefaultAnchorParams())
}

func GenerateAnchorsFromParams(p config.AnchorParams) (*tensor.Dense, error) {
	return GenerateAnchors(p.BaseSize, p.Ratios, p.Scales)
}

// GenerateAnchors enumerates aspect ratios x scales with respect to the
// reference window (0, 0, baseSize-1, baseSize-1). Row r*len(scales)+s holds
// ratio r at scale s.
func GenerateAnchors(baseSize int, ratios, scales []float32) (*tensor.Dense, error) {
	if err := ValidateParams(baseSize, ratios, scales); err != nil {
		return nil, err
	}

	baseAnchor := Box{0, 0, float32(baseSize) - 1, float32(baseSize) - 1}

	ratioAnchors, err := EnumerateRatios(baseAnchor, ratios)
	if err != nil {
		return nil, err
	}

	scaledAnchors := make([]*tensor.Dense, 0, len(ratios))
	for i := 0; i < ratioAnchors.Shape()[0]; i++ {
		ratioAnchor, err := BoxAt(ratioAnchors, i)
		if err != nil {
			return nil, err
		}
		scaled, err := EnumerateScales(ratioAnchor, scales)
		if err != nil {
			return nil, err
		}
		scaledAnchors = append(scaledAnchors, scaled)
	}

	return utils.VStack(scaledAnchors)
}

// GenerateAnchorsFPN builds one table per stride key of cfg, ordered from the
// largest stride down. With dense set, every table is followed by a copy of
// itself shifted by half the stride.
func GenerateAnchorsFPN(dense *bool, cfg map[string]config.AnchorConfig) ([]StrideAnchors, error) {
	if len(cfg) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "no feature strides configured")
	}

	rpnFeatStride := make([]int, 0, len(cfg))
	strideKeys := make(map[int]string, len(cfg))
	for k := range cfg {
		stride, err := strconv.Atoi(k)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "stride key %q is not an integer", k)
		}
		if stride <= 0 {
			return nil, errors.Wrapf(ErrInvalidParameter, "stride must be positive, got %d", stride)
		}
		if prev, ok := strideKeys[stride]; ok {
			return nil, errors.Wrapf(ErrInvalidParameter, "stride keys %q and %q are the same stride", prev, k)
		}
		strideKeys[stride] = k
		rpnFeatStride = append(rpnFeatStride, stride)
	}
	sort.Slice(rpnFeatStride, func(i, j int) bool {
		return rpnFeatStride[i] > rpnFeatStride[j]
	})

	result := make([]StrideAnchors, 0, len(rpnFeatStride))
	for _, stride := range rpnFeatStride {
		v := cfg[strideKeys[stride]]
		anchors, err := GenerateAnchors(v.BaseSize, v.Ratios, v.Scales)
		if err != nil {
			return nil, errors.WithMessagef(err, "stride %d", stride)
		}
		if utils.DerefPointer(dense) {
			anchors, err = denseAnchors(anchors, stride)
			if err != nil {
				return nil, err
			}
		}
		result = append(result, StrideAnchors{
			Stride:        stride,
			AllowedBorder: v.AllowedBorder,
			Anchors:       anchors,
		})
	}
	return result, nil
}

func denseAnchors(anchors *tensor.Dense, stride int) (*tensor.Dense, error) {
	if stride%2 != 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "stride must be even number, got %d", stride)
	}
	shifted, err := anchors.AddScalar(float32(stride/2), true)
	if err != nil {
		return nil, err
	}
	return utils.VStack([]*tensor.Dense{anchors, shifted})
}

// EnumerateRatios reshapes box to every ratio while keeping its area and center.
// Widths and heights are computed in float64 and rounded half away from zero.
// A ratio that rounds either side below one pixel is ErrInvalidParameter.
func EnumerateRatios(box Box, ratios []float32) (*tensor.Dense, error) {
	if err := validatePositive("ratio", ratios); err != nil {
		return nil, err
	}

	w, h, centerX, centerY := WidthHeightCenter(box)
	size := float64(w) * float64(h)

	ws := make([]float32, len(ratios))
	hs := make([]float32, len(ratios))
	for i, r := range ratios {
		newW := math.Round(math.Sqrt(size / float64(r)))
		newH := math.Round(newW * float64(r))
		if newW < 1 || newH < 1 {
			return nil, errors.Wrapf(ErrInvalidParameter, "ratio %v collapses a %vx%v box to %vx%v", r, w, h, newW, newH)
		}
		ws[i] = float32(newW)
		hs[i] = float32(newH)
	}

	return MakeBoxes(ws, hs, centerX, centerY)
}

// EnumerateScales multiplies the width and height of box by every scale around its center.
func EnumerateScales(box Box, scales []float32) (*tensor.Dense, error) {
	if err := validatePositive("scale", scales); err != nil {
		return nil, err
	}

	w, h, centerX, centerY := WidthHeightCenter(box)

	ws := make([]float32, len(scales))
	hs := make([]float32, len(scales))
	for i, s := range scales {
		ws[i] = w * s
		hs[i] = h * s
	}

	return MakeBoxes(ws, hs, centerX, centerY)
}

// WidthHeightCenter returns width, height, x center and y center of box.
func WidthHeightCenter(box Box) (float32, float32, float32, float32) {
	w := box[2] - box[0] + 1
	h := box[3] - box[1] + 1
	centerX := box[0] + 0.5*(w-1)
	centerY := box[1] + 0.5*(h-1)

	return w, h, centerX, centerY
}

// MakeBoxes builds one window per (ws[i], hs[i]) pair around (centerX, centerY).
func MakeBoxes(ws, hs []float32, centerX, centerY float32) (*tensor.Dense, error) {
	if len(ws) != len(hs) {
		return nil, errors.Wrapf(ErrShapeMismatch, "got %d widths and %d heights", len(ws), len(hs))
	}
	if len(ws) == 0 {
		return nil, errors.Wrap(ErrInvalidParameter, "no widths or heights given")
	}

	backing := make([]float32, 0, 4*len(ws))
	for i := range ws {
		halfW := 0.5 * (ws[i] - 1)
		halfH := 0.5 * (hs[i] - 1)
		backing = append(backing,
			centerX-halfW,
			centerY-halfH,
			centerX+halfW,
			centerY+halfH,
		)
	}

	return utils.NewBoxTable(backing)
}

// BoxAt reads row i of a box table.
func BoxAt(table *tensor.Dense, i int) (Box, error) {
	row, err := utils.Row(table, i)
	if err != nil {
		return Box{}, err
	}
	if len(row) != 4 {
		return Box{}, errors.Wrapf(ErrShapeMismatch, "box row has %d columns", len(row))
	}
	return Box{row[0], row[1], row[2], row[3]}, nil
}

// Boxes returns every row of a box table.
func Boxes(table *tensor.Dense) ([]Box, error) {
	n := table.Shape()[0]
	boxes := make([]Box, 0, n)
	for i := 0; i < n; i++ {
		box, err := BoxAt(table, i)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, box)
	}
	return boxes, nil
}
