package entity

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
)

// AnnotationIdentRegexCompiled is the rule for annotation keys enforced by the
// storage processor: a Unicode letter or underscore followed by letters,
// digits or underscores.
var AnnotationIdentRegexCompiled = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_]*$`)

var (
	// ErrUnsupportedAnnotationValue is returned when an annotation value is
	// neither a string nor an integer.
	ErrUnsupportedAnnotationValue = errors.New("unsupported annotation value")

	// ErrIntegerOverflow is returned when a numeric annotation value cannot be
	// represented as a uint64.
	ErrIntegerOverflow = errors.New("numeric annotation value out of range")
)

// Annotation is a loosely typed annotation, for callers that hold mixed
// string/numeric annotation lists (for example decoded from JSON).
// SplitAnnotations sorts a slice of these into the typed wire lists.
type Annotation struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// NewAnnotation builds an Annotation. The value is checked by
// SplitAnnotations, not here.
func NewAnnotation(key string, value any) Annotation {
	return Annotation{Key: key, Value: value}
}

// SplitAnnotations splits mixed annotations into string and numeric lists,
// preserving the relative order within each list. Supported value types are
// strings, signed and unsigned integers, *big.Int, and integral floats (JSON
// numbers decode as float64). Anything else fails with
// ErrUnsupportedAnnotationValue; integers outside the uint64 range fail with
// ErrIntegerOverflow.
func SplitAnnotations(annotations []Annotation) ([]StringAnnotation, []NumericAnnotation, error) {
	var strs []StringAnnotation
	var nums []NumericAnnotation

	for _, a := range annotations {
		switch v := a.Value.(type) {
		case string:
			strs = append(strs, StringAnnotation{Key: a.Key, Value: v})
		case uint64:
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: v})
		case uint:
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: uint64(v)})
		case uint8:
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: uint64(v)})
		case uint16:
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: uint64(v)})
		case uint32:
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: uint64(v)})
		case int:
			n, err := signedAnnotationValue(a.Key, int64(v))
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case int8:
			n, err := signedAnnotationValue(a.Key, int64(v))
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case int16:
			n, err := signedAnnotationValue(a.Key, int64(v))
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case int32:
			n, err := signedAnnotationValue(a.Key, int64(v))
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case int64:
			n, err := signedAnnotationValue(a.Key, v)
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case float64:
			n, err := floatAnnotationValue(a.Key, v)
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case float32:
			n, err := floatAnnotationValue(a.Key, float64(v))
			if err != nil {
				return nil, nil, err
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: n})
		case *big.Int:
			if v.Sign() < 0 || !v.IsUint64() {
				return nil, nil, fmt.Errorf("annotation %q: %w", a.Key, ErrIntegerOverflow)
			}
			nums = append(nums, NumericAnnotation{Key: a.Key, Value: v.Uint64()})
		default:
			return nil, nil, fmt.Errorf("annotation %q: %w: %T", a.Key, ErrUnsupportedAnnotationValue, a.Value)
		}
	}

	return strs, nums, nil
}

func signedAnnotationValue(key string, v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("annotation %q: %w", key, ErrIntegerOverflow)
	}
	return uint64(v), nil
}

func floatAnnotationValue(key string, v float64) (uint64, error) {
	if math.Trunc(v) != v || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("annotation %q: %w: non-integral number", key, ErrUnsupportedAnnotationValue)
	}
	if v < 0 || v >= math.MaxUint64 {
		return 0, fmt.Errorf("annotation %q: %w", key, ErrIntegerOverflow)
	}
	return uint64(v), nil
}
