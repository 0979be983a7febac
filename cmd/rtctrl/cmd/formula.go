package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rtctrl/rtctrl"
)

// formulaJSON is the on-disk shape of an MTL formula: a small recursive
// JSON grammar, not modeled on any particular serialization library since
// none of the example stacks define a wire format for this domain.
type formulaJSON struct {
	Op       string        `json:"op"`
	AP       string        `json:"ap,omitempty"`
	Left     *formulaJSON  `json:"left,omitempty"`
	Right    *formulaJSON  `json:"right,omitempty"`
	Interval *intervalJSON `json:"interval,omitempty"`
}

type boundJSON struct {
	Kind  string `json:"kind"`
	Value int    `json:"value,omitempty"`
}

type intervalJSON struct {
	Lower boundJSON `json:"lower"`
	Upper boundJSON `json:"upper"`
}

func loadFormula(path string) (*rtctrl.Formula, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var fj formulaJSON
	if err := json.Unmarshal(raw, &fj); err != nil {
		return nil, err
	}
	return buildFormula(&fj)
}

func buildFormula(fj *formulaJSON) (*rtctrl.Formula, error) {
	switch fj.Op {
	case "true":
		return rtctrl.MTrue(), nil
	case "false":
		return rtctrl.MFalse(), nil
	case "ap":
		return rtctrl.AP(fj.AP), nil
	case "not":
		l, err := buildFormula(fj.Left)
		if err != nil {
			return nil, err
		}
		return rtctrl.Not(l), nil
	case "and", "or", "until", "release":
		l, err := buildFormula(fj.Left)
		if err != nil {
			return nil, err
		}
		r, err := buildFormula(fj.Right)
		if err != nil {
			return nil, err
		}
		switch fj.Op {
		case "and":
			return rtctrl.And(l, r), nil
		case "or":
			return rtctrl.Or(l, r), nil
		default:
			iv, err := buildInterval(fj.Interval)
			if err != nil {
				return nil, err
			}
			if fj.Op == "until" {
				return rtctrl.Until(l, r, iv), nil
			}
			return rtctrl.DualUntil(l, r, iv), nil
		}
	default:
		return nil, fmt.Errorf("%w: unrecognized formula operator %q", rtctrl.ErrInvalidInput, fj.Op)
	}
}

func buildInterval(ij *intervalJSON) (rtctrl.Interval, error) {
	if ij == nil {
		return rtctrl.Interval{}, fmt.Errorf("%w: until/release formula requires an interval", rtctrl.ErrInvalidInput)
	}
	lo, err := buildBound(ij.Lower)
	if err != nil {
		return rtctrl.Interval{}, err
	}
	hi, err := buildBound(ij.Upper)
	if err != nil {
		return rtctrl.Interval{}, err
	}
	return rtctrl.Interval{Lower: lo, Upper: hi}, nil
}

func buildBound(bj boundJSON) (rtctrl.Bound, error) {
	switch bj.Kind {
	case "open":
		return rtctrl.Bound{Kind: rtctrl.Open, Value: bj.Value}, nil
	case "closed":
		return rtctrl.Bound{Kind: rtctrl.Closed, Value: bj.Value}, nil
	case "infinite":
		return rtctrl.Bound{Kind: rtctrl.Infinite}, nil
	default:
		return rtctrl.Bound{}, fmt.Errorf("%w: unrecognized bound kind %q", rtctrl.ErrInvalidInput, bj.Kind)
	}
}
