package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/cwbudde/algo-harness/internal/errkind"
)

// DefaultWarmupMs is the warmup used when a case does not set one.
const DefaultWarmupMs = 50

// Case is a validated render configuration.
type Case struct {
	// WarmupMs is the silent priming duration in milliseconds.
	WarmupMs int
	// RenderSeconds fixes the output duration. nil renders as many
	// samples as the dry input holds.
	RenderSeconds *float64
	// Params maps lower-cased parameter names to normalized values.
	Params map[string]float64
}

// DefaultCase returns the case used for an empty JSON object.
func DefaultCase() Case {
	return Case{WarmupMs: DefaultWarmupMs, Params: map[string]float64{}}
}

// LoadCase reads and parses the case file at path.
func LoadCase(path string) (Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Case{}, errkind.Wrap(errkind.Resource, err, "case file not found: %s", path)
		}
		return Case{}, errkind.Wrap(errkind.Resource, err, "failed to read case file: %s", path)
	}
	return ParseCase(data)
}

// ParseCase validates a JSON case document.
func ParseCase(data []byte) (Case, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return Case{}, errkind.Wrap(errkind.Validation, err,
				"failed to parse case JSON at offset %d", syntaxErr.Offset)
		}
		return Case{}, errkind.Wrap(errkind.Validation, err, "failed to parse case JSON")
	}

	obj, ok := root.(map[string]any)
	if !ok {
		return Case{}, errkind.New(errkind.Validation, "case must be a JSON object")
	}

	c := DefaultCase()

	if v, ok := obj["warmupMs"]; ok {
		ms, ok := v.(float64)
		if !ok || ms < 0 || ms > math.MaxInt32 {
			return Case{}, errkind.New(errkind.Validation, "warmupMs must be a non-negative number")
		}
		c.WarmupMs = int(math.Round(ms))
	}

	if v, ok := obj["renderSeconds"]; ok {
		s, ok := v.(float64)
		if !ok || !(s > 0) {
			return Case{}, errkind.New(errkind.Validation, "renderSeconds must be a positive number")
		}
		c.RenderSeconds = &s
	}

	if v, ok := obj["params"]; ok {
		params, err := parseParams(v)
		if err != nil {
			return Case{}, err
		}
		c.Params = params
	}

	return c, nil
}

func parseParams(v any) (map[string]float64, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errkind.New(errkind.Validation, "params must be a JSON object of name -> normalized value")
	}

	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]float64, len(obj))
	for _, name := range names {
		f, ok := obj[name].(float64)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, errkind.New(errkind.Validation, "parameter value must be numeric for: %s", name)
		}
		if f < 0 || f > 1 {
			return nil, errkind.New(errkind.Validation, "parameter value must be within [0, 1] for: %s", name)
		}

		key := strings.ToLower(name)
		if _, dup := out[key]; dup {
			return nil, errkind.New(errkind.Validation, "parameter named more than once: %s", key)
		}
		out[key] = f
	}

	return out, nil
}

// String renders the case for logs.
func (c Case) String() string {
	rs := "input"
	if c.RenderSeconds != nil {
		rs = fmt.Sprintf("%gs", *c.RenderSeconds)
	}
	return fmt.Sprintf("warmup=%dms render=%s params=%d", c.WarmupMs, rs, len(c.Params))
}
