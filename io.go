package tadbit

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"os"
)

// nanSlice is a []float64 that marshals NaN as JSON null instead of
// failing: encoding/json refuses non-finite floats outright, but LLikMat is
// NaN wherever a cell is undefined and MLLik[0] is always NaN, which is the
// common case rather than the exception. Infinite values (an MLLik entry for
// an unreachable break count is -Inf) are written as-is, which is not valid
// JSON, so Save returns an error for them.
type nanSlice []float64

func (s nanSlice) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(s)*8+2)
	buf = append(buf, '[')
	for i, v := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) {
			buf = append(buf, "null"...)
			continue
		}
		buf = append(buf, []byte(fmt.Sprintf("%g", v))...)
	}
	buf = append(buf, ']')
	return buf, nil
}

func (s *nanSlice) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(nanSlice, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*s = out
	return nil
}

// segmentationJSON mirrors Segmentation with exported field names matching
// the public API, used so Save/Load round-trip without requiring json tags
// on Segmentation itself.
type segmentationJSON struct {
	N           int      `json:"n"`
	MaxBreaks   int      `json:"max_breaks"`
	NBreaksOpt  int      `json:"n_breaks_opt"`
	LLikMat     nanSlice `json:"llikmat"`
	MLLik       nanSlice `json:"mllik"`
	Breakpoints []int    `json:"breakpoints"`
}

// Save writes the segmentation to filepath in the given format. "json" is
// the only format currently supported.
func (s Segmentation) Save(filepath, format string) error {
	switch format {
	case "json":
		f, err := os.Create(filepath)
		if err != nil {
			return err
		}
		defer f.Close()
		out, err := json.Marshal(segmentationJSON{
			N:           s.N,
			MaxBreaks:   s.MaxBreaks,
			NBreaksOpt:  s.NBreaksOpt,
			LLikMat:     nanSlice(s.LLikMat),
			MLLik:       nanSlice(s.MLLik),
			Breakpoints: s.Breakpoints,
		})
		if err != nil {
			return err
		}
		_, err = f.Write(out)
		return err
	default:
		return fmt.Errorf("tadbit: invalid save format %q", format)
	}
}

// Load populates s from filepath in the given format, replacing its
// current contents.
func (s *Segmentation) Load(filepath, format string) error {
	switch format {
	case "json":
		f, err := os.Open(filepath)
		if err != nil {
			return err
		}
		defer f.Close()
		b, err := ioutil.ReadAll(f)
		if err != nil {
			return err
		}
		var sj segmentationJSON
		if err := json.Unmarshal(b, &sj); err != nil {
			return err
		}
		s.N = sj.N
		s.MaxBreaks = sj.MaxBreaks
		s.NBreaksOpt = sj.NBreaksOpt
		s.LLikMat = []float64(sj.LLikMat)
		s.MLLik = []float64(sj.MLLik)
		s.Breakpoints = sj.Breakpoints
		return nil
	default:
		return fmt.Errorf("tadbit: invalid load format %q", format)
	}
}
