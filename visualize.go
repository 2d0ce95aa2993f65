package tadbit

import (
	"fmt"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Visualize renders a png with three stacked plots: the log-likelihood
// matrix's near-diagonal profile (L[i,i+3] for each i), the mllik curve
// against break count, and the breakpoints chosen for NBreaksOpt as
// vertical markers over the index range.
func (s Segmentation) Visualize(filename string) error {
	diagPts := diagonalProfile(s.LLikMat, s.N)
	mllikPts := points(s.MLLik)
	breakPts := breakpointLines(s.Breakpoints, s.N, s.NBreaksOpt)

	p0, err := createPlot([]plotter.XYs{diagPts}, nil, "llikmat near-diagonal profile")
	if err != nil {
		return err
	}
	p1, err := createPlot([]plotter.XYs{mllikPts}, nil, "mllik vs break count")
	if err != nil {
		return err
	}
	p2, err := createPlot(breakPts, nil, fmt.Sprintf("breakpoints (k=%d)", s.NBreaksOpt))
	if err != nil {
		return err
	}

	plots := [][]*plot.Plot{{p0}, {p1}, {p2}}

	img := vgimg.New(vg.Points(800), vg.Points(600))
	dc := draw.New(img)
	t := draw.Tiles{Rows: 3, Cols: 1}

	canvases := plot.Align(plots, t, dc)
	for j := 0; j < 3; j++ {
		plots[j][0].Draw(canvases[j][0])
	}

	w, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer w.Close()

	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}

// diagonalProfile extracts L[i,i+3] for every i where that cell is defined,
// skipping NaN entries so the plotted line only covers computed slices.
func diagonalProfile(llik []float64, n int) plotter.XYs {
	var pts plotter.XYs
	for i := 0; i+3 < n; i++ {
		v := llik[i+(i+3)*n]
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

// points turns a plain series into plotter.XYs, skipping NaN entries.
func points(a []float64) plotter.XYs {
	var pts plotter.XYs
	for i, v := range a {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

// breakpointLines returns one vertical line segment (from y=0 to y=1) per
// breakpoint flagged in column k of bkpts.
func breakpointLines(bkpts []int, n, k int) []plotter.XYs {
	var lines []plotter.XYs
	for i := 0; i < n; i++ {
		if bkpts[i+k*n] == 1 {
			lines = append(lines, plotter.XYs{
				{X: float64(i), Y: 0},
				{X: float64(i), Y: 1},
			})
		}
	}
	return lines
}

func createPlot(pts []plotter.XYs, labels []string, title string) (*plot.Plot, error) {
	if labels != nil && len(pts) != len(labels) {
		return nil, fmt.Errorf("tadbit: number of XYs, %d, does not match number of labels, %d", len(pts), len(labels))
	}

	p, err := plot.New()
	if err != nil {
		return p, err
	}

	p.Title.Text = title
	for i := 0; i < len(pts); i++ {
		line, pp, err := plotter.NewLinePoints(pts[i])
		if err != nil {
			return p, err
		}
		line.Color = plotutil.Color(i)
		pp.Color = plotutil.Color(i)
		pp.Shape = nil
		p.Add(line, pp)
		if labels != nil {
			p.Legend.Add(labels[i], line)
		}
	}
	return p, nil
}
