// Command tplmatch locates a template in an image: every pixel above a
// threshold, the best match, one match per region and, with -rotated,
// matches in rotated copies of the input.
package main

import (
	"flag"
	"image/color"

	"visionlab/internal/app"
	"visionlab/internal/cv"
	"visionlab/internal/tmatch"
	"visionlab/pkg/colorutil"
	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

const program = "tplmatch"

var (
	allColor     = colorutil.Green
	bestColor    = colorutil.Red
	maximaColor  = colorutil.Blue
	rotatedColor = colorutil.Yellow
)

type params struct {
	threshold int // Percent of the normalised score
}

func main() {
	fs := flag.CommandLine
	inPath := fs.String("input", "", "Path to the input image")
	tplPath := fs.String("template", "", "Path to the template image")
	rotated := fs.Bool("rotated", false, "Also search rotated copies of the input")
	maxAngle := fs.Float64("maxangle", tmatch.DefaultMaxAngle, "Largest rotation tried with -rotated, degrees")
	step := fs.Float64("step", tmatch.DefaultStep, "Rotation step with -rotated, degrees")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *inPath == "" || *tplPath == "" {
		app.Usage(fs, "Usage: tplmatch -input <img> -template <img> [-rotated]")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}

	input, err := cv.LoadMat(*inPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open input", "path", *inPath, "error", err)
	}
	defer input.Close()
	tpl, err := cv.LoadMat(*tplPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open template", "path", *tplPath, "error", err)
	}
	defer tpl.Close()

	if *rotated {
		quads, err := tmatch.Rotated(input, tpl, *maxAngle, *step)
		if err != nil {
			env.Exit(app.ExitUsage, "rotated matching failed", "error", err)
		}
		env.Log.Info("rotated matches", "count", len(quads))
		out := input.Clone()
		defer out.Close()
		for _, q := range quads {
			env.Log.Debug("match", "angle", q.Angle, "score", q.Score)
			cv.DrawPolygon(&out, q.Points(), rotatedColor, 2)
		}
		w := gocv.NewWindow("Rotated")
		defer w.Close()
		w.IMShow(out)
	}

	p := params{threshold: int(tmatch.DefaultThreshold * 100)}
	panel := cv.NewPanel("Local maxima")
	defer panel.Close()
	panel.Int("threshold", &p.threshold, 100)
	panel.Restore(env.Prefs)

	all := gocv.NewWindow("All above")
	defer all.Close()
	best := gocv.NewWindow("Best")
	defer best.Close()

	m, err := tmatch.Best(input, tpl)
	if err != nil {
		env.Exit(app.ExitUsage, "matching failed", "error", err)
	}
	show(best, input, []geometry.RectInt{m.Box}, bestColor)

	dirty := true
	for {
		if panel.Sync() || dirty {
			dirty = false
			t := float64(p.threshold) / 100

			matches, err := tmatch.AllAbove(input, tpl, t)
			if err != nil {
				env.Log.Warning("matching failed", "error", err)
			}
			show(all, input, boxes(matches), allColor)

			maxima, err := tmatch.LocalMaxima(input, tpl, t)
			if err != nil {
				env.Log.Warning("matching failed", "error", err)
			}
			show(panel.Window(), input, boxes(maxima), maximaColor)
			env.Log.Debug("matched", "threshold", t, "above", len(matches), "regions", len(maxima))
		}
		if cv.Quit(panel.Window(), 10) {
			break
		}
	}

	panel.Store(env.Prefs)
	env.Close()
}

func boxes(ms []tmatch.Match) []geometry.RectInt {
	out := make([]geometry.RectInt, len(ms))
	for i, m := range ms {
		out[i] = m.Box
	}
	return out
}

// show draws bs on a copy of input and displays it in w.
func show(w *gocv.Window, input gocv.Mat, bs []geometry.RectInt, c color.RGBA) {
	out := input.Clone()
	defer out.Close()
	cv.DrawBoxes(&out, bs, c, 2)
	w.IMShow(out)
}
