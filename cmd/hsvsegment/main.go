// Command hsvsegment thresholds an image on hue and saturation and outlines
// the convex hull of the largest red region.
package main

import (
	"errors"
	"flag"

	"visionlab/internal/app"
	"visionlab/internal/cv"
	"visionlab/internal/segment"

	"gocv.io/x/gocv"
)

const program = "hsvsegment"

func main() {
	fs := flag.CommandLine
	imgPath := fs.String("image", "", "Path to the input image")
	seed := fs.Int64("seed", 1, "Seed for the region colours")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *imgPath == "" {
		app.Usage(fs, "Usage: hsvsegment -image <img>")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}

	img, err := cv.LoadMat(*imgPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open image", "path", *imgPath, "error", err)
	}
	defer img.Close()

	p := segment.DefaultParams()
	panel := cv.NewPanel("H+S mask")
	defer panel.Close()
	panel.Int("hue low", &p.HueLow, 180)
	panel.Int("hue high", &p.HueHigh, 180)
	panel.Int("sat min", &p.SatMin, 255)
	panel.Int("iterations", &p.Iterations, 30)
	panel.Restore(env.Prefs)

	windows := map[string]*gocv.Window{}
	for _, name := range []string{"Hue", "Saturation", "Regions", "Result"} {
		w := gocv.NewWindow(name)
		defer w.Close()
		windows[name] = w
	}

	dirty := true
	for {
		if panel.Sync() || dirty {
			dirty = false
			run(env, img, p, *seed, panel, windows)
		}
		if cv.Quit(panel.Window(), 10) {
			break
		}
	}

	panel.Store(env.Prefs)
	env.Close()
}

// run segments img once and refreshes every window.
func run(env *app.Env, img gocv.Mat, p segment.Params, seed int64, panel *cv.Panel, windows map[string]*gocv.Window) {
	res, err := segment.Segment(img, p)
	switch {
	case errors.Is(err, segment.ErrNoRegion):
		env.Log.Debug("no region", "params", p)
	case err != nil:
		env.Log.Warning("segmentation failed", "error", err)
		return
	default:
		env.Log.Debug("segmented", "hull", len(res.Hull))
	}
	defer res.Close()

	regions := segment.ColorLabels(res.Mask, seed)
	defer regions.Close()

	panel.Show(res.Mask)
	windows["Hue"].IMShow(res.HueMask)
	windows["Saturation"].IMShow(res.SatMask)
	windows["Regions"].IMShow(regions)
	windows["Result"].IMShow(res.Annotated)
}
