// Command keypoints detects ORB, BRISK and AKAZE keypoints in a template
// and a scene, matches them and outlines the template in the scene.
package main

import (
	"errors"
	"flag"
	"image"

	"visionlab/internal/app"
	"visionlab/internal/cv"
	"visionlab/internal/keypoints"
	"visionlab/internal/matching"
	"visionlab/pkg/colorutil"

	"gocv.io/x/gocv"
)

const program = "keypoints"

// minDistanceFloor keeps a perfect match from shrinking the cutoff to zero.
const minDistanceFloor = 10

var (
	keyColor     = colorutil.Red
	matchColor   = colorutil.Green
	outlineColor = colorutil.Blue
)

func main() {
	fs := flag.CommandLine
	inPath := fs.String("input", "", "Path to the scene image")
	tplPath := fs.String("template", "", "Path to the template image")
	k := fs.Int("k", 50, "Keep at most this many matches")
	factor := fs.Float64("factor", 3, "Drop matches farther than factor times the best distance, 0 to keep all")
	algoName := fs.String("algo", "orb", "Algorithm used for matching: orb, brisk, akaze")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *inPath == "" || *tplPath == "" {
		app.Usage(fs, "Usage: keypoints -input <img> -template <img> [-k 50] [-algo orb]")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}
	algo, err := keypoints.ParseAlgo(*algoName)
	if err != nil {
		env.Exit(app.ExitUsage, "bad algorithm", "error", err)
	}

	scene, err := cv.LoadMat(*inPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open input", "path", *inPath, "error", err)
	}
	defer scene.Close()
	tpl, err := cv.LoadMat(*tplPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open template", "path", *tplPath, "error", err)
	}
	defer tpl.Close()

	for _, a := range keypoints.Algos {
		f, err := keypoints.Detect(scene, a)
		if err != nil {
			env.Log.Warning("detection failed", "algo", a, "error", err)
			continue
		}
		env.Log.Info("keypoints", "algo", a, "count", len(f.Keys))
		out := scene.Clone()
		drawKeys(&out, f.Keys, image.Point{})
		w := gocv.NewWindow(a.String())
		defer w.Close()
		w.IMShow(out)
		out.Close()
		f.Close()
	}

	tf, err := keypoints.Detect(tpl, algo)
	if err != nil {
		env.Exit(app.ExitUsage, "template detection failed", "error", err)
	}
	defer tf.Close()
	sf, err := keypoints.Detect(scene, algo)
	if err != nil {
		env.Exit(app.ExitUsage, "scene detection failed", "error", err)
	}
	defer sf.Close()

	all := keypoints.Match(tf, sf, keypoints.Norm)
	stats := matching.DistanceStats(all)
	limit := 0.0
	if *factor > 0 {
		limit = matching.RelativeLimit(all, *factor, minDistanceFloor)
	}
	good := matching.SelectBest(all, *k, limit)
	env.Log.Info("matches", "algo", algo, "all", stats.Count, "min", stats.Min, "max", stats.Max, "kept", len(good))

	canvas := sideBySide(tpl, scene)
	defer canvas.Close()
	off := image.Pt(tpl.Cols(), 0)
	for _, m := range good {
		q, t := tf.Keys[m.Query], sf.Keys[m.Train]
		a := image.Pt(int(q.X), int(q.Y))
		b := image.Pt(int(t.X), int(t.Y)).Add(off)
		gocv.Line(&canvas, a, b, matchColor, 1)
	}

	loc, err := keypoints.Locate(tf.Keys, sf.Keys, good, image.Pt(tpl.Cols(), tpl.Rows()))
	switch {
	case errors.Is(err, keypoints.ErrTooFewMatches):
		env.Log.Info("too few matches to locate template", "kept", len(good))
	case err != nil:
		env.Log.Warning("could not locate template", "error", err)
	default:
		pts := loc.Points()
		for i := range pts {
			pts[i] = pts[i].Add(off)
		}
		cv.DrawPolygon(&canvas, pts, outlineColor, 3)
	}

	w := gocv.NewWindow("Matches")
	defer w.Close()
	w.IMShow(canvas)
	for !cv.Quit(w, 50) {
	}
	env.Close()
}

func drawKeys(mat *gocv.Mat, keys []gocv.KeyPoint, off image.Point) {
	for _, kp := range keys {
		r := int(kp.Size / 2)
		if r < 2 {
			r = 2
		}
		gocv.Circle(mat, image.Pt(int(kp.X), int(kp.Y)).Add(off), r, keyColor, 1)
	}
}

// sideBySide returns a canvas with left on the left and right next to it.
func sideBySide(left, right gocv.Mat) gocv.Mat {
	rows := left.Rows()
	if right.Rows() > rows {
		rows = right.Rows()
	}
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), rows, left.Cols()+right.Cols(), gocv.MatTypeCV8UC3)
	l := canvas.Region(image.Rect(0, 0, left.Cols(), left.Rows()))
	left.CopyTo(&l)
	l.Close()
	r := canvas.Region(image.Rect(left.Cols(), 0, left.Cols()+right.Cols(), right.Rows()))
	right.CopyTo(&r)
	r.Close()
	return canvas
}
