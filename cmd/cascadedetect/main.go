// Command cascadedetect runs a Haar and an LBP face cascade over a video,
// drawing Haar detections as boxes and LBP detections as circles.
package main

import (
	"flag"
	"image"

	"visionlab/internal/app"
	"visionlab/internal/cv"
	"visionlab/internal/objdetect"
	"visionlab/pkg/colorutil"
	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

const program = "cascadedetect"

var (
	haarColor = colorutil.Green
	lbpColor  = colorutil.Blue
)

func main() {
	fs := flag.CommandLine
	videoPath := fs.String("video", "", "Path to the video")
	haarPath := fs.String("haar", "", "Haar cascade XML")
	lbpPath := fs.String("lbp", "", "LBP cascade XML")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *videoPath == "" || *haarPath == "" || *lbpPath == "" {
		app.Usage(fs, "Usage: cascadedetect -video <file> -haar <xml> -lbp <xml>")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}

	haar, err := objdetect.LoadCascade(*haarPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not load Haar cascade", "error", err)
	}
	defer haar.Close()
	lbp, err := objdetect.LoadCascade(*lbpPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not load LBP cascade", "error", err)
	}
	defer lbp.Close()

	video, err := gocv.VideoCaptureFile(*videoPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open video", "path", *videoPath, "error", err)
	}
	defer video.Close()

	w := gocv.NewWindow("Faces")
	defer w.Close()
	frame := gocv.NewMat()
	defer frame.Close()

	n := 0
	for video.Read(&frame) && !frame.Empty() {
		n++
		faces, err := haar.Detect(frame)
		if err != nil {
			env.Log.Warning("Haar detection failed", "frame", n, "error", err)
		}
		alt, err := lbp.Detect(frame)
		if err != nil {
			env.Log.Warning("LBP detection failed", "frame", n, "error", err)
		}
		env.Log.Debug("frame", "n", n, "haar", len(faces), "lbp", len(alt))

		out := annotate(frame, faces, alt)
		w.IMShow(out)
		out.Close()
		if cv.Quit(w, 1) {
			break
		}
	}
	env.Log.Info("done", "frames", n)
	env.Close()
}

// annotate returns a copy of frame with Haar detections boxed and LBP
// detections circled. The caller closes the result.
func annotate(frame gocv.Mat, haar, lbp []geometry.RectInt) gocv.Mat {
	out := frame.Clone()
	cv.DrawBoxes(&out, haar, haarColor, 2)
	for _, f := range lbp {
		c := f.Center()
		gocv.Circle(&out, image.Pt(c.X, c.Y), (f.Width+f.Height)/4, lbpColor, 2)
	}
	return out
}
