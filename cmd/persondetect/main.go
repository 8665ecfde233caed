// Command persondetect finds people in a video with the HOG people detector
// and draws the path of their centres.
package main

import (
	"flag"

	"visionlab/internal/app"
	"visionlab/internal/cv"
	"visionlab/internal/objdetect"
	"visionlab/internal/track"
	"visionlab/pkg/colorutil"

	"gocv.io/x/gocv"
)

const program = "persondetect"

var (
	personColor = colorutil.Green
	trackColor  = colorutil.Red
)

func main() {
	fs := flag.CommandLine
	videoPath := fs.String("video", "", "Path to the video")
	upscale := fs.Int("upscale", objdetect.DefaultHOGParams().Upscale, "Enlarge frames by this factor before detection")
	maxGap := fs.Float64("maxgap", track.DefaultMaxGap, "Join consecutive centres closer than this, px")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *videoPath == "" {
		app.Usage(fs, "Usage: persondetect -video <file>")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}

	people, err := objdetect.NewPeople(objdetect.DefaultHOGParams().WithUpscale(*upscale))
	if err != nil {
		env.Exit(app.ExitUsage, "could not build people detector", "error", err)
	}
	defer people.Close()

	video, err := gocv.VideoCaptureFile(*videoPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open video", "path", *videoPath, "error", err)
	}
	defer video.Close()

	w := gocv.NewWindow("People")
	defer w.Close()
	frame := gocv.NewMat()
	defer frame.Close()

	var t track.Track
	n := 0
	for video.Read(&frame) && !frame.Empty() {
		n++
		prepared := people.Prepare(frame)
		found, err := people.Detect(prepared)
		if err != nil {
			env.Log.Warning("detection failed", "frame", n, "error", err)
		}
		t.Add(found...)
		cv.DrawBoxes(&prepared, found, personColor, 2)
		for _, s := range t.Segments(*maxGap) {
			gocv.Line(&prepared, s.From.ToImage(), s.To.ToImage(), trackColor, 2)
		}
		env.Log.Debug("frame", "n", n, "people", len(found), "track", t.Len())

		w.IMShow(prepared)
		prepared.Close()
		if cv.Quit(w, 1) {
			break
		}
	}
	env.Log.Info("done", "frames", n, "points", t.Len())
	env.Close()
}
