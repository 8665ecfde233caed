// Command pixelclass trains pixel classifiers on foreground and background
// regions selected in a training image and segments a test image with each.
package main

import (
	"flag"
	"image"

	"visionlab/internal/app"
	"visionlab/internal/cv"
	imgload "visionlab/internal/image"
	"visionlab/internal/pixelclass"

	"gocv.io/x/gocv"
)

const program = "pixelclass"

// overlayOpacity is how strongly the foreground is screened over the test
// image.
const overlayOpacity = 0.6

// Green leaves on the 0-180 hue scale.
const (
	leafHueMin = 30
	leafHueMax = 90
)

func main() {
	fs := flag.CommandLine
	trainPath := fs.String("train", "", "Path to the training image")
	testPath := fs.String("test", "", "Path to the image to classify")
	keepGreen := fs.Bool("keepgreen", false, "Do not blacken green foreground pixels")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *trainPath == "" || *testPath == "" {
		app.Usage(fs, "Usage: pixelclass -train <img> -test <img>")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}

	trainMat, err := cv.LoadMat(*trainPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open training image", "path", *trainPath, "error", err)
	}
	defer trainMat.Close()
	testMat, err := cv.LoadMat(*testPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open test image", "path", *testPath, "error", err)
	}
	defer testMat.Close()

	env.Log.Info("select foreground regions, then press Esc")
	fg := gocv.SelectROIs("Foreground", trainMat)
	env.Log.Info("select background regions, then press Esc")
	bg := gocv.SelectROIs("Background", trainMat)

	trainImg, err := cv.MatToImage(trainMat)
	if err != nil {
		env.Exit(app.ExitInput, "could not convert training image", "error", err)
	}
	testImg, err := cv.MatToImage(testMat)
	if err != nil {
		env.Exit(app.ExitInput, "could not convert test image", "error", err)
	}

	smooth := pixelclass.Smooth(trainImg)
	samples := append(
		pixelclass.SamplesFromRects(smooth, fg, pixelclass.Foreground),
		pixelclass.SamplesFromRects(smooth, bg, pixelclass.Background)...)
	nbg, nfg := pixelclass.Counts(samples)
	env.Log.Info("samples", "foreground", nfg, "background", nbg)

	test := pixelclass.Smooth(testImg)
	var windows []*gocv.Window
	for _, k := range []pixelclass.Kind{pixelclass.KindKNN, pixelclass.KindNormalBayes, pixelclass.KindLinearSVM} {
		c, err := pixelclass.New(k)
		if err != nil {
			env.Exit(app.ExitUsage, "could not build classifier", "error", err)
		}
		if err := c.Train(samples); err != nil {
			env.Exit(app.ExitUsage, "training failed", "classifier", c.Name(), "error", err)
		}
		out := pixelclass.Apply(test, c)
		if !*keepGreen {
			pixelclass.SuppressHue(out, leafHueMin, leafHueMax)
		}
		w := gocv.NewWindow(c.Name())
		defer w.Close()
		show(w, out)
		windows = append(windows, w)

		overlay := image.NewRGBA(testImg.Bounds())
		copy(overlay.Pix, testImg.Pix)
		imgload.Blend(overlay, out, imgload.BlendScreen, overlayOpacity)
		ow := gocv.NewWindow(c.Name() + " overlay")
		defer ow.Close()
		show(ow, overlay)
		env.Log.Debug("classified", "classifier", c.Name())
	}

	for !cv.Quit(windows[0], 50) {
	}
	env.Close()
}

func show(w *gocv.Window, img image.Image) {
	mat, err := cv.ImageToMat(img)
	if err != nil {
		return
	}
	defer mat.Close()
	w.IMShow(mat)
}
