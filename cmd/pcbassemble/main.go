// Command pcbassemble finds the component designators and outlines on a PCB
// photo and draws each class's sprite at every outline, paired with its
// nearest designator.
package main

import (
	"errors"
	"flag"
	"image"
	"image/color"

	"visionlab/internal/app"
	"visionlab/internal/assembly"
	"visionlab/internal/component"
	"visionlab/internal/cv"
	imgload "visionlab/internal/image"
	"visionlab/internal/ocr"
	"visionlab/pkg/colorutil"
	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

const program = "pcbassemble"

var (
	designatorColor = colorutil.Red
	rejectedColor   = color.RGBA{R: 255, G: 128, A: 255}
	linkColor       = colorutil.Blue
)

// params are the trackbar values of the result window.
type params struct {
	designator component.DesignatorParams
	outline    component.OutlineParams
}

func main() {
	fs := flag.CommandLine
	pcbPath := fs.String("pcb", "", "Path to the PCB image")
	tplDir := fs.String("templates", "", "Directory with <Class>.jpg templates and <Class>_sprite.png sprites")
	useOCR := fs.Bool("ocr", false, "Verify designators with OCR before pairing")
	outPath := fs.String("out", "", "Write the assembled image to this PNG on exit")
	watch := fs.Bool("watch", false, "Reload the templates when the directory changes")
	opts := app.RegisterFlags(fs)
	flag.Parse()

	if *pcbPath == "" || *tplDir == "" {
		app.Usage(fs, "Usage: pcbassemble -pcb <image> -templates <dir> [-ocr] [-out <png>] [-watch]")
	}

	env, err := app.Start(program, opts)
	if err != nil {
		app.Usage(fs, err.Error())
	}

	pcb, err := cv.LoadMat(*pcbPath)
	if err != nil {
		env.Exit(app.ExitInput, "could not open PCB image", "path", *pcbPath, "error", err)
	}
	defer pcb.Close()

	classes, err := component.LoadClasses(*tplDir)
	if err != nil {
		env.Exit(app.ExitInput, "could not load component classes", "dir", *tplDir, "error", err)
	}
	defer func() { component.CloseAll(classes) }()

	var watcher *app.DirWatcher
	if *watch {
		watcher, err = app.WatchDir(*tplDir, env.Log)
		if err != nil {
			env.Exit(app.ExitInput, "could not watch templates", "dir", *tplDir, "error", err)
		}
		defer watcher.Close()
	}

	scanner := &component.Scanner{Log: env.Log}
	if *useOCR {
		engine, err := ocr.NewEngine()
		if err != nil {
			env.Exit(app.ExitUsage, "could not start OCR", "error", err)
		}
		defer engine.Close()
		scanner.Verifier = engine
	}

	p := params{
		designator: component.DefaultDesignatorParams(),
		outline:    component.DefaultOutlineParams(),
	}
	panel := cv.NewPanel("Result")
	defer panel.Close()
	panel.Int("threshold", &p.designator.Threshold, 100)
	panel.Int("hue min", &p.outline.HueMin, 180)
	panel.Int("hue max", &p.outline.HueMax, 180)
	panel.Int("sat min", &p.outline.SatMin, 255)
	panel.Int("val min", &p.outline.ValMin, 255)
	panel.Int("val max", &p.outline.ValMax, 255)
	panel.Int("min area", &p.outline.MinArea, 5000)
	panel.Restore(env.Prefs)

	var scene *image.RGBA
	dirty := true
	for {
		if watcher != nil && watcher.Changed() {
			reloaded, err := component.LoadClasses(*tplDir)
			if err != nil {
				env.Log.Warning("could not reload component classes", "dir", *tplDir, "error", err)
			} else {
				component.CloseAll(classes)
				classes = reloaded
				dirty = true
				env.Log.Info("reloaded component classes", "count", len(classes))
			}
		}
		if panel.Sync() || dirty {
			dirty = false
			scene, err = assemble(env, pcb, classes, scanner, p)
			if err != nil {
				env.Log.Warning("assembly failed", "error", err)
			}
			if scene != nil {
				show(env, panel, scene)
			}
		}
		if cv.Quit(panel.Window(), 5) {
			break
		}
	}

	panel.Store(env.Prefs)
	if *outPath != "" && scene != nil {
		if err := imgload.SavePNG(*outPath, scene); err != nil {
			env.Log.Error("could not save result", "path", *outPath, "error", err)
		}
	}
	env.Close()
}

// assemble runs one detection pass and returns the composited scene.
func assemble(env *app.Env, pcb gocv.Mat, classes []*component.Class, scanner *component.Scanner, p params) (*image.RGBA, error) {
	scene, err := cv.MatToImage(pcb)
	if err != nil {
		return nil, err
	}

	scan, err := scanner.Scan(pcb, classes, p.designator, p.outline)
	if err != nil {
		return scene, err
	}
	boxes, classOf := scan.Boxes()

	pairings, err := assembly.PairNearest(scan.Outlines, boxes)
	if errors.Is(err, assembly.ErrNoDesignators) {
		env.Log.Info("no designators above threshold", "threshold", p.designator.Threshold)
		return scene, nil
	}
	if err != nil {
		return scene, err
	}

	for _, pr := range pairings {
		c := classOf[pr.Designator]
		o := assembly.DefaultOptions().WithRotateIfTall(c.RotateIfTall).WithLink(linkColor)
		if err := assembly.Composite(scene, pr, c.Sprite, o); err != nil {
			env.Log.Warning("could not draw component", "class", c.Name, "outline", pr.Outline, "error", err)
		}
	}

	mark(scene, boxes, designatorColor)
	mark(scene, scan.Rejected, rejectedColor)
	return scene, nil
}

// mark frames every box in c.
func mark(img *image.RGBA, boxes []geometry.RectInt, c color.RGBA) {
	for _, b := range boxes {
		assembly.DrawFrame(img, b, c)
	}
}

func show(env *app.Env, panel *cv.Panel, scene *image.RGBA) {
	mat, err := cv.ImageToMat(scene)
	if err != nil {
		env.Log.Warning("could not display scene", "error", err)
		return
	}
	defer mat.Close()
	panel.Show(mat)
}
