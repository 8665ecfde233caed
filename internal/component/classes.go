package component

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"visionlab/internal/cv"
	imgload "visionlab/internal/image"

	"gocv.io/x/gocv"
)

// ManifestFile optionally lists the classes of a template directory.
const ManifestFile = "classes.json"

const spriteSuffix = "_sprite"

// ErrNoClasses is returned when a template directory holds no templates.
var ErrNoClasses = errors.New("no component templates found")

// ClassDef describes one class in a manifest.
type ClassDef struct {
	Name         string `json:"name"`
	RotateIfTall *bool  `json:"rotate_if_tall,omitempty"` // Defaults to true
}

// Manifest lists the classes to load, in order.
type Manifest struct {
	Classes []ClassDef `json:"classes"`
}

// Class is a component class: its designator template (e.g. the printed
// "R") and the sprite drawn at every outline paired with it.
type Class struct {
	Name         string
	Template     gocv.Mat
	Sprite       image.Image
	RotateIfTall bool
}

// Close releases the template matrix.
func (c *Class) Close() error { return c.Template.Close() }

// LoadClasses loads the classes of dir. Each class has a template
// <Name>.jpg and an optional sprite <Name>_sprite.png or .jpg; without a
// sprite the template itself is drawn. If dir has a classes.json manifest
// only the classes it lists are loaded, otherwise every template is.
func LoadClasses(dir string) ([]*Class, error) {
	defs, err := classDefs(dir)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoClasses)
	}

	var classes []*Class
	for _, d := range defs {
		c, err := loadClass(dir, d)
		if err != nil {
			CloseAll(classes)
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

// CloseAll closes every class.
func CloseAll(classes []*Class) {
	for _, c := range classes {
		c.Close()
	}
}

func loadClass(dir string, d ClassDef) (*Class, error) {
	tpl, err := cv.LoadMat(filepath.Join(dir, d.Name+".jpg"))
	if err != nil {
		return nil, fmt.Errorf("could not load template of class %s: %w", d.Name, err)
	}

	c := &Class{Name: d.Name, Template: tpl, RotateIfTall: true}
	if d.RotateIfTall != nil {
		c.RotateIfTall = *d.RotateIfTall
	}

	if path, ok := imgload.FindWithExt(dir, d.Name+spriteSuffix); ok {
		c.Sprite, err = imgload.Load(path)
	} else {
		c.Sprite, err = cv.MatToImage(tpl)
	}
	if err != nil {
		tpl.Close()
		return nil, fmt.Errorf("could not load sprite of class %s: %w", d.Name, err)
	}
	return c, nil
}

// classDefs reads the manifest of dir, or derives one from the template
// files it contains, sorted by name.
func classDefs(dir string) ([]ClassDef, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err == nil {
		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ManifestFile, err)
		}
		return m.Classes, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read template dir: %w", err)
	}
	var defs []ClassDef
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".jpg" {
			continue
		}
		base := strings.TrimSuffix(name, ".jpg")
		if strings.HasSuffix(base, spriteSuffix) {
			continue
		}
		defs = append(defs, ClassDef{Name: base})
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}
