package component

import (
	"errors"
	"image"

	"visionlab/pkg/geometry"

	"gocv.io/x/gocv"
)

// Connected component stats columns.
const (
	statLeft = iota
	statTop
	statWidth
	statHeight
	statArea
)

// OutlineMask returns the closed HSV in-range mask used by DetectOutlines.
// The caller closes the result.
func OutlineMask(scene gocv.Mat, p OutlineParams) (gocv.Mat, error) {
	if scene.Empty() {
		return gocv.NewMat(), errors.New("empty scene")
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(scene, &hsv, gocv.ColorBGRToHSV)

	mask := gocv.NewMat()
	gocv.InRangeWithScalar(hsv,
		gocv.NewScalar(float64(p.HueMin), float64(p.SatMin), float64(p.ValMin), 0),
		gocv.NewScalar(float64(p.HueMax), 255, float64(p.ValMax), 0),
		&mask)

	k := max(1, p.Kernel)
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{k, k})
	defer kernel.Close()
	for i := 0; i < p.Iterations; i++ {
		gocv.Dilate(mask, &mask, kernel)
	}
	for i := 0; i < p.Iterations; i++ {
		gocv.Erode(mask, &mask, kernel)
	}
	return mask, nil
}

// DetectOutlines returns the bounding box of every connected region of the
// outline mask whose area is at least p.MinArea.
func DetectOutlines(scene gocv.Mat, p OutlineParams) ([]geometry.RectInt, error) {
	mask, err := OutlineMask(scene, p)
	if err != nil {
		return nil, err
	}
	defer mask.Close()
	return RegionBoxes(mask, p.MinArea), nil
}

// RegionBoxes labels a binary mask and returns one box per foreground label
// with at least minArea pixels, in label order.
func RegionBoxes(mask gocv.Mat, minArea int) []geometry.RectInt {
	labels := gocv.NewMat()
	defer labels.Close()
	stats := gocv.NewMat()
	defer stats.Close()
	centroids := gocv.NewMat()
	defer centroids.Close()

	n := gocv.ConnectedComponentsWithStats(mask, &labels, &stats, &centroids)

	var boxes []geometry.RectInt
	// Label 0 is the background.
	for i := 1; i < n; i++ {
		if int(stats.GetIntAt(i, statArea)) < minArea {
			continue
		}
		boxes = append(boxes, geometry.RectInt{
			X:      int(stats.GetIntAt(i, statLeft)),
			Y:      int(stats.GetIntAt(i, statTop)),
			Width:  int(stats.GetIntAt(i, statWidth)),
			Height: int(stats.GetIntAt(i, statHeight)),
		})
	}
	return boxes
}
