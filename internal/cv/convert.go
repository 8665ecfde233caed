// Package cv bridges Go images and gocv matrices and provides the small
// window/trackbar helpers shared by the demo programs.
package cv

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	imgload "visionlab/internal/image"

	"gocv.io/x/gocv"
)

// ErrEmptyMat is returned for matrices with no pixels.
var ErrEmptyMat = errors.New("empty matrix")

// ImageToMat converts img to a BGR 8-bit matrix.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	b := img.Bounds()
	if b.Empty() {
		return gocv.NewMat(), ErrEmptyMat
	}

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}

	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("could not create matrix: %w", err)
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)
	return bgr, nil
}

// MatToImage converts a BGR, BGRA or single-channel 8-bit matrix to an
// *image.RGBA.
func MatToImage(mat gocv.Mat) (*image.RGBA, error) {
	if mat.Empty() {
		return nil, ErrEmptyMat
	}

	rgba := gocv.NewMat()
	defer rgba.Close()
	switch mat.Channels() {
	case 1:
		gocv.CvtColor(mat, &rgba, gocv.ColorGrayToBGRA)
	case 3:
		gocv.CvtColor(mat, &rgba, gocv.ColorBGRToRGBA)
	case 4:
		gocv.CvtColor(mat, &rgba, gocv.ColorBGRAToRGBA)
	default:
		return nil, fmt.Errorf("unsupported channel count %d", mat.Channels())
	}

	img := image.NewRGBA(image.Rect(0, 0, rgba.Cols(), rgba.Rows()))
	copy(img.Pix, rgba.ToBytes())
	return img, nil
}

// LoadMat reads an image file as a BGR matrix. Files OpenCV cannot decode
// (it may be built without TIFF support) are decoded in Go instead.
func LoadMat(path string) (gocv.Mat, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if !mat.Empty() {
		return mat, nil
	}
	mat.Close()

	img, err := imgload.Load(path)
	if err != nil {
		return gocv.NewMat(), err
	}
	return ImageToMat(img)
}
