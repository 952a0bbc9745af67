package media

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	DefaultSize = 128
	MinSize     = 16
	MaxSize     = 1024
)

// ErrImageTooSmall indicates the source image is smaller than the target size.
var ErrImageTooSmall = errors.New("source image smaller than requested size")

// WritePicture decodes an uploaded image, scales its longest side down to
// MaxSize when needed, and writes an atomically-replaced PNG at destPath.
func WritePicture(src io.Reader, destPath string) error {
	srcImg, _, err := image.Decode(src)
	if err != nil {
		return err
	}
	w := srcImg.Bounds().Dx()
	h := srcImg.Bounds().Dy()
	if w == 0 || h == 0 {
		return errors.New("invalid image dimensions")
	}
	targetW, targetH := FitWithin(w, h, MaxSize)

	out := srcImg
	if targetW != w || targetH != h {
		dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Over, nil)
		out = dst
	}
	return writePNGAtomic(out, destPath)
}

// ResizeAndCache scales an image to cover size and caches it as PNG.
func ResizeAndCache(sourcePath, cachePath string, size int) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return err
	}

	srcFile, err := os.Open(sourcePath)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	srcImg, _, err := image.Decode(srcFile)
	if err != nil {
		return err
	}
	srcW := srcImg.Bounds().Dx()
	srcH := srcImg.Bounds().Dy()
	if srcW < size && srcH < size {
		return ErrImageTooSmall
	}
	targetW, targetH := FitCover(srcW, srcH, size)

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Over, nil)
	return writePNGAtomic(dst, cachePath)
}

func writePNGAtomic(img image.Image, destPath string) error {
	tmp, err := os.CreateTemp(filepath.Dir(destPath), "picture_*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := png.Encode(tmp, img); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// FitWithin shrinks width/height proportionally so both fit inside maxDim.
func FitWithin(width, height, maxDim int) (int, int) {
	if width <= 0 || height <= 0 || maxDim <= 0 {
		return maxDim, maxDim
	}
	if width <= maxDim && height <= maxDim {
		return width, height
	}
	if width >= height {
		newW := maxDim
		newH := int(float64(height) * float64(maxDim) / float64(width))
		if newH < 1 {
			newH = 1
		}
		return newW, newH
	}
	newH := maxDim
	newW := int(float64(width) * float64(maxDim) / float64(height))
	if newW < 1 {
		newW = 1
	}
	return newW, newH
}

// FitCover scales width/height proportionally so the shorter side equals minDim.
func FitCover(width, height, minDim int) (int, int) {
	if width <= 0 || height <= 0 || minDim <= 0 {
		return minDim, minDim
	}
	if width <= height {
		newW := minDim
		newH := int(float64(height) * float64(minDim) / float64(width))
		if newH < minDim {
			newH = minDim
		}
		return newW, newH
	}
	newH := minDim
	newW := int(float64(width) * float64(minDim) / float64(height))
	if newW < minDim {
		newW = minDim
	}
	return newW, newH
}
