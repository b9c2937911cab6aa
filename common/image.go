package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageDecoder turns image files into tightly packed pixel buffers.
// Supports PNG, JPEG, BMP, TIFF and WebP.
type ImageDecoder struct {
	// FlipVertical orders rows bottom-to-top so that v=0 samples the bottom of the image.
	FlipVertical bool
}

// NewImageDecoder creates an ImageDecoder that flips rows vertically, matching the
// texture-coordinate convention of the scene meshes.
//
// Returns:
//   - *ImageDecoder: the decoder
func NewImageDecoder() *ImageDecoder {
	return &ImageDecoder{FlipVertical: true}
}

// Decode reads and decodes the image file at path.
// Reference: https://pkg.go.dev/image
//
// Parameters:
//   - path: the image file path
//
// Returns:
//   - DecodedImage: the packed pixels, dimensions and channel count
//   - error: error if the file cannot be opened or decoded
func (d *ImageDecoder) Decode(path string) (DecodedImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return DecodedImage{}, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, err := d.DecodeReader(file)
	if err != nil {
		return DecodedImage{}, fmt.Errorf("failed to decode image file %s: %w", path, err)
	}
	return img, nil
}

// DecodeBytes decodes an in-memory encoded image.
//
// Parameters:
//   - data: the encoded image bytes (PNG, JPEG, ...)
//
// Returns:
//   - DecodedImage: the packed pixels, dimensions and channel count
//   - error: error if the data cannot be decoded
func (d *ImageDecoder) DecodeBytes(data []byte) (DecodedImage, error) {
	return d.DecodeReader(bytes.NewReader(data))
}

// DecodeReader decodes an image stream.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - DecodedImage: the packed pixels, dimensions and channel count
//   - error: error if the stream cannot be decoded
func (d *ImageDecoder) DecodeReader(r io.Reader) (DecodedImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return DecodedImage{}, err
	}

	channels := ChannelCount(img)
	if d.FlipVertical {
		img = transform.FlipV(img)
	}

	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)

	return DecodedImage{
		Pixels:   PackChannels(nrgba.Pix, channels),
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Channels: channels,
	}, nil
}

// ChannelCount reports how many 8-bit channels the source image carries, following the
// color model the decoder produced: gray images have one channel, images with an alpha
// channel have four, opaque color images have three.
//
// Parameters:
//   - img: the decoded image
//
// Returns:
//   - int: 1, 3 or 4
func ChannelCount(img image.Image) int {
	switch im := img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	case *image.NRGBA, *image.NRGBA64, *image.NYCbCrA:
		return 4
	case *image.YCbCr, *image.CMYK:
		return 3
	case interface{ Opaque() bool }:
		if im.Opaque() {
			return 3
		}
	}
	return 4
}

// PackChannels repacks 4-byte NRGBA pixels into the requested channel count.
// Four channels return the input unchanged, three drop alpha, one keeps red.
//
// Parameters:
//   - nrgba: the source pixels, 4 bytes per pixel
//   - channels: 1, 3 or 4
//
// Returns:
//   - []byte: the packed pixels
func PackChannels(nrgba []byte, channels int) []byte {
	if channels == 4 {
		return nrgba
	}
	pixelCount := len(nrgba) / 4
	out := make([]byte, pixelCount*channels)
	for i := 0; i < pixelCount; i++ {
		copy(out[i*channels:i*channels+channels], nrgba[i*4:i*4+channels])
	}
	return out
}

// ExpandToRGBA widens 3-channel RGB pixels to RGBA with opaque alpha.
// 4-channel input is returned unchanged.
//
// Parameters:
//   - pixels: the packed source pixels
//   - channels: 3 or 4
//
// Returns:
//   - []byte: RGBA pixels, 4 bytes per pixel
func ExpandToRGBA(pixels []byte, channels int) []byte {
	if channels == 4 {
		return pixels
	}
	pixelCount := len(pixels) / channels
	out := make([]byte, pixelCount*4)
	for i := 0; i < pixelCount; i++ {
		copy(out[i*4:i*4+3], pixels[i*channels:i*channels+3])
		out[i*4+3] = 0xFF
	}
	return out
}

// MipLevelCount returns the number of levels in a full mip chain for the given size.
//
// Parameters:
//   - width, height: the base level size in pixels
//
// Returns:
//   - int: floor(log2(max(width, height))) + 1
func MipLevelCount(width, height int) int {
	levels := 1
	for width > 1 || height > 1 {
		width = max(width/2, 1)
		height = max(height/2, 1)
		levels++
	}
	return levels
}

// GenerateMipChain builds every mip level of an RGBA image by repeatedly halving it
// with a bilinear filter. Level 0 is the input itself.
//
// Parameters:
//   - rgba: the base level pixels, 4 bytes per pixel
//   - width, height: the base level size in pixels
//
// Returns:
//   - [][]byte: the pixel data of each level, largest first
func GenerateMipChain(rgba []byte, width, height int) [][]byte {
	levels := make([][]byte, 0, MipLevelCount(width, height))
	levels = append(levels, rgba)

	prev := &image.RGBA{Pix: rgba, Stride: width * 4, Rect: image.Rect(0, 0, width, height)}
	for width > 1 || height > 1 {
		width = max(width/2, 1)
		height = max(height/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.BiLinear.Scale(next, next.Bounds(), prev, prev.Bounds(), xdraw.Src, nil)
		levels = append(levels, next.Pix)
		prev = next
	}
	return levels
}
