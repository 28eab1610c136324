package utils

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/image/draw"
)

// ErrNotAnImage is returned when avatar data is not a supported image.
var ErrNotAnImage = errors.New("utils: avatar data is not a png or jpeg image")

// DefaultAvatarMaxDim bounds the longest edge of an encoded avatar. Profile
// pictures travel inline as data URIs, so they have to stay small.
const DefaultAvatarMaxDim = 512

const jpegQuality = 80

// EncodeAvatar turns raw image bytes into a data URI suitable for the
// profile's avatar field, downscaling so neither edge exceeds maxDim.
// PNG input stays PNG; everything else is re-encoded as JPEG.
func EncodeAvatar(data []byte, maxDim int) (string, error) {
	if maxDim <= 0 {
		maxDim = DefaultAvatarMaxDim
	}

	mt := mimetype.Detect(data)
	if !mt.Is("image/png") && !mt.Is("image/jpeg") {
		return "", ErrNotAnImage
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("decode avatar: %w", err)
	}

	img := downscale(src, maxDim)

	var buf bytes.Buffer
	mime := "image/jpeg"
	if mt.Is("image/png") {
		mime = "image/png"
		err = png.Encode(&buf, img)
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return "", fmt.Errorf("encode avatar: %w", err)
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// downscale resizes src so its longest edge is at most maxDim, preserving
// aspect ratio. Images already within bounds are returned unchanged.
func downscale(src image.Image, maxDim int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return src
	}

	if w >= h {
		h = h * maxDim / w
		w = maxDim
	} else {
		w = w * maxDim / h
		h = maxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
	return dst
}
