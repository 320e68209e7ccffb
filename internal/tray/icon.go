package tray

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
)

const iconSize = 16

// Icon is the tray icon in ICO format.
func Icon() []byte {
	return EncodeICO(iconImage())
}

// iconImage draws a green disc with white viewfinder corners.
func iconImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	green := color.RGBA{0x1E, 0x9E, 0x5A, 0xFF}
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			cx, cy := float64(x)-7.5, float64(y)-7.5
			if cx*cx+cy*cy < 56 {
				img.SetRGBA(x, y, green)
			}
		}
	}
	// Corner brackets of a capture frame.
	for i := 0; i < 3; i++ {
		for _, p := range []image.Point{
			{4 + i, 4}, {4, 4 + i},
			{11 - i, 4}, {11, 4 + i},
			{4 + i, 11}, {4, 11 - i},
			{11 - i, 11}, {11, 11 - i},
		} {
			img.SetRGBA(p.X, p.Y, white)
		}
	}
	img.SetRGBA(7, 7, white)
	img.SetRGBA(8, 8, white)
	img.SetRGBA(7, 8, white)
	img.SetRGBA(8, 7, white)
	return img
}

// EncodeICO wraps img in a single-image 32-bit ICO. Images wider or
// taller than 256 are not representable and are cut.
func EncodeICO(img *image.RGBA) []byte {
	b := img.Bounds()
	w, h := min(b.Dx(), 256), min(b.Dy(), 256)

	xorSize := w * h * 4
	maskStride := ((w + 31) / 32) * 4
	andSize := maskStride * h
	dataSize := 40 + xorSize + andSize

	var buf bytes.Buffer
	le := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	// ICONDIR
	le(uint16(0))
	le(uint16(1))
	le(uint16(1))
	// ICONDIRENTRY; 0 encodes 256.
	buf.WriteByte(byte(w))
	buf.WriteByte(byte(h))
	buf.WriteByte(0)
	buf.WriteByte(0)
	le(uint16(1))
	le(uint16(32))
	le(uint32(dataSize))
	le(uint32(6 + 16))

	// BITMAPINFOHEADER, height doubled for the AND mask.
	le(uint32(40))
	le(int32(w))
	le(int32(h * 2))
	le(uint16(1))
	le(uint16(32))
	le(uint32(0))
	le(uint32(xorSize + andSize))
	le(int32(0))
	le(int32(0))
	le(uint32(0))
	le(uint32(0))

	// BGRA rows, bottom-up.
	for y := h - 1; y >= 0; y-- {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			buf.Write([]byte{c.B, c.G, c.R, c.A})
		}
	}
	// All-zero AND mask: alpha carries transparency.
	buf.Write(make([]byte, andSize))
	return buf.Bytes()
}
