package tray

import (
	"encoding/binary"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeICOLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	img.SetRGBA(0, 0, color.RGBA{1, 2, 3, 4})

	data := EncodeICO(img)

	const header = 6 + 16 + 40
	require.Len(t, data, header+16*16*4+4*16)
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[2:]), "type icon")
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[4:]), "one image")
	assert.Equal(t, byte(16), data[6])
	assert.Equal(t, uint32(len(data)-22), binary.LittleEndian.Uint32(data[14:]))
	assert.Equal(t, uint32(22), binary.LittleEndian.Uint32(data[18:]))
	assert.Equal(t, int32(32), int32(binary.LittleEndian.Uint32(data[22+8:])), "doubled height")

	// Top-left pixel is the first pixel of the last stored row.
	off := header + 15*16*4
	assert.Equal(t, []byte{3, 2, 1, 4}, data[off:off+4])
}

func TestIconIsTransparentOutsideDisc(t *testing.T) {
	img := iconImage()
	assert.Zero(t, img.RGBAAt(0, 0).A)
	assert.Equal(t, uint8(0xFF), img.RGBAAt(8, 2).A)
	assert.NotEmpty(t, Icon())
}
