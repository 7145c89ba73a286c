package kmsdrm

import (
	"encoding/binary"
	"image"
)

// PixelFormat is an enumeration of framebuffer pixel formats
type PixelFormat int

const (
	// RGB32 is 32-bit RGB format (0xffRRGGBB)
	RGB32 PixelFormat = iota
	// RGB16 is 16-bit RGB format (5-6-5)
	RGB16
)

// GetPixelSize returns the number of bytes per pixel.
func GetPixelSize(pixFormat PixelFormat) int {
	if pixFormat == RGB16 {
		return 2
	}
	return 4
}

// GetPixelDepth returns the number of colour bits per pixel.
func GetPixelDepth(pixFormat PixelFormat) int {
	if pixFormat == RGB16 {
		return 16
	}
	return 24
}

// convertRows writes src into dst, a framebuffer of the given pixel format
// with bytePerLine bytes per row. Only the overlap of the two is written.
// Alpha is dropped: the colour of a premultiplied pixel over black is its
// own RGB.
func convertRows(dst []byte, bytePerLine int, width, height int, pixFormat PixelFormat, src *image.RGBA) {
	bounds := src.Bounds()
	w := min(width, bounds.Dx())
	h := min(height, bounds.Dy())
	pixSize := GetPixelSize(pixFormat)

	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+w*4]
		dstRow := dst[y*bytePerLine : y*bytePerLine+w*pixSize]
		for x := 0; x < w; x++ {
			r, g, b := srcRow[x*4], srcRow[x*4+1], srcRow[x*4+2]
			switch pixFormat {
			case RGB16:
				binary.LittleEndian.PutUint16(dstRow[x*2:], rgb565(r, g, b))
			default:
				binary.LittleEndian.PutUint32(dstRow[x*4:], 0xFF000000|uint32(r)<<16|uint32(g)<<8|uint32(b))
			}
		}
	}
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
