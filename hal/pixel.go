package hal

// RGB565 packs an 8-bit RGB triple into rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a packed RGB565 pixel back to 8 bits per channel.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// fill writes one pixel value across a buffer in the given format.
func fill(buf []byte, format PixelFormat, r, g, b uint8) {
	switch format {
	case PixelFormatRGB565:
		pixel := RGB565(r, g, b)
		lo := byte(pixel)
		hi := byte(pixel >> 8)
		for i := 0; i+1 < len(buf); i += 2 {
			buf[i] = lo
			buf[i+1] = hi
		}
	case PixelFormatRGBA8888:
		for i := 0; i+3 < len(buf); i += 4 {
			buf[i+0] = r
			buf[i+1] = g
			buf[i+2] = b
			buf[i+3] = 0xFF
		}
	}
}
