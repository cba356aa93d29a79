package assets

import (
	"fmt"
	"image"
	"math"

	"bitday/core/render"

	"github.com/lucasb-eyer/go-colorful"
)

type sky struct {
	zenith  string
	horizon string
	ground  string
	// sun is the disc centre in unit coordinates; radius 0 means no disc.
	sunX, sunY, sunR float64
	sun              string
	stars            bool
}

var skies = map[render.Bucket]sky{
	render.EarlyMorning:  {zenith: "#3b4a7a", horizon: "#f6a36b", ground: "#2d3b4f", sunX: 0.2, sunY: 0.72, sunR: 0.05, sun: "#ffd89a"},
	render.Morning:       {zenith: "#5b9be0", horizon: "#f3d9a4", ground: "#3f6b4a", sunX: 0.3, sunY: 0.5, sunR: 0.05, sun: "#fff2c4"},
	render.LateMorning:   {zenith: "#4a90e2", horizon: "#bfe3f7", ground: "#4d7d52", sunX: 0.42, sunY: 0.32, sunR: 0.045, sun: "#fffbe6"},
	render.Afternoon:     {zenith: "#2f80ed", horizon: "#a9dcf5", ground: "#548a57", sunX: 0.55, sunY: 0.22, sunR: 0.045, sun: "#ffffff"},
	render.LateAfternoon: {zenith: "#4f7cc9", horizon: "#f2c98b", ground: "#4c7049", sunX: 0.68, sunY: 0.4, sunR: 0.05, sun: "#ffe3a3"},
	render.Evening:       {zenith: "#3a3f7a", horizon: "#f08a5d", ground: "#33414a", sunX: 0.8, sunY: 0.66, sunR: 0.055, sun: "#ffb36b"},
	render.LateEvening:   {zenith: "#1f2453", horizon: "#a0557a", ground: "#232a3a"},
	render.Night:         {zenith: "#0b1030", horizon: "#27345e", ground: "#121827", sunX: 0.75, sunY: 0.2, sunR: 0.03, sun: "#e8ecf5", stars: true},
	render.LateNight:     {zenith: "#05071a", horizon: "#1a2146", ground: "#0b0f1c", sunX: 0.3, sunY: 0.25, sunR: 0.025, sun: "#d6dcea", stars: true},
}

// palette is a sky with its colours parsed.
type palette struct {
	sky
	zenith, horizon, ground, sun colorful.Color
}

var palettes = parseSkies(skies)

func parseSkies(in map[render.Bucket]sky) map[render.Bucket]palette {
	out := make(map[render.Bucket]palette, len(in))
	for b, s := range in {
		p := palette{
			sky:     s,
			zenith:  mustHex(b, s.zenith),
			horizon: mustHex(b, s.horizon),
			ground:  mustHex(b, s.ground),
		}
		if s.sunR > 0 {
			p.sun = mustHex(b, s.sun)
		}
		out[b] = p
	}
	return out
}

func mustHex(b render.Bucket, hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("assets: sky %s: %v", b, err))
	}
	return c
}

// Generate paints a placeholder landscape for b: a sky gradient, hills, and a sun or moon.
func Generate(b render.Bucket, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	w, h = img.Rect.Dx(), img.Rect.Dy()

	s, ok := palettes[b]
	if !ok {
		s = palettes[render.Afternoon]
	}
	zenith, horizon, ground, sun := s.zenith, s.horizon, s.ground, s.sun

	fw, fh := float64(w), float64(h)
	minDim := math.Min(fw, fh)
	for y := 0; y < h; y++ {
		v := float64(y) / fh
		row := zenith.BlendLab(horizon, math.Min(v/0.75, 1)).Clamped()
		for x := 0; x < w; x++ {
			u := float64(x) / fw
			c := row

			if s.sunR > 0 {
				d := math.Hypot((u-s.sunX)*fw, (v-s.sunY)*fh) / minDim
				switch {
				case d < s.sunR:
					c = sun
				case d < s.sunR*3:
					c = c.BlendLab(sun, 0.35*(1-(d-s.sunR)/(s.sunR*2))).Clamped()
				}
			}
			if s.stars && star(x, y) && v < 0.6 {
				c = c.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, 0.8)
			}
			if v > hillLine(u) {
				depth := (v - hillLine(u)) / (1 - hillLine(u) + 1e-9)
				c = ground.BlendLab(colorful.Color{}, 0.3*depth).Clamped()
			}

			r, g, bl := c.RGB255()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = bl
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}

// hillLine is the unit height of the skyline at u.
func hillLine(u float64) float64 {
	return 0.78 - 0.05*math.Sin(u*math.Pi*3.1+0.4) - 0.03*math.Sin(u*math.Pi*7.3)
}

// star is a cheap deterministic hash that lights roughly one pixel in 600.
func star(x, y int) bool {
	n := uint32(x+1)*73856093 ^ uint32(y+1)*19349663
	n ^= n >> 13
	n *= 0x5bd1e995
	n ^= n >> 15
	return n%600 == 0
}
