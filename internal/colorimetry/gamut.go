package colorimetry

import "math"

// Gamut is the triangle spanned by three primaries on the xy diagram.
type Gamut struct {
	Name string       `json:"name" yaml:"name"`
	R    Chromaticity `json:"r" yaml:"r"`
	G    Chromaticity `json:"g" yaml:"g"`
	B    Chromaticity `json:"b" yaml:"b"`
}

// ReferenceGamuts returns the display and broadcast standards the sensor
// gamut is compared against.
func ReferenceGamuts() []Gamut {
	return []Gamut{
		{Name: "NTSC", R: Chromaticity{0.67, 0.33}, G: Chromaticity{0.21, 0.71}, B: Chromaticity{0.14, 0.08}},
		{Name: "sRGB", R: Chromaticity{0.64, 0.33}, G: Chromaticity{0.30, 0.60}, B: Chromaticity{0.15, 0.06}},
		{Name: "AdobeRGB", R: Chromaticity{0.64, 0.33}, G: Chromaticity{0.21, 0.71}, B: Chromaticity{0.15, 0.06}},
		{Name: "DCI-P3", R: Chromaticity{0.680, 0.320}, G: Chromaticity{0.265, 0.690}, B: Chromaticity{0.150, 0.060}},
		{Name: "Rec. 2020", R: Chromaticity{0.708, 0.292}, G: Chromaticity{0.170, 0.797}, B: Chromaticity{0.131, 0.046}},
	}
}

// Vertices returns R, G, B in order.
func (g Gamut) Vertices() []Chromaticity {
	return []Chromaticity{g.R, g.G, g.B}
}

// Area returns the area of the triangle on the xy diagram.
func (g Gamut) Area() float64 {
	return math.Abs(signedArea(g.Vertices()))
}

// RelativeArea returns Area()/ref.Area(), or 0 when ref is degenerate.
func (g Gamut) RelativeArea(ref Gamut) float64 {
	a := ref.Area()
	if a == 0 {
		return 0
	}
	return g.Area() / a
}

// Coverage returns the fraction of ref's area that g also covers.
func (g Gamut) Coverage(ref Gamut) float64 {
	a := ref.Area()
	if a == 0 {
		return 0
	}
	overlap := clip(ccw(ref.Vertices()), ccw(g.Vertices()))
	return math.Abs(signedArea(overlap)) / a
}

// signedArea is the shoelace formula; positive for counter-clockwise order.
func signedArea(p []Chromaticity) float64 {
	var s float64
	for i := range p {
		j := (i + 1) % len(p)
		s += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return s / 2
}

func ccw(p []Chromaticity) []Chromaticity {
	if signedArea(p) < 0 {
		return []Chromaticity{p[0], p[2], p[1]}
	}
	return p
}

// clip intersects subject with the convex, counter-clockwise polygon window
// (Sutherland-Hodgman).
func clip(subject, window []Chromaticity) []Chromaticity {
	out := subject
	for i := range window {
		if len(out) == 0 {
			return nil
		}
		a, b := window[i], window[(i+1)%len(window)]
		in := out
		out = nil
		for k := range in {
			cur, prev := in[k], in[(k+len(in)-1)%len(in)]
			curIn, prevIn := inside(a, b, cur), inside(a, b, prev)
			switch {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn:
				out = append(out, intersect(a, b, prev, cur), cur)
			case prevIn:
				out = append(out, intersect(a, b, prev, cur))
			}
		}
	}
	return out
}

func inside(a, b, p Chromaticity) bool {
	return (b.X-a.X)*(p.Y-a.Y)-(b.Y-a.Y)*(p.X-a.X) >= 0
}

func intersect(a, b, p, q Chromaticity) Chromaticity {
	a1, b1 := b.Y-a.Y, a.X-b.X
	c1 := a1*a.X + b1*a.Y
	a2, b2 := q.Y-p.Y, p.X-q.X
	c2 := a2*p.X + b2*p.Y
	det := a1*b2 - a2*b1
	if det == 0 {
		return q
	}
	return Chromaticity{X: (b2*c1 - b1*c2) / det, Y: (a1*c2 - a2*c1) / det}
}
