// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Perspective sets m to contain a right-handed
// perspective projection.
// yfov is the vertical field of view in radians.
// Clip-space depth is in the range [-1, 1].
func (m *M4) Perspective(yfov, aspect, znear, zfar float32) {
	f := 1 / math32.Tan(yfov*0.5)
	nf := 1 / (znear - zfar)
	*m = M4{
		{f / aspect},
		{1: f},
		{2: (zfar + znear) * nf, 3: -1},
		{2: 2 * zfar * znear * nf},
	}
}

// LookAt sets m to contain a right-handed view
// matrix positioned at eye and facing center.
// up must not be parallel to center - eye.
func (m *M4) LookAt(eye, center, up *V3) {
	var f, s, u V3
	f.Sub(center, eye)
	f.Norm(&f)
	s.Cross(&f, up)
	s.Norm(&s)
	u.Cross(&s, &f)
	*m = M4{
		{s[0], u[0], -f[0], 0},
		{s[1], u[1], -f[1], 0},
		{s[2], u[2], -f[2], 0},
		{-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1},
	}
}

// Spherical returns the point at distance r from
// the origin with polar angle phi (measured from +Y)
// and azimuth theta (measured from +Z towards +X).
func Spherical(r, phi, theta float32) V3 {
	sp, cp := math32.Sincos(phi)
	st, ct := math32.Sincos(theta)
	return V3{r * sp * st, r * cp, r * sp * ct}
}

// ToSpherical is the inverse of Spherical.
// v must not be the zero vector.
func ToSpherical(v *V3) (r, phi, theta float32) {
	r = v.Len()
	phi = math32.Acos(max(-1, min(1, v[1]/r)))
	theta = math32.Atan2(v[0], v[2])
	return
}
