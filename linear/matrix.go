// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package linear

// M3 is a column-major 3x3 matrix of float32.
type M3 [3]V3

// I makes m an identity matrix.
func (m *M3) I() { *m = M3{{1}, {0, 1}, {0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M3) Mul(l, r *M3) {
	var x M3
	for i := range x {
		for j := range x {
			for k := range x {
				x[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = x
}

// Transpose sets m to contain the transpose of n.
func (m *M3) Transpose(n *M3) {
	x := *n
	for i := range m {
		for j := range m {
			m[i][j] = x[j][i]
		}
	}
}

// Invert sets m to contain the inverse of n.
// n must be invertible.
func (m *M3) Invert(n *M3) {
	s0 := n[1][1]*n[2][2] - n[1][2]*n[2][1]
	s1 := n[1][0]*n[2][2] - n[1][2]*n[2][0]
	s2 := n[1][0]*n[2][1] - n[1][1]*n[2][0]
	idet := 1 / (n[0][0]*s0 - n[0][1]*s1 + n[0][2]*s2)
	*m = M3{
		{
			s0 * idet,
			-(n[0][1]*n[2][2] - n[0][2]*n[2][1]) * idet,
			(n[0][1]*n[1][2] - n[0][2]*n[1][1]) * idet,
		},
		{
			-s1 * idet,
			(n[0][0]*n[2][2] - n[0][2]*n[2][0]) * idet,
			-(n[0][0]*n[1][2] - n[0][2]*n[1][0]) * idet,
		},
		{
			s2 * idet,
			-(n[0][0]*n[2][1] - n[0][1]*n[2][0]) * idet,
			(n[0][0]*n[1][1] - n[0][1]*n[1][0]) * idet,
		},
	}
}

// FromM4 sets m to contain the upper-left 3x3
// sub-matrix of n.
func (m *M3) FromM4(n *M4) {
	for i := range m {
		m[i] = V3{n[i][0], n[i][1], n[i][2]}
	}
}

// M4 is a column-major 4x4 matrix of float32.
type M4 [4]V4

// I makes m an identity matrix.
func (m *M4) I() { *m = M4{{1}, {0, 1}, {0, 0, 1}, {0, 0, 0, 1}} }

// Mul sets m to contain l ⋅ r.
func (m *M4) Mul(l, r *M4) {
	var x M4
	for i := range x {
		for j := range x {
			for k := range x {
				x[i][j] += l[k][j] * r[i][k]
			}
		}
	}
	*m = x
}

// Transpose sets m to contain the transpose of n.
func (m *M4) Transpose(n *M4) {
	x := *n
	for i := range m {
		for j := range m {
			m[i][j] = x[j][i]
		}
	}
}

// Translate sets m to contain a translation matrix.
func (m *M4) Translate(x, y, z float32) {
	m.I()
	m[3] = V4{x, y, z, 1}
}

// Scale sets m to contain a scale matrix.
func (m *M4) Scale(x, y, z float32) { *m = M4{{x}, {1: y}, {2: z}, {3: 1}} }

// RotateQ sets m to contain the rotation described
// by the unit quaternion q.
func (m *M4) RotateQ(q *Q) {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.R
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z
	*m = M4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// Point transforms p by m, assuming w = 1.
// The result is not divided by w.
func (m *M4) Point(p *V3) V3 {
	v := p.Point()
	v.Mul(m, &v)
	return v.XYZ()
}

// Dir transforms d by m, assuming w = 0.
func (m *M4) Dir(d *V3) V3 {
	v := V4{d[0], d[1], d[2], 0}
	v.Mul(m, &v)
	return v.XYZ()
}
