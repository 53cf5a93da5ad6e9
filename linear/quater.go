// Copyright 2026 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.V.Add(&v, &w)
	q.R = l.R*r.R - d
}

// Rotate sets q to contain a rotation of angle
// radians about axis.
// axis must have length 1.
func (q *Q) Rotate(angle float32, axis *V3) {
	s, c := math32.Sincos(angle * 0.5)
	q.V.Scale(s, axis)
	q.R = c
}

// Euler sets q to contain a rotation of yaw radians
// about the Y axis followed by pitch radians about
// the X axis.
func (q *Q) Euler(yaw, pitch float32) {
	var y, p Q
	y.Rotate(yaw, &V3{0, 1, 0})
	p.Rotate(pitch, &V3{1, 0, 0})
	q.Mul(&p, &y)
}
