// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package roots solves low-degree polynomial equations for the quadric
// and quartic primitive intersections in package prim: spheres, cones,
// cylinders, and paraboloids reduce to a quadratic, and the torus to a
// quartic solved through its resolvent cubic.
package roots

import "math"

// cbrt returns the real cube root of x, including negative x (unlike
// math.Pow, which is only defined for non-negative bases with a
// fractional exponent).
func cbrt(x float64) float64 {
	switch {
	case x > 0:
		return math.Pow(x, 1.0/3.0)
	case x < 0:
		return -math.Pow(-x, 1.0/3.0)
	default:
		return 0
	}
}

// Quadratic solves x^2 + 2px + q = 0, returning the real roots. The
// degenerate one-root case (discriminant == 0) is treated as no roots, to
// keep tangent grazes out of the primitive intersection paths that call
// this.
func Quadratic(p, q float64) (s [2]float64, n int) {
	d := p*p - q
	if d <= 0 {
		return s, 0
	}
	sqrtD := math.Sqrt(d)
	s[0] = -p - sqrtD
	s[1] = -p + sqrtD
	return s, 2
}

// cubic solves x^3 + Ax^2 + Bx + C = 0 via Cardano's formula, returning
// every real root.
func cubic(A, B, C float64) (s [3]float64, n int) {
	sqA := A * A
	thirdA := A / 3.0
	p := (-1.0/3.0*sqA + B) / 3.0
	q := 0.5 * (2.0/27.0*A*sqA - thirdA*B + C)

	cbP := p * p * p
	d := q*q + cbP

	switch {
	case d < 0:
		phi := math.Acos(-q/math.Sqrt(-cbP)) / 3.0
		t := 2 * math.Sqrt(-p)
		s[0] = t*math.Cos(phi) - thirdA
		s[1] = -t*math.Cos(phi+math.Pi/3) - thirdA
		s[2] = -t*math.Cos(phi-math.Pi/3) - thirdA
		return s, 3
	case d > 0:
		sqrtD := math.Sqrt(d)
		u := cbrt(sqrtD - q)
		v := -cbrt(sqrtD + q)
		s[0] = (u + v) - thirdA
		return s, 1
	case q == 0:
		s[0] = -thirdA
		return s, 1
	default:
		u := cbrt(-q)
		s[0] = 2*u - thirdA
		s[1] = -u - thirdA
		return s, 2
	}
}

// cubicOneRoot solves x^3 + Ax^2 + Bx + C = 0 for exactly one real root
// (the resolvent cubic inside Quartic only ever needs one), avoiding the
// extra work of computing every root.
func cubicOneRoot(A, B, C float64) (root float64, ok bool) {
	sqA := A * A
	thirdA := A / 3.0
	p := (-1.0/3.0*sqA + B) / 3.0
	q := 0.5 * (2.0/27.0*A*sqA - thirdA*B + C)

	cbP := p * p * p
	d := q*q + cbP

	switch {
	case d < 0:
		phi := math.Acos(-q/math.Sqrt(-cbP)) / 3.0
		t := 2 * math.Sqrt(-p)
		return t*math.Cos(phi) - thirdA, true
	case d > 0:
		sqrtD := math.Sqrt(d)
		u := cbrt(sqrtD - q)
		v := -cbrt(sqrtD + q)
		return (u + v) - thirdA, true
	case q == 0:
		return -thirdA, true
	default:
		u := cbrt(-q)
		return 2*u - thirdA, true
	}
}

// Quartic solves c[4]x^4 + c[3]x^3 + c[2]x^2 + c[1]x + c[0] = 0 for its
// real roots, reducing to a depressed quartic and its resolvent cubic
// (the classic Graphics Gems I / Schwarze approach). Returns 0, 2, or 4
// roots, except when the depressed quartic has no constant term: then the
// count is the cubic's root count plus one (2, 3, or 4).
func Quartic(c [5]float64) (s [4]float64, n int) {
	A := c[3] / c[4]
	B := c[2] / c[4]
	C := c[1] / c[4]
	D := c[0] / c[4]

	sqA := A * A
	qtrA := 0.25 * A
	p := -0.375*sqA + B
	q := 0.125*sqA*A - 0.5*A*B + C
	r := (-3.0/256.0)*sqA*sqA + (1.0/16.0)*sqA*B - qtrA*C + D

	if r == 0 {
		// no absolute term: y(y^3 + py + q) = 0
		cs, cn := cubic(0, p, q)
		copy(s[:], cs[:cn])
		s[cn] = 0
		n = cn + 1
	} else {
		// resolvent cubic: z^3 - (p/2)z^2 - r*z + (rp/2 - q^2/8) = 0
		z, ok := cubicOneRoot(-0.5*p, -r, 0.5*r*p-0.125*q*q)
		if !ok {
			return s, 0
		}

		u := z*z - r
		if u < 0 {
			return s, 0
		}
		v := 2*z - p
		if v < 0 {
			return s, 0
		}
		if u > 0 {
			u = math.Sqrt(u)
		} else {
			u = 0
		}
		if v > 0 {
			v = math.Sqrt(v)
		} else {
			v = 0
		}

		sign := 1.0
		if q < 0 {
			sign = -1.0
		}

		q1, n1 := Quadratic(sign*v/2, z-u)
		copy(s[n:], q1[:n1])
		n += n1

		q2, n2 := Quadratic(-sign*v/2, z+u)
		copy(s[n:], q2[:n2])
		n += n2
	}

	for i := 0; i < n; i++ {
		s[i] -= qtrA
	}
	return s, n
}
