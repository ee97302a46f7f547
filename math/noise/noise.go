// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package noise implements Ken Perlin's "Improved Noise" (SIGGRAPH 2002),
// used by the noise shader in package shader to perturb a hit's pattern
// coordinate. Hand-rolled rather than pulled from an ecosystem library:
// the algorithm is defined by one specific 256-entry permutation table,
// not a general-purpose facility any of the example repos already wrap.
package noise

import "math"

// perm is the classic reference permutation table, doubled (via the
// &0xff masking below) so a lookup at index+1 never runs off the end.
var perm = [256]int{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// at looks up perm at i, wrapping through the doubled table the way the
// original's 257-entry array (with data[256] repeating data[0]) does.
func at(i int) int { return perm[i&255] }

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	var u, v float64
	if h < 8 {
		u = x
	} else {
		u = y
	}
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	} else {
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Noise evaluates Perlin noise at (x, y, z), in the classic [-1,1] range.
func Noise(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)

	cx := int(fx) & 255
	cy := int(fy) & 255
	cz := int(fz) & 255

	a := (at(cx) + cy) & 255
	b := (at(cx+1) + cy) & 255
	aa := (at(a) + cz) & 255
	ab := (at(a+1) + cz) & 255
	ba := (at(b) + cz) & 255
	bb := (at(b+1) + cz) & 255

	rx, ry, rz := x-fx, y-fy, z-fz
	u, v, w := fade(rx), fade(ry), fade(rz)

	n1 := lerp(
		lerp(grad(at(aa), rx, ry, rz), grad(at(ba), rx-1, ry, rz), u),
		lerp(grad(at(ab), rx, ry-1, rz), grad(at(bb), rx-1, ry-1, rz), u),
		v)
	n2 := lerp(
		lerp(grad(at(aa+1), rx, ry, rz-1), grad(at(ba+1), rx-1, ry, rz-1), u),
		lerp(grad(at(ab+1), rx, ry-1, rz-1), grad(at(bb+1), rx-1, ry-1, rz-1), u),
		v)
	return lerp(n1, n2, w)
}

func lerp(a, b, t float64) float64 { return a + t*(b-a) }
