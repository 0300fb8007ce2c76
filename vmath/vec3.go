package vmath

// Vec3 is a 3D vector in Q32.32 fixed point
type Vec3 struct {
	X, Y, Z int64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{FromFloat(x), FromFloat(y), FromFloat(z)}
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s int64) Vec3 {
	return Vec3{Mul(v.X, s), Mul(v.Y, s), Mul(v.Z, s)}
}

func V3Dot(a, b Vec3) int64 {
	return Mul(a.X, b.X) + Mul(a.Y, b.Y) + Mul(a.Z, b.Z)
}

func V3MagSq(v Vec3) int64 {
	return Mul(v.X, v.X) + Mul(v.Y, v.Y) + Mul(v.Z, v.Z)
}

func V3Mag(v Vec3) int64 {
	return Sqrt(V3MagSq(v))
}

// V3Normalize returns a unit vector, all-integer so the result is
// reproducible bit-for-bit; zero input yields the zero vector
func V3Normalize(v Vec3) Vec3 {
	mag := V3Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	return Vec3{Div(v.X, mag), Div(v.Y, mag), Div(v.Z, mag)}
}

// V3Lerp interpolates from a toward b by t (Scale = fully at b)
func V3Lerp(a, b Vec3, t int64) Vec3 {
	return Vec3{
		a.X + Mul(b.X-a.X, t),
		a.Y + Mul(b.Y-a.Y, t),
		a.Z + Mul(b.Z-a.Z, t),
	}
}

func V3Neg(v Vec3) Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// V3Min returns the component-wise minimum
func V3Min(a, b Vec3) Vec3 {
	return Vec3{Min(a.X, b.X), Min(a.Y, b.Y), Min(a.Z, b.Z)}
}

// V3Max returns the component-wise maximum
func V3Max(a, b Vec3) Vec3 {
	return Vec3{Max(a.X, b.X), Max(a.Y, b.Y), Max(a.Z, b.Z)}
}
