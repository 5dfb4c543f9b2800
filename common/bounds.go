package common

// Bounds is an axis-aligned bounding box. The zero value is empty; extend it
// with ExtendPoint or Union before reading Min/Max.
type Bounds struct {
	Min, Max Vec3

	init bool
}

// EmptyBounds returns an empty Bounds ready for accumulation.
//
// Returns:
//   - Bounds: an empty bounding box
func EmptyBounds() Bounds {
	return Bounds{}
}

// IsEmpty reports whether the bounds contain no points.
//
// Returns:
//   - bool: true if nothing has been accumulated
func (b Bounds) IsEmpty() bool {
	return !b.init
}

// ExtendPoint grows the bounds to include the point p.
//
// Parameters:
//   - p: the point to include
func (b *Bounds) ExtendPoint(p Vec3) {
	if !b.init {
		b.Min, b.Max = p, p
		b.init = true
		return
	}
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows the bounds to include another Bounds. Empty operands are ignored.
//
// Parameters:
//   - o: the bounds to merge in
func (b *Bounds) Union(o Bounds) {
	if o.IsEmpty() {
		return
	}
	b.ExtendPoint(o.Min)
	b.ExtendPoint(o.Max)
}

// Center returns the midpoint of the bounds, or the zero vector when empty.
//
// Returns:
//   - Vec3: the center point
func (b Bounds) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the per-axis extent of the bounds, or the zero vector when empty.
//
// Returns:
//   - Vec3: max - min per axis
func (b Bounds) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Translated returns the bounds shifted by offset. Empty bounds stay empty.
//
// Parameters:
//   - offset: the translation to apply
//
// Returns:
//   - Bounds: the shifted bounds
func (b Bounds) Translated(offset Vec3) Bounds {
	if b.IsEmpty() {
		return b
	}
	return Bounds{Min: b.Min.Add(offset), Max: b.Max.Add(offset), init: true}
}
