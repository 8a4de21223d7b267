package render

// ClipNear clips a triangle against the near plane view_z = zNear (zNear is
// negative; a vertex is "out" when CPos.W >= zNear, i.e. at or in front of
// the plane). Returns zero, one, or two triangles: zero when every vertex
// is out, the input unchanged when none are, otherwise the polygon formed
// by walking the three edges and emitting crossing points plus any
// in-bounds endpoints, fan-retriangulated from vertex 0.
func ClipNear(t Triangle, zNear float64) []Triangle {
	var out [3]bool
	outCount := 0
	for i, v := range t.V {
		out[i] = v.CPos.W >= zNear
		if out[i] {
			outCount++
		}
	}
	if outCount == 3 {
		return nil
	}
	if outCount == 0 {
		return []Triangle{t}
	}

	var poly []Vertex
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		vi, vj := t.V[i], t.V[j]
		di := zNear - vi.CPos.W
		dj := zNear - vj.CPos.W

		if di*dj < 0 {
			alpha := di / (di - dj)
			poly = append(poly, lerpVertex(vi, vj, alpha))
		}
		if dj > 0 {
			poly = append(poly, vj)
		}
	}

	if len(poly) < 3 {
		return nil
	}

	tris := make([]Triangle, 0, len(poly)-2)
	for i := 2; i < len(poly); i++ {
		tris = append(tris, Triangle{V: [3]Vertex{poly[0], poly[i-1], poly[i]}})
	}
	return tris
}

// lerpVertex linearly interpolates WPos, CPos, and WNormal between a and b
// by alpha, sharing the same interpolation factor across all three
// attributes.
func lerpVertex(a, b Vertex, alpha float64) Vertex {
	return Vertex{
		WPos:    a.WPos.Lerp(b.WPos, alpha),
		CPos:    a.CPos.Lerp(b.CPos, alpha),
		WNormal: a.WNormal.Lerp(b.WNormal, alpha),
	}
}
