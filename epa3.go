package collide

// epaFace3 is one triangle of the expanding polytope. The winding is kept
// counter-clockwise seen from outside so the plane normal always points away
// from the interior.
type epaFace3[S Scalar] struct {
	vertices [3]int
	normal   Vec3[S]
	distance S
}

func newEpaFace3[S Scalar](vertices []SupportPoint[Vec3[S]], a, b, c int) epaFace3[S] {
	ab := vertices[b].Diff.Sub(vertices[a].Diff)
	ac := vertices[c].Diff.Sub(vertices[a].Diff)
	normal := ab.Cross(ac).Normalize()
	return epaFace3[S]{
		vertices: [3]int{a, b, c},
		normal:   normal,
		distance: normal.Dot(vertices[a].Diff),
	}
}

type polytope3[S Scalar] struct {
	vertices []SupportPoint[Vec3[S]]
	faces    []epaFace3[S]
}

// newPolytope3 seeds the polytope from a GJK termination tetrahedron. The
// simplex ordering guarantees these four windings face outward.
func newPolytope3[S Scalar](simplex []SupportPoint[Vec3[S]]) polytope3[S] {
	p := polytope3[S]{vertices: simplex}
	p.faces = []epaFace3[S]{
		newEpaFace3(simplex, 3, 2, 1),
		newEpaFace3(simplex, 3, 1, 0),
		newEpaFace3(simplex, 3, 0, 2),
		newEpaFace3(simplex, 2, 0, 1),
	}
	return p
}

func (p *polytope3[S]) closestFace() epaFace3[S] {
	face := p.faces[0]
	for _, f := range p.faces[1:] {
		if f.distance < face.distance {
			face = f
		}
	}
	return face
}

// add grows the polytope with a support point: every face that can see the
// point is removed and the resulting hole is re-stitched against the new
// vertex. Shared edges of removed faces cancel pairwise, leaving exactly the
// hole boundary.
func (p *polytope3[S]) add(sup SupportPoint[Vec3[S]]) {
	var edges [][2]int
	for i := 0; i < len(p.faces); {
		f := p.faces[i]
		if f.normal.Dot(sup.Diff.Sub(p.vertices[f.vertices[0]].Diff)) > 0 {
			p.faces[i] = p.faces[len(p.faces)-1]
			p.faces = p.faces[:len(p.faces)-1]
			edges = removeOrAddEdge(edges, [2]int{f.vertices[0], f.vertices[1]})
			edges = removeOrAddEdge(edges, [2]int{f.vertices[1], f.vertices[2]})
			edges = removeOrAddEdge(edges, [2]int{f.vertices[2], f.vertices[0]})
		} else {
			i++
		}
	}
	n := len(p.vertices)
	p.vertices = append(p.vertices, sup)
	for _, e := range edges {
		p.faces = append(p.faces, newEpaFace3(p.vertices, n, e[0], e[1]))
	}
}

// removeOrAddEdge cancels an edge against its reversed duplicate, otherwise
// records it. Interior edges of a removed face fan always appear twice with
// opposite direction.
func removeOrAddEdge(edges [][2]int, edge [2]int) [][2]int {
	for i := range edges {
		if edge[0] == edges[i][1] && edge[1] == edges[i][0] {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return append(edges, edge)
}

// epa3 expands a GJK termination simplex into penetration normal, depth and
// a contact point on the first shape. ok is false when the simplex cannot
// seed a polytope.
func epa3[S Scalar](simplex []SupportPoint[Vec3[S]], left Shape3[S], leftPose Pose3[S], right Shape3[S], rightPose Pose3[S], maxIterations int) (Contact3[S], bool) {
	if len(simplex) < 4 {
		return Contact3[S]{}, false
	}
	poly := newPolytope3(simplex)
	for i := 1; ; i++ {
		face := poly.closestFace()
		if face.normal.LenSqr() <= epsilon[S]() {
			// degenerate seed tetrahedron, no outward direction to expand
			return Contact3[S]{}, false
		}
		p := support3(left, leftPose, right, rightPose, face.normal)
		d := p.Diff.Dot(face.normal)
		if d-face.distance < epaTolerance[S]() {
			return contactFromFace3(&poly, face, false), true
		}
		if i >= maxIterations {
			return contactFromFace3(&poly, face, true), true
		}
		poly.add(p)
	}
}

// contactFromFace3 projects the origin onto the closest face and carries the
// barycentric weights over to the witness points on the first shape.
func contactFromFace3[S Scalar](poly *polytope3[S], face epaFace3[S], approximate bool) Contact3[S] {
	a := poly.vertices[face.vertices[0]]
	b := poly.vertices[face.vertices[1]]
	c := poly.vertices[face.vertices[2]]
	u, v, w := barycentric[S, Vec3[S]](face.normal.Mul(face.distance), a.Diff, b.Diff, c.Diff)
	return Contact3[S]{
		Strategy:         FullResolution,
		Normal:           face.normal,
		PenetrationDepth: face.distance,
		ContactPoint:     a.A.Mul(u).Add(b.A.Mul(v)).Add(c.A.Mul(w)),
		Approximate:      approximate,
	}
}
