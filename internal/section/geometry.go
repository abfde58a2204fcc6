package section

import "math"

// Polygon is a solid section bounded by a simple polygon. Vertices may be
// given in either orientation and in any coordinate origin; properties are
// taken about the centroid.
type Polygon struct {
	Vertices []Point

	// Torsion overrides the torsion constant. When zero, J is estimated
	// from the Saint-Venant approximation A⁴ / (4π² Ip), exact for ellipses.
	Torsion float64
}

// PolygonProperties holds the geometric properties of a polygon
type PolygonProperties struct {
	Properties

	Width  float64 // along local y
	Height float64 // along local z

	CentroidX float64
	CentroidY float64

	MinX float64
	MaxX float64
	MinY float64
	MaxY float64
}

func (p Polygon) Kind() string  { return "polygon" }
func (p Polygon) Uniform() bool { return true }

func (p Polygon) Validate() error {
	if len(p.Vertices) < 3 {
		return invalid("polygon section must have at least 3 vertices, got %d", len(p.Vertices))
	}
	if p.Torsion < 0 {
		return invalid("polygon section: torsion constant must not be negative")
	}
	if props := p.Geometry(); !(props.Area > 0) {
		return invalid("polygon section has zero area")
	}
	return nil
}

func (p Polygon) At(float64) Properties {
	return p.Geometry().Properties
}

// Geometry computes the bounding box, centroid and centroidal properties.
func (p Polygon) Geometry() *PolygonProperties {
	props := &PolygonProperties{}
	n := len(p.Vertices)
	if n < 3 {
		return props
	}

	props.MinX, props.MaxX = p.Vertices[0].X, p.Vertices[0].X
	props.MinY, props.MaxY = p.Vertices[0].Y, p.Vertices[0].Y
	for _, v := range p.Vertices {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}
	props.Width = props.MaxX - props.MinX
	props.Height = props.MaxY - props.MinY

	// Shoelace sums, taken relative to the first vertex to limit cancellation.
	o := p.Vertices[0]
	var signedArea, sumX, sumY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		xi, yi := p.Vertices[i].X-o.X, p.Vertices[i].Y-o.Y
		xj, yj := p.Vertices[j].X-o.X, p.Vertices[j].Y-o.Y
		cross := xi*yj - xj*yi
		signedArea += cross
		sumX += (xi + xj) * cross
		sumY += (yi + yj) * cross
		sumXX += (xi*xi + xi*xj + xj*xj) * cross
		sumYY += (yi*yi + yi*yj + yj*yj) * cross
	}
	signedArea /= 2
	if signedArea == 0 {
		return props
	}

	cx := sumX / (6 * signedArea)
	cy := sumY / (6 * signedArea)
	area := math.Abs(signedArea)
	sign := math.Copysign(1, signedArea)

	props.Area = area
	props.CentroidX = cx + o.X
	props.CentroidY = cy + o.Y
	props.Iy = sign*sumYY/12 - area*cy*cy
	props.Iz = sign*sumXX/12 - area*cx*cx

	props.J = p.Torsion
	if props.J == 0 {
		props.J = area * area * area * area / (4 * math.Pi * math.Pi * (props.Iy + props.Iz))
	}
	return props
}
