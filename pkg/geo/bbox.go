package geo

// BBox is a south/west/north/east bounding box in degrees.
type BBox struct {
	South float64 `yaml:"south" json:"south"`
	West  float64 `yaml:"west" json:"west"`
	North float64 `yaml:"north" json:"north"`
	East  float64 `yaml:"east" json:"east"`
}

// IsZero reports an unset box. A zero box disables region checks.
func (b BBox) IsZero() bool {
	return b.South == 0 && b.West == 0 && b.North == 0 && b.East == 0
}

func (b BBox) Contains(p Point) bool {
	return p.Lat >= b.South && p.Lat <= b.North && p.Lng >= b.West && p.Lng <= b.East
}

// Union returns the smallest box covering every box given.
func Union(boxes ...BBox) BBox {
	if len(boxes) == 0 {
		return BBox{}
	}
	u := boxes[0]
	for _, b := range boxes[1:] {
		if b.South < u.South {
			u.South = b.South
		}
		if b.West < u.West {
			u.West = b.West
		}
		if b.North > u.North {
			u.North = b.North
		}
		if b.East > u.East {
			u.East = b.East
		}
	}
	return u
}
