package geowarp

import (
	"github.com/dhconnelly/rtreego"
)

// ChartSourceIndex answers "which chart source covers this region" with an
// R-tree over the sources' geodetic bounding boxes.
//
// A handful of chart sources hardly needs a spatial index, but source
// catalogs grow (OPC Atlantic/Pacific, NHC tropical, WPC national, regional
// ice charts), and the index also handles the anti-meridian bookkeeping in
// one place: crossing sources are stored both unwrapped and shifted by -360
// degrees so queries from either side of the seam find them.
//
// Example:
//
//	idx := geowarp.NewChartSourceIndex([]geowarp.ChartSource{
//	    geowarp.OPCPacificSource(),
//	    geowarp.OPCAtlanticSource(),
//	})
//	sources := idx.Covering(region.Box)
type ChartSourceIndex struct {
	sources map[string]ChartSource
	rtree   *rtreego.Rtree
}

// sourceEntry is one rtreego entry; crossing sources insert two with
// different shifts.
type sourceEntry struct {
	src   ChartSource
	shift float64
}

// Bounds implements rtreego.Spatial on the unwrapped longitude axis.
func (e sourceEntry) Bounds() rtreego.Rect {
	point := rtreego.Point{e.src.Box.West + e.shift, e.src.Box.South}
	lengths := []float64{e.src.Box.Width(), e.src.Box.Height()}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// NewChartSourceIndex builds an index over the given chart sources.
func NewChartSourceIndex(sources []ChartSource) *ChartSourceIndex {
	idx := &ChartSourceIndex{
		sources: make(map[string]ChartSource, len(sources)),
		rtree:   rtreego.NewTree(2, 4, 16),
	}
	for _, src := range sources {
		idx.sources[src.Name] = src
		idx.rtree.Insert(sourceEntry{src: src})
		if src.Box.CrossesAntimeridian {
			idx.rtree.Insert(sourceEntry{src: src, shift: -360})
		}
	}
	return idx
}

// Lookup returns a chart source by name.
func (idx *ChartSourceIndex) Lookup(name string) (ChartSource, bool) {
	src, ok := idx.sources[name]
	return src, ok
}

// Covering returns the chart sources whose coverage intersects the box.
func (idx *ChartSourceIndex) Covering(box BoundingBox) []ChartSource {
	seen := make(map[string]bool)
	var out []ChartSource

	for _, shift := range []float64{0, -360} {
		point := rtreego.Point{box.West + shift, box.South}
		rect, err := rtreego.NewRect(point, []float64{box.Width(), box.Height()})
		if err != nil {
			continue
		}
		for _, hit := range idx.rtree.SearchIntersect(rect) {
			src := hit.(sourceEntry).src
			if !seen[src.Name] {
				seen[src.Name] = true
				out = append(out, src)
			}
		}
	}
	return out
}
