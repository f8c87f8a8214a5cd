package tables

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tidwall/rtree"

	"github.com/tsawler/subplan/model"
)

// FindRegions partitions a page's objects into per-table subsets. A region
// is the y-band between a "Block" landmark (widened upward by the padding)
// and the horizontal rule immediately below that table's "15:15" landmark
// (widened downward). The i-th top pairs with the i-th bottom in ascending
// y order; objects inside a region keep the source set's order.
func (d *Detector) FindRegions(set *model.ObjectSet) ([]*model.ObjectSet, error) {
	var tops, bottoms []int64
	for _, t := range set.Texts() {
		if t.Value == headerLandmark {
			tops = append(tops, t.Position.Y+d.config.RegionPadding)
		}
		if strings.Contains(t.Value, bottomLandmark) {
			bottoms = append(bottoms, t.Position.Y)
		}
	}
	if len(tops) != len(bottoms) {
		return nil, fmt.Errorf("%w: %d %q vs %d %q landmarks",
			ErrRegionCount, len(tops), headerLandmark, len(bottoms), bottomLandmark)
	}

	sort.Slice(tops, func(i, j int) bool { return tops[i] < tops[j] })
	sort.Slice(bottoms, func(i, j int) bool { return bottoms[i] < bottoms[j] })

	lines := set.Lines()
	for i, b := range bottoms {
		delta, err := closestRuleBelow(lines, b)
		if err != nil {
			return nil, err
		}
		bottoms[i] = b + delta - d.config.RegionPadding
	}

	index := buildIndex(set)
	regions := make([]*model.ObjectSet, len(tops))
	for i := range tops {
		regions[i] = bandMembers(set, index, bottoms[i], tops[i])
	}
	return regions, nil
}

// closestRuleBelow returns the largest negative y delta from a horizontal
// line to the landmark, i.e. the nearest rule strictly below it.
func closestRuleBelow(lines []model.Line, y int64) (int64, error) {
	best := int64(math.MinInt64)
	found := false
	for _, l := range lines {
		if !l.IsHorizontal() {
			continue
		}
		delta := l.Start.Y - y
		if delta < 0 && delta > best {
			best = delta
			found = true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: landmark at y=%d", ErrRegionBound, y)
	}
	return best, nil
}

// buildIndex loads each object's insertion rank into a spatial index keyed
// by the object's bounding box. Band queries yield ranks, so members come
// out in source order without walking the whole set per region.
func buildIndex(set *model.ObjectSet) *rtree.RTreeG[int] {
	var tr rtree.RTreeG[int]
	for rank, obj := range set.Objects() {
		min, max := bounds(obj)
		tr.Insert(min, max, rank)
	}
	return &tr
}

func bounds(obj model.PageObject) ([2]float64, [2]float64) {
	switch o := obj.(type) {
	case model.Text:
		p := [2]float64{float64(o.Position.X), float64(o.Position.Y)}
		return p, p
	case model.Line:
		return [2]float64{
				math.Min(float64(o.Start.X), float64(o.End.X)),
				math.Min(float64(o.Start.Y), float64(o.End.Y)),
			}, [2]float64{
				math.Max(float64(o.Start.X), float64(o.End.X)),
				math.Max(float64(o.Start.Y), float64(o.End.Y)),
			}
	}
	return [2]float64{}, [2]float64{}
}

// bandMembers collects the objects strictly inside (bottom, top), in
// source order. The index narrows candidates to bounding boxes touching
// the band; membership is still decided by the strict predicates, which
// exclude boundary objects and lines straddling the band. Texts are tested
// on their position only; lines on both endpoints.
func bandMembers(set *model.ObjectSet, index *rtree.RTreeG[int], bottom, top int64) *model.ObjectSet {
	objs := set.Objects()
	var ranks []int
	index.Search(
		[2]float64{-math.MaxFloat64, float64(bottom)},
		[2]float64{math.MaxFloat64, float64(top)},
		func(_, _ [2]float64, rank int) bool {
			if inBand(objs[rank], bottom, top) {
				ranks = append(ranks, rank)
			}
			return true
		})
	sort.Ints(ranks)

	region := model.NewObjectSet()
	for _, rank := range ranks {
		region.Insert(objs[rank])
	}
	return region
}

func inBand(obj model.PageObject, bottom, top int64) bool {
	switch o := obj.(type) {
	case model.Text:
		return o.Position.Y > bottom && o.Position.Y < top
	case model.Line:
		return o.Start.Y > bottom && o.Start.Y < top &&
			o.End.Y > bottom && o.End.Y < top
	}
	return false
}
