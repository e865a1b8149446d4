package view

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/saadjs/nutri-cli/internal/model"
)

type Point struct {
	Date   time.Time
	Weight float64
}

// WeightSeries projects samples onto a chart series ordered by date.
// Gaps are left as they are.
func WeightSeries(entries []model.WeightEntry) []Point {
	out := make([]Point, 0, len(entries))
	for _, e := range entries {
		out = append(out, Point{Date: e.Date, Weight: e.Weight})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

var bars = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders one bar per point, scaled between the series min and
// max. A flat series renders at mid height.
func Sparkline(points []Point) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p.Weight)
		hi = math.Max(hi, p.Weight)
	}
	var b strings.Builder
	for _, p := range points {
		idx := len(bars) / 2
		if hi > lo {
			idx = int(math.Round((p.Weight - lo) / (hi - lo) * float64(len(bars)-1)))
		}
		b.WriteRune(bars[idx])
	}
	return b.String()
}

// Delta is the change between the first and last point.
func Delta(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return points[len(points)-1].Weight - points[0].Weight
}
