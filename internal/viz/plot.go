package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"
)

// RenderChannel draws one sampled channel as a captioned chart.
func RenderChannel(name string, series []float64, width, height int) string {
	if len(series) < 2 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(name),
	)
}

// RenderOverlay draws a flown channel over its reference in one chart,
// reference in the muted color.
func RenderOverlay(caption string, flown, ref []float64, width, height int) string {
	if len(flown) < 2 {
		return ""
	}
	if len(ref) < 2 {
		return RenderChannel(caption, flown, width, height)
	}
	return asciigraph.PlotMany([][]float64{ref, flown},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
	)
}

// Downsample thins a channel to at most n points so long runs stay
// readable in a terminal-width chart.
func Downsample(series []float64, n int) []float64 {
	if n < 2 || len(series) <= n {
		return series
	}
	out := make([]float64, n)
	step := float64(len(series)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = series[int(float64(i)*step)]
	}
	return out
}

// ChannelGrid stacks rendered charts with separators.
func ChannelGrid(charts []string, width int) string {
	var sb strings.Builder
	for i, chart := range charts {
		if chart == "" {
			continue
		}
		if i > 0 {
			sb.WriteString("\n" + Separator(width) + "\n")
		}
		sb.WriteString(chart)
	}
	return sb.String()
}
