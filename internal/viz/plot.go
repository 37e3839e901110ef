package viz

import (
	"github.com/guptarohit/asciigraph"
)

// HeadPlot charts head position against step count. Fewer than two points
// produce an empty string.
func HeadPlot(heads []int, width, height int, caption string) string {
	if len(heads) < 2 {
		return ""
	}
	data := make([]float64, len(heads))
	for i, h := range heads {
		data[i] = float64(h)
	}
	opts := []asciigraph.Option{asciigraph.Height(height)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	if caption != "" {
		opts = append(opts, asciigraph.Caption(caption))
	}
	return asciigraph.Plot(data, opts...)
}
