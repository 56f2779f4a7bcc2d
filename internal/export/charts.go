package export

import (
	"fmt"
	"io"
	"math"
	"strings"
)

const barWidth = 24

// Bars prints one labelled horizontal bar per value, scaled to the largest.
func Bars(out io.Writer, name string, labels []string, values []float64, unit string) {
	fmt.Fprintf(out, "%s:\n", name)
	maxV := 0.0
	for _, v := range values {
		maxV = math.Max(maxV, math.Abs(v))
	}
	if maxV == 0 {
		fmt.Fprintln(out, "  (all zero)")
		return
	}
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		fmt.Fprintf(out, "  %-10s %-*s %.0f%s\n", label, barWidth, HorizontalBar(v, maxV, barWidth), v, unit)
	}
}

func HorizontalBar(value, maxAbs float64, width int) string {
	if width <= 0 || maxAbs <= 0 {
		return ""
	}
	bars := int(math.Round(math.Abs(value) / maxAbs * float64(width)))
	if bars == 0 && value != 0 {
		bars = 1
	}
	prefix := ""
	if value < 0 {
		prefix = "-"
	}
	return prefix + strings.Repeat("#", bars)
}

// Sparkline maps values onto a fixed ramp of characters, low to high.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	chars := []rune("._-~=*#@")
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if maxV == minV {
		return strings.Repeat(string(chars[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - minV) / (maxV - minV) * float64(len(chars)-1)))
		b.WriteRune(chars[idx])
	}
	return b.String()
}
