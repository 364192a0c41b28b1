package imaging

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/histogram"
)

// ChannelStats summarizes one channel of a histogram.
type ChannelStats struct {
	Bins []int   `json:"bins"`
	Mean float64 `json:"mean"`

	// Clipped counts pixels at the channel's extremes.
	ClippedLow  int `json:"clipped_low"`
	ClippedHigh int `json:"clipped_high"`
}

// HistogramResult holds per-channel tonal distribution of an image.
type HistogramResult struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Pixels int          `json:"pixels"`
	Red    ChannelStats `json:"red"`
	Green  ChannelStats `json:"green"`
	Blue   ChannelStats `json:"blue"`
}

// Histogram computes red, green and blue histograms of img, folded into
// the requested number of bins. bins must divide 256; 0 means 256.
func Histogram(img image.Image, bins int) (*HistogramResult, error) {
	if bins == 0 {
		bins = 256
	}
	if bins < 1 || bins > 256 || 256%bins != 0 {
		return nil, fmt.Errorf("bins must divide 256, got %d", bins)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("cannot compute histogram of empty image")
	}

	h := histogram.NewRGBAHistogram(img)
	pixels := bounds.Dx() * bounds.Dy()

	return &HistogramResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: pixels,
		Red:    channelStats(h.R.Bins, bins, pixels),
		Green:  channelStats(h.G.Bins, bins, pixels),
		Blue:   channelStats(h.B.Bins, bins, pixels),
	}, nil
}

func channelStats(raw []int, bins, pixels int) ChannelStats {
	width := len(raw) / bins
	stats := ChannelStats{Bins: make([]int, bins)}

	var sum float64
	for v, n := range raw {
		stats.Bins[v/width] += n
		sum += float64(v * n)
	}
	if pixels > 0 {
		stats.Mean = sum / float64(pixels)
	}
	if len(raw) > 0 {
		stats.ClippedLow = raw[0]
		stats.ClippedHigh = raw[len(raw)-1]
	}
	return stats
}
