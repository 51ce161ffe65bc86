package restauro_test

import (
	"context"
	"fmt"

	"github.com/shamspias/restauro"
)

func ExampleRestore() {
	src := &restauro.Bitmap{Width: 2, Height: 1, Pix: []uint8{
		10, 10, 10, 255,
		250, 250, 250, 255,
	}}

	adj := restauro.NeutralAdjustments()
	adj.Exposure = 10

	out, err := restauro.Restore(src, adj)
	if err != nil {
		panic(err)
	}
	fmt.Println(out.Pix)
	// Output: [32 32 32 255 255 255 255 255]
}

func ExampleLookupPreset() {
	p, err := restauro.LookupPreset("Cores")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%s: saturation=%g vibrance=%g warmth=%g\n",
		p.Name, p.Adjustments.Saturation, p.Adjustments.Vibrance, p.Adjustments.Warmth)
	// Output: cores: saturation=24 vibrance=26 warmth=12
}

func ExampleRestoreFile() {
	ctx := context.Background()

	p, _ := restauro.LookupPreset("auto")
	opts := restauro.DefaultOptions()
	opts.MaxWidth = 1920

	result, err := restauro.RestoreFile(ctx, "old.jpg", "restored.jpg", p.Adjustments, opts)
	if err != nil {
		panic(err)
	}
	fmt.Println(result)
}

func ExampleAnalyze() {
	img, err := restauro.Open("old.jpg")
	if err != nil {
		panic(err)
	}

	stats := restauro.Analyze(img)
	adj := restauro.SuggestAdjustments(stats)
	fmt.Printf("Preset: %s, sepia reduction: %.0f\n", stats.RecommendedPreset, adj.SepiaReduction)
}
