// Command restauro restores old photographs from the command line.
//
// Usage:
//
//	restauro [flags] <input> [output]
//	restauro -analyze <input>
//	restauro -list-presets
//
// Examples:
//
//	restauro old.jpg restored.jpg
//	restauro -preset suave scan.png
//	restauro -preset cores -warmth 20 -denoise 0 photo.jpg out.jpg
//	restauro -config adjustments.yaml -max-width 1024 photo.jpg preview.jpg
//	restauro -analyze photo.jpg
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/shamspias/restauro"
)

// paramFlags maps command-line flag names to pipeline parameters.
var paramFlags = []struct {
	name  string
	param restauro.Param
}{
	{"exposure", restauro.Exposure},
	{"contrast", restauro.Contrast},
	{"saturation", restauro.Saturation},
	{"vibrance", restauro.Vibrance},
	{"warmth", restauro.Warmth},
	{"sepia-reduction", restauro.SepiaReduction},
	{"shadow-lift", restauro.ShadowLift},
	{"highlight-recovery", restauro.HighlightRecovery},
	{"clarity", restauro.Clarity},
	{"denoise", restauro.Denoise},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("restauro", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		preset      string
		configPath  string
		clamp       bool
		maxWidth    int
		maxHeight   int
		quality     int
		workers     int
		analyze     bool
		listPresets bool
		verbose     bool
	)

	fs.StringVar(&preset, "preset", "auto", "Preset: "+strings.Join(restauro.PresetNames(), "|"))
	fs.StringVar(&configPath, "config", "", "YAML file with adjustments applied on top of the preset")
	fs.BoolVar(&clamp, "clamp", false, "Bound every adjustment to its slider range")
	fs.IntVar(&maxWidth, "max-width", 0, "Maximum width (0 = no limit)")
	fs.IntVar(&maxHeight, "max-height", 0, "Maximum height (0 = no limit)")
	fs.IntVar(&quality, "quality", restauro.DefaultJPEGQuality, "JPEG quality (1-100)")
	fs.IntVar(&workers, "workers", 0, "Worker goroutines (0 = all CPUs)")
	fs.BoolVar(&analyze, "analyze", false, "Analyze the photo and suggest a preset")
	fs.BoolVar(&listPresets, "list-presets", false, "List bundled presets")
	fs.BoolVar(&verbose, "v", false, "Log pipeline stages")

	values := make(map[string]*float64, len(paramFlags))
	for _, pf := range paramFlags {
		r := restauro.Bounds(pf.param)
		values[pf.name] = fs.Float64(pf.name, 0, fmt.Sprintf("Override %s (slider range %g..%g)", pf.param, r.Min, r.Max))
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if listPresets {
		printPresets(stdout)
		return 0
	}

	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(stderr, "Usage: restauro [flags] <input> [output]")
		fmt.Fprintln(stderr, "       restauro -analyze <input>")
		fmt.Fprintln(stderr, "       restauro -list-presets")
		fmt.Fprintln(stderr)
		fs.PrintDefaults()
		return 1
	}
	input := rest[0]

	if analyze {
		if err := runAnalyze(stdout, input); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	overrides := make(map[restauro.Param]float64)
	fs.Visit(func(f *flag.Flag) {
		for _, pf := range paramFlags {
			if pf.name == f.Name {
				overrides[pf.param] = *values[f.Name]
			}
		}
	})

	adj, err := buildAdjustments(preset, configPath, overrides, clamp)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	output := ""
	if len(rest) >= 2 {
		output = rest[1]
	} else {
		output = defaultOutput(input)
	}

	logger := log.New(io.Discard, "restauro: ", log.LstdFlags|log.Lmsgprefix)
	if verbose {
		logger.SetOutput(stderr)
	}

	opts := restauro.DefaultOptions()
	opts.MaxWidth = maxWidth
	opts.MaxHeight = maxHeight
	opts.JPEGQuality = quality
	opts.Workers = workers
	start := time.Now()
	opts.OnProgress = func(stage restauro.ProgressStage, percent float64) error {
		logger.Printf("%-8s %3.0f%% (+%s)", stage, percent*100, time.Since(start).Round(time.Millisecond))
		return nil
	}

	logger.Printf("%s → %s with %+v", input, output, adj)
	result, err := restauro.RestoreFile(context.Background(), input, output, adj, opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, result)
	return 0
}

// buildAdjustments layers the preset, the optional YAML file and explicit
// flag overrides, in that order.
func buildAdjustments(preset, configPath string, overrides map[restauro.Param]float64, clamp bool) (restauro.Adjustments, error) {
	p, err := restauro.LookupPreset(preset)
	if err != nil {
		return restauro.Adjustments{}, err
	}
	adj := p.Adjustments

	if configPath != "" {
		if adj, err = loadAdjustments(configPath, adj); err != nil {
			return restauro.Adjustments{}, err
		}
	}

	for param, v := range overrides {
		adj.Set(param, v)
	}

	if clamp {
		adj = adj.Clamp()
	}
	return adj, nil
}

// loadAdjustments decodes a YAML adjustments file over base, so fields the
// file omits keep their base value.
func loadAdjustments(path string, base restauro.Adjustments) (restauro.Adjustments, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return base, errors.Wrap(err, "open config")
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	adj := base
	if err := dec.Decode(&adj); err != nil && !errors.Is(err, io.EOF) {
		return base, errors.Wrapf(err, "parse config %q", path)
	}
	return adj, nil
}

func defaultOutput(input string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "_restored" + ext
}

func printPresets(w io.Writer) {
	for _, p := range restauro.Presets() {
		fmt.Fprintf(w, "%-9s %s\n", p.Name, p.Description)
		a := p.Adjustments
		fmt.Fprintf(w, "          exposure=%g contrast=%g saturation=%g vibrance=%g warmth=%g\n",
			a.Exposure, a.Contrast, a.Saturation, a.Vibrance, a.Warmth)
		fmt.Fprintf(w, "          sepiaReduction=%g shadowLift=%g highlightRecovery=%g clarity=%g denoise=%g\n",
			a.SepiaReduction, a.ShadowLift, a.HighlightRecovery, a.Clarity, a.Denoise)
	}
	fmt.Fprintf(w, "%-9s %s\n", restauro.NeutralPreset, "Original photo, no correction")
}

func runAnalyze(w io.Writer, path string) error {
	img, err := restauro.Open(path)
	if err != nil {
		return err
	}

	info, _ := os.Stat(path)
	stats := restauro.Analyze(img)
	suggested := restauro.SuggestAdjustments(stats)

	fmt.Fprintf(w, "File:          %s\n", path)
	if info != nil {
		fmt.Fprintf(w, "Size:          %s\n", humanize.IBytes(uint64(info.Size())))
	}
	fmt.Fprintf(w, "Dimensions:    %d × %d\n", stats.Width, stats.Height)
	fmt.Fprintf(w, "Brightness:    %.0f\n", stats.MeanBrightness)
	fmt.Fprintf(w, "Contrast:      %.1f\n", stats.Contrast)
	fmt.Fprintf(w, "Chroma:        %.3f\n", stats.MeanChroma)
	fmt.Fprintf(w, "Warm cast:     %+.1f\n", stats.WarmCast)
	fmt.Fprintf(w, "Sepia:         %.0f%%\n", stats.SepiaScore*100)
	fmt.Fprintf(w, "Noise:         %.2f\n", stats.Noise)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Recommended preset: %s\n", stats.RecommendedPreset)
	fmt.Fprintf(w, "Suggested sepia reduction: %.0f\n", suggested.SepiaReduction)
	return nil
}
