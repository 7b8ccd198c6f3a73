package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"unshredder/pkg/config"
	"unshredder/pkg/imageio"
	"unshredder/pkg/unshred"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <shredded-image>\n\n", os.Args[0])
		fmt.Fprintln(flag.CommandLine.Output(), "Reorders the shuffled vertical bands of an image.")
		fmt.Fprintln(flag.CommandLine.Output())
		flag.PrintDefaults()
	}

	// Parse command line arguments
	configPath := flag.String("config", "unshredder.yaml", "YAML configuration file (defaults are used if it does not exist)")
	writeConfig := flag.Bool("write-config", false, "Write the default configuration to -config and exit")
	bands := flag.Int("bands", 0, "Number of bands the image was cut into")
	bandWidth := flag.Int("band-width", 0, "Width of a single band in pixels")
	output := flag.String("output", "", "Output image filename")
	format := flag.String("format", "", "Output format (png, jpeg, gif, tiff, bmp); derived from -output if empty")
	numCores := flag.Int("cores", 0, "Number of goroutines computing edge distances (default: all available)")
	metric := flag.String("metric", "", "Edge metric: euclidean or checksum")
	start := flag.String("start", "", "Start band strategy: indegree or legacy")
	truncate := flag.Bool("truncate", false, "Accept widths that do not divide evenly into bands")
	saveIntermediary := flag.Bool("save-intermediary", false, "Save distance matrix, ordered bands and match report")
	intermediaryDir := flag.String("intermediary-dir", "", "Directory to save intermediary results")
	quiet := flag.Bool("quiet", false, "Only print errors")
	flag.Parse()

	if *writeConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	// Validate inputs
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags given on the command line override the configuration file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bands":
			cfg.Processing.Bands = *bands
			cfg.Processing.BandWidth = 0
		case "band-width":
			cfg.Processing.BandWidth = *bandWidth
			cfg.Processing.Bands = 0
		case "output":
			cfg.Output.File = *output
		case "format":
			cfg.Output.Format = *format
		case "cores":
			cfg.Processing.NumCores = *numCores
		case "metric":
			cfg.Processing.Metric = *metric
		case "start":
			cfg.Processing.StartStrategy = *start
		case "truncate":
			cfg.Processing.AllowTruncate = *truncate
		case "save-intermediary":
			cfg.Output.SaveIntermediaryResults = *saveIntermediary
		case "intermediary-dir":
			cfg.Output.IntermediaryDir = *intermediaryDir
		case "quiet":
			cfg.Output.Verbose = !*quiet
		}
	})
	// Both band flags together keep both values so the layout can check they agree
	if isFlagSet("bands") && isFlagSet("band-width") {
		cfg.Processing.Bands = *bands
		cfg.Processing.BandWidth = *bandWidth
	}

	params, err := unshred.NewParams(cfg)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Output.Verbose {
		fmt.Println("================================")
		fmt.Println("IMAGE UNSHREDDER")
		fmt.Println("================================")
		fmt.Printf("Loading image: %s\n", inputPath)
	}

	img, err := imageio.Load(inputPath)
	if err != nil {
		log.Fatalf("Failed to load image: %v", err)
	}

	u, err := unshred.New(img, params)
	if err != nil {
		log.Fatalf("Invalid band settings: %v", err)
	}

	startTime := time.Now()
	result, err := u.Process()
	if err != nil {
		log.Fatalf("Unshredding failed: %v", err)
	}

	if err := imageio.Save(result, cfg.Output.File, cfg.Output.Format); err != nil {
		log.Fatalf("Failed to save output: %v", err)
	}

	if cfg.Output.Verbose {
		metrics := u.Report().Metrics
		fmt.Printf("\nUnshredding completed in %.2f seconds\n", time.Since(startTime).Seconds())
		fmt.Printf("Output image saved to: %s\n\n", cfg.Output.File)

		fmt.Println("Match metrics:")
		fmt.Println("==============")
		fmt.Printf("Mean link distance: %.1f\n", metrics.MeanLink)
		fmt.Printf("Link distance std dev: %.1f\n", metrics.StdDevLink)
		fmt.Printf("Weakest link: position %d (%.1f)\n", metrics.WeakestLink, metrics.WeakestDistance)
		fmt.Printf("Confidence (second-best / best): %.2f\n", metrics.Confidence)
		if metrics.Undefined > 0 {
			fmt.Printf("Undefined band pairs: %d\n", metrics.Undefined)
		}
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
