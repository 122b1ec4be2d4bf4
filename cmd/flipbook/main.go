package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"gioui.org/app"
	"golang.org/x/term"

	"github.com/esimov/flipbook"
	"github.com/esimov/flipbook/utils"
)

const HelpBanner = `
┌─┐┬  ┬┌─┐┌┐ ┌─┐┌─┐┬┌─
├┤ │  │├─┘├┴┐│ ││ │├┴┐
└  ┴─┘┴┴  └─┘└─┘└─┘┴ ┴

Ball game and flipbook animation studio.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// spinner used to instantiate and call the progress indicator.
var spinner *utils.Spinner

// Version indicates the current build version.
var Version string

var (
	// Flags
	mode        = flag.String("mode", "game", "Run mode: game, studio or export")
	source      = flag.String("in", "", "Source image (file, URL or - for stdin)")
	destination = flag.String("out", pipeName, "Destination GIF file")
	width       = flag.Int("width", 480, "Canvas width")
	height      = flag.Int("height", 300, "Canvas height")
	interval    = flag.Int("interval", 500, "Playback interval in milliseconds")
	speed       = flag.Float64("speed", 3.0, "Ball speed")
	paddle      = flag.Float64("paddle", 60.0, "Paddle height")
	frames      = flag.Int("frames", 8, "Number of generated frames on export")
	rotate      = flag.Float64("rotate", 0.0, "Per frame rotation step in degrees on export")
	moveX       = flag.Float64("dx", 0.0, "Per frame horizontal translation step on export")
	moveY       = flag.Float64("dy", 0.0, "Per frame vertical translation step on export")
	scale       = flag.Float64("scale", 1.0, "Per frame scaling step on export")
	faceDetect  = flag.Bool("face", false, "Use face detection when fitting the source image")
	cascade     = flag.String("cc", "", "Cascade classifier")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, fmt.Sprintf(HelpBanner, Version))
		flag.PrintDefaults()
	}
	flag.Parse()

	if *faceDetect && len(*cascade) == 0 {
		log.Fatalf(utils.DecorateText("Please specify a face classifier in case you are using the -face flag!\n", utils.ErrorMessage))
	}

	// Capture CTRL-C signal and restore the cursor visibility back.
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		if spinner != nil {
			spinner.RestoreCursor()
		}
		os.Exit(1)
	}()

	switch *mode {
	case "game":
		runGame()
	case "studio":
		runStudio()
	case "export":
		runExport()
	default:
		flag.Usage()
		log.Fatal(fmt.Sprintf("%s%s",
			utils.DecorateText("\nUnsupported run mode: "+*mode, utils.ErrorMessage),
			utils.DefaultColor,
		))
	}
}

// runGame launches the ball game window.
func runGame() {
	cfg := flipbook.DefaultSimConfig()
	cfg.Width = float64(*width)
	cfg.Height = float64(*height)
	cfg.PaddleHeight = *paddle
	cfg.BallVX = *speed
	cfg.BallVY = *speed

	sim := flipbook.NewSimulation(cfg)
	gui := flipbook.NewGUI(*width, *height)

	go func() {
		err := gui.RunGame(sim)
		printStatus(err)
		os.Exit(0)
	}()
	app.Main()
}

// runStudio launches the animation studio window, optionally preloading the
// source image as the first frame.
func runStudio() {
	st := newStudio()
	gui := flipbook.NewGUI(*width, *height)

	go func() {
		err := gui.RunStudio(st)
		printStatus(err)
		os.Exit(0)
	}()
	app.Main()
}

// runExport turns the source image (or every image of a source directory)
// into a scripted flipbook animation encoded as an animated GIF.
func runExport() {
	if len(*source) == 0 {
		log.Fatalf(utils.DecorateText("Please provide a source image for the export mode!\n", utils.ErrorMessage))
	}

	spinnerText := fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ FLIPBOOK", utils.StatusMessage),
		utils.DecorateText("is exporting the animation...", utils.DefaultMessage))
	spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)

	src := *source
	// Check if source path is a local image or URL.
	if utils.IsValidUrl(src) {
		f, err := utils.DownloadImage(src)
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		defer os.Remove(f.Name())
		f.Close()
		src = f.Name()
	}

	exp := &flipbook.Exporter{
		Width:    *width,
		Height:   *height,
		Frames:   *frames,
		Interval: time.Duration(*interval) * time.Millisecond,
		Step: flipbook.Transform{
			Tx:    *moveX,
			Ty:    *moveY,
			Angle: *rotate * math.Pi / 180,
			Scale: *scale,
		},
		Cascade: readCascade(),
		Spinner: spinner,
	}

	err := exp.Execute(&flipbook.Ops{
		Src:      src,
		Dst:      *destination,
		PipeName: pipeName,
		Workers:  *workers,
	})
	printStatus(err)
}

// newStudio instantiates the studio and preloads the source image, which can
// be a local file, a URL or the stdin pipe.
func newStudio() *flipbook.Studio {
	period := time.Duration(*interval) * time.Millisecond
	st := flipbook.NewStudio(*width, *height, period)

	if cc := readCascade(); cc != nil {
		if err := st.SetCascade(cc); err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to unpack the cascade classifier: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
	}

	if len(*source) == 0 {
		return st
	}

	src, err := sourceReader(*source)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	defer src.Close()

	if err := st.LoadImage(src); err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the source image: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	return st
}

// readCascade loads the cascade classifier binary when face detection is on.
func readCascade() []byte {
	if !*faceDetect {
		return nil
	}
	cc, err := os.ReadFile(*cascade)
	if err != nil {
		log.Fatalf(
			utils.DecorateText("Failed to load the cascade classifier: %v", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	return cc
}

// sourceReader resolves the source flag to a readable file.
func sourceReader(in string) (*os.File, error) {
	// Check if the source path is a local image or URL.
	if utils.IsValidUrl(in) {
		return utils.DownloadImage(in)
	}
	if in == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, fmt.Errorf("`-` should be used with a pipe for stdin")
		}
		return os.Stdin, nil
	}
	return os.Open(in)
}

// printStatus displays the relevant information about the terminated run.
func printStatus(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError running flipbook: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
}
