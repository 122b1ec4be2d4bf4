/*
Package flipbook is a small animation toolkit combining a two-paddle ball game
and a frame studio: snapshots of a drawing surface are captured into an
append-only sequence, each with an optional affine transform, and played back
as a flipbook on a fixed interval.

The package provides a command line interface for both the interactive GUI and
the headless GIF export. To check the supported commands type:

	$ flipbook --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"
		"time"

		"github.com/esimov/flipbook"
	)

	func main() {
		st := flipbook.NewStudio(480, 300, flipbook.DefaultInterval)

		f, _ := os.Open("image.png")
		if err := st.LoadImage(f); err != nil {
			fmt.Printf("Error loading the source image: %s", err.Error())
		}

		out, _ := os.Create("out.gif")
		if err := flipbook.EncodeGIF(out, st.Sequence(), 480, 300, time.Second/2); err != nil {
			fmt.Printf("Error exporting the animation: %s", err.Error())
		}
	}
*/
package flipbook
