package flipbook

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/esimov/flipbook/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the source and destination paths of an export run together with
// the number of concurrently running workers.
type Ops struct {
	Src, Dst, PipeName string
	Workers            int
}

// result holds the relevant information about the export process and the generated animation.
type result struct {
	path string
	err  error
}

// Exporter renders scripted flipbook animations out of still images.
// Every source image becomes the first frame of a fresh sequence, the
// remaining frames are generated by accumulating the per-frame transform
// step, and the sequence is encoded into an animated GIF.
type Exporter struct {
	Width    int
	Height   int
	Frames   int
	Step     Transform
	Interval time.Duration
	Cascade  []byte
	Spinner  *utils.Spinner
}

// Execute runs the export operation. A source directory is processed
// recursively and concurrently, a single file or pipe is exported in place.
func (e *Exporter) Execute(op *Ops) error {
	var (
		fs  os.FileInfo
		err error
	)

	// Supported files
	validExtensions := []string{".jpg", ".png", ".jpeg", ".bmp", ".gif"}

	// Check if the source is a pipe name or a regular file.
	if op.Src == op.PipeName {
		fs, err = os.Stdin.Stat()
	} else {
		fs, err = os.Stat(op.Src)
	}
	if err != nil {
		return fmt.Errorf("failed to load the source image: %v", err)
	}

	now := time.Now()

	switch mode := fs.Mode(); {
	case mode.IsDir():
		var wg sync.WaitGroup
		// Read destination file or directory.
		_, err := os.Stat(op.Dst)
		if err != nil {
			err = os.Mkdir(op.Dst, 0755)
			if err != nil {
				return fmt.Errorf("unable to get dir stats: %v", err)
			}
		}

		// Limit the concurrently running workers to maxWorkers.
		if op.Workers <= 0 || op.Workers > maxWorkers {
			op.Workers = runtime.NumCPU()
		}

		// Process recursively the image files from the specified directory concurrently.
		ch := make(chan result)
		done := make(chan interface{})
		defer close(done)

		paths, errc := walkDir(done, op.Src, validExtensions)

		wg.Add(op.Workers)
		for i := 0; i < op.Workers; i++ {
			go func() {
				defer wg.Done()
				e.consumer(op, ch, done, paths)
			}()
		}

		// Close the channel after the values are consumed.
		go func() {
			defer close(ch)
			wg.Wait()
		}()

		// Consume the channel values.
		for res := range ch {
			if res.err != nil {
				err = res.err
			}
			op.printOpStatus(res.path, res.err)
		}

		if err = <-errc; err != nil {
			fmt.Fprintf(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		}

	case mode.IsRegular() || mode&os.ModeNamedPipe != 0: // check for regular files or pipe names
		if ext := filepath.Ext(op.Dst); ext != ".gif" && op.Dst != op.PipeName {
			return fmt.Errorf("%v file type not supported as animation output", ext)
		}

		err = e.process(op, op.Src, op.Dst)
		op.printOpStatus(op.Dst, err)
	}
	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

// consumer reads the path names from the paths channel and exports each source image.
func (e *Exporter) consumer(
	op *Ops,
	res chan<- result,
	done <-chan interface{},
	paths <-chan string,
) {
	for src := range paths {
		base := filepath.Base(src)
		dst := filepath.Join(op.Dst, base[:len(base)-len(filepath.Ext(base))]+".gif")
		err := e.process(op, src, dst)

		select {
		case <-done:
			return
		case res <- result{
			path: src,
			err:  err,
		}:
		}
	}
}

// process exports a single source image and reports the error in case exists.
func (e *Exporter) process(op *Ops, in, out string) error {
	var (
		successMsg string
		errorMsg   string
	)

	successMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ FLIPBOOK", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		utils.DecorateText("the animation has been exported successfully ✔", utils.SuccessMessage),
	)

	errorMsg = fmt.Sprintf("%s %s %s",
		utils.DecorateText("⚡ FLIPBOOK", utils.StatusMessage),
		utils.DecorateText("exporting the animation failed...", utils.DefaultMessage),
		utils.DecorateText("✘", utils.ErrorMessage),
	)

	if e.Spinner != nil {
		e.Spinner.Start()
		defer func() {
			e.Spinner.Stop()
		}()
	}

	src, dst, err := op.pathToFile(in, out)
	if err != nil {
		e.stopMsg(errorMsg)
		return err
	}

	defer func() {
		if f, ok := src.(*os.File); ok && f != os.Stdin {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()
	defer func() {
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			if err := f.Close(); err != nil {
				log.Printf("could not close the opened file: %v", err)
			}
		}
	}()

	if err := e.export(src, dst); err != nil {
		// remove the generated animation file in case of an error
		if f, ok := dst.(*os.File); ok && f != os.Stdout {
			os.Remove(f.Name())
		}
		e.stopMsg(errorMsg)
		return err
	}
	e.stopMsg(successMsg)

	return nil
}

// export builds the scripted sequence out of the source image and encodes it.
func (e *Exporter) export(src io.Reader, dst io.Writer) error {
	st := NewStudio(e.Width, e.Height, e.Interval)
	if len(e.Cascade) > 0 {
		if err := st.SetCascade(e.Cascade); err != nil {
			return err
		}
	}
	if err := st.LoadImage(src); err != nil {
		return err
	}

	step := Identity()
	for i := 1; i < e.Frames; i++ {
		step.Tx += e.Step.Tx
		step.Ty += e.Step.Ty
		step.Angle += e.Step.Angle
		// Scaling accumulates multiplicatively. A non-positive scale step
		// leaves the frame scale untouched.
		if e.Step.Scale > 0 {
			step.Scale *= e.Step.Scale
		}

		if _, err := st.Sequence().Append(st.Surface(), step); err != nil {
			return err
		}
	}

	return EncodeGIF(dst, st.Sequence(), e.Width, e.Height, e.Interval)
}

func (e *Exporter) stopMsg(msg string) {
	if e.Spinner != nil {
		e.Spinner.StopMsg = msg
	}
}

// pathToFile converts the source and destination paths to readable and writable files.
func (op *Ops) pathToFile(in, out string) (io.Reader, io.Writer, error) {
	var (
		src io.Reader
		dst io.Writer
		err error
	)
	// Check if the source is a pipe name or a regular file.
	if in == op.PipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		src = os.Stdin
	} else {
		src, err = os.Open(in)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %v", err)
		}
	}

	// Check if the destination is a pipe name or a regular file.
	if out == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		dst = os.Stdout
	} else {
		dst, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %v", err)
		}
	}
	return src, dst, nil
}

// printOpStatus displays the relevant information about the export process.
func (op *Ops) printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError exporting the animation: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	} else {
		if fname != op.PipeName {
			fmt.Fprintf(os.Stderr, "\nThe animation has been saved as: %s %s\n\n",
				utils.DecorateText(filepath.Base(fname), utils.SuccessMessage),
				utils.DefaultColor,
			)
		}
	}
}

// walkDir starts a new goroutine to walk the specified directory tree
// in recursive manner and sends the path of each regular file to a new channel.
// It finishes in case the done channel is getting closed.
func walkDir(
	done <-chan interface{},
	src string,
	srcExts []string,
) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		// Close the paths channel after Walk returns.
		defer close(pathChan)

		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			isFileSupported := false
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}

			// Get the file base name.
			fx := filepath.Ext(f.Name())
			for _, ext := range srcExts {
				if ext == fx {
					isFileSupported = true
					break
				}
			}

			if isFileSupported {
				select {
				case <-done:
					return errors.New("directory walk cancelled")
				case pathChan <- path:
				}
			}
			return nil
		})
	}()
	return pathChan, errChan
}
