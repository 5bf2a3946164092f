package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/alexanderramin/levelup/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
)

// startSpinner animates a one-line spinner on out until the returned func is
// called. It does nothing when out is not a terminal.
func startSpinner(out io.Writer, interactive bool, message string) func() {
	if !interactive {
		return func() {}
	}

	frames := spinner.MiniDot
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(frames.FPS)
		defer ticker.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(out, "\r  %s %s", formatter.StylePurple.Render(frames.Frames[i%len(frames.Frames)]), formatter.Dim(message))
			select {
			case <-stop:
				fmt.Fprint(out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-done
		})
	}
}
