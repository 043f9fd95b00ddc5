package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message on one terminal line while a slow
// operation, typically the first round trip to the server, runs.
type Spinner struct {
	w       io.Writer
	message string
	done    chan struct{}
	once    sync.Once
	wg      sync.WaitGroup
}

// NewSpinner returns a spinner that writes to w. Call Start to begin
// animating and exactly one of Stop, Success, or Fail to end it.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		done:    make(chan struct{}),
	}
}

// Start begins the animation on its own goroutine.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		tick := time.NewTicker(100 * time.Millisecond)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[frame%len(spinnerFrames)], s.message)
			select {
			case <-s.done:
				return
			case <-tick.C:
			}
		}
	}()
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.finish("\r\033[K")
}

// Success halts the animation and leaves a check-marked message.
func (s *Spinner) Success(message string) {
	s.finish(fmt.Sprintf("\r✓ %s\n", message))
}

// Fail halts the animation and leaves a cross-marked message.
func (s *Spinner) Fail(message string) {
	s.finish(fmt.Sprintf("\r✗ %s\n", message))
}

// finish stops the animation goroutine and waits for it before
// writing the final line, so nothing scribbles over the result.
func (s *Spinner) finish(line string) {
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		fmt.Fprint(s.w, line)
	})
}
