package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/credexa/credexa-cli/internal/flow"
)

var progressSteps = []string{"Parsing document", "Extracting skills", "Computing match"}

// waitWithProgress blocks until the submission finishes, printing one more
// progress step on every tick. The steps are cosmetic and say nothing about
// what the service is doing.
func waitWithProgress(out io.Writer, done <-chan flow.Outcome, interval time.Duration) flow.Outcome {
	fmt.Fprintln(out, "Analyzing resume...")
	fmt.Fprintf(out, "  %s\n", progressSteps[0])

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	step := 1
	for {
		select {
		case outcome := <-done:
			return outcome
		case <-ticker.C:
			if step < len(progressSteps) {
				fmt.Fprintf(out, "  %s\n", progressSteps[step])
				step++
			}
		}
	}
}
