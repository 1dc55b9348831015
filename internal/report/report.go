package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/trknhr/diachronic/internal/bayes"
)

// Priors renders d as "h1=0.60, h2=0.40" in the model's hypothesis order.
func Priors(d bayes.Distribution) string {
	parts := make([]string, d.Len())
	for i := range parts {
		h, p := d.At(i)
		parts[i] = string(h) + "=" + strconv.FormatFloat(p, 'f', 2, 64)
	}
	return strings.Join(parts, ", ")
}

func Line(step bayes.Step) string {
	return fmt.Sprintf("got %s, new priors: %s", step.Observation, Priors(step.Posterior))
}

// Writer prints one Line per step.
type Writer struct {
	out io.Writer
}

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Observe(step bayes.Step) error {
	_, err := fmt.Fprintln(w.out, Line(step))
	return err
}
