package wizard

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/screens"
	"github.com/mrsinham/noiseforge/internal/forge"
	"github.com/mrsinham/noiseforge/internal/util"
)

// RunAccessible asks for each setting on its own line, re-prompting until the
// answer is valid, then generates the image. It needs no terminal features
// and works with screen readers or piped input.
func RunAccessible(fromConfig string, in io.Reader, out io.Writer, logger *log.Logger) error {
	state, err := loadState(fromConfig)
	if err != nil {
		return err
	}
	if state == nil {
		state = NewState()
	}

	screen := screens.NewAccessibleSettingsScreen(&state.Settings)
	form := screen.Form().WithAccessible(true).WithInput(newLineReader(in)).WithOutput(out)
	if err := form.Run(); err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	screen.Sync()

	opts, err := ToForgeOptions(state)
	if err != nil {
		return err
	}
	opts.Logger = logger

	res, err := forge.Run(opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s (%s, %s) in %s\n",
		res.Path, res.Format, humanize.Bytes(uint64(res.Bytes)), util.FormatDuration(res.Total))
	return nil
}

// lineReader returns at most one line per Read. Each accessible prompt scans
// the input with its own buffer, so a plain pipe would hand every remaining
// answer to the first question.
type lineReader struct {
	r       *bufio.Reader
	pending []byte
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadSlice('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.pending = line
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}
