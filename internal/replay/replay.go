// Package replay loads recorded ADF traffic and re-emits it with
// controlled timing: either the fixed inter-frame delay of a raw capture
// file, or the recorded relative timing of a frame log.
package replay

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"adf-decoder/internal/adf"
)

// Entry is one logged frame with its offset from the log origin.
type Entry struct {
	At    time.Duration
	Frame []byte
}

// LoadCapture splits a raw ADF capture (frames back to back, possibly
// starting mid-frame) into individual wire frames. Bytes outside frame
// boundaries are dropped; malformed framing is skipped, and dropped counts
// how many partial frames were abandoned that way. Frames are returned
// still framed and stuffed, ready to re-emit verbatim.
func LoadCapture(r io.Reader) (frames [][]byte, dropped int, err error) {
	rs := adf.NewReassembler(0)
	buf := make([]byte, 32*1024)
	for {
		n, rerr := r.Read(buf)
		if n > 0 {
			if perr := rs.Push(buf[:n]); perr != nil {
				return nil, dropped, perr
			}
			for {
				frame, ferr := rs.Next()
				if errors.Is(ferr, adf.ErrIncomplete) {
					break
				}
				if ferr != nil {
					dropped++
					continue
				}
				frames = append(frames, frame)
			}
		}
		if rerr == io.EOF {
			if rs.Pending() > 0 {
				dropped++
			}
			return frames, dropped, nil
		}
		if rerr != nil {
			return nil, dropped, rerr
		}
	}
}

// Log format: line-oriented text.
//
// - Blank lines and lines starting with '#' are ignored.
// - "START" resets the timing origin.
// - Data lines are <t_ns>,<hex>: nanoseconds since the origin and the raw
//   wire frame bytes.
const logOrigin = "START"

type LogReader struct {
	r io.Reader
}

func NewLogReader(r io.Reader) *LogReader {
	return &LogReader{r: r}
}

// ReadAll parses the whole log. Origin markers come back as entries with a
// nil Frame.
func (lr *LogReader) ReadAll() ([]Entry, error) {
	s := bufio.NewScanner(lr.r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	entries := make([]Entry, 0, 256)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == logOrigin {
			entries = append(entries, Entry{})
			continue
		}

		comma := strings.IndexByte(line, ',')
		if comma < 0 {
			return nil, fmt.Errorf("replay: malformed log line %q", line)
		}
		ns, err := strconv.ParseInt(strings.TrimSpace(line[:comma]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("replay: bad timestamp in %q: %w", line, err)
		}
		if ns < 0 {
			return nil, fmt.Errorf("replay: negative timestamp in %q", line)
		}
		frame, err := hex.DecodeString(strings.TrimSpace(line[comma+1:]))
		if err != nil {
			return nil, fmt.Errorf("replay: bad frame hex in %q: %w", line, err)
		}
		if len(frame) == 0 {
			return nil, fmt.Errorf("replay: empty frame in %q", line)
		}
		entries = append(entries, Entry{At: time.Duration(ns), Frame: frame})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// LogWriter records frames with their arrival time, producing a log
// ReadAll can load back.
type LogWriter struct {
	c      io.Closer
	w      *bufio.Writer
	origin time.Time
	closed bool
}

// CreateLog creates path and writes the initial origin marker.
func CreateLog(path string) (*LogWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	lw := NewLogWriter(f)
	if err := lw.w.Flush(); err != nil {
		_ = f.Close()
		return nil, err
	}
	return lw, nil
}

// NewLogWriter wraps any writer; the origin is the construction time.
func NewLogWriter(w io.WriteCloser) *LogWriter {
	bw := bufio.NewWriterSize(w, 64*1024)
	_, _ = bw.WriteString(logOrigin + "\n")
	return &LogWriter{c: w, w: bw, origin: time.Now()}
}

func (lw *LogWriter) Write(now time.Time, frame []byte) error {
	if lw.closed {
		return errors.New("replay: log writer is closed")
	}
	if len(frame) == 0 {
		return errors.New("replay: empty frame")
	}
	d := now.Sub(lw.origin)
	if d < 0 {
		d = 0
	}
	_, err := fmt.Fprintf(lw.w, "%d,%s\n", d.Nanoseconds(), hex.EncodeToString(frame))
	return err
}

func (lw *LogWriter) Close() error {
	if lw.closed {
		return nil
	}
	lw.closed = true
	if err := lw.w.Flush(); err != nil {
		_ = lw.c.Close()
		return err
	}
	return lw.c.Close()
}

// Sleeper abstracts waiting so playback is testable without real time.
type Sleeper interface {
	Sleep(d time.Duration)
}

type realSleeper struct{}

func (realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

// PlayEvery emits each frame with a fixed delay before the next one, the
// pacing of the original streaming tool. delay zero emits as fast as the
// sink accepts. The callback stops playback by returning an error.
func PlayEvery(frames [][]byte, delay time.Duration, loop bool, sleeper Sleeper, cb func(frame []byte) error) error {
	if delay < 0 {
		return fmt.Errorf("replay: delay must not be negative")
	}
	if cb == nil {
		return errors.New("replay: callback is nil")
	}
	if len(frames) == 0 {
		return errors.New("replay: no frames")
	}
	if sleeper == nil {
		sleeper = realSleeper{}
	}

	first := true
	for {
		for _, f := range frames {
			if !first && delay > 0 {
				sleeper.Sleep(delay)
			}
			first = false
			if err := cb(f); err != nil {
				return err
			}
		}
		if !loop {
			return nil
		}
	}
}

// PlayLog replays log entries with their recorded relative timing. Origin
// markers reset the clock. speed scales the waits: 2.0 plays twice as fast.
func PlayLog(entries []Entry, speed float64, loop bool, sleeper Sleeper, cb func(frame []byte) error) error {
	if speed <= 0 {
		return fmt.Errorf("replay: speed must be > 0")
	}
	if cb == nil {
		return errors.New("replay: callback is nil")
	}
	if len(entries) == 0 {
		return errors.New("replay: no entries")
	}
	if sleeper == nil {
		sleeper = realSleeper{}
	}

	for {
		var last time.Duration
		var haveLast bool
		for _, e := range entries {
			if e.Frame == nil {
				last = 0
				haveLast = false
				continue
			}
			if haveLast {
				wait := e.At - last
				if wait > 0 {
					sleeper.Sleep(time.Duration(float64(wait) / speed))
				}
			}
			if err := cb(e.Frame); err != nil {
				return err
			}
			last = e.At
			haveLast = true
		}
		if !loop {
			return nil
		}
	}
}
