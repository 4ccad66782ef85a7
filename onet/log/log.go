// Package log is a leveled logger for the simulations.
//
// Debug output goes through Lvl1..Lvl5: a line is printed only if its level is
// lower or equal to the visible debug level (see SetDebugVisible). The LLvl
// variants always print and are meant for messages that are useful while a
// simulation runs but would be noise in a library. Error and Warn go to
// stderr, Fatal and ErrFatal exit the program.
package log

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	ct "github.com/daviddengcn/go-colortext"
)

const (
	lvlWarning = iota - 20
	lvlError
	lvlFatal
	lvlPrint
	lvlInfo
)

// NamePadding is the width reserved for the caller in front of each line.
const NamePadding = 40

var (
	debugVisible = 1
	showTime     = false
	useColors    = false

	mutex  sync.Mutex
	stdOut io.Writer = os.Stdout
	stdErr io.Writer = os.Stderr
	bufOut *bytes.Buffer
	bufErr *bytes.Buffer

	exitFunc = os.Exit
)

// RegisterFlags adds the debug flags to the default flag set.
func RegisterFlags() {
	flag.IntVar(&debugVisible, "debug", debugVisible, "debug-level: 0 - silent, 5 - everything")
	flag.BoolVar(&showTime, "debug-time", showTime, "show time in debug output")
	flag.BoolVar(&useColors, "debug-color", useColors, "colour the debug output")
}

// SetDebugVisible sets the highest level that is still printed.
func SetDebugVisible(lvl int) {
	mutex.Lock()
	defer mutex.Unlock()
	debugVisible = lvl
}

// DebugVisible returns the current visible level.
func DebugVisible() int {
	mutex.Lock()
	defer mutex.Unlock()
	return debugVisible
}

// SetShowTime prefixes every line with the current time.
func SetShowTime(show bool) {
	mutex.Lock()
	defer mutex.Unlock()
	showTime = show
}

// SetUseColors switches terminal colours on or off.
func SetUseColors(use bool) {
	mutex.Lock()
	defer mutex.Unlock()
	useColors = use
}

// OutputToBuf redirects stdout and stderr output into buffers that can be
// read with GetStdOut and GetStdErr. Used in tests.
func OutputToBuf() {
	mutex.Lock()
	defer mutex.Unlock()
	bufOut = new(bytes.Buffer)
	bufErr = new(bytes.Buffer)
	stdOut = bufOut
	stdErr = bufErr
}

// OutputToOs restores os.Stdout and os.Stderr as outputs.
func OutputToOs() {
	mutex.Lock()
	defer mutex.Unlock()
	stdOut = os.Stdout
	stdErr = os.Stderr
	bufOut, bufErr = nil, nil
}

// GetStdOut returns what was captured on stdout since OutputToBuf.
func GetStdOut() string {
	mutex.Lock()
	defer mutex.Unlock()
	if bufOut == nil {
		return ""
	}
	return bufOut.String()
}

// GetStdErr returns what was captured on stderr since OutputToBuf.
func GetStdErr() string {
	mutex.Lock()
	defer mutex.Unlock()
	if bufErr == nil {
		return ""
	}
	return bufErr.String()
}

func lvl(l int, args ...interface{}) {
	lvlUI(l, 3, fmt.Sprintln(args...))
}

func lvlf(l int, f string, args ...interface{}) {
	lvlUI(l, 3, fmt.Sprintf(f, args...)+"\n")
}

func lvlUI(l, skip int, msg string) {
	mutex.Lock()
	defer mutex.Unlock()
	if l > debugVisible {
		return
	}
	caller := "unknown"
	if pc, file, line, ok := runtime.Caller(skip); ok {
		name := filepath.Base(file)
		if fn := runtime.FuncForPC(pc); fn != nil {
			parts := strings.Split(fn.Name(), "/")
			name = parts[len(parts)-1]
		}
		caller = fmt.Sprintf("%s:%d", name, line)
	}
	if len(caller) > NamePadding {
		caller = caller[len(caller)-NamePadding:]
	}
	var prefix string
	switch l {
	case lvlPrint, lvlInfo:
		prefix = "I"
	case lvlWarning:
		prefix = "W"
	case lvlError:
		prefix = "E"
	case lvlFatal:
		prefix = "F"
	default:
		prefix = fmt.Sprintf("%d", l)
	}
	line := fmt.Sprintf("%s : (%*s) - %s", prefix, NamePadding, caller, msg)
	if showTime {
		line = time.Now().Format("2006-01-02 15:04:05.000000") + " " + line
	}
	out := stdOut
	if l < lvlPrint {
		out = stdErr
	}
	if useColors && bufOut == nil {
		ct.Foreground(color(l), false)
		defer ct.ResetColor()
	}
	fmt.Fprint(out, line)
}

func color(l int) ct.Color {
	switch l {
	case lvlWarning:
		return ct.Yellow
	case lvlError, lvlFatal:
		return ct.Red
	case lvlPrint, lvlInfo:
		return ct.White
	case 1:
		return ct.Green
	case 2:
		return ct.Cyan
	case 3:
		return ct.Blue
	default:
		return ct.Magenta
	}
}

// Lvl1 prints if the debug level is 1 or higher.
func Lvl1(args ...interface{}) { lvl(1, args...) }

// Lvl2 prints if the debug level is 2 or higher.
func Lvl2(args ...interface{}) { lvl(2, args...) }

// Lvl3 prints if the debug level is 3 or higher.
func Lvl3(args ...interface{}) { lvl(3, args...) }

// Lvl4 prints if the debug level is 4 or higher.
func Lvl4(args ...interface{}) { lvl(4, args...) }

// Lvl5 prints if the debug level is 5 or higher.
func Lvl5(args ...interface{}) { lvl(5, args...) }

// Lvlf1 is the formatted Lvl1.
func Lvlf1(f string, args ...interface{}) { lvlf(1, f, args...) }

// Lvlf2 is the formatted Lvl2.
func Lvlf2(f string, args ...interface{}) { lvlf(2, f, args...) }

// Lvlf3 is the formatted Lvl3.
func Lvlf3(f string, args ...interface{}) { lvlf(3, f, args...) }

// Lvlf4 is the formatted Lvl4.
func Lvlf4(f string, args ...interface{}) { lvlf(4, f, args...) }

// Lvlf5 is the formatted Lvl5.
func Lvlf5(f string, args ...interface{}) { lvlf(5, f, args...) }

// LLvl1 always prints, tagged as level 1.
func LLvl1(args ...interface{}) { lvl(-1, args...) }

// LLvl2 always prints, tagged as level 2.
func LLvl2(args ...interface{}) { lvl(-2, args...) }

// LLvl3 always prints, tagged as level 3.
func LLvl3(args ...interface{}) { lvl(-3, args...) }

// Print always prints on stdout.
func Print(args ...interface{}) { lvl(lvlPrint, args...) }

// Info always prints on stdout.
func Info(args ...interface{}) { lvl(lvlInfo, args...) }

// Warn prints on stderr.
func Warn(args ...interface{}) { lvl(lvlWarning, args...) }

// Error prints on stderr.
func Error(args ...interface{}) { lvl(lvlError, args...) }

// Fatal prints on stderr and exits.
func Fatal(args ...interface{}) {
	lvl(lvlFatal, args...)
	exitFunc(1)
}

// ErrFatal calls Fatal if err is not nil, with args appended to the error.
func ErrFatal(err error, args ...interface{}) {
	if err == nil {
		return
	}
	lvlUI(lvlFatal, 2, fmt.Sprintln(append([]interface{}{err.Error()}, args...)...))
	exitFunc(1)
}
