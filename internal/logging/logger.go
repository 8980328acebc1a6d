// Package logging provides the named logrus loggers used by the tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/DeRuina/timberjack"
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/SwiftGuides/HexColorCode-Extension/hexcolor"
)

var root = logrus.New()

func init() {
	root.SetOutput(os.Stderr)
	root.SetFormatter(&ColorfulFormatter{})
	root.SetLevel(logrus.InfoLevel)
}

// Root returns the shared logger every named entry writes through.
func Root() *logrus.Logger {
	return root
}

// Named returns an entry tagged with a component name.
func Named(name string) *logrus.Entry {
	return root.WithField("name", name)
}

// SetLevel parses and applies a logrus level name.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	root.SetLevel(lvl)
	return nil
}

// SetOutput redirects console output, mainly for tests.
func SetOutput(w io.Writer) {
	root.SetOutput(w)
}

var levelHex = map[logrus.Level]string{
	logrus.TraceLevel: "9e9e9e",
	logrus.DebugLevel: "4caf50",
	logrus.InfoLevel:  "2196f3",
	logrus.WarnLevel:  "ffeb3b",
	logrus.ErrorLevel: "f44336",
	logrus.FatalLevel: "f44336",
	logrus.PanicLevel: "f44336",
}

// FgColor builds a terminal foreground color from a hex code, or nil if it does not parse.
func FgColor(hex string) *color.Color {
	c, ok := hexcolor.FromHex(hex)
	if !ok {
		return nil
	}
	r, g, b, _ := c.Bytes()
	return color.RGB(int(r), int(g), int(b))
}

type ColorfulFormatter struct{}

func (f *ColorfulFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}
	if c := FgColor(levelHex[entry.Level]); c != nil {
		level = c.Sprint(level)
	}
	name, _ := entry.Data["name"].(string)
	if name == "" {
		name = "main"
	}
	return []byte(fmt.Sprintf(
		"%s | %s | %s | %s\n",
		entry.Time.Format(time.RFC3339),
		level,
		strings.ToLower(name),
		entry.Message,
	)), nil
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ANSIStrip removes SGR escape sequences.
func ANSIStrip(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

type fileRotateHook struct {
	logger *timberjack.Logger
	mutex  sync.Mutex
}

func (h *fileRotateHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileRotateHook) Fire(entry *logrus.Entry) error {
	msg, err := entry.String()
	if err != nil {
		return err
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	_, err = h.logger.Write([]byte(ANSIStrip(msg)))
	return err
}

// AttachFile mirrors every entry into a rotating log file. The returned closer
// flushes and closes it.
func AttachFile(filename string) io.Closer {
	fileLogger := &timberjack.Logger{
		Filename:         filename,
		MaxSize:          10, // megabytes
		MaxBackups:       5,
		MaxAge:           7, // days
		LocalTime:        true,
		BackupTimeFormat: "20060102-150405",
	}
	root.AddHook(&fileRotateHook{logger: fileLogger})
	return fileLogger
}
