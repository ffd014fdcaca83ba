package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the name of the rotating log file inside the log directory.
const LogFileName = "speakup-analytics.log"

// Init initializes the global logger with dual sinks: os.Stderr and a rotating file.
// Stdout is never written to, so the MCP stdio transport stays clean.
func Init(verbose bool) error {
	// Load .env from the binary directory so LOGS_FOLDER is known before config.Load.
	exePath, err := os.Executable()
	if err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if dataPath := os.Getenv("DATA_PATH"); dataPath != "" {
			logDir = filepath.Join(dataPath, "logs")
		} else if err == nil {
			logDir = filepath.Join(filepath.Dir(exePath), "logs")
		} else {
			logDir = "logs"
		}
	}

	fileWriter, ferr := newFileWriter(logDir)
	if ferr != nil {
		// Console logging still works; report and carry on.
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", ferr)
	}

	log.Logger = New(os.Stderr, fileWriter, verbose)
	return ferr
}

// New builds a logger writing human-readable lines to console and JSON lines to file.
// file may be nil.
func New(console io.Writer, file io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	noColor := true
	if f, ok := console.(*os.File); ok {
		noColor = !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}

	var out io.Writer = consoleWriter
	if file != nil {
		out = zerolog.MultiLevelWriter(consoleWriter, file)
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Logger()
}

func newFileWriter(logDir string) (io.Writer, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}

	testFile := filepath.Join(logDir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return nil, fmt.Errorf("log directory %q is not writable: %w", logDir, err)
	}
	_ = os.Remove(testFile)

	return &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    16,  // megabytes
		MaxBackups: 32,
		MaxAge:     365, // days
		Compress:   true,
	}, nil
}
