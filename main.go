package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/linsujie/bibcmd/config"
	"github.com/linsujie/bibcmd/editor"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s NOTE\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	path := os.Args[1]

	logFile := setupLog()
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load()
	if err != nil {
		log.Printf("main: config: %v, using defaults", err)
		cfg = config.Default()
	}
	if abs, err := filepath.Abs(path); err == nil {
		cfg.ApplyEditorConfig(config.FindEditorConfig(abs))
	}

	e := editor.New(cfg)
	if err := e.Run(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// setupLog sends the log to a file under the data directory, since the
// terminal belongs to the editor. Without one, logging is discarded.
func setupLog() *os.File {
	log.SetOutput(io.Discard)
	dir := config.DataDir()
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(dir, "bibcmd.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
