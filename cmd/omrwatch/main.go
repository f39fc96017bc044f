/*
NAME
  omrwatch - watch a directory and decode every sheet dropped into it.

DESCRIPTION
  omrwatch is a long-running daemon that watches a directory for new
  PNG or JPEG scans, decodes each one through the OMR pipeline, and
  writes the decode result as a JSON file next to the image. It exists
  so a flatbed scanner's output folder can be graded without any
  manual step between scanning and results.

AUTHORS
  Mira Okafor <mira@scanmark.io>

LICENSE
  Copyright (C) 2026 Scanmark Labs. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of Scanmark Labs.
*/

// omrwatch decodes every image dropped into a watched directory.
package main

import (
	"encoding/json"
	"flag"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/utils/logging"

	"github.com/scanmark/omr"
	"github.com/scanmark/omr/surface"
)

// Logging configuration.
const (
	logPath      = "/var/log/omrwatch/omrwatch.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logVerbosity = logging.Info
	logSuppress  = true
)

const pkg = "omrwatch: "

// settleDelay is how long to wait after a create event before reading
// the file, so a scanner still writing the image has finished.
const settleDelay = 500 * time.Millisecond

func main() {
	dir := flag.String("dir", ".", "directory to watch for new images")
	items := flag.Int("items", 50, "number of questions on each sheet (max 100)")
	choices := flag.Int("choices", 4, "answer choices per question (2-8)")
	camera := flag.Bool("camera", false, "treat images as handheld photos rather than scans")
	logFile := flag.String("log", logPath, "rotating log file path")
	flag.Parse()

	fileLog := &lumberjack.Logger{
		Filename:   *logFile,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	log := logging.New(logVerbosity, io.MultiWriter(fileLog, os.Stderr), logSuppress)

	source := omr.Upload
	if *camera {
		source = omr.CameraFinal
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal(pkg+"could not create watcher", "error", err.Error())
	}
	defer watcher.Close()

	if err := watcher.Add(*dir); err != nil {
		log.Fatal(pkg+"could not watch directory", "dir", *dir, "error", err.Error())
	}
	log.Info(pkg+"watching", "dir", *dir, "items", *items, "choices", *choices)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) || !isImage(ev.Name) {
				continue
			}
			time.Sleep(settleDelay)
			if err := decodeFile(ev.Name, *items, *choices, source, log); err != nil {
				log.Warning(pkg+"decode failed", "path", ev.Name, "error", err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warning(pkg+"watcher error", "error", err.Error())
		}
	}
}

func isImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func decodeFile(path string, items, choices int, source omr.Source, log logging.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		return err
	}

	res, err := omr.Decode(surface.FromImage(img), items, choices, source, log)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}

	resultPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
	if err := os.WriteFile(resultPath, out, 0644); err != nil {
		return err
	}
	log.Info(pkg+"decoded", "path", path, "result", resultPath, "studentID", res.StudentID, "markersFound", res.MarkersFound)
	return nil
}
