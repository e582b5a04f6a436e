package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/diary/backup"
	"github.com/ldhishere/judo-diary/internal/logging"

	log "github.com/sirupsen/logrus"
)

// small tool to export the diary to a snapshot file, or restore it from one
func main() {
	dataPath := flag.String("data", "./diary-data", "path of the diary data dir")
	exportPath := flag.String("export", "", "write a snapshot to this file (empty means default name in cwd)")
	importPath := flag.String("import", "", "restore the diary from this snapshot file")
	doExport := flag.Bool("do-export", false, "export the diary")
	logLevel := flag.String("loglevel", "debug", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    *logLevel,
	})

	if *doExport == (*importPath != "") {
		log.Fatalf("use either -do-export or -import <file>")
	}

	api, err := diary.NewFileApi(*dataPath)
	if err != nil {
		log.Fatalf("new diary file api: %s", err)
	}

	codec := backup.NewCodec(api)
	ctx := context.Background()

	if *doExport {
		snapshot, err := codec.Export(ctx)
		if err != nil {
			log.Fatalf("export: %s", err)
		}

		outPath := *exportPath
		if outPath == "" {
			outPath = backup.ExportFileName(time.Now())
		}
		if err := os.WriteFile(outPath, snapshot, 0o644); err != nil {
			log.Fatalf("write snapshot: %s", err)
		}

		log.Infof("diary exported to %s", outPath)
		return
	}

	document, err := os.ReadFile(*importPath)
	if err != nil {
		log.Fatalf("read snapshot: %s", err)
	}
	if err := codec.Import(ctx, document); err != nil {
		log.Fatalf("import: %s", err)
	}

	log.Infof("diary restored from %s", *importPath)
}
