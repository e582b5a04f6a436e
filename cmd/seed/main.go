package main

import (
	"context"
	"flag"
	"time"

	"github.com/ldhishere/judo-diary/internal/diary"
	"github.com/ldhishere/judo-diary/internal/logging"
	"github.com/ldhishere/judo-diary/internal/techniques"

	log "github.com/sirupsen/logrus"
)

func main() {
	dataPath := flag.String("data", "./diary-data", "path of the diary data dir")
	fromStr := flag.String("from", "", "first day of the seeded range (YYYY-MM-DD)")
	toStr := flag.String("to", "", "last day of the seeded range (YYYY-MM-DD)")
	logLevel := flag.String("loglevel", "debug", "log level")
	flag.Parse()

	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    *logLevel,
	})

	from, err := time.Parse(diary.DateLayout, *fromStr)
	if err != nil {
		log.Fatalf("invalid -from day: %s", err)
	}
	to, err := time.Parse(diary.DateLayout, *toStr)
	if err != nil {
		log.Fatalf("invalid -to day: %s", err)
	}
	if to.Before(from) {
		log.Fatalf("-to day is before -from day")
	}

	api, err := diary.NewFileApi(*dataPath)
	if err != nil {
		log.Fatalf("new diary file api: %s", err)
	}

	catalog := techniques.NewCatalog()
	pool := append(append([]string{}, catalog.Nage...), catalog.Katame...)

	count, err := diary.Seed(context.Background(), api, pool, from, to)
	if err != nil {
		log.Fatalf("seed diary: %s", err)
	}

	log.Infof("seeded %d training logs into %s", count, *dataPath)
}
