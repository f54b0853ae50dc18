package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RexBanner6000/womens-international-2023/internal/config"
	"github.com/RexBanner6000/womens-international-2023/internal/logger"
	"github.com/RexBanner6000/womens-international-2023/pkg/ratings"
)

func main() {
	trainingOutput := flag.String("training-output", "", "file name for the training feature table")
	submissionOutput := flag.String("submission-output", "", "file name for the fixture feature table")
	databasePath := flag.String("db", "", "optional sqlite snapshot path")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	resultsPath := flag.Arg(0)
	fixturesPath := flag.Arg(1)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration:", err)
	}
	logger.SetLevel(logger.ParseLevel(cfg.LogLevel))
	logger.SetShowDateTime(true)
	if cfg.LogFile != "" {
		if err := logger.SetLogFile(cfg.LogFile); err != nil {
			logger.Fatal("Failed to configure logging:", err)
		}
	}

	// Flags override config for output locations
	if *trainingOutput != "" {
		cfg.TrainingOutput = *trainingOutput
	}
	if *submissionOutput != "" {
		cfg.SubmissionOutput = *submissionOutput
	}
	if *databasePath != "" {
		cfg.DatabasePath = *databasePath
	}

	if err := run(cfg, resultsPath, fixturesPath); err != nil {
		logger.Fatal("Pipeline failed:", err)
	}
	logger.Info("Done!")
}

func run(cfg *config.Config, resultsPath, fixturesPath string) error {
	epoch, err := cfg.Epoch()
	if err != nil {
		return err
	}
	params := ratings.Params{
		DefaultRating:        cfg.DefaultRating,
		Epoch:                epoch,
		ActivityWindowYears:  cfg.ActivityWindowYears,
		RecentFormGames:      cfg.RecentFormGames,
		RecentFormWindowDays: cfg.RecentFormWindowDays,
	}

	logger.Info("Reading results from", resultsPath)
	rows, err := ratings.ReadResultsCSV(resultsPath)
	if err != nil {
		return err
	}

	dataset := ratings.NewResultsDataset(params)
	if err := dataset.Ingest(rows); err != nil {
		return err
	}
	if err := dataset.CalculateRatings(); err != nil {
		return err
	}

	logger.Info("Generating training output", cfg.TrainingOutput)
	if err := dataset.WriteTrainingCSV(cfg.TrainingOutput); err != nil {
		return err
	}

	logger.Info("Reading fixtures from", fixturesPath)
	fixtures, err := ratings.ReadFixturesCSV(fixturesPath)
	if err != nil {
		return err
	}

	fixtureDate, err := cfg.FixtureTime()
	if err != nil {
		return err
	}
	logger.Info("Generating fixture output", cfg.SubmissionOutput)
	if err := dataset.WriteFixturesCSV(cfg.SubmissionOutput, fixtures, fixtureDate,
		ratings.ParseMatchType(cfg.FixtureMatchType), ratings.DefaultAliasResolver()); err != nil {
		return err
	}

	if cfg.DatabasePath != "" {
		store, err := ratings.OpenStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := dataset.Snapshot(store); err != nil {
			return err
		}
	}
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <results.csv> <fixtures.csv>\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Builds Elo ratings from match results and exports feature tables.")
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
}
