package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/minhle/fnb-optimizer/internal/cache"
	"github.com/minhle/fnb-optimizer/internal/config"
	"github.com/minhle/fnb-optimizer/internal/repository"
	"github.com/minhle/fnb-optimizer/internal/repository/csvrepo"
	"github.com/minhle/fnb-optimizer/internal/repository/postgres"
	"github.com/minhle/fnb-optimizer/internal/sample"
	"github.com/minhle/fnb-optimizer/internal/service"
	"github.com/minhle/fnb-optimizer/internal/storage"
)

func newDaysFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "days",
		Usage: "Forecast horizon in days",
		Value: 7,
	}
}

func newDataDirFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing orders.csv, recipes.csv and inventory.csv",
		EnvVars: []string{"DATA_DIR"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "optimizer",
		Usage: "Forecast demand, plan restocking and recommend dishes from the command line",
		Commands: []*cli.Command{
			{
				Name:  "report",
				Usage: "Generate the full optimization report as JSON",
				Flags: []cli.Flag{
					newDaysFlag(),
					newDataDirFlag(),
					&cli.BoolFlag{
						Name:  "upload",
						Usage: "Archive the report to snapshot object storage",
					},
				},
				Action: runReport,
			},
			{
				Name:  "forecast",
				Usage: "Print the demand forecast as JSON",
				Flags: []cli.Flag{
					newDaysFlag(),
					newDataDirFlag(),
				},
				Action: runForecast,
			},
			{
				Name:  "sample",
				Usage: "Write synthetic demo CSV tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "Directory to write orders.csv, recipes.csv and inventory.csv into",
						Value: "./data",
					},
					&cli.IntFlag{
						Name:  "history-days",
						Usage: "Days of order history to generate",
						Value: 90,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for reproducible tables",
						Value: 1,
					},
				},
				Action: runSample,
			},
			{
				Name:  "seed",
				Usage: "Create the input tables in Postgres and fill them with synthetic data",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db-url",
						Usage:    "Database connection string",
						Required: true,
						EnvVars:  []string{"DATABASE_URL"},
					},
					&cli.IntFlag{
						Name:  "history-days",
						Usage: "Days of order history to generate",
						Value: 90,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for reproducible tables",
						Value: 1,
					},
				},
				Action: runSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func buildService(c *cli.Context) (*service.OptimizerService, func(), error) {
	cfg := config.Load()

	var (
		source  repository.DataSource
		cleanup = func() {}
	)
	if dir := c.String("data-dir"); dir != "" {
		source = csvrepo.NewDataSource(dir)
	} else if cfg.Data.Source == "postgres" {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		source = postgres.NewDataSource(db)
		cleanup = func() { db.Close() }
	} else {
		source = csvrepo.NewDataSource(cfg.Data.Dir)
	}

	svc := service.NewOptimizerService(source, cache.NewNoopReportCache(), cfg.Forecast, cfg.Planner)

	if c.Bool("upload") {
		if !cfg.Snapshot.Enabled {
			cleanup()
			return nil, nil, fmt.Errorf("snapshot upload requested but SNAPSHOT_ENABLED is false")
		}
		client, err := storage.NewMinioClient(cfg.Snapshot)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		svc.WithSnapshots(storage.NewSnapshotStore(client))
	}

	return svc, cleanup, nil
}

func runReport(c *cli.Context) error {
	svc, cleanup, err := buildService(c)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := svc.GenerateReport(c.Context, c.Int("days"))
	if err != nil {
		return err
	}
	return printJSON(report)
}

func runForecast(c *cli.Context) error {
	svc, cleanup, err := buildService(c)
	if err != nil {
		return err
	}
	defer cleanup()

	points, err := svc.ForecastDemand(c.Context, c.Int("days"))
	if err != nil {
		return err
	}
	return printJSON(points)
}

func runSample(c *cli.Context) error {
	gen := sample.NewGenerator(c.Int64("seed"))
	now := time.Now()

	orders := gen.GenerateOrders(now, c.Int("history-days"))
	recipes := gen.GenerateRecipes()
	inventory := gen.GenerateInventory(now)

	dir := c.String("out-dir")
	if err := sample.WriteCSV(dir, orders, recipes, inventory); err != nil {
		return err
	}
	log.Printf("wrote %d orders, %d recipe lines and %d inventory items to %s",
		len(orders), len(recipes), len(inventory), dir)
	return nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
