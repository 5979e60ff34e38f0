package main

import (
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/okonta/poultry-breakeven/internal/analysis"
	"github.com/okonta/poultry-breakeven/internal/config"
	"github.com/okonta/poultry-breakeven/pkg/constants"
	"github.com/okonta/poultry-breakeven/pkg/datetime"
	"github.com/okonta/poultry-breakeven/pkg/output"
	"github.com/okonta/poultry-breakeven/pkg/records"
	"github.com/okonta/poultry-breakeven/pkg/validation"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	salesPath := flag.String("sales", "", "path to sales CSV (saleDate,totalAmount,cratesSold,pricePerCrate)")
	expensesPath := flag.String("expenses", "", "path to expenses CSV (expenseDate,category,amount)")
	timeframe := flag.Int("timeframe", 0, "trailing window in months (3, 6, or 12); overrides config")
	projectionMonths := flag.Int("projection-months", 0, "projection horizon in months; overrides config")
	asOfFlag := flag.String("as-of", "", "anchor date for the window and projection (default: today, UTC)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	// Load the config file to get logging configuration and analysis defaults
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		// Missing config is fine for CLI use; fall back to defaults.
		conf = &config.Configuration{}
		conf.Analysis.TimeframeMonths = constants.DefaultTimeframeMonths
		conf.Analysis.ProjectionMonths = constants.DefaultProjectionMonths
	}

	logger, err := config.BuildLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	timeframeMonths := conf.Analysis.TimeframeMonths
	if *timeframe != 0 {
		timeframeMonths = *timeframe
	}
	if err := validation.ValidateTimeframe(timeframeMonths); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	horizon := conf.Analysis.ProjectionMonths
	if *projectionMonths != 0 {
		horizon = *projectionMonths
	}
	if err := validation.ValidateProjectionMonths(horizon); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	asOf := time.Now().UTC()
	if *asOfFlag != "" {
		asOf, err = datetime.ParseRecordDate(*asOfFlag)
		if err != nil {
			logger.Fatal("failed to parse -as-of date",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	var sales []records.SaleRecord
	if *salesPath != "" {
		sales, err = records.LoadSalesCSV(*salesPath)
		if err != nil {
			logger.Fatal("failed to load sales records",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	var expenses []records.ExpenseRecord
	if *expensesPath != "" {
		expenses, err = records.LoadExpensesCSV(*expensesPath)
		if err != nil {
			logger.Fatal("failed to load expense records",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}

	svc := analysis.NewService(logger)
	report := svc.Analyze(analysis.Request{
		Sales:            sales,
		Expenses:         expenses,
		TimeframeMonths:  timeframeMonths,
		ProjectionMonths: horizon,
		AsOf:             asOf,
	})

	for _, warning := range report.Quality.Warnings {
		logger.Warn("Estimate warning: "+warning,
			zap.String("op", "main"),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		fmt.Printf("Derived parameters: price %.2f, unit variable cost %.2f, fixed costs %.2f/month, initial volume %.2f, growth %.4f\n",
			report.Params.Price, report.Params.UnitVariableCost, report.Params.FixedCostsPerMonth,
			report.Params.InitialUnits, report.Params.GrowthRate)
		output.PrettyFormat(report.Results)
	case constants.OutputFormatCSV:
		output.CsvFormat(report.Results)
	}
}
