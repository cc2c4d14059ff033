package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rlarkdtks312/kakao-api-geocoding/internal/archive"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/config"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/dataset"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/kakao"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/naver"
	"github.com/rlarkdtks312/kakao-api-geocoding/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "geocode", "Conversion mode: geocode or reverse")
	in := flag.String("in", "", "Input file (.csv or .xlsx)")
	out := flag.String("out", "", "Output file (.csv or .xlsx)")
	sheet := flag.String("sheet", "", "Sheet name for .xlsx input/output")
	dsn := flag.String("dsn", "", "Postgres DSN; combine with -query for input and -table for output")
	query := flag.String("query", "", "Query producing the input table (requires -dsn)")
	table := flag.String("table", "", "Destination table for the output (requires -dsn)")
	configDir := flag.String("config", "./configs", "Directory holding app.env")

	addressColumn := flag.String("address-column", "", "Address column (input for geocode, output for reverse)")
	longitudeColumn := flag.String("longitude-column", "", "Longitude column (output for geocode, input for reverse)")
	latitudeColumn := flag.String("latitude-column", "", "Latitude column (output for geocode, input for reverse)")
	roadAddressColumn := flag.String("road-address-column", "", "Road address output column for reverse mode")
	details := flag.Bool("details", true, "Append road/lot detail columns in reverse mode")
	saveJSON := flag.String("save-json", "", "Archive raw responses: 'auto' for timestamped names, or a base path")
	delay := flag.Duration("delay", -1, "Pause between lookups; negative uses the configured default")
	flag.Parse()

	if *in == "" && (*dsn == "" || *query == "") {
		fmt.Println("Error: provide -in, or -dsn together with -query")
		os.Exit(1)
	}
	if *out == "" && (*dsn == "" || *table == "") {
		fmt.Println("Error: provide -out, or -dsn together with -table")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateProvider(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	provider, err := buildProvider(cfg)
	if err != nil {
		fmt.Printf("Error building provider: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var pool *pgxpool.Pool
	if *dsn != "" {
		pool, err = pgxpool.New(ctx, *dsn)
		if err != nil {
			fmt.Printf("Error connecting to database: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
	}

	input, err := readTable(ctx, pool, *in, *sheet, *query)
	if err != nil {
		fmt.Printf("Error reading input: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d rows\n", input.Len())

	effectiveDelay := cfg.RequestDelay
	if *delay >= 0 {
		effectiveDelay = *delay
	}

	var result *dataset.Table
	switch *mode {
	case "geocode":
		if *addressColumn == "" {
			fmt.Println("Error: -address-column is required for geocode mode")
			os.Exit(1)
		}
		opts := service.NewGeocodeOptions(*addressColumn)
		if *longitudeColumn != "" {
			opts.LongitudeColumn = *longitudeColumn
		}
		if *latitudeColumn != "" {
			opts.LatitudeColumn = *latitudeColumn
		}
		opts.Delay = effectiveDelay
		result, err = service.NewGeoCodeService(provider, log.Logger).GeocodeTable(ctx, input, opts)
	case "reverse":
		if *longitudeColumn == "" || *latitudeColumn == "" {
			fmt.Println("Error: -longitude-column and -latitude-column are required for reverse mode")
			os.Exit(1)
		}
		opts := service.NewReverseGeocodeOptions(*longitudeColumn, *latitudeColumn)
		if *addressColumn != "" {
			opts.AddressColumn = *addressColumn
		}
		if *roadAddressColumn != "" {
			opts.RoadAddressColumn = *roadAddressColumn
		}
		opts.IncludeDetails = *details
		opts.Archive = archivePolicy(*saveJSON)
		opts.Delay = effectiveDelay
		result, err = service.NewReverseGeoCodeService(provider, log.Logger).ReverseGeocodeTable(ctx, input, opts)
	default:
		fmt.Printf("Error: unknown mode '%s' (want geocode or reverse)\n", *mode)
		os.Exit(1)
	}
	if err != nil {
		fmt.Printf("Error converting table: %v\n", err)
		os.Exit(1)
	}

	if err := writeTable(ctx, pool, result, *out, *sheet, *table); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully converted %d rows\n", result.Len())
}

func buildProvider(cfg config.Config) (service.Provider, error) {
	switch cfg.Provider {
	case "kakao":
		opts := []kakao.Option{kakao.WithLogger(log.Logger)}
		if cfg.KakaoBaseURL != "" {
			opts = append(opts, kakao.WithBaseURL(cfg.KakaoBaseURL))
		}
		return kakao.NewClient(cfg.KakaoAPIKey, opts...), nil
	case "naver":
		opts := []naver.Option{naver.WithLogger(log.Logger)}
		if cfg.NaverBaseURL != "" {
			opts = append(opts, naver.WithBaseURL(cfg.NaverBaseURL))
		}
		return naver.NewClient(cfg.NaverAPIKeyID, cfg.NaverAPIKey, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported provider '%s'", cfg.Provider)
	}
}

func archivePolicy(value string) archive.Policy {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return archive.Disabled()
	case "auto", "true":
		return archive.Auto()
	default:
		return archive.To(value)
	}
}

func readTable(ctx context.Context, pool *pgxpool.Pool, path, sheet, query string) (*dataset.Table, error) {
	if path == "" {
		return dataset.ReadSQL(ctx, pool, query)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.ReadCSV(path)
	case ".xlsx":
		return dataset.ReadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("unsupported input format '%s'", filepath.Ext(path))
	}
}

func writeTable(ctx context.Context, pool *pgxpool.Pool, t *dataset.Table, path, sheet, table string) error {
	if path == "" {
		if err := dataset.EnsureTable(ctx, pool, table, t); err != nil {
			return err
		}
		return dataset.WriteSQL(ctx, pool, table, t)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return dataset.WriteCSV(t, path)
	case ".xlsx":
		return dataset.WriteXLSX(t, path, sheet)
	default:
		return fmt.Errorf("unsupported output format '%s'", filepath.Ext(path))
	}
}
