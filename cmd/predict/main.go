// Command predict sends one JSON document to the prediction endpoint
// configured by FLASK_URL and FLASK_SECRET_TOKEN and prints the response.
//
//	predict --input patient.json
//	echo '{"Diagnosis Age": 61}' | predict --pretty
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/prediction/v1/logger"
	"github.com/Aleph-Alpha/prediction/v1/metrics"
	"github.com/Aleph-Alpha/prediction/v1/prediction"
	"github.com/Aleph-Alpha/prediction/v1/tracer"
)

func main() {
	envFiles := pflag.StringSlice("env-file", []string{".env"}, "dotenv files to load (missing files are ignored)")
	input := pflag.String("input", "-", "file holding the JSON input, - for stdin")
	pretty := pflag.Bool("pretty", false, "indent the JSON output")
	pflag.Parse()

	if err := loadEnv(*envFiles...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	payload, err := readInput(*input, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var (
		client *prediction.Client
		cfg    *prediction.Config
		log    *logger.LoggerClient
	)
	app := fx.New(
		fx.NopLogger,
		fx.Options(modules()...),
		fx.Populate(&client, &cfg, &log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		log.Warn("prediction client is not fully configured", err, nil)
	}

	code := 0
	result, err := client.GetPrediction(ctx, payload)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting prediction")
		code = 1
	} else if err := writeOutput(os.Stdout, result, *pretty); err != nil {
		fmt.Fprintln(os.Stderr, err)
		code = 1
	}

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(code)
}

// modules returns the fx modules for this run. The metrics server is only
// started when METRICS_ADDRESS is set.
func modules() []fx.Option {
	opts := []fx.Option{
		logger.FXModule,
		tracer.FXModule,
		prediction.FXModule,
	}
	if os.Getenv("METRICS_ADDRESS") != "" {
		opts = append(opts, metrics.FXModule)
	}
	return opts
}

// loadEnv loads the given dotenv files. Variables already present in the
// environment win, and files that do not exist are skipped.
func loadEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// readInput decodes a single JSON document from path, or from stdin when path is "-".
// Numbers are kept as json.Number so they are re-encoded with their original digits.
func readInput(path string, stdin io.Reader) (any, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	var payload any
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode input: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode input: expected a single JSON document")
	}
	return payload, nil
}

func writeOutput(w io.Writer, result any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
