package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natserract/salesmanago/pkg/config"
	"github.com/natserract/salesmanago/pkg/logger"
	"github.com/natserract/salesmanago/pkg/salesmanago"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig and clientFactory are replaced in tests.
var (
	loadConfig    = config.Load
	clientFactory = func(cfg *config.Config, log *zap.Logger) (salesmanago.APIClient, error) {
		return salesmanago.NewFromConfig(nil, cfg, log)
	}
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "salesmanago",
		Short:         "Send signed requests to the SALESmanago API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides SALESMANAGO_LOG_LEVEL")

	rootCmd.AddCommand(newCallCmd("post", "Send a signed POST request", &logLevel))
	rootCmd.AddCommand(newCallCmd("get", "Send a signed GET request", &logLevel))

	return rootCmd
}

func newCallCmd(verb, short string, logLevel *string) *cobra.Command {
	var headers []string

	cmd := &cobra.Command{
		Use:   verb + " <apiMethod> [jsonData]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := salesmanago.Data{}
			if len(args) == 2 {
				parsed, err := parseData(args[1])
				if err != nil {
					return err
				}
				data = parsed
			}

			hdrs, err := parseHeaders(headers)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			level := cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				level = *logLevel
			}
			log := logger.New(level)
			defer func() { _ = log.Sync() }()

			client, err := clientFactory(cfg, log)
			if err != nil {
				return err
			}

			var opts []salesmanago.RequestOption
			if len(hdrs) > 0 {
				opts = append(opts, salesmanago.WithHeaders(hdrs))
			}

			var resp salesmanago.Response
			if verb == "get" {
				resp, err = client.DoGet(cmd.Context(), args[0], data, opts...)
			} else {
				resp, err = client.DoPost(cmd.Context(), args[0], data, opts...)
			}
			if err != nil {
				log.Error("API call failed", zap.Error(err), zap.String("api_method", args[0]))
				return err
			}

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal response: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra request header as Key:Value (repeatable)")

	return cmd
}

// parseData decodes a JSON object, keeping numbers as json.Number so
// large IDs are sent back unchanged.
func parseData(raw string) (salesmanago.Data, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var data salesmanago.Data
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("jsonData must be a JSON object: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("jsonData must be a single JSON object")
	}
	if data == nil {
		data = salesmanago.Data{}
	}
	return data, nil
}

func parseHeaders(raw []string) (map[string]string, error) {
	hdrs := make(map[string]string, len(raw))
	for _, h := range raw {
		k, v, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid header %q, expected Key:Value", h)
		}
		hdrs[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return hdrs, nil
}
