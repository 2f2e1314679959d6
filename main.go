package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tournevent/iats/internal/server"
	"github.com/tournevent/iats/internal/telemetry"
	"github.com/tournevent/iats/pkg/iats"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var (
	flagRegion string
	flagMock   bool
	flagParams []string
	flagFile   string
	flagDate   string
)

var rootCmd = &cobra.Command{
	Use:     "iats",
	Short:   "iATS Payments gateway client",
	Version: version,

	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP/JSON gateway server",
	RunE:  runServe,
}

var callCmd = &cobra.Command{
	Use:   "call <family> <operation>",
	Short: "Invoke a single gateway operation and print the result",
	Args:  cobra.ExactArgs(2),
	RunE:  runCall,
}

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Fetch the journal and reject reports of a day",
	RunE:  runReports,
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List regions and their service endpoints",
	RunE:  runRegions,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRegion, "region", "", "region override (NA or UK)")
	rootCmd.PersistentFlags().BoolVar(&flagMock, "mock", false, "use the in-memory gateway")

	callCmd.Flags().StringArrayVarP(&flagParams, "param", "p", nil, "request parameter as name=value (repeatable)")
	callCmd.Flags().StringVarP(&flagFile, "params", "f", "", "YAML file of request parameters")

	reportsCmd.Flags().StringVar(&flagDate, "date", "", "report date (YYYY-MM-DD), defaults to today")

	rootCmd.AddCommand(serveCmd, callCmd, reportsCmd, regionsCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	metrics := telemetry.NewMetrics(prometheus.DefaultRegisterer)
	client := initClient(cfg, logger, tracer, metrics)

	logger.Info("Starting iATS gateway",
		zap.Int("port", cfg.Port),
		zap.String("region", string(client.Region())),
		zap.Bool("mock", cfg.UseMock),
		zap.String("version", cfg.Version),
	)

	srv := server.New(server.Config{Port: cfg.Port}, client, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func runCall(cmd *cobra.Command, args []string) error {
	family, ok := iats.LookupFamily(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", iats.ErrUnknownFamily, args[0])
	}

	params, err := loadParams(flagFile, flagParams)
	if err != nil {
		return err
	}

	client, cleanup, err := newCLIClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	result := client.Call(cmd.Context(), family, args[1], params)
	if err := printJSON(cmd, result); err != nil {
		return err
	}
	return result.Err()
}

func runReports(cmd *cobra.Command, args []string) error {
	date, err := reportDate(flagDate)
	if err != nil {
		return err
	}

	client, cleanup, err := newCLIClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	var reqs []iats.ReportRequest
	for _, op := range iats.ReportLink.Operations() {
		reqs = append(reqs, iats.ReportRequest{
			Operation:  op,
			Parameters: iats.Parameters{{Name: "date", Value: date}},
		})
	}

	return printJSON(cmd, client.FetchReports(cmd.Context(), reqs))
}

func runRegions(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, region := range iats.Regions() {
		fmt.Fprintln(out, region)
		for _, family := range iats.Families() {
			ep := iats.ResolveEndpoint(region, family)
			fmt.Fprintf(out, "  %-10s %s\n", family.Name, ep.WSDL())
		}
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func splitParam(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("invalid parameter %q, expected name=value", s)
	}
	return strings.TrimSpace(name), value, nil
}
