package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kilianp07/chargeplan/app"
	"github.com/kilianp07/chargeplan/config"
	coremon "github.com/kilianp07/chargeplan/core/monitoring"
	"github.com/kilianp07/chargeplan/infra/logger"
	"github.com/kilianp07/chargeplan/infra/metrics"
	"github.com/kilianp07/chargeplan/infra/monitoring"
)

var (
	cfgPath     string
	stations    int
	vehicles    int
	metricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "chargeplan",
	Short: "Place EV charging stations and simulate the resulting traffic",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().IntVarP(&stations, "stations", "k", 0, "number of charging stations (overrides placement.stations)")
	rootCmd.Flags().IntVarP(&vehicles, "vehicles", "n", 0, "number of vehicles (overrides traffic.vehicles)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the configuration file and applies explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgPath
	if _, err := os.Stat(path); os.IsNotExist(err) && !cmd.Flags().Changed("config") {
		path = ""
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("stations") {
		cfg.Placement.Stations = stations
	}
	if f := cmd.Flags().Lookup("vehicles"); f != nil && f.Changed {
		cfg.Traffic.Vehicles = vehicles
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initMonitor(cfg *config.Config) error {
	m, err := monitoring.NewSentryMonitor(cfg.Sentry, map[string]string{"service": "chargeplan"})
	if err != nil {
		return fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(m)
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := initMonitor(cfg); err != nil {
		return err
	}
	defer coremon.Flush(2 * time.Second)
	defer coremon.Recover()

	log := logger.New("chargeplan")
	if metricsAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, metricsAddr, prometheus.DefaultGatherer); err != nil {
				log.Errorf("prom server: %v", err)
			}
		}()
	}
	svc, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Errorf("service close: %v", err)
		}
	}()

	rep, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	s := rep.Summary
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "run %s\n", rep.RunID)
	_, _ = fmt.Fprintf(out, "chargers %v cost %.2f (greedy %.2f, %d swaps)\n",
		rep.Placement.Centers, rep.Placement.Cost, rep.Placement.GreedyCost, rep.Placement.Swaps)
	_, _ = fmt.Fprintf(out, "vehicles %d: arrived %d, stranded %d, other %d, running %d after %d rounds\n",
		s.Vehicles, s.Arrived, s.Stranded, s.Other, s.Running, rep.Simulation.Rounds)
	_, _ = fmt.Fprintf(out, "distance %.2f km, energy %.2f kWh, avoided %.2f kg CO2\n",
		s.TotalDistance, s.TotalEnergy, s.AvoidedEmissions)
	if metricsAddr != "" {
		log.Infof("serving metrics on %s until interrupted", metricsAddr)
		<-ctx.Done()
	}
	return nil
}
