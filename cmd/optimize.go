package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/chargeplan/app"
	"github.com/kilianp07/chargeplan/infra/graphio"
	"github.com/kilianp07/chargeplan/infra/logger"
)

var dotPath string

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Place charging stations without simulating traffic",
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&dotPath, "dot", "", "write the network with its chargers as Graphviz DOT")
	rootCmd.AddCommand(optimizeCmd)
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New("optimize")
	svc, err := app.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Errorf("service close: %v", err)
		}
	}()

	if err := svc.LoadNetwork(); err != nil {
		return err
	}
	res, err := svc.Optimize()
	if err != nil {
		return err
	}
	if dotPath != "" {
		out := cfg.Output
		opts := graphio.DotOptions{Scale: out.DotScale, OffsetX: out.DotOffsetX, OffsetY: out.DotOffsetY}
		if err := graphio.SaveDOT(dotPath, svc.Network, "network", opts); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "chargers %v cost %.2f (greedy %.2f, %d scans, %d swaps, converged %t)\n",
		res.Centers, res.Cost, res.GreedyCost, res.Scans, res.Swaps, res.Converged)
	return nil
}
