package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteHTML renders the report as a page of charts: vehicle outcomes, the
// distance driven by each vehicle and its remaining battery.
func WriteHTML(w io.Writer, r Report) error {
	s := r.Summary

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Vehicle outcomes",
			Subtitle: fmt.Sprintf("run %s, %d rounds, chargers %v", r.RunID, r.Simulation.Rounds, r.Placement.Centers),
		}),
	)
	pie.AddSeries("status", []opts.PieData{
		{Name: "arrived", Value: s.Arrived},
		{Name: "stranded", Value: s.Stranded},
		{Name: "other", Value: s.Other},
		{Name: "running", Value: s.Running},
	})

	ids := make([]string, len(s.PerVehicle))
	dist := make([]opts.BarData, len(s.PerVehicle))
	battery := make([]opts.BarData, len(s.PerVehicle))
	for i, v := range s.PerVehicle {
		ids[i] = v.ID
		dist[i] = opts.BarData{Value: v.Distance}
		battery[i] = opts.BarData{Value: v.Battery}
	}

	distance := charts.NewBar()
	distance.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Distance per vehicle",
			Subtitle: fmt.Sprintf("total %.2f km, avoided %.2f kg CO2", s.TotalDistance, s.AvoidedEmissions),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Vehicle"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "km"}),
	)
	distance.SetXAxis(ids).AddSeries("distance", dist)

	remaining := charts.NewBar()
	remaining.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Remaining battery"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Vehicle"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kWh"}),
	)
	remaining.SetXAxis(ids).AddSeries("battery", battery)

	page := components.NewPage()
	page.PageTitle = "chargeplan " + r.RunID
	page.AddCharts(pie, distance, remaining)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}
