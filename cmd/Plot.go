package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"
)

func plotCommand(o *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "plot GOAL",
		Short: "Train toward a goal location and chart TD errors and returns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.load(cmd)
			if err != nil {
				return err
			}

			t, err := newTraining(s, args[0], "", "", 0, "")
			if err != nil {
				return err
			}
			if err := t.run(cmd.ErrOrStderr()); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("could not create chart file: %v", err)
			}
			defer f.Close()

			title := fmt.Sprintf("Q-Learning toward %v", args[0])
			if err := renderTraining(f, title, t.tdErrors.Data(),
				t.returns.Data()); err != nil {
				return err
			}
			log.Printf("chart written to %v", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "training.html",
		"file to write the chart to")
	return cmd
}

// renderTraining renders a page charting the absolute TD error and
// return of each episode
func renderTraining(w io.Writer, title string, tdErrors,
	returns []float64) error {
	page := components.NewPage()
	page.AddCharts(
		lineChart(title, "|TD error|", tdErrors),
		lineChart(title, "return", returns),
	)
	return page.Render(w)
}

// lineChart returns a line chart of data indexed by episode
func lineChart(title, series string, data []float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: series + " per episode",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: series}),
	)

	episodes := make([]string, len(data))
	items := make([]opts.LineData, len(data))
	for i, v := range data {
		episodes[i] = strconv.Itoa(i + 1)
		items[i] = opts.LineData{Value: v}
	}

	line.SetXAxis(episodes).AddSeries(series, items)
	return line
}
