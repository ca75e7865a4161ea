package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/workout-api/internal/config"
	"github.com/maxviazov/workout-api/internal/pagination"
	"github.com/maxviazov/workout-api/internal/router"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the negotiated route table",
	Long:  "Composes the application against an in-memory store and prints every route, marking the paginated ones.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Read(configPath)
		if err != nil {
			return err
		}
		cfg.Storage.Driver = "memory"
		st, err := openStorage(cmd.Context(), cfg, zerolog.Nop())
		if err != nil {
			return err
		}
		defer st.close()

		a, err := compose(cfg, zerolog.Nop(), st, nil)
		if err != nil {
			return err
		}
		printRoutes(cmd.OutOrStdout(), a.Routes())
		return nil
	},
}

func printRoutes(w io.Writer, routes []router.Route) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Method", "Path", "Name", "Result", "Query params"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, r := range routes {
		table.Append([]string{r.Method, r.Path, r.Name, string(r.Result), formatParams(r.Params)})
	}
	table.SetFooter([]string{"", "", "", "Total", strconv.Itoa(len(routes))})
	table.Render()
}

// formatParams renders e.g. "page=1 (>=1), size=50 (1..100)".
func formatParams(params []pagination.ParamSpec) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(params))
	for _, p := range params {
		bounds := ">=" + strconv.Itoa(p.Minimum)
		if p.Maximum > 0 {
			bounds = strconv.Itoa(p.Minimum) + ".." + strconv.Itoa(p.Maximum)
		}
		parts = append(parts, fmt.Sprintf("%s=%d (%s)", p.Name, p.Default, bounds))
	}
	return strings.Join(parts, ", ")
}
