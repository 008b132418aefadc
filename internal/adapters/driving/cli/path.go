package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

var (
	pathAge  int
	pathJSON bool
)

var pathCmd = &cobra.Command{
	Use:   "path [source] [target]",
	Short: "Find the shortest route between two stations",
	Long: `Find the shortest route between two stations across all lines.

The fare is distance based: a base fare up to 10 km, then an extra unit
per 5 km up to 50 km and per 8 km beyond. The highest surcharge among the
lines used is added once. Children (6-12) and teenagers (13-18) get a
discount after a fixed deduction.`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().IntVar(&pathAge, "age", 0, "rider age in years for fare discounts (0 = adult)")
	pathCmd.Flags().BoolVar(&pathJSON, "json", false, "output the route as JSON")
	rootCmd.AddCommand(pathCmd)
}

// routeJSON is the JSON form of a route.
type routeJSON struct {
	Stations  []stationJSON `json:"stations"`
	Distance  int           `json:"distance"`
	Surcharge int           `json:"surcharge"`
	Fare      int           `json:"fare"`
}

type stationJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func runPath(cmd *cobra.Command, args []string) error {
	if pathService == nil {
		return errors.New("path service not configured")
	}
	ctx := commandContext(cmd)

	source, err := resolveStation(ctx, args[0])
	if err != nil {
		return err
	}
	target, err := resolveStation(ctx, args[1])
	if err != nil {
		return err
	}

	route, err := pathService.FindPath(ctx, source.ID, target.ID, domain.PathOptions{Age: pathAge})
	if err != nil {
		return fmt.Errorf("failed to find path: %w", err)
	}

	if pathJSON {
		return outputRouteJSON(cmd, route)
	}
	outputRoute(cmd, route)
	return nil
}

func outputRouteJSON(cmd *cobra.Command, route *domain.Route) error {
	out := routeJSON{
		Stations:  make([]stationJSON, 0, len(route.Stations)),
		Distance:  route.Distance,
		Surcharge: route.Surcharge,
		Fare:      route.Fare,
	}
	for i := range route.Stations {
		out.Stations = append(out.Stations, stationJSON{
			ID:   route.Stations[i].ID.String(),
			Name: route.Stations[i].Name,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal route: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRoute(cmd *cobra.Command, route *domain.Route) {
	names := make([]string, 0, len(route.Stations))
	for i := range route.Stations {
		names = append(names, route.Stations[i].Name)
	}

	cmd.Printf("Route: %s\n", strings.Join(names, " -> "))
	cmd.Printf("  Distance: %d km\n", route.Distance)
	if route.Surcharge > 0 {
		cmd.Printf("  Surcharge: %d\n", route.Surcharge)
	}
	cmd.Printf("  Fare: %d", route.Fare)
	if group := domain.AgeGroupOf(pathAge); group != domain.AgeGroupAdult {
		cmd.Printf(" (%s)", group)
	}
	cmd.Println()
}
