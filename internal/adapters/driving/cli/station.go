package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var stationCmd = &cobra.Command{
	Use:   "station",
	Short: "Manage stations",
	Long:  `Add, list, rename and remove stations. Station names are unique.`,
}

var stationAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a station",
	Args:  cobra.ExactArgs(1),
	RunE:  runStationAdd,
}

var stationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stations",
	RunE:  runStationList,
}

var stationRenameCmd = &cobra.Command{
	Use:   "rename [station] [new-name]",
	Short: "Rename a station",
	Args:  cobra.ExactArgs(2),
	RunE:  runStationRename,
}

var stationRemoveCmd = &cobra.Command{
	Use:   "remove [station]",
	Short: "Remove a station",
	Long:  `Remove a station. Fails while any line still serves it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStationRemove,
}

func init() {
	stationCmd.AddCommand(stationAddCmd)
	stationCmd.AddCommand(stationListCmd)
	stationCmd.AddCommand(stationRenameCmd)
	stationCmd.AddCommand(stationRemoveCmd)
	rootCmd.AddCommand(stationCmd)
}

func runStationAdd(cmd *cobra.Command, args []string) error {
	if stationService == nil {
		return errors.New("station service not configured")
	}

	station, err := stationService.Create(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to add station: %w", err)
	}

	cmd.Printf("Added station %s (%s)\n", station.Name, station.ID)
	return nil
}

func runStationList(cmd *cobra.Command, _ []string) error {
	if stationService == nil {
		return errors.New("station service not configured")
	}

	stations, err := stationService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list stations: %w", err)
	}

	if len(stations) == 0 {
		cmd.Println("No stations.")
		return nil
	}

	cmd.Println("Stations:")
	for i := range stations {
		cmd.Printf("  %s  %s\n", stations[i].ID, stations[i].Name)
	}
	return nil
}

func runStationRename(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	station, err := resolveStation(ctx, args[0])
	if err != nil {
		return err
	}

	renamed, err := stationService.Rename(ctx, station.ID, args[1])
	if err != nil {
		return fmt.Errorf("failed to rename station: %w", err)
	}

	cmd.Printf("Renamed %s to %s\n", station.Name, renamed.Name)
	return nil
}

func runStationRemove(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	station, err := resolveStation(ctx, args[0])
	if err != nil {
		return err
	}

	if err := stationService.Delete(ctx, station.ID); err != nil {
		return fmt.Errorf("failed to remove station: %w", err)
	}

	cmd.Printf("Removed station %s\n", station.Name)
	return nil
}
