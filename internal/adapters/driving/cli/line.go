package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

var (
	lineColor     string
	lineSurcharge int
	lineUp        string
	lineDown      string
	lineDistance  int

	lineUpdateName  string
	lineUpdateColor string
)

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Manage lines and their sections",
	Long: `Create lines and edit their topology.

A line is a single chain of sections from its first station to its last.
Adding a section either extends a terminal or splits an existing section;
removing a station merges its two sections into one.`,
}

var lineCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a line with its first section",
	Args:  cobra.ExactArgs(1),
	RunE:  runLineCreate,
}

var lineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all lines",
	RunE:  runLineList,
}

var lineShowCmd = &cobra.Command{
	Use:   "show [line]",
	Short: "Show a line's stations and sections",
	Args:  cobra.ExactArgs(1),
	RunE:  runLineShow,
}

var lineUpdateCmd = &cobra.Command{
	Use:   "update [line]",
	Short: "Change a line's name or colour",
	Args:  cobra.ExactArgs(1),
	RunE:  runLineUpdate,
}

var lineRemoveCmd = &cobra.Command{
	Use:   "remove [line]",
	Short: "Remove a line",
	Args:  cobra.ExactArgs(1),
	RunE:  runLineRemove,
}

var lineAddSectionCmd = &cobra.Command{
	Use:   "add-section [line] [up-station] [down-station] [distance]",
	Short: "Add a section to a line",
	Long: `Add a section to a line.

Exactly one of the two stations must already be on the line. A new
terminal extends the line; otherwise the section splits the existing
section at the shared station and must be shorter than it.`,
	Args: cobra.ExactArgs(4),
	RunE: runLineAddSection,
}

var lineRemoveStationCmd = &cobra.Command{
	Use:   "remove-station [line] [station]",
	Short: "Remove a station from a line",
	Long: `Remove a station from a line. An interior station's two sections are
merged; a line with a single section cannot lose a station.`,
	Args: cobra.ExactArgs(2),
	RunE: runLineRemoveStation,
}

func init() {
	lineCreateCmd.Flags().StringVar(&lineColor, "color", "", "display colour, e.g. bg-green-600")
	lineCreateCmd.Flags().IntVar(&lineSurcharge, "surcharge", 0, "extra fare for riding this line")
	lineCreateCmd.Flags().StringVar(&lineUp, "up", "", "up station of the first section (required)")
	lineCreateCmd.Flags().StringVar(&lineDown, "down", "", "down station of the first section (required)")
	lineCreateCmd.Flags().IntVar(&lineDistance, "distance", 0, "distance of the first section (required)")
	_ = lineCreateCmd.MarkFlagRequired("up")
	_ = lineCreateCmd.MarkFlagRequired("down")
	_ = lineCreateCmd.MarkFlagRequired("distance")

	lineUpdateCmd.Flags().StringVar(&lineUpdateName, "name", "", "new name")
	lineUpdateCmd.Flags().StringVar(&lineUpdateColor, "color", "", "new display colour")

	lineCmd.AddCommand(lineCreateCmd)
	lineCmd.AddCommand(lineListCmd)
	lineCmd.AddCommand(lineShowCmd)
	lineCmd.AddCommand(lineUpdateCmd)
	lineCmd.AddCommand(lineRemoveCmd)
	lineCmd.AddCommand(lineAddSectionCmd)
	lineCmd.AddCommand(lineRemoveStationCmd)
	rootCmd.AddCommand(lineCmd)
}

func runLineCreate(cmd *cobra.Command, args []string) error {
	if lineService == nil {
		return errors.New("line service not configured")
	}
	ctx := commandContext(cmd)

	up, err := resolveStation(ctx, lineUp)
	if err != nil {
		return err
	}
	down, err := resolveStation(ctx, lineDown)
	if err != nil {
		return err
	}

	line, err := lineService.Create(ctx, domain.LineSpec{
		Name:          args[0],
		Color:         lineColor,
		Surcharge:     lineSurcharge,
		UpStationID:   up.ID,
		DownStationID: down.ID,
		Distance:      lineDistance,
	})
	if err != nil {
		return fmt.Errorf("failed to create line: %w", err)
	}

	cmd.Printf("Created line %s (%s): %s - %s, %d km\n", line.Name, line.ID, up.Name, down.Name, lineDistance)
	return nil
}

func runLineList(cmd *cobra.Command, _ []string) error {
	if lineService == nil {
		return errors.New("line service not configured")
	}

	lines, err := lineService.List(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to list lines: %w", err)
	}

	if len(lines) == 0 {
		cmd.Println("No lines.")
		return nil
	}

	cmd.Println("Lines:")
	for _, line := range lines {
		cmd.Printf("  %s  %s  %d stations, %d km", line.ID, line.Name, len(line.Stations()), line.TotalDistance())
		if line.Surcharge > 0 {
			cmd.Printf(", surcharge %d", line.Surcharge)
		}
		cmd.Println()
	}
	return nil
}

func runLineShow(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	line, err := resolveLine(ctx, args[0])
	if err != nil {
		return err
	}
	stations, err := lineService.Stations(ctx, line.ID)
	if err != nil {
		return fmt.Errorf("failed to get stations: %w", err)
	}

	names := make(map[domain.StationID]string, len(stations))
	path := make([]string, 0, len(stations))
	for i := range stations {
		names[stations[i].ID] = stations[i].Name
		path = append(path, stations[i].Name)
	}

	cmd.Printf("Line: %s\n", line.Name)
	cmd.Printf("  ID: %s\n", line.ID)
	if line.Color != "" {
		cmd.Printf("  Color: %s\n", line.Color)
	}
	cmd.Printf("  Surcharge: %d\n", line.Surcharge)
	cmd.Printf("  Distance: %d km\n", line.TotalDistance())
	cmd.Println()
	cmd.Printf("Stations: %s\n", strings.Join(path, " - "))
	cmd.Println()
	cmd.Println("Sections:")
	for _, section := range line.Sections() {
		cmd.Printf("  %s -> %s  %d km\n", names[section.UpStationID], names[section.DownStationID], section.Distance)
	}
	return nil
}

func runLineUpdate(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	line, err := resolveLine(ctx, args[0])
	if err != nil {
		return err
	}

	name, color := line.Name, line.Color
	if cmd.Flags().Changed("name") {
		name = lineUpdateName
	}
	if cmd.Flags().Changed("color") {
		color = lineUpdateColor
	}

	updated, err := lineService.Update(ctx, line.ID, name, color)
	if err != nil {
		return fmt.Errorf("failed to update line: %w", err)
	}

	cmd.Printf("Updated line %s (%s)\n", updated.Name, updated.ID)
	return nil
}

func runLineRemove(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	line, err := resolveLine(ctx, args[0])
	if err != nil {
		return err
	}

	if err := lineService.Delete(ctx, line.ID); err != nil {
		return fmt.Errorf("failed to remove line: %w", err)
	}

	cmd.Printf("Removed line %s\n", line.Name)
	return nil
}

func runLineAddSection(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	distance, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("%w: distance %q is not a number", domain.ErrInvalidInput, args[3])
	}

	line, err := resolveLine(ctx, args[0])
	if err != nil {
		return err
	}
	up, err := resolveStation(ctx, args[1])
	if err != nil {
		return err
	}
	down, err := resolveStation(ctx, args[2])
	if err != nil {
		return err
	}

	updated, err := lineService.AddSection(ctx, line.ID, up.ID, down.ID, distance)
	if err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}

	cmd.Printf("Added section %s - %s (%d km) to %s\n", up.Name, down.Name, distance, updated.Name)
	return nil
}

func runLineRemoveStation(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	line, err := resolveLine(ctx, args[0])
	if err != nil {
		return err
	}
	station, err := resolveStation(ctx, args[1])
	if err != nil {
		return err
	}

	updated, err := lineService.DeleteStation(ctx, line.ID, station.ID)
	if err != nil {
		return fmt.Errorf("failed to remove station: %w", err)
	}

	cmd.Printf("Removed %s from %s (%d km)\n", station.Name, updated.Name, updated.TotalDistance())
	return nil
}
