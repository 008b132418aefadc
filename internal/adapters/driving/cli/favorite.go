package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

var favoriteMember string

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage a member's favorite routes",
	Long: `Save, list and remove favorite routes. Favorites belong to the
member given with --member; members cannot remove each other's favorites.`,
}

var favoriteAddCmd = &cobra.Command{
	Use:   "add [source] [target]",
	Short: "Save a favorite route",
	Args:  cobra.ExactArgs(2),
	RunE:  runFavoriteAdd,
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a member's favorites",
	RunE:  runFavoriteList,
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove [favorite-id]",
	Short: "Remove a favorite",
	Args:  cobra.ExactArgs(1),
	RunE:  runFavoriteRemove,
}

func init() {
	favoriteCmd.PersistentFlags().StringVarP(&favoriteMember, "member", "m", "", "member the favorites belong to (required)")
	_ = favoriteCmd.MarkPersistentFlagRequired("member")

	favoriteCmd.AddCommand(favoriteAddCmd)
	favoriteCmd.AddCommand(favoriteListCmd)
	favoriteCmd.AddCommand(favoriteRemoveCmd)
	rootCmd.AddCommand(favoriteCmd)
}

func runFavoriteAdd(cmd *cobra.Command, args []string) error {
	if favoriteService == nil {
		return errors.New("favorite service not configured")
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

	favorite, err := favoriteService.Add(ctx, favoriteMember, source.ID, target.ID)
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	cmd.Printf("Saved favorite %s: %s -> %s\n", favorite.ID, source.Name, target.Name)
	return nil
}

func runFavoriteList(cmd *cobra.Command, _ []string) error {
	if favoriteService == nil {
		return errors.New("favorite service not configured")
	}
	ctx := commandContext(cmd)

	favorites, err := favoriteService.List(ctx, favoriteMember)
	if err != nil {
		return fmt.Errorf("failed to list favorites: %w", err)
	}

	if len(favorites) == 0 {
		cmd.Printf("No favorites for %s.\n", favoriteMember)
		return nil
	}

	cmd.Printf("Favorites for %s:\n", favoriteMember)
	for i := range favorites {
		cmd.Printf("  %s  %s -> %s\n", favorites[i].ID,
			stationLabel(cmd, favorites[i].SourceID), stationLabel(cmd, favorites[i].TargetID))
	}
	return nil
}

// stationLabel returns a station's name, or its ID when it cannot be read.
func stationLabel(cmd *cobra.Command, id domain.StationID) string {
	if stationService == nil {
		return id.String()
	}
	station, err := stationService.Get(commandContext(cmd), id)
	if err != nil {
		return id.String()
	}
	return station.Name
}

func runFavoriteRemove(cmd *cobra.Command, args []string) error {
	if favoriteService == nil {
		return errors.New("favorite service not configured")
	}

	if err := favoriteService.Remove(commandContext(cmd), favoriteMember, args[0]); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}

	cmd.Printf("Removed favorite %s\n", args[0])
	return nil
}
