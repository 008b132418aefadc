package cli

import (
	"bufio"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/metro-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the fare table, storage backend and path cache.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a single setting",
	Long: `Change a single setting. Available keys:

  fare.base_fare       fare up to the base distance
  fare.base_distance   km covered by the base fare
  fare.mid_distance    km up to which the mid unit applies
  fare.mid_unit        km per extra fare unit up to mid_distance
  fare.long_unit       km per extra fare unit beyond mid_distance
  fare.unit_fare       amount of one extra fare unit
  fare.deduction       amount deducted before child/teen discounts
  storage.backend      sqlite or memory
  storage.data_dir     directory for the sqlite database
  path.cache_enabled   true or false
  path.cache_ttl       duration such as 5m`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

// settingSetters apply a string value to one setting.
var settingSetters = map[string]func(s *domain.AppSettings, value string) error{
	"fare.base_fare":     intSetter(func(s *domain.AppSettings) *int { return &s.Fare.BaseFare }),
	"fare.base_distance": intSetter(func(s *domain.AppSettings) *int { return &s.Fare.BaseDistance }),
	"fare.mid_distance":  intSetter(func(s *domain.AppSettings) *int { return &s.Fare.MidDistance }),
	"fare.mid_unit":      intSetter(func(s *domain.AppSettings) *int { return &s.Fare.MidUnit }),
	"fare.long_unit":     intSetter(func(s *domain.AppSettings) *int { return &s.Fare.LongUnit }),
	"fare.unit_fare":     intSetter(func(s *domain.AppSettings) *int { return &s.Fare.UnitFare }),
	"fare.deduction":     intSetter(func(s *domain.AppSettings) *int { return &s.Fare.Deduction }),
	"storage.backend": func(s *domain.AppSettings, value string) error {
		s.Storage.Backend = domain.StorageBackend(value)
		return nil
	},
	"storage.data_dir": func(s *domain.AppSettings, value string) error {
		s.Storage.DataDir = value
		return nil
	},
	"path.cache_enabled": func(s *domain.AppSettings, value string) error {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not true or false", domain.ErrInvalidInput, value)
		}
		s.Path.CacheEnabled = enabled
		return nil
	},
	"path.cache_ttl": func(s *domain.AppSettings, value string) error {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			return fmt.Errorf("%w: %q is not a positive duration", domain.ErrInvalidInput, value)
		}
		s.Path.CacheTTL = ttl
		return nil
	},
}

func intSetter(field func(s *domain.AppSettings) *int) func(*domain.AppSettings, string) error {
	return func(s *domain.AppSettings, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not a whole number", domain.ErrInvalidInput, value)
		}
		*field(s) = n
		return nil
	}
}

func settingKeys() []string {
	keys := make([]string, 0, len(settingSetters))
	for k := range settingSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	fare := settings.Fare
	cmd.Println("[Fare]")
	cmd.Printf("  Base fare: %d (up to %d km)\n", fare.BaseFare, fare.BaseDistance)
	cmd.Printf("  Up to %d km: +%d per %d km\n", fare.MidDistance, fare.UnitFare, fare.MidUnit)
	cmd.Printf("  Beyond %d km: +%d per %d km\n", fare.MidDistance, fare.UnitFare, fare.LongUnit)
	cmd.Printf("  Discount deduction: %d\n", fare.Deduction)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend)
	if settings.Storage.DataDir != "" {
		cmd.Printf("  Data dir: %s\n", settings.Storage.DataDir)
	}
	cmd.Println()

	cmd.Println("[Path]")
	if settings.Path.CacheEnabled {
		cmd.Printf("  Graph cache: on (ttl %s)\n", settings.Path.CacheTTL)
	} else {
		cmd.Println("  Graph cache: off")
	}
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'metro settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, value := args[0], args[1]

	set, ok := settingSetters[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q (available: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys(), ", "))
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := set(settings, value); err != nil {
		return err
	}
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Metro Setup Wizard")
	cmd.Println("==================")
	cmd.Println()

	// Step 1: storage backend
	cmd.Println("Step 1: Storage")
	cmd.Println("  1. sqlite - persist to a local database")
	cmd.Println("  2. memory - keep data for this process only")
	defaultChoice := 1
	if settings.Storage.Backend == domain.StorageMemory {
		defaultChoice = 2
	}
	cmd.Printf("Select [%d]: ", defaultChoice)
	if parseChoice(readLine(reader), 2, defaultChoice) == 2 {
		settings.Storage.Backend = domain.StorageMemory
	} else {
		settings.Storage.Backend = domain.StorageSQLite
	}
	cmd.Println()

	// Step 2: fare table
	cmd.Println("Step 2: Fare table (press Enter to keep the current value)")
	fare := &settings.Fare
	fare.BaseFare = promptInt(cmd, reader, "Base fare", fare.BaseFare)
	fare.BaseDistance = promptInt(cmd, reader, "Base distance (km)", fare.BaseDistance)
	fare.MidDistance = promptInt(cmd, reader, "Mid distance (km)", fare.MidDistance)
	fare.MidUnit = promptInt(cmd, reader, "Mid unit (km)", fare.MidUnit)
	fare.LongUnit = promptInt(cmd, reader, "Long unit (km)", fare.LongUnit)
	fare.UnitFare = promptInt(cmd, reader, "Unit fare", fare.UnitFare)
	fare.Deduction = promptInt(cmd, reader, "Discount deduction", fare.Deduction)
	cmd.Println()

	// Step 3: path cache
	cmd.Println("Step 3: Path cache")
	current := "n"
	if settings.Path.CacheEnabled {
		current = "y"
	}
	cmd.Printf("Cache network graphs between queries? (y/n) [%s]: ", current)
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes":
		settings.Path.CacheEnabled = true
	case "n", "no":
		settings.Path.CacheEnabled = false
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Settings saved.")
	return nil
}

// promptInt asks for a whole number, keeping the current value on empty or
// invalid input.
func promptInt(cmd *cobra.Command, reader *bufio.Reader, label string, current int) int {
	cmd.Printf("  %s [%d]: ", label, current)
	input := readLine(reader)
	if input == "" {
		return current
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		cmd.Printf("  Not a number, keeping %d\n", current)
		return current
	}
	return n
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
