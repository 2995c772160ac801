// portalctl is the operator tool for the portal: it creates administrator
// accounts and checks zone catalogs without going through the HTTP API.
package main

import (
	"fmt"
	"os"
	"strings"

	"sage-portal/auth"
	"sage-portal/confs"
	"sage-portal/db"
	"sage-portal/entities"
	"sage-portal/logger"
	"sage-portal/repositories"
	"sage-portal/zones"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "portalctl",
		Short:         "Operator commands for the consulting portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newAdminCmd(), newZonesCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}

	var email, password, name string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an active administrator directly in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAdmin(cmd, email, password, name)
		},
	}
	createCmd.Flags().StringVar(&email, "email", "", "administrator email")
	createCmd.Flags().StringVar(&password, "password", "", "initial password")
	createCmd.Flags().StringVar(&name, "name", "", "full name")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(createCmd)
	return adminCmd
}

func createAdmin(cmd *cobra.Command, email, password, name string) error {
	settings, err := confs.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Settings{Level: "warn"})
	if err != nil {
		return err
	}

	database, err := db.Connect(settings, log)
	if err != nil {
		return err
	}
	defer database.Close()

	profiles := repositories.NewProfilePgRepository(database)
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := profiles.GetByEmail(email); err == nil {
		return fmt.Errorf("%s: %w", email, auth.ErrEmailTaken)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	profile := &entities.Profile{
		Email:        email,
		PasswordHash: hash,
		Role:         entities.RoleAdmin,
		Status:       entities.StatusActive,
		FullName:     name,
	}
	if err := profiles.Create(profile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "administrator %s created (id %s)\n", profile.Email, profile.ID)
	return nil
}

func newZonesCmd() *cobra.Command {
	zonesCmd := &cobra.Command{
		Use:   "zones",
		Short: "Inspect the zone catalog",
	}

	var file string
	zonesCmd.PersistentFlags().StringVar(&file, "file", os.Getenv("ZONES_FILE"), "catalog YAML file (embedded catalog when empty)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a catalog and report conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, z := range catalog.Zones() {
				marker := " "
				if z == catalog.Default() {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %-16s %-32s %d cities, postal %s\n",
					marker, z.Key, z.Name, len(z.Cities), strings.Join(z.PostalCodes, ","))
			}
			fmt.Fprintln(out, "catalog OK")
			return nil
		},
	}

	detectCmd := &cobra.Command{
		Use:   "detect <postal code or city>",
		Short: "Classify an input offline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := loadCatalog(file)
			if err != nil {
				return err
			}
			input := strings.Join(args, " ")
			zone, recognised := catalog.DetectFromInput(input)
			if !recognised {
				fmt.Fprintf(cmd.OutOrStdout(), "%q not recognised, default zone %s\n", input, zone.Key)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%q -> %s (%s)\n", input, zone.Key, zone.Name)
			return nil
		},
	}

	zonesCmd.AddCommand(checkCmd, detectCmd)
	return zonesCmd
}

// loadCatalog validates as a side effect; overlaps surface as the error.
func loadCatalog(file string) (*zones.Catalog, error) {
	if file == "" {
		return zones.DefaultCatalog(), nil
	}
	return zones.LoadCatalogFile(file)
}
