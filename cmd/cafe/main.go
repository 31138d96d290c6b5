package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/config"
	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/session"
)

var (
	apiURL     string
	profile    string
	jsonOutput bool

	cfg           *config.Config
	profiles      *session.Store
	activeProfile session.Profile
	sess          *session.Session

	cafeClient *client.HTTPClient
	publisher  events.Publisher = &events.NoopPublisher{}
)

var rootCmd = &cobra.Command{
	Use:           "cafe <command>",
	Short:         "Admin dashboard for the pet cafe",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cafeClient != nil {
			cafeClient.Close()
		}
		if publisher != nil {
			publisher.Close()
		}
	},
}

// setup resolves configuration in order: flags, environment, then the
// active profile, and builds the API client and event publisher.
func setup(cmd *cobra.Command) error {
	if err := openProfiles(); err != nil {
		return err
	}
	all, err := profiles.Load()
	if err != nil {
		return err
	}
	if profile != "" {
		p, ok := all.Profiles[profile]
		if !ok {
			return fmt.Errorf("profile %q not found", profile)
		}
		activeProfile = p
	} else {
		activeProfile, _ = all.ActiveProfile()
	}

	url := apiURL
	if url == "" && os.Getenv("CAFE_API_URL") == "" && activeProfile.URL != "" {
		url = activeProfile.URL
	}
	if url == "" {
		url = cfg.APIURL
	}
	if cfg.NATSURL == "" {
		cfg.NATSURL = activeProfile.NATSURL
	}

	token := cfg.Token
	if token == "" {
		token = activeProfile.Token
	}
	if sess, err = session.FromToken(token); err != nil {
		return fmt.Errorf("reading stored token (run 'cafe login' again): %w", err)
	}

	cafeClient = client.NewHTTPClient(url, sess, cfg.Timeout)

	if cfg.NATSURL != "" && mutates(cmd) {
		p, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: change events disabled: %v\n", err)
		} else {
			publisher = p
		}
	}
	return nil
}

// openProfiles loads the environment config and the profile store.
func openProfiles() error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	path := cfg.ProfilesPath
	if path == "" {
		if path, err = session.DefaultPath(); err != nil {
			return fmt.Errorf("locating profiles: %w", err)
		}
	}
	profiles = session.NewStore(path)
	return nil
}

// mutates reports whether cmd belongs to a group whose commands change
// remote data and so publish change events.
func mutates(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.GroupID {
		case "catalog", "schedule", "leave":
			return true
		}
	}
	return false
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "cafe API base URL (default from CAFE_API_URL or the active profile)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "use this profile instead of the active one")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")

	rootCmd.AddGroup(
		&cobra.Group{ID: "account", Title: "Account:"},
		&cobra.Group{ID: "pages", Title: "Pages:"},
		&cobra.Group{ID: "catalog", Title: "Catalog:"},
		&cobra.Group{ID: "schedule", Title: "Schedule:"},
		&cobra.Group{ID: "leave", Title: "Leave:"},
		&cobra.Group{ID: "system", Title: "System:"},
	)

	cobra.EnableCommandSorting = false
	rootCmd.SetHelpFunc(colorizedHelpFunc())

	// Account
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(profileCmd)

	// Pages
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(exportCmd)

	// Catalog
	rootCmd.AddCommand(vaccineCmd)
	rootCmd.AddCommand(breedCmd)
	rootCmd.AddCommand(petCmd)

	// Schedule
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(slotCmd)

	// Leave
	rootCmd.AddCommand(leaveCmd)

	// System
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(remoteCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", describeError(err))
		os.Exit(1)
	}
}
