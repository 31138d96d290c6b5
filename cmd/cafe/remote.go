package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/session"
)

var remoteCmd = &cobra.Command{
	Use:     "remote",
	Short:   "Manage named API profiles",
	GroupID: "system",
	// Profile commands only touch the local file.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return openProfiles() },
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add or update a named profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, url := args[0], args[1]
		natsURL, _ := cmd.Flags().GetString("nats")
		desc, _ := cmd.Flags().GetString("description")

		all, err := profiles.Load()
		if err != nil {
			return err
		}
		prof := all.Profiles[name]
		if prof.URL != url {
			// A token is only valid for the server that issued it.
			prof.Token = ""
		}
		prof.URL, prof.NATSURL, prof.Description = url, natsURL, desc
		all.Profiles[name] = prof
		if all.Active == "" {
			all.Active = name
		}
		if err := profiles.Save(all); err != nil {
			return err
		}
		fmt.Printf("profile %q saved (%s)\n", name, url)
		return nil
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		all, err := profiles.Load()
		if err != nil {
			return err
		}
		if _, ok := all.Profiles[name]; !ok {
			return fmt.Errorf("profile %q not found", name)
		}
		delete(all.Profiles, name)
		if all.Active == name {
			all.Active = ""
		}
		if err := profiles.Save(all); err != nil {
			return err
		}
		fmt.Printf("profile %q removed\n", name)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := profiles.Load()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(redacted(all))
		}
		if len(all.Profiles) == 0 {
			fmt.Println("no profiles configured")
			return nil
		}
		names := make([]string, 0, len(all.Profiles))
		for n := range all.Profiles {
			names = append(names, n)
		}
		sort.Strings(names)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tURL\tNATS\tSIGNED IN")
		for _, n := range names {
			p := all.Profiles[n]
			marker := "  "
			if n == all.Active {
				marker = "* "
			}
			signedIn := "no"
			if p.Token != "" {
				signedIn = "yes"
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", marker, n, p.URL, p.NATSURL, signedIn)
		}
		return w.Flush()
	},
}

// redacted drops tokens before profiles are printed.
func redacted(all session.Profiles) session.Profiles {
	out := session.Profiles{Active: all.Active, Profiles: make(map[string]session.Profile, len(all.Profiles))}
	for n, p := range all.Profiles {
		p.Token = ""
		out.Profiles[n] = p
	}
	return out
}

var remoteUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		all, err := profiles.Load()
		if err != nil {
			return err
		}
		if _, ok := all.Profiles[name]; !ok {
			return fmt.Errorf("profile %q not found", name)
		}
		all.Active = name
		if err := profiles.Save(all); err != nil {
			return err
		}
		fmt.Printf("active profile set to %q\n", name)
		return nil
	},
}

func init() {
	remoteAddCmd.Flags().String("nats", "", "NATS URL for change events")
	remoteAddCmd.Flags().String("description", "", "free-form description")
	remoteCmd.AddCommand(remoteAddCmd, remoteRemoveCmd, remoteListCmd, remoteUseCmd)
}
