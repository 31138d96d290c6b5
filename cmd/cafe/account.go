package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/model"
	"github.com/alfredjeanlab/cafedash/internal/session"
	"github.com/alfredjeanlab/cafedash/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Sign in and store the token in the active profile",
	GroupID: "account",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, err := ui.ReadSecret(os.Stderr, os.Stdin, "Password: ")
		if err != nil {
			return err
		}

		resp, err := cafeClient.Login(context.Background(), &model.LoginRequest{Email: email, Password: password})
		if err != nil {
			return err
		}
		if err := saveToken(resp.Token); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		if jsonOutput {
			return printJSON(resp.User)
		}
		fmt.Printf("Signed in as %s (%s)\n", resp.User.FullName, ui.RenderAccent(string(resp.User.Role)))
		return nil
	},
}

// saveToken stores token on the profile selected with --profile, or on the
// active profile.
func saveToken(token string) error {
	if profile != "" {
		return profiles.Update(profile, func(p *session.Profile) { p.Token = token })
	}
	return profiles.SetToken(cafeClient.BaseURL(), token)
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a new account",
	GroupID: "account",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.RegisterRequest{}
		req.FullName, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Phone, _ = cmd.Flags().GetString("phone")

		var err error
		if req.Password, err = ui.ReadSecret(os.Stderr, os.Stdin, "Password: "); err != nil {
			return err
		}
		if req.ConfirmPassword, err = ui.ReadSecret(os.Stderr, os.Stdin, "Confirm password: "); err != nil {
			return err
		}

		user, err := cafeClient.Register(context.Background(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(user)
		}
		fmt.Printf("Registered %s. Run 'cafe login --email %s' to sign in.\n", user.FullName, user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Forget the stored token",
	GroupID: "account",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := profiles.Load()
		if err != nil {
			return err
		}
		name := profile
		if name == "" {
			name = all.Active
		}
		if name == "" {
			fmt.Println("not signed in")
			return nil
		}
		if err := profiles.Update(name, func(p *session.Profile) { p.Token = "" }); err != nil {
			return err
		}
		fmt.Printf("signed out of %q\n", name)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the signed-in user",
	GroupID: "account",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !sess.IsAuthenticated(time.Now()) {
			return fmt.Errorf("not signed in (run 'cafe login')")
		}
		user, err := cafeClient.Me(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(user)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Name:\t%s\n", user.FullName)
		fmt.Fprintf(w, "Email:\t%s\n", user.Email)
		fmt.Fprintf(w, "Role:\t%s\n", user.Role)
		if user.Phone != "" {
			fmt.Fprintf(w, "Phone:\t%s\n", user.Phone)
		}
		if user.Address != "" {
			fmt.Fprintf(w, "Address:\t%s\n", user.Address)
		}
		if !sess.ExpiresAt.IsZero() {
			fmt.Fprintf(w, "Token expires:\t%s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Manage your own profile",
	GroupID: "account",
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update name, phone, address or avatar",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.UpdateProfileRequest{
			FullName:  changedString(cmd, "name"),
			Phone:     changedString(cmd, "phone"),
			Address:   changedString(cmd, "address"),
			AvatarURL: changedString(cmd, "avatar"),
		}
		if req.FullName == nil && req.Phone == nil && req.Address == nil && req.AvatarURL == nil {
			return fmt.Errorf("nothing to update (use --name, --phone, --address or --avatar)")
		}
		user, err := cafeClient.UpdateProfile(context.Background(), req)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(user)
		}
		fmt.Printf("Profile updated for %s\n", user.FullName)
		return nil
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &model.ChangePasswordRequest{}
		var err error
		if req.CurrentPassword, err = ui.ReadSecret(os.Stderr, os.Stdin, "Current password: "); err != nil {
			return err
		}
		if req.NewPassword, err = ui.ReadSecret(os.Stderr, os.Stdin, "New password: "); err != nil {
			return err
		}
		if req.ConfirmPassword, err = ui.ReadSecret(os.Stderr, os.Stdin, "Confirm new password: "); err != nil {
			return err
		}
		if err := cafeClient.ChangePassword(context.Background(), req); err != nil {
			return err
		}
		fmt.Println("Password changed")
		return nil
	},
}

// changedString returns a pointer to the flag's value when the flag was set.
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func init() {
	loginCmd.Flags().String("email", "", "account email (required)")
	_ = loginCmd.MarkFlagRequired("email")

	registerCmd.Flags().String("name", "", "full name (required)")
	registerCmd.Flags().String("email", "", "email (required)")
	registerCmd.Flags().String("phone", "", "phone number")

	profileUpdateCmd.Flags().String("name", "", "full name")
	profileUpdateCmd.Flags().String("phone", "", "phone number")
	profileUpdateCmd.Flags().String("address", "", "address")
	profileUpdateCmd.Flags().String("avatar", "", "avatar image URL")

	profileCmd.AddCommand(profileUpdateCmd, profilePasswordCmd)
}
