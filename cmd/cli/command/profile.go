package command

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cineforo/cmd/cli/command/client"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/models"
	"cineforo/internal/microservices/http-api/validation"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Your profile",
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		user, err := httpClient.Me()
		if err != nil {
			return err
		}
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var updateProfileCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your name or favourite genre",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		current, err := httpClient.Me()
		if err != nil {
			return err
		}

		req := dto.UpdateProfileRequest{Name: current.Name, FavoriteGenre: current.FavoriteGenre}
		if cmd.Flags().Changed("name") {
			req.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("genre") {
			req.FavoriteGenre, _ = cmd.Flags().GetString("genre")
		}
		if err := validation.ValidateProfile(req.Name, req.FavoriteGenre); err != nil {
			return err
		}

		user, err := httpClient.UpdateProfile(req)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Profile updated")
		printUser(cmd.OutOrStdout(), user)
		return nil
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change your password",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.ChangePasswordRequest
		req.CurrentPassword, _ = cmd.Flags().GetString("current")
		req.NewPassword, _ = cmd.Flags().GetString("new")
		req.PasswordConfirmation, _ = cmd.Flags().GetString("confirm")
		if err := validation.ValidatePasswordChange(req.CurrentPassword, req.NewPassword, req.PasswordConfirmation); err != nil {
			return err
		}

		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if err := httpClient.ChangePassword(req); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Password changed")
		return nil
	},
}

var avatarExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

var uploadAvatarCmd = &cobra.Command{
	Use:   "avatar [image-file]",
	Short: "Upload a profile picture (jpeg, png or gif)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ext := strings.ToLower(filepath.Ext(path))
		if !slices.Contains(avatarExtensions, ext) {
			return fmt.Errorf("avatar must be one of: %s", strings.Join(avatarExtensions, ", "))
		}
		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("could not open image: %w", err)
		}
		defer file.Close()

		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if _, err := httpClient.UploadAvatar(filepath.Base(path), file); err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "Avatar updated")
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Your activity counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		httpClient, _, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		stats, err := httpClient.Stats()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Favorites: %d\n", stats.Favorites)
		fmt.Fprintf(out, "Topics:    %d\n", stats.Topics)
		fmt.Fprintf(out, "Comments:  %d\n", stats.Comments)
		fmt.Fprintf(out, "Likes:     %d\n", stats.Likes)
		return nil
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres a profile can pick",
	RunE: func(cmd *cobra.Command, args []string) error {
		genres, err := client.NewHTTPClient(apiURL).Genres()
		if err != nil {
			return err
		}
		for _, g := range genres {
			fmt.Fprintln(cmd.OutOrStdout(), g)
		}
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "role [user-id] [user|moderator]",
	Short: "Change a user's role (moderators only)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := args[1]
		if role != models.RoleUser && role != models.RoleModerator {
			return fmt.Errorf("role must be %q or %q", models.RoleUser, models.RoleModerator)
		}
		httpClient, creds, err := GetAuthenticatedClient()
		if err != nil {
			return err
		}
		if creds.Role != models.RoleModerator {
			return fmt.Errorf("only moderators can change roles")
		}
		user, err := httpClient.SetRole(args[0], role)
		if err != nil {
			return err
		}
		success(cmd.OutOrStdout(), "%s is now %s", user.Name, user.Role)
		return nil
	},
}

func init() {
	profileCmd.AddCommand(showProfileCmd, updateProfileCmd, changePasswordCmd, uploadAvatarCmd, statsCmd, genresCmd, setRoleCmd)

	updateProfileCmd.Flags().StringP("name", "n", "", "new display name")
	updateProfileCmd.Flags().StringP("genre", "g", "", "new favourite genre")

	changePasswordCmd.Flags().String("current", "", "current password")
	changePasswordCmd.Flags().String("new", "", "new password")
	changePasswordCmd.Flags().String("confirm", "", "new password again")
	changePasswordCmd.MarkFlagRequired("current")
	changePasswordCmd.MarkFlagRequired("new")
	changePasswordCmd.MarkFlagRequired("confirm")
}
