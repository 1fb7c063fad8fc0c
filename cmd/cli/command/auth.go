package command

import (
	"errors"

	"cineforo/cmd/cli/authentication"
	"cineforo/cmd/cli/command/client"
	"cineforo/internal/microservices/http-api/dto"
	"cineforo/internal/microservices/http-api/validation"

	"github.com/spf13/cobra"
)

// auth.go handles authentication commands: register, login, logout and whoami.

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the CineForo API server. Supports register, login, logout and whoami.`,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new CineForo account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.RegisterRequest
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.PasswordConfirmation, _ = cmd.Flags().GetString("confirm")
		req.FavoriteGenre, _ = cmd.Flags().GetString("genre")

		// validate before any call is made
		if err := validation.ValidateRegistration(req.Name, req.Email, req.Password, req.PasswordConfirmation, req.FavoriteGenre); err != nil {
			return err
		}

		user, err := client.NewHTTPClient(apiURL).Register(req)
		if err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Registration successful, %s! Log in with 'cineforo auth login'.", user.Name)
		return nil
	},
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your CineForo account",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")

		if err := validation.ValidateLogin(req.Email, req.Password); err != nil {
			return err
		}

		resp, err := client.NewHTTPClient(apiURL).Login(req)
		if err != nil {
			return err
		}
		if err := saveSession(resp); err != nil {
			return err
		}

		name := req.Email
		if resp.User != nil {
			name = resp.User.Name
		}
		success(cmd.OutOrStdout(), "Welcome, %s!", name)
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your CineForo account",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, err := authentication.Active()
		if errors.Is(err, authentication.ErrNoSession) {
			success(cmd.OutOrStdout(), "Already logged out.")
			return nil
		}
		if err != nil {
			return err
		}

		if creds, err := authentication.GetTokens(email); err == nil {
			// the server answers 200 even for unknown tokens; a network failure is not worth blocking on
			_ = client.NewHTTPClient(apiURL).RevokeToken(creds.RefreshToken)
		}
		if err := authentication.DeleteTokens(email); err != nil {
			return err
		}
		if err := authentication.ClearActive(); err != nil {
			return err
		}

		success(cmd.OutOrStdout(), "Successfully logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
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

// init function to add auth commands to root command
func init() {
	authCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)

	// add flags for register command
	registerCmd.Flags().StringP("name", "n", "", "Display name")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().String("confirm", "", "Password confirmation")
	registerCmd.Flags().StringP("genre", "g", "", "Favorite genre (see 'cineforo profile genres')")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("confirm")
	registerCmd.MarkFlagRequired("genre")

	// add flags for login command
	loginCmd.Flags().StringP("email", "e", "", "Email of the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")
}
