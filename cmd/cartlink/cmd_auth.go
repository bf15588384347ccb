package main

import (
	"errors"
	"os"
	"time"

	"github.com/mhizterpaul/cartlink/internal/domain/identity"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/logger"
	"github.com/mhizterpaul/cartlink/internal/infrastructure/tokenstore"
	"github.com/mhizterpaul/cartlink/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Account flags shared by login, signup and the password commands
var (
	email       string
	password    string
	asCustomer  bool
	firstName   string
	lastName    string
	middleName  string
	phoneNumber string
	resetToken  string
	image       string
)

// loginCmd signs in and persists the token
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in as a merchant (or a customer with --customer)",
	Long: `Sign in and keep the returned token in the token store.

The password may be passed with --password or the CARTLINK_PASSWORD
environment variable.`,
	RunE: runLogin,
}

// signupCmd registers an account
var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Register a merchant (or a customer with --customer) and sign in",
	RunE:  runSignup,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	RunE:  runLogout,
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the stored token for a fresh one",
	RunE: func(cmd *cobra.Command, args []string) error {
		auth := rt.store.Auth
		if !auth.Authenticated() {
			return store.ErrSignedOut
		}
		return settle(cmd, auth.Slice, auth.Refresh(cmd.Context()))
	},
}

// whoamiCmd shows the claims of the stored token without contacting the backend
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show who the stored token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		claims, err := rt.tokens.Claims(cmd.Context())
		if errors.Is(err, tokenstore.ErrNoToken) {
			return store.ErrSignedOut
		}
		if err != nil {
			return err
		}
		return printJSON(cmd, struct {
			identity.Claims
			Expired bool `json:"expired"`
		}{claims, claims.Expired(time.Now())})
	},
}

// passwordCmd groups the password reset flow
var passwordCmd = &cobra.Command{
	Use:   "password",
	Short: "Reset a forgotten password",
	Long: `Reset a forgotten password in two steps:

  cartlink password request --email me@example.com
  cartlink password reset --email me@example.com --token <emailed> --password <new>`,
}

var passwordRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "Email a password reset token",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := identity.PasswordResetRequest{Email: email}
		if asCustomer {
			return rt.api.Customers.RequestPasswordReset(cmd.Context(), req)
		}
		m := rt.store.Merchant
		return settle(cmd, m.Slice, m.RequestPasswordReset(cmd.Context(), req))
	},
}

var passwordResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Set a new password with the emailed token",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := identity.PasswordReset{Email: email, ResetToken: resetToken, NewPassword: passwordValue()}
		if asCustomer {
			return rt.api.Customers.ResetPassword(cmd.Context(), req)
		}
		m := rt.store.Merchant
		return settle(cmd, m.Slice, m.ResetPassword(cmd.Context(), req))
	},
}

// profileCmd shows the signed-in merchant's profile
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the merchant profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := rt.store.Merchant
		return settle(cmd, m.Slice, m.FetchProfile(cmd.Context()))
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change the merchant profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := rt.store.Merchant
		return settle(cmd, m.Slice, m.UpdateProfile(cmd.Context(), identity.ProfileUpdate{
			FirstName:   firstName,
			LastName:    lastName,
			PhoneNumber: phoneNumber,
			Image:       image,
		}))
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd, passwordRequestCmd, passwordResetCmd} {
		c.Flags().StringVar(&email, "email", "", "Account email")
		c.Flags().BoolVar(&asCustomer, "customer", false, "Use the customer account endpoints")
	}
	for _, c := range []*cobra.Command{loginCmd, signupCmd, passwordResetCmd} {
		c.Flags().StringVar(&password, "password", "", "Password (or CARTLINK_PASSWORD)")
	}
	for _, c := range []*cobra.Command{signupCmd, profileUpdateCmd} {
		c.Flags().StringVar(&firstName, "first-name", "", "First name")
		c.Flags().StringVar(&lastName, "last-name", "", "Last name")
		c.Flags().StringVar(&phoneNumber, "phone", "", "Phone number")
	}
	signupCmd.Flags().StringVar(&middleName, "middle-name", "", "Middle name")
	profileUpdateCmd.Flags().StringVar(&image, "image", "", "Profile image URL")
	passwordResetCmd.Flags().StringVar(&resetToken, "token", "", "Reset token from the email")

	passwordCmd.AddCommand(passwordRequestCmd)
	passwordCmd.AddCommand(passwordResetCmd)
	profileCmd.AddCommand(profileUpdateCmd)
}

func passwordValue() string {
	if password != "" {
		return password
	}
	return os.Getenv("CARTLINK_PASSWORD")
}

func runLogin(cmd *cobra.Command, args []string) error {
	req := identity.LoginRequest{Email: email, Password: passwordValue()}
	if asCustomer {
		c := rt.store.Customer
		return settle(cmd, c.Slice, c.Login(cmd.Context(), req))
	}
	auth := rt.store.Auth
	return settle(cmd, auth.Slice, auth.Login(cmd.Context(), req))
}

func runSignup(cmd *cobra.Command, args []string) error {
	req := identity.SignUpRequest{
		Email:       email,
		Password:    passwordValue(),
		FirstName:   firstName,
		LastName:    lastName,
		MiddleName:  middleName,
		PhoneNumber: phoneNumber,
	}
	if asCustomer {
		c := rt.store.Customer
		return settle(cmd, c.Slice, c.SignUp(cmd.Context(), req))
	}
	auth := rt.store.Auth
	return settle(cmd, auth.Slice, auth.SignUp(cmd.Context(), req))
}

// runLogout tells the backend first, then always drops the local token.
func runLogout(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	auth := rt.store.Auth
	if auth.Authenticated() {
		if err := rt.api.Merchants.Logout(ctx); err != nil {
			logger.L(ctx).Warn("Backend logout failed, clearing local token anyway", zap.Error(err))
		}
	}
	if err := auth.Logout(ctx); err != nil {
		return err
	}
	return printJSON(cmd, auth.State())
}
