package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/core/domain"
)

func (c *CLI) newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.FullName(), user.Email)
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *CLI) newSignupCmd() *cobra.Command {
	var req domain.SignupRequest
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account; a one-time code is sent to the email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := c.app.Signup(cmd.Context(), req)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(),
				"Account created. Enter the code sent to %s with: capigrow verify-otp --email %s <code>\n", email, email)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.FirstName, "first-name", "", "First name")
	f.StringVar(&req.LastName, "last-name", "", "Last name")
	f.StringVarP(&req.Email, "email", "e", "", "Email address")
	f.StringVar(&req.Phone, "phone", "", "Phone number")
	f.StringVarP(&req.Password, "password", "p", "", "Password, at least 8 characters")
	f.StringVar(&req.DateOfBirth, "dob", "", "Date of birth, e.g. 1990-04-23")
	return cmd
}

func (c *CLI) newVerifyOTPCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "verify-otp <code>",
		Short: "Confirm a new account with its one-time code and sign in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := c.app.VerifyOTP(cmd.Context(), email, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Verified. Signed in as %s (%s)\n", user.FullName(), user.Email)
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email the code was sent to")
	return cmd
}

func (c *CLI) newResendOTPCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "resend-otp",
		Short: "Send a fresh one-time code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.ResendOTP(cmd.Context(), email); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "A new code is on its way.")
			return err
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "Email to send the code to")
	return cmd
}

func (c *CLI) newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the stored refresh token for a new token pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Refresh(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Session refreshed.")
			return err
		},
	}
}

func (c *CLI) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Logout(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

func (c *CLI) newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printUser(cmd.OutOrStdout(), user)
		},
	}
}

func (c *CLI) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change profile details and preferences",
	}
	cmd.AddCommand(c.newProfileUpdateCmd())
	cmd.AddCommand(c.newProfileSettingsCmd())
	return cmd
}

func (c *CLI) newProfileUpdateCmd() *cobra.Command {
	var req domain.UpdateProfileRequest
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change name or phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := c.app.UpdateProfile(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printUser(cmd.OutOrStdout(), user)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.FirstName, "first-name", "", "New first name")
	f.StringVar(&req.LastName, "last-name", "", "New last name")
	f.StringVar(&req.Phone, "phone", "", "New phone number")
	return cmd
}

func (c *CLI) newProfileSettingsCmd() *cobra.Command {
	var (
		req                domain.UpdateSettingsRequest
		push, mail, biomet bool
	)
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Change notification, security and currency preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := cmd.Flags()
			if f.Changed("push") {
				req.PushNotifications = &push
			}
			if f.Changed("email-notifications") {
				req.EmailNotifications = &mail
			}
			if f.Changed("biometrics") {
				req.Biometrics = &biomet
			}
			settings, err := c.app.UpdateSettings(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printSettings(cmd.OutOrStdout(), settings)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&push, "push", false, "Receive push notifications")
	f.BoolVar(&mail, "email-notifications", false, "Receive email notifications")
	f.BoolVar(&biomet, "biometrics", false, "Unlock with biometrics")
	f.StringVar(&req.Currency, "currency", "", "Display currency, e.g. NGN")
	return cmd
}

func printUser(w io.Writer, u domain.User) error {
	return renderFields(w,
		"Name", u.FullName(),
		"Email", u.Email,
		"Phone", u.Phone,
		"KYC level", strconv.Itoa(u.KYCLevel),
		"Verified", yesNo(u.Verified),
	)
}

func printSettings(w io.Writer, s domain.UserSettings) error {
	return renderFields(w,
		"Push notifications", yesNo(s.PushNotifications),
		"Email notifications", yesNo(s.EmailNotifications),
		"Biometrics", yesNo(s.Biometrics),
		"Currency", s.Currency,
	)
}
