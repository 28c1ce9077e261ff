package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/app"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	var every time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print unread notifications and portfolio value whenever they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if every <= 0 {
				return zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "interval must be positive"), "every", every.String())
			}
			w := cmd.OutOrStdout()
			return c.app.Watch(cmd.Context(), every, func(u app.Update) {
				_, _ = fmt.Fprintf(w, "%s  unread %d  value %s  wallet %s  holdings %d\n",
					time.Now().Format(time.TimeOnly), u.Unread,
					money(u.CurrentValue, u.Currency), money(u.WalletBalance, u.Currency), u.Holdings)
			})
		},
	}
	cmd.Flags().DurationVar(&every, "every", time.Minute, "How often to check the server")
	return cmd
}
