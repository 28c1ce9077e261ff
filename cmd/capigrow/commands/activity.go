package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/uistate"
)

func (c *CLI) newTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Show transaction history",
	}
	cmd.AddCommand(c.newTransactionsListCmd())
	cmd.AddCommand(c.newTransactionsShowCmd())
	return cmd
}

func (c *CLI) newTransactionsListCmd() *cobra.Command {
	var (
		kind, status, period string
		page                 int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := uistate.NewTransactionFilters()
			filters.SetType(kind)
			filters.SetStatus(status)
			filters.SetPeriod(period)

			filter := filters.Get().Filter()
			filter.Page = page
			list, err := c.app.Transactions(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return renderTable(cmd.OutOrStdout(), "No transactions.", transactionHeaders, transactionRows(list))
		},
	}
	f := cmd.Flags()
	f.StringVar(&kind, "type", "", "Only show this type, e.g. deposit or investment")
	f.StringVar(&status, "status", "", "Only show this status, e.g. completed")
	f.StringVar(&period, "period", "", "Look-back window: 7d, 30d, 90d or 1y")
	f.IntVar(&page, "page", 0, "Page number, starting at 1")
	return cmd
}

func (c *CLI) newTransactionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show one transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tx, err := c.app.Transaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), tx)
		},
	}
}

func (c *CLI) newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read in-app messages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, unread, err := c.app.Notifications(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(w, "%d unread\n", unread); err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, n := range list {
				mark := ""
				if !n.Read {
					mark = "*"
				}
				rows = append(rows, []string{mark, n.ID, n.Title, n.Body, n.CreatedAt})
			}
			return renderTable(w, "", []string{"", "ID", "TITLE", "MESSAGE", "DATE"}, rows)
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.app.MarkRead(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Marked %q as read.\n", n.Title)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked as read.")
			return err
		},
	})
	return cmd
}
