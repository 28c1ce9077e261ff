package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/capigrow/internal/core/domain"
	"go.trai.ch/capigrow/internal/uistate"
	"go.trai.ch/zerr"
)

var sortOrders = []uistate.SortOrder{
	uistate.SortRecommended,
	uistate.SortHighestRate,
	uistate.SortLowestMin,
	uistate.SortShortest,
}

func parseSort(s string) (uistate.SortOrder, error) {
	for _, o := range sortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "unknown sort order"), "sort", s)
}

func (c *CLI) newPortfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Show balances, returns and holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.app.Portfolio(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := renderFields(w,
				"Wallet", money(p.WalletBalance, p.Currency),
				"Invested", money(p.TotalInvested, p.Currency),
				"Value", money(p.CurrentValue, p.Currency),
				"Returns", money(p.Returns(), p.Currency)+" ("+percent(p.ReturnPercent())+")",
			); err != nil {
				return err
			}
			rows := make([][]string, 0, len(p.Holdings))
			for _, h := range p.Holdings {
				rows = append(rows, []string{
					h.ID, h.Name, money(h.Principal, p.Currency), money(h.CurrentValue, p.Currency),
					percent(h.AnnualRate), h.MaturityDate,
				})
			}
			return renderTable(w, "No holdings yet.",
				[]string{"HOLDING", "INVESTMENT", "PRINCIPAL", "VALUE", "RATE", "MATURES"}, rows)
		},
	}
}

func (c *CLI) newInvestmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "investments",
		Aliases: []string{"inv"},
		Short:   "Browse the catalogue, invest and withdraw",
	}
	cmd.AddCommand(c.newInvestmentsListCmd())
	cmd.AddCommand(c.newInvestmentsSearchCmd())
	cmd.AddCommand(c.newInvestmentsShowCmd())
	cmd.AddCommand(c.newInvestCmd())
	cmd.AddCommand(c.newWithdrawCmd())
	return cmd
}

// filterFlags binds the catalogue filter bar to command flags.
type filterFlags struct {
	category, risk, sort string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.category, "category", "", "Only show this category, e.g. fixed-income")
	cmd.Flags().StringVar(&f.risk, "risk", "", "Only show this risk level: low, medium or high")
	cmd.Flags().StringVar(&f.sort, "sort", string(uistate.SortRecommended),
		"Order: recommended, rate, min_amount or duration")
}

func (f *filterFlags) state(search string) (uistate.InvestmentFilterState, error) {
	filters := uistate.NewInvestmentFilters()
	order, err := parseSort(f.sort)
	if err != nil {
		return uistate.InvestmentFilterState{}, err
	}
	filters.SetCategory(f.category)
	filters.SetRiskLevel(f.risk)
	filters.SetSearch(search)
	filters.SetSort(order)
	return filters.Get(), nil
}

func (c *CLI) newInvestmentsListCmd() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List investment products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := flags.state("")
			if err != nil {
				return err
			}
			list, err := c.app.Investments(cmd.Context(), state)
			if err != nil {
				return err
			}
			return printInvestments(cmd.OutOrStdout(), list)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *CLI) newInvestmentsSearchCmd() *cobra.Command {
	var flags filterFlags
	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find investment products by name or category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := flags.state(strings.Join(args, " "))
			if err != nil {
				return err
			}
			list, err := c.app.Investments(cmd.Context(), state)
			if err != nil {
				return err
			}
			return printInvestments(cmd.OutOrStdout(), list)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *CLI) newInvestmentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <investment-id>",
		Short: "Show one investment product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := c.app.Investment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderFields(cmd.OutOrStdout(),
				"ID", inv.ID,
				"Name", inv.Name,
				"Category", inv.Category,
				"Risk", inv.RiskLevel,
				"Rate", percent(inv.AnnualRate),
				"Minimum", money(inv.MinAmount, inv.Currency),
				"Duration", strconv.Itoa(inv.DurationDays)+" days",
				"Status", inv.Status,
				"About", inv.Description,
			)
		},
	}
}

func (c *CLI) newInvestCmd() *cobra.Command {
	req := domain.InvestRequest{PaymentMethod: "wallet"}
	cmd := &cobra.Command{
		Use:   "invest <investment-id>",
		Short: "Subscribe to an investment product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.InvestmentID = args[0]
			tx, err := c.app.Invest(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().Float64VarP(&req.Amount, "amount", "a", 0, "Amount to invest")
	cmd.Flags().StringVar(&req.PaymentMethod, "method", req.PaymentMethod, "Payment method: wallet, card or bank_transfer")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func (c *CLI) newWithdrawCmd() *cobra.Command {
	var req domain.WithdrawRequest
	cmd := &cobra.Command{
		Use:   "withdraw <holding-id>",
		Short: "Redeem all or part of a holding to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.HoldingID = args[0]
			tx, err := c.app.Withdraw(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printTransaction(cmd.OutOrStdout(), tx)
		},
	}
	cmd.Flags().Float64VarP(&req.Amount, "amount", "a", 0, "Amount to withdraw")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func printInvestments(w io.Writer, list []domain.Investment) error {
	rows := make([][]string, 0, len(list))
	for _, inv := range list {
		status := ""
		if inv.ComingSoon() {
			status = "coming soon"
		}
		rows = append(rows, []string{
			inv.ID, inv.Name, inv.Category, inv.RiskLevel, percent(inv.AnnualRate),
			money(inv.MinAmount, inv.Currency), fmt.Sprintf("%dd", inv.DurationDays), status,
		})
	}
	return renderTable(w, "No investments match.",
		[]string{"ID", "NAME", "CATEGORY", "RISK", "RATE", "MINIMUM", "TERM", ""}, rows)
}
