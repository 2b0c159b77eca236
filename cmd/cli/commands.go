package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/budgetledger/internal/adapter/http/dto"
	"github.com/iho/budgetledger/internal/domain"
)

func accountsCmd(api func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{Use: "accounts", Short: "Account operations"}

	var limit, offset int
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.ListAccountsResponse
			if err := api().do(cmd.Context(), http.MethodGet, "/api/v1/accounts", pageQuery(limit, offset), nil, &resp); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tBALANCE")
			for _, a := range resp.Accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, truncate(a.Name, 30), a.Type, a.Balance)
			}
			return w.Flush()
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Page size")
	list.Flags().IntVar(&offset, "offset", 0, "Page offset")

	var req dto.CreateAccountRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.AccountResponse
			if err := api().do(cmd.Context(), http.MethodPost, "/api/v1/accounts", nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "Account name")
	create.Flags().StringVar(&req.Type, "type", string(domain.AccountTypeChecking), "cash, checking, savings, credit or investment")
	_ = create.MarkFlagRequired("name")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account and its movements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return api().do(cmd.Context(), http.MethodDelete, "/api/v1/accounts/"+url.PathEscape(args[0]), nil, nil, nil)
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func movementsCmd(api func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{Use: "movements", Short: "Movement operations"}

	var (
		accountID, categoryID, kind, search, from, to string
		limit, offset                                 int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List movements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := pageQuery(limit, offset)
			for key, val := range map[string]string{
				"account_id": accountID, "category_id": categoryID, "kind": kind, "q": search, "from": from, "to": to,
			} {
				if val != "" {
					q.Set(key, val)
				}
			}

			var resp dto.ListMovementsResponse
			if err := api().do(cmd.Context(), http.MethodGet, "/api/v1/movements", q, nil, &resp); err != nil {
				return err
			}
			return printMovements(cmd.OutOrStdout(), resp.Movements)
		},
	}
	list.Flags().StringVar(&accountID, "account", "", "Only movements of this account")
	list.Flags().StringVar(&categoryID, "category", "", "Only movements in this category")
	list.Flags().StringVar(&kind, "kind", "", "income or expense")
	list.Flags().StringVar(&search, "search", "", "Description substring")
	list.Flags().StringVar(&from, "from", "", "First local date (YYYY-MM-DD)")
	list.Flags().StringVar(&to, "to", "", "Last local date (YYYY-MM-DD)")
	list.Flags().IntVar(&limit, "limit", 20, "Page size")
	list.Flags().IntVar(&offset, "offset", 0, "Page offset")

	var (
		req         dto.PostMovementRequest
		amount      string
		counterpart string
	)
	post := &cobra.Command{
		Use:   "post",
		Short: "Post an income, expense or transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			req.Amount = amt
			if counterpart != "" {
				req.CounterpartAccountID = &counterpart
				req.Kind = string(domain.KindExpense)
				req.CategoryID = domain.CategoryTransferOut
			}

			var resp dto.MovementResponse
			if err := api().do(cmd.Context(), http.MethodPost, "/api/v1/movements", nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	post.Flags().StringVar(&req.AccountID, "account", "", "Account id")
	post.Flags().StringVar(&req.Kind, "kind", string(domain.KindExpense), "income or expense")
	post.Flags().StringVar(&amount, "amount", "", "Positive amount")
	post.Flags().StringVar(&req.CategoryID, "category", "", "Category id")
	post.Flags().StringVar(&req.Description, "description", "", "Free text description")
	post.Flags().StringVar(&counterpart, "to", "", "Counterpart account; posts a transfer")
	_ = post.MarkFlagRequired("account")
	_ = post.MarkFlagRequired("amount")

	rectify := &cobra.Command{
		Use:   "rectify <id>",
		Short: "Post the reversal of a movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.MovementResponse
			if err := api().do(cmd.Context(), http.MethodPost, "/api/v1/movements/"+url.PathEscape(args[0])+"/rectify", nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return api().do(cmd.Context(), http.MethodDelete, "/api/v1/movements/"+url.PathEscape(args[0]), nil, nil, nil)
		},
	}

	cmd.AddCommand(list, post, rectify, del)
	return cmd
}

func budgetsCmd(api func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{Use: "budgets", Short: "Budget operations"}

	var activeOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if activeOnly {
				q.Set("active", "true")
			}
			var resp dto.ListBudgetsResponse
			if err := api().do(cmd.Context(), http.MethodGet, "/api/v1/budgets", q, nil, &resp); err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tWINDOW\tPROGRESS\tLIMIT\tSTATE")
			for _, b := range resp.Budgets {
				state := "active"
				switch {
				case !b.Active:
					state = "inactive"
				case b.Exceeded:
					state = "exceeded"
				}
				fmt.Fprintf(w, "%s\t%s\t%s..%s\t%s\t%s\t%s\n",
					b.ID, b.CategoryID, b.StartDate, b.EndDate, b.Progress, b.Limit, state)
			}
			return w.Flush()
		},
	}
	list.Flags().BoolVar(&activeOnly, "active", false, "Only active budgets")

	var categoryID, limit, start, end string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateBudgetRequest{CategoryID: categoryID}
			var err error
			if req.Limit, err = decimal.NewFromString(limit); err != nil {
				return fmt.Errorf("invalid limit %q: %w", limit, err)
			}
			if req.StartDate, err = domain.ParseDate(start); err != nil {
				return err
			}
			if req.EndDate, err = domain.ParseDate(end); err != nil {
				return err
			}

			var resp dto.BudgetResponse
			if err := api().do(cmd.Context(), http.MethodPost, "/api/v1/budgets", nil, req, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	create.Flags().StringVar(&categoryID, "category", "", "Expense category")
	create.Flags().StringVar(&limit, "limit", "", "Spending limit")
	create.Flags().StringVar(&start, "start", "", "First local date (YYYY-MM-DD)")
	create.Flags().StringVar(&end, "end", "", "Last local date (YYYY-MM-DD)")
	for _, f := range []string{"category", "limit", "start", "end"} {
		_ = create.MarkFlagRequired(f)
	}

	recompute := &cobra.Command{
		Use:   "recompute <id>",
		Short: "Re-scan a budget's window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.BudgetResponse
			if err := api().do(cmd.Context(), http.MethodPost, "/api/v1/budgets/"+url.PathEscape(args[0])+"/recompute", nil, nil, &resp); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.AddCommand(list, create, recompute)
	return cmd
}

var errInconsistent = errors.New("ledger is inconsistent")

func ledgerCmd(api func() *apiClient) *cobra.Command {
	cmd := &cobra.Command{Use: "ledger", Short: "Ledger operations"}

	cmd.AddCommand(&cobra.Command{
		Use:   "reconcile",
		Short: "Check balances and budget progress against a re-scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ReconciliationResponse
			if err := api().do(cmd.Context(), http.MethodGet, "/api/v1/ledger/reconciliation", nil, nil, &report); err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Consistent {
				return errInconsistent
			}
			return nil
		},
	})

	return cmd
}

func printMovements(out io.Writer, movements []*dto.MovementResponse) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tACCOUNT\tKIND\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ID, m.OccurredAt.Format(time.DateOnly), m.AccountID, m.Kind, m.Amount, m.CategoryID, truncate(m.Description, 40))
	}
	return w.Flush()
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}
