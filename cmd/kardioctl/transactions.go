package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"kardio/client"

	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn"},
		Short:   "我的交易",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "最近的交易",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := newClient().Transactions(cmd.Context())
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), page.List)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <transaction-id>",
		Short: "交易详情",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			txn, err := newClient().Transaction(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTransactions(cmd.OutOrStdout(), []client.Transaction{*txn})
			return nil
		},
	})
	return cmd
}

func printTransactions(out io.Writer, txns []client.Transaction) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tDATE\tAMOUNT\tMERCHANT\tCATEGORY\tDESCRIPTION")
	for _, t := range txns {
		fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
			t.ID, t.OccurredAt.Local().Format(time.DateOnly),
			t.Amount.StringFixed(2), t.Currency, t.MerchantID,
			orDash(t.CategoryID), t.Description)
	}
}
