package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"kardio/client"
	"kardio/models"

	"github.com/spf13/cobra"
)

func reportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "类别纠错报告",
	}
	cmd.AddCommand(submitReportCmd())
	cmd.AddCommand(mineReportsCmd())
	cmd.AddCommand(listReportsCmd())
	cmd.AddCommand(resolveReportCmd("approve", models.ReportStatusApproved))
	cmd.AddCommand(resolveReportCmd("reject", models.ReportStatusRejected))
	return cmd
}

func submitReportCmd() *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   "submit <transaction-id> <category-id>",
		Short: "提交报告，交易立即改为所选类别",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var userNote *string
			if cmd.Flags().Changed("note") {
				userNote = &note
			}
			r, err := newClient().SubmitReport(cmd.Context(), args[0], args[1], userNote)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), []client.Report{*r})
			return nil
		},
	}
	cmd.Flags().StringVarP(&note, "note", "n", "", "备注")
	return cmd
}

func mineReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mine",
		Short: "我提交的报告",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reports, err := newClient().ListMine(cmd.Context())
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), reports)
			return nil
		},
	}
}

func listReportsCmd() *cobra.Command {
	var status string
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "管理端报告列表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := newClient().ListAdmin(cmd.Context(), status, page)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), result.List)
			fmt.Fprintf(cmd.OutOrStdout(), "第 %d 页，共 %d 条\n", result.Page, result.Total)
			return nil
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", "PENDING", "PENDING/APPROVED/REJECTED/RESOLVED/ALL")
	cmd.Flags().IntVar(&page, "page", 1, "页码")
	return cmd
}

func resolveReportCmd(use string, decision models.ReportStatus) *cobra.Command {
	var note string
	cmd := &cobra.Command{
		Use:   use + " <report-id>",
		Short: fmt.Sprintf("将报告标记为 %s", decision),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var resolutionNote *string
			if cmd.Flags().Changed("note") {
				resolutionNote = &note
			}
			r, err := newClient().Resolve(cmd.Context(), args[0], decision, resolutionNote)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), []client.Report{*r})
			return nil
		},
	}
	cmd.Flags().StringVarP(&note, "note", "n", "", "处理备注")
	return cmd
}

func printReports(out io.Writer, reports []client.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()
	fmt.Fprintln(w, "ID\tSTATUS\tTRANSACTION\tMERCHANT\tFROM\tTO\tCREATED\tRESOLVED")
	for _, r := range reports {
		resolved := "-"
		if r.ResolvedAt != nil {
			resolved = r.ResolvedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Status, r.TransactionID, r.MerchantNameSnapshot,
			orDash(r.CurrentCategoryIDSnapshot), r.RequestedCategoryID,
			r.CreatedAt.Local().Format(time.DateTime), resolved)
	}
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
