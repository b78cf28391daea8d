package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/novemberfiveco/go-teamleader/teamleader"
)

var (
	invDepartmentID int
	invContactID    int
	invCompanyID    int
	invPaymentTerm  string
	invDate         string
	invDraft        bool
	invPONumber     string
	invComments     string
	invLines        []string
)

// invoiceCmd groups the invoice subcommands
var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create invoices",
}

var invoiceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an invoice",
	Long: `Add an invoice for a contact or a company (exactly one of --contact
and --company). Each --line is description;amount;vat;price with an
optional trailing ;subtitle, for example:

  teamleader invoice add --department 1 --company 42 \
      --line 'Consulting;2;21;650' \
      --line 'Hosting;1;21;25.50;march'`,
	RunE: runInvoiceAdd,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceAddCmd)

	invoiceAddCmd.Flags().IntVar(&invDepartmentID, "department", 0, "department the invoice is added to")
	invoiceAddCmd.Flags().IntVar(&invContactID, "contact", 0, "contact the invoice is for")
	invoiceAddCmd.Flags().IntVar(&invCompanyID, "company", 0, "company the invoice is for")
	invoiceAddCmd.Flags().StringVar(&invPaymentTerm, "payment-term", "", "payment term (eg 30D)")
	invoiceAddCmd.Flags().StringVar(&invDate, "date", "", "invoice date (YYYY-MM-DD, defaults to today)")
	invoiceAddCmd.Flags().BoolVar(&invDraft, "draft", false, "insert as a draft invoice")
	invoiceAddCmd.Flags().StringVar(&invPONumber, "po", "", "PO number")
	invoiceAddCmd.Flags().StringVar(&invComments, "comments", "", "invoice comments")
	invoiceAddCmd.Flags().StringArrayVar(&invLines, "line", nil, "invoice line as description;amount;vat;price[;subtitle]")

	invoiceAddCmd.MarkFlagRequired("department")
	invoiceAddCmd.MarkFlagRequired("line")
}

func runInvoiceAdd(cmd *cobra.Command, args []string) error {
	lines := make([]teamleader.InvoiceLine, 0, len(invLines))
	for _, raw := range invLines {
		line, err := parseInvoiceLine(raw)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	in := teamleader.InvoiceInput{
		DepartmentID: invDepartmentID,
		ContactID:    invContactID,
		CompanyID:    invCompanyID,
		PaymentTerm:  invPaymentTerm,
		Draft:        invDraft,
		PONumber:     invPONumber,
		Comments:     invComments,
		Lines:        lines,
	}

	if invDate != "" {
		date, err := time.Parse("2006-01-02", invDate)
		if err != nil {
			return fmt.Errorf("invalid --date value %q: use YYYY-MM-DD", invDate)
		}
		in.Date = &date
	}

	id, err := client.AddInvoice(context.Background(), in)
	if err != nil {
		return err
	}

	logger.Info().Int("invoice_id", id).Msg("Invoice created")
	fmt.Printf("Created invoice %d\n", id)
	return nil
}

// parseInvoiceLine parses a description;amount;vat;price[;subtitle]
// flag value into an invoice line.
func parseInvoiceLine(raw string) (teamleader.InvoiceLine, error) {
	parts := strings.Split(raw, ";")
	if len(parts) < 4 || len(parts) > 5 {
		return teamleader.InvoiceLine{}, fmt.Errorf("invalid --line %q: expected description;amount;vat;price[;subtitle]", raw)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return teamleader.InvoiceLine{}, fmt.Errorf("invalid amount in --line %q", raw)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil {
		return teamleader.InvoiceLine{}, fmt.Errorf("invalid price in --line %q", raw)
	}

	line := teamleader.InvoiceLine{
		Description: strings.TrimSpace(parts[0]),
		Amount:      amount,
		VAT:         strings.TrimSpace(parts[2]),
		Price:       price,
	}
	if len(parts) == 5 {
		line.Subtitle = strings.TrimSpace(parts[4])
	}
	return line, nil
}
