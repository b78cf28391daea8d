package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novemberfiveco/go-teamleader/teamleader"
)

// companiesCmd groups the company subcommands
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Search and inspect companies",
}

var companiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List companies matching the search criteria",
	RunE:  runCompaniesList,
}

var companiesGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesGet,
}

var companiesContactsCmd = &cobra.Command{
	Use:   "contacts ID",
	Short: "List the contacts linked to a company",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompaniesContacts,
}

func init() {
	rootCmd.AddCommand(companiesCmd)
	companiesCmd.AddCommand(companiesListCmd)
	companiesCmd.AddCommand(companiesGetCmd)
	companiesCmd.AddCommand(companiesContactsCmd)

	companiesListCmd.Flags().StringVarP(&query, "query", "q", "", "search string matched against name and email")
	companiesListCmd.Flags().StringVar(&tag, "tag", "", "only companies carrying this tag")
	companiesListCmd.Flags().StringVar(&since, "since", "", "only companies modified since this date")
	companiesListCmd.Flags().IntVar(&segmentID, "segment", 0, "only companies in this segment")
	companiesListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
	companiesListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	companiesListCmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many results")
}

func runCompaniesList(cmd *cobra.Command, args []string) error {
	recordFilter, err := compileRecordFilter()
	if err != nil {
		return err
	}

	modifiedSince, err := parseSince(since)
	if err != nil {
		return err
	}

	companyQuery := teamleader.CompanyQuery{
		Query:         query,
		ModifiedSince: modifiedSince,
		Tag:           tag,
		SegmentID:     segmentID,
	}

	logger.Info().Str("query", query).Msg("Searching companies")

	shown := 0
	for company, err := range client.GetCompanies(context.Background(), companyQuery) {
		if err != nil {
			return err
		}

		if recordFilter != nil {
			match, err := recordFilter.Match(companyRecord(company))
			if err != nil {
				return err
			}
			if !match {
				continue
			}
		}

		fmt.Printf("%-8d %-30s %s\n", company.ID, company.Name, company.VATCode)
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}

	if shown == 0 {
		fmt.Println("No companies found.")
	}
	return nil
}

func runCompaniesGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid company ID %q", args[0])
	}

	company, err := client.GetCompany(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", company.Name)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("ID:          %d\n", company.ID)
	if company.VATCode != "" {
		fmt.Printf("VAT:         %s\n", company.VATCode)
	}
	if company.Email != "" {
		fmt.Printf("Email:       %s\n", company.Email)
	}
	if company.Telephone != "" {
		fmt.Printf("Telephone:   %s\n", company.Telephone)
	}
	if company.City != "" || company.Country != "" {
		fmt.Printf("Location:    %s %s\n", company.City, company.Country)
	}
	if company.BusinessType != "" {
		fmt.Printf("Type:        %s\n", company.BusinessType)
	}
	if company.PaymentTerm != "" {
		fmt.Printf("Payment:     %s\n", company.PaymentTerm)
	}
	return nil
}

func runCompaniesContacts(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid company ID %q", args[0])
	}

	contacts, err := client.GetContactsByCompany(context.Background(), id)
	if err != nil {
		return err
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts linked to this company.")
		return nil
	}

	for _, contact := range contacts {
		fmt.Printf("%-8d %-30s %s\n", contact.ID, contact.FullName(), contact.Email)
	}
	return nil
}

func companyRecord(c teamleader.Company) map[string]any {
	return map[string]any{
		"id":            c.ID,
		"name":          c.Name,
		"email":         c.Email,
		"vat_code":      c.VATCode,
		"country":       c.Country,
		"city":          c.City,
		"language":      c.Language,
		"business_type": c.BusinessType,
		"payment_term":  c.PaymentTerm,
	}
}
