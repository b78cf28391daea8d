package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novemberfiveco/go-teamleader/filter"
	"github.com/novemberfiveco/go-teamleader/teamleader"
)

// contactsCmd groups the contact subcommands
var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Search and inspect contacts",
}

var contactsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contacts matching the search criteria",
	Long: `List contacts. The remote search flags (--query, --tag, --since,
--segment) are applied server-side; --filter applies an expression to
each record client-side while results stream in.`,
	RunE: runContactsList,
}

var contactsGetCmd = &cobra.Command{
	Use:   "get ID",
	Short: "Show one contact",
	Args:  cobra.ExactArgs(1),
	RunE:  runContactsGet,
}

func init() {
	rootCmd.AddCommand(contactsCmd)
	contactsCmd.AddCommand(contactsListCmd)
	contactsCmd.AddCommand(contactsGetCmd)

	contactsListCmd.Flags().StringVarP(&query, "query", "q", "", "search string matched against name, company and email")
	contactsListCmd.Flags().StringVar(&tag, "tag", "", "only contacts carrying this tag")
	contactsListCmd.Flags().StringVar(&since, "since", "", "only contacts modified since this date")
	contactsListCmd.Flags().IntVar(&segmentID, "segment", 0, "only contacts in this segment")
	contactsListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
	contactsListCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	contactsListCmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many results")
}

func runContactsList(cmd *cobra.Command, args []string) error {
	recordFilter, err := compileRecordFilter()
	if err != nil {
		return err
	}

	modifiedSince, err := parseSince(since)
	if err != nil {
		return err
	}

	contactQuery := teamleader.ContactQuery{
		Query:         query,
		ModifiedSince: modifiedSince,
		Tag:           tag,
		SegmentID:     segmentID,
	}

	logger.Info().Str("query", query).Msg("Searching contacts")

	shown := 0
	for contact, err := range client.GetContacts(context.Background(), contactQuery) {
		if err != nil {
			return err
		}

		if recordFilter != nil {
			match, err := recordFilter.Match(contactRecord(contact))
			if err != nil {
				return err
			}
			if !match {
				continue
			}
		}

		fmt.Printf("%-8d %-30s %s\n", contact.ID, contact.FullName(), contact.Email)
		shown++
		if limit > 0 && shown >= limit {
			break
		}
	}

	if shown == 0 {
		fmt.Println("No contacts found.")
	}
	return nil
}

func runContactsGet(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid contact ID %q", args[0])
	}

	contact, err := client.GetContact(context.Background(), id)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", contact.FullName())
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("ID:        %d\n", contact.ID)
	fmt.Printf("Email:     %s\n", contact.Email)
	if contact.Telephone != "" {
		fmt.Printf("Telephone: %s\n", contact.Telephone)
	}
	if contact.GSM != "" {
		fmt.Printf("GSM:       %s\n", contact.GSM)
	}
	if contact.City != "" || contact.Country != "" {
		fmt.Printf("Location:  %s %s\n", contact.City, contact.Country)
	}
	if !contact.BornOn().IsZero() {
		fmt.Printf("Born:      %s\n", contact.BornOn().Format("2006-01-02"))
	}
	if contact.Description != "" {
		fmt.Printf("Notes:     %s\n", contact.Description)
	}
	return nil
}

// compileRecordFilter compiles the --filter/--preset expression, or
// returns nil when no filtering was requested.
func compileRecordFilter() (*filter.Filter, error) {
	expression, err := getFilterExpression()
	if err != nil {
		return nil, err
	}
	if expression == "" {
		return nil, nil
	}

	f, err := filter.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

func contactRecord(c teamleader.Contact) map[string]any {
	return map[string]any{
		"id":       c.ID,
		"forename": c.Forename,
		"surname":  c.Surname,
		"email":    c.Email,
		"country":  c.Country,
		"city":     c.City,
		"language": c.Language,
		"gender":   c.Gender,
	}
}
