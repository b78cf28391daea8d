package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/novemberfiveco/go-teamleader/teamleader"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Verify credentials and show an account overview",
	Long: `Verify the configured API credentials and display the users,
departments, tags and contact segments of the account. The lookups are
independent API calls and run concurrently.`,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var (
		users       []teamleader.User
		departments []teamleader.Department
		tags        []teamleader.Tag
		segments    []teamleader.Segment
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(3)

	g.Go(func() error {
		var err error
		users, err = client.GetUsers(ctx, false)
		return err
	})
	g.Go(func() error {
		var err error
		departments, err = client.GetDepartments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = client.GetTags(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		segments, err = client.GetSegments(ctx, "crm_contacts")
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to query account: %w", err)
	}

	fmt.Println("✓ Credentials accepted")

	fmt.Printf("\nAccount overview:\n")
	fmt.Printf("- Users: %d\n", len(users))
	fmt.Printf("- Departments: %d\n", len(departments))
	fmt.Printf("- Tags: %d\n", len(tags))
	fmt.Printf("- Contact segments: %d\n", len(segments))

	if len(users) > 0 {
		fmt.Printf("\nUsers:\n")
		for _, user := range users {
			fmt.Printf("  • %s (ID: %d)\n", user.Name, user.ID)
		}
	}

	if len(departments) > 0 {
		fmt.Printf("\nDepartments:\n")
		for _, department := range departments {
			fmt.Printf("  • %s (ID: %d)\n", department.Name, department.ID)
		}
	}

	return nil
}
