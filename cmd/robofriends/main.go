package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/rohits-web03/robofriends/internal/client"
	"github.com/rohits-web03/robofriends/internal/config"
	"github.com/rohits-web03/robofriends/internal/directory"
	"github.com/rohits-web03/robofriends/internal/models"
	"github.com/rohits-web03/robofriends/internal/tui"
	"github.com/spf13/cobra"
)

var (
	apiURL string
	search string
	form   directory.Form
	style  string
)

var rootCmd = &cobra.Command{
	Use:          "robofriends",
	Short:        "Browse and add RoboFriends",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if apiURL != "" {
			return nil
		}
		cfg, err := config.LoadClient()
		if err != nil {
			return err
		}
		apiURL = cfg.APIURL
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List robots, optionally filtered by name",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := directory.Load(cmd.Context(), client.New(apiURL, nil), directory.State{})
		if s.LoadErr != "" {
			return errors.New("error fetching robots: " + s.LoadErr)
		}
		s = directory.Update(s, directory.SearchChanged{Text: search})
		printRobots(cmd.OutOrStdout(), s.Visible())
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Generate an avatar and add a robot",
	Long: `Runs the add-robot flow: build the avatar URL from the name and style,
check that the phone number is free, then create the robot.

Example:
  robofriends add --first Rob --last Ot --username robot --email rob@ot.io --phone 555-0100 --style Robots`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := models.ParseStyle(style)
		if err != nil {
			return err
		}
		s, err := runAdd(cmd.Context(), client.New(apiURL, nil), form, st)
		if err != nil {
			return err
		}
		r := s.Robots[len(s.Robots)-1]
		fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n%s\n", r.Name, r.ID, r.Image)
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive search and add",
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), client.New(apiURL, nil))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "service base URL (default $ROBOFRIENDS_API_URL)")

	listCmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive name filter")

	addCmd.Flags().StringVar(&form.FirstName, "first", "", "first name")
	addCmd.Flags().StringVar(&form.LastName, "last", "", "last name")
	addCmd.Flags().StringVar(&form.Username, "username", "", "username")
	addCmd.Flags().StringVar(&form.Email, "email", "", "email")
	addCmd.Flags().StringVar(&form.Phone, "phone", "", "phone number")
	addCmd.Flags().StringVar(&style, "style", string(models.StyleRobots), "avatar style: Robots, Monsters, Aliens or Cats")

	rootCmd.AddCommand(listCmd, addCmd, browseCmd)
}

// runAdd drives the same transitions as the browse form. The returned error
// carries the prompt the form would have shown.
func runAdd(ctx context.Context, api directory.API, f directory.Form, st models.Style) (directory.State, error) {
	s := directory.Update(directory.State{}, directory.FormOpened{})
	for _, fc := range []directory.FieldChanged{
		{Field: directory.FieldFirstName, Value: f.FirstName},
		{Field: directory.FieldLastName, Value: f.LastName},
		{Field: directory.FieldUsername, Value: f.Username},
		{Field: directory.FieldEmail, Value: f.Email},
		{Field: directory.FieldPhone, Value: f.Phone},
	} {
		s = directory.Update(s, fc)
	}
	s = directory.Update(s, directory.StyleSelected{Style: st})
	if s = directory.Update(s, directory.GenerateClicked{}); s.Prompt != "" {
		return s, errors.New(s.Prompt)
	}
	if s = directory.Submit(ctx, api, s); s.Prompt != "" {
		return s, errors.New(s.Prompt)
	}
	return s, nil
}

func printRobots(out io.Writer, robots []models.Robot) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tUSERNAME\tEMAIL\tPHONE\tSTYLE")
	for _, r := range robots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Name, r.Username, r.Email, r.Phone, r.StyleType)
	}
	_ = w.Flush()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
