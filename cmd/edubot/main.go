// Command edubot is a terminal client for the EduBot API. It signs in, lists
// assessments, runs an interactive test session and browses past results.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ndthang/edubot/internal/client"
	"github.com/ndthang/edubot/internal/logger"
	"github.com/ndthang/edubot/internal/session"
)

var (
	serverURL string
	apiClient *client.Client
)

func main() {
	logger.Init()

	root := &cobra.Command{
		Use:   "edubot",
		Short: "EduBot assessment client",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			apiClient = client.New(serverURL, &client.Session{Token: loadToken()})
		},
	}
	root.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "API server base URL")

	root.AddCommand(loginCmd(), testsCmd(), takeCmd(), historyCmd(), resultCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			if err := saveToken(apiClient); err != nil {
				return err
			}
			fmt.Println("Signed in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func testsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests",
		Short: "List available assessments",
		RunE: func(cmd *cobra.Command, args []string) error {
			tests, err := apiClient.ListTests(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tests {
				fmt.Printf("%3d  %-12s %s (%d questions)\n", t.ID, t.Type, t.Name, t.QuestionCount)
			}
			return nil
		},
	}
}

func takeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <test-id>",
		Short: "Run an assessment interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(cmd.Context(), args[0])
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List your past results",
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries, err := apiClient.FetchResultHistory(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range summaries {
				fmt.Printf("%3s  %-16s %-12s %-24s %s\n", s.ID, s.Date, s.TestType, s.TestName, s.Label)
			}
			return nil
		},
	}
}

func resultCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "result <result-id>",
		Short: "Show one past result in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.FetchResultByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printResult(result)
			return nil
		},
	}
}

// runSession drives one controller through a full test. It prompts for each
// question, retries on invalid input and offers a resubmit when the final
// submission fails.
func runSession(ctx context.Context, testID string) error {
	ctrl := session.NewController(apiClient, apiClient)
	if err := ctrl.LoadTest(ctx, testID); err != nil {
		return err
	}
	if ctrl.State() == session.StateLoadFailed {
		return fmt.Errorf("could not load test: %w", ctrl.Err())
	}

	in := bufio.NewScanner(os.Stdin)
	fmt.Printf("%s\n\n", ctrl.Test().Name)

	for ctrl.State() == session.StateInProgress || ctrl.State() == session.StateSubmitFailed {
		if ctrl.State() == session.StateSubmitFailed {
			fmt.Printf("Submission failed: %v\nPress enter to retry, or q to quit: ", ctrl.Err())
			if !in.Scan() || strings.TrimSpace(in.Text()) == "q" {
				return ctrl.Err()
			}
			if err := ctrl.RetrySubmission(ctx); err != nil {
				return err
			}
			continue
		}

		q := ctrl.CurrentQuestion()
		_, total := ctrl.Progress()
		fmt.Printf("[%d/%d] %s\n", ctrl.CurrentIndex()+1, total, q.Prompt)
		for i, opt := range q.Options {
			fmt.Printf("  %d) %s\n", i+1, opt)
		}
		fmt.Print("> ")
		if !in.Scan() {
			return errors.New("input closed")
		}

		choice, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Println("Enter the number of an option.")
			continue
		}
		if err := ctrl.SelectOption(choice - 1); err != nil {
			fmt.Println(err)
			continue
		}
		if err := ctrl.Advance(ctx); err != nil {
			var vErr *session.ValidationError
			if errors.As(err, &vErr) {
				fmt.Println(vErr.Reason)
				continue
			}
			return err
		}
	}

	if ctrl.State() != session.StateCompleted {
		return fmt.Errorf("session ended in state %s", ctrl.State())
	}
	fmt.Println()
	printResult(ctrl.Result())
	return nil
}

func printResult(result *session.TestResult) {
	fmt.Printf("Result: %s\n%s\n", result.Label, result.Description)
	if len(result.CategoryScores) > 0 {
		fmt.Println()
		for _, row := range session.ScoreGrid(result) {
			for _, cell := range row {
				if cell.Empty {
					fmt.Printf("  %-24s", "")
					continue
				}
				fmt.Printf("  %-18s %-5s", cell.Label, cell.Value)
			}
			fmt.Println()
		}
	}
	if len(result.Recommended) > 0 {
		fmt.Println("\nRecommended majors:")
		for _, item := range result.Recommended {
			fmt.Printf("  %-8s %s\n", item.Code, item.Name)
		}
	}
}

func tokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".edubot_token"
	}
	return filepath.Join(home, ".edubot_token")
}

func loadToken() string {
	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(c *client.Client) error {
	if err := os.WriteFile(tokenPath(), []byte(c.Token()), 0o600); err != nil {
		log.Error().Err(err).Msg("Failed to persist session token")
		return err
	}
	return nil
}
