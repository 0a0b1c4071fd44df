package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nile-cgpa/terminal/internal/client"
	"github.com/nile-cgpa/terminal/internal/core"
)

var errFetchFailed = errors.New("fetch failed")

var (
	fetchFromEnv   bool
	fetchStudentID string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch your CGPA without starting the terminal",
	Long: `Prompt for credentials and print your CGPA records.

With -e the credentials are read from the STUDENT_ID and PASSWORD
environment variables instead.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		creds, ok, err := fetchCredentials(out)
		if err != nil {
			return err
		}
		if !ok {
			return errFetchFailed
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		requestID := uuid.NewString()
		c := client.New(resolveServerURL(), client.WithLogger(logger.Named("client")))
		logger.Info("fetching cgpa", zap.String("request_id", requestID), zap.String("mode", "fetch"))

		records, err := c.Submit(ctx, requestID, creds)
		for _, line := range core.ResultLines(records, err) {
			fmt.Fprintln(out, line)
		}
		if err != nil {
			logger.Warn("cgpa request failed", zap.String("request_id", requestID), zap.Error(err))
			return errFetchFailed
		}
		return nil
	},
}

// fetchCredentials reads credentials from the environment (-e) or prompts for
// them. ok is false when -e was given without both variables set.
func fetchCredentials(out io.Writer) (client.Credentials, bool, error) {
	if fetchFromEnv {
		creds := client.Credentials{
			StudentID: os.Getenv("STUDENT_ID"),
			Password:  os.Getenv("PASSWORD"),
		}
		if creds.StudentID == "" || creds.Password == "" {
			for _, line := range core.MissingEnvCredentialLines {
				fmt.Fprintln(out, line)
			}
			return client.Credentials{}, false, nil
		}
		return creds, true, nil
	}

	studentID := fetchStudentID
	if studentID == "" {
		idPrompt := promptui.Prompt{
			Label: "Student ID",
		}
		var err error
		if studentID, err = idPrompt.Run(); err != nil {
			return client.Credentials{}, false, fmt.Errorf("prompt failed: %w", err)
		}
	}

	passwordPrompt := promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("Password cannot be empty")
			}
			return nil
		},
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		return client.Credentials{}, false, fmt.Errorf("prompt failed: %w", err)
	}

	return client.Credentials{StudentID: studentID, Password: password}, true, nil
}

func init() {
	fetchCmd.Flags().BoolVarP(&fetchFromEnv, "env", "e", false, "read STUDENT_ID and PASSWORD from the environment")
	fetchCmd.Flags().StringVar(&fetchStudentID, "student-id", "", "student ID (prompted for when empty)")
	rootCmd.AddCommand(fetchCmd)
}
