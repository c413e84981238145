package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every session file for schema problems",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	report, err := st.ValidateAll()
	if err != nil {
		return err
	}

	if err := emit(report, func() {
		fmt.Printf("%d/%d files valid\n", report.ValidCount, report.Files)
		for _, fe := range report.Errors {
			fmt.Printf("  %s: %s\n", fe.File, fe.Error)
		}
	}); err != nil {
		return err
	}
	if !report.Valid {
		return fmt.Errorf("%d invalid file(s)", len(report.Errors))
	}
	return nil
}
