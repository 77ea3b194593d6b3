package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/lead-prospector/internal/parsing"
	"github.com/jonathan/lead-prospector/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a contact list JSON file or raw model output",
	Long:  "Validate a JSON contact list against the contact schema. With --raw, first run the tolerant extraction used by searches and report what it salvaged.",
	RunE:  runValidate,
}

var (
	validateInputFile string
	validateRaw       bool
)

func init() {
	validateCmd.Flags().StringVarP(&validateInputFile, "in", "i", "", "Path to input file (required)")
	validateCmd.Flags().BoolVar(&validateRaw, "raw", false, "Treat the input as raw model output and extract first")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	if validateInputFile == "" {
		return fmt.Errorf("--in is required")
	}

	content, err := os.ReadFile(validateInputFile)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	if validateRaw {
		contacts, diag := parsing.ExtractContactsWithReport(string(content))
		if diag != nil {
			fmt.Fprintf(os.Stderr, "Extraction diagnostic: %v\n", diag)
		}
		fmt.Printf("Extracted %d contacts.\n", len(contacts))
		return nil
	}

	if err := schemas.ValidateContactList(string(content)); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			fmt.Fprint(os.Stderr, validationErr.Error())
			return fmt.Errorf("%d field(s) failed validation", len(validationErr.Errors))
		}
		return err
	}

	fmt.Println("Contact list is valid.")
	return nil
}
