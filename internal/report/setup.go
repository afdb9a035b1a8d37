package report

import (
	"fmt"
	"io"
	"strings"
)

// SetupSteps are the configuration instructions shown when no data source is set.
var SetupSteps = []string{
	"Create a Google Sheets API key at https://console.cloud.google.com/apis/credentials",
	"Copy the spreadsheet ID from the sheet URL (the part between /d/ and /edit)",
	"Set SHEETS_API_KEY, SHEETS_SPREADSHEET_ID and SHEETS_SHEET_NAME in .env or the environment",
	"Optionally set MATCH_FORM_URL to the score-entry form",
	"Or publish the sheet to the web and set SHEETS_PUBLISHED_URL instead of an API key",
	"Run the command again",
}

// SampleEnv is an example .env block matching SetupSteps.
const SampleEnv = `SHEETS_API_KEY=YOUR_API_KEY_HERE
SHEETS_SPREADSHEET_ID=YOUR_SPREADSHEET_ID_HERE
SHEETS_SHEET_NAME=Form Responses 1
MATCH_FORM_URL=YOUR_GOOGLE_FORM_URL_HERE`

// PrintSetup prints configuration instructions, naming the missing variables.
func PrintSetup(w io.Writer, missing []string) {
	fmt.Fprintf(w, "\nConfiguration required\n\n")
	if len(missing) > 0 {
		fmt.Fprintf(w, "  Missing: %s\n\n", strings.Join(missing, ", "))
	}
	for i, s := range SetupSteps {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, s)
	}
	fmt.Fprintf(w, "\nExample .env:\n\n")
	for _, line := range strings.Split(SampleEnv, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	fmt.Fprintln(w)
}

// PrintError prints a single error panel with a retry hint.
func PrintError(w io.Writer, err error, retry string) {
	fmt.Fprintf(w, "\nError: %v\n", err)
	if retry != "" {
		fmt.Fprintf(w, "Retry with: %s\n", retry)
	}
	fmt.Fprintln(w)
}
