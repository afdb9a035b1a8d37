package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/engine"
)

const analyzeSystemPrompt = `You are a tennis statistics analyst for a small group of friends who record
every set they play. You are given a JSON dashboard computed from their records and
a question.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise. A short paragraph or a few bullets is enough.

Data glossary:
- Each record is one set between two players; scores are games won in that set.
- wins / losses: sets won and lost. A tied set counts as a loss for both players.
- win_pct: sets won ÷ sets played × 100, one decimal.
- games_won / games_lost: total games across all sets.
- avg_games_won: games won per set played.
- head_to_head: set wins and total games between each pair.
- trends: running game-win % after each set, oldest first.
- recent: the newest sets, newest first.`

var (
	analyzeModel   string
	analyzeAPIKey  string
	analyzeMatches bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <question>",
	Short: "AI-powered grounded analysis of the latest snapshot (requires ANTHROPIC_API_KEY)",
	Long: `Sends the dashboard of the newest stored snapshot and your question to the
Anthropic API and streams the answer.

Example:
  tennisdash analyze "Who has improved the most over their last few sets?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "claude-haiku-4-5-20251001", "Anthropic model to use")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	analyzeCmd.Flags().BoolVar(&analyzeMatches, "matches", false, "include every set, not just the recent feed")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")
	return withStoredEngine(cmd.Context(), func(eng *engine.Engine) error {
		data, err := buildAnalyzeJSON(eng, analyzeMatches)
		if err != nil {
			return fmt.Errorf("build data: %w", err)
		}
		return callAnthropic(cmd.Context(), analyzeAPIKey, analyzeModel, data, question)
	})
}

// buildAnalyzeJSON serializes the dashboard (and optionally every set) for the prompt.
// The form URL is dropped; it carries no statistics.
func buildAnalyzeJSON(eng *engine.Engine, withMatches bool) (string, error) {
	doc := dashboardExport{Dashboard: eng.Dashboard()}
	doc.FormURL = ""
	if withMatches {
		doc.Matches = eng.Matches()
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
