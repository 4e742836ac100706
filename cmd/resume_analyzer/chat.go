package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/chat"
	"github.com/jonathan/resume-analyzer/internal/types"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat about an analysis report",
	Long:  "Start an interactive session answering questions about a resume analysis. Loads a prior report from --analysis to ground the answers.",
	RunE:  runChat,
}

var (
	chatAnalysisPath string
	chatConfigPath   string
)

func init() {
	chatCmd.Flags().StringVarP(&chatAnalysisPath, "analysis", "a", "", "Path to an analysis report JSON (output of 'analyze --json')")
	chatCmd.Flags().StringVarP(&chatConfigPath, "config", "c", "", "Path to JSON config file")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(chatConfigPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	chatCtx := &chat.Context{}
	if chatAnalysisPath != "" {
		analysis, err := loadAnalysis(chatAnalysisPath)
		if err != nil {
			return err
		}
		chatCtx.Analysis = analysis
	}

	responder, err := chat.New(ctx, cfg.Credentials(), cfg.LLMConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize providers: %w", err)
	}
	defer responder.Close()

	fmt.Println("Ask about your resume analysis. Type 'exit' to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			break
		}

		reply := responder.Respond(ctx, message, chatCtx)
		fmt.Printf("[%s] %s\n\n", reply.Provider, reply.Response)

		chatCtx.History = append(chatCtx.History,
			chat.Message{Role: "user", Content: message},
			chat.Message{Role: "assistant", Content: reply.Response},
		)
	}

	return scanner.Err()
}

// loadAnalysis accepts either a full analyze result or a bare report.
func loadAnalysis(path string) (*types.Insights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analysis file: %w", err)
	}

	var wrapped struct {
		Parsed *types.Insights `json:"parsed"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Parsed != nil {
		return wrapped.Parsed, nil
	}

	var insights types.Insights
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("failed to parse analysis JSON: %w", err)
	}
	return &insights, nil
}
