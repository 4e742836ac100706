package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/extraction"
	"github.com/jonathan/resume-analyzer/internal/observability"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long:  "Analyze a resume file (PDF, DOCX, or plain text) against a job description from a file or URL, and print the scored report.",
	RunE:  runAnalyze,
}

var (
	analyzeResumePath    string
	analyzeJobPath       string
	analyzeJobURL        string
	analyzeConfigPath    string
	analyzeHeuristicOnly bool
	analyzeJSON          bool
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumePath, "resume", "r", "", "Path to resume file (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobPath, "job", "j", "", "Path to job description text file")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job description from")
	analyzeCmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "", "Path to JSON config file")
	analyzeCmd.Flags().BoolVar(&analyzeHeuristicOnly, "heuristic-only", false, "Skip LLM providers and report the deterministic baseline")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Emit the raw result as JSON")

	analyzeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeJobPath != "" && analyzeJobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	cfg, err := resolveConfig(analyzeConfigPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resumeText, err := readResume(analyzeResumePath)
	if err != nil {
		return err
	}

	jobDescription, err := resolveJobDescription(ctx, analyzeJobPath, analyzeJobURL)
	if err != nil {
		return err
	}

	var result *analyzer.Result
	if analyzeHeuristicOnly {
		eng := analyzer.NewWithProviders()
		result = eng.Analyze(ctx, resumeText, jobDescription)
	} else {
		eng, err := analyzer.New(ctx, cfg.Credentials(), cfg.LLMConfig())
		if err != nil {
			return fmt.Errorf("failed to initialize providers: %w", err)
		}
		defer eng.Close()
		result = eng.Analyze(ctx, resumeText, jobDescription)
	}

	if analyzeJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	observability.NewPrinter(os.Stdout).PrintResult(result)
	return nil
}

// resolveConfig loads the optional config file and fills gaps from the
// environment.
func resolveConfig(path string) (*config.Config, error) {
	env := config.FromEnv()

	if path == "" {
		if err := env.Validate(); err != nil {
			return nil, err
		}
		return &env, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(env)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume file: %w", err)
	}
	text := extraction.ExtractText(path, data)
	if text == "" {
		return "", fmt.Errorf("could not extract text from %s", path)
	}
	return text, nil
}

func resolveJobDescription(ctx context.Context, jobPath, jobURL string) (string, error) {
	switch {
	case jobPath != "":
		data, err := os.ReadFile(jobPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job description file: %w", err)
		}
		return extraction.CleanText(string(data)), nil
	case jobURL != "":
		text, err := extraction.FetchJobPosting(ctx, jobURL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return text, nil
	default:
		return "", nil
	}
}
