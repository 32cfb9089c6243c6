package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/implint/implint"
	"github.com/implint/implint/formatter"
	"github.com/implint/implint/internal"
	tt "github.com/implint/implint/internal/types"
)

var (
	ignoreRules     string
	ignorePaths     string
	checkJSONOutput bool
	outPath         string
)

var checkCmd = &cobra.Command{
	Use:   "check [patterns...]",
	Short: "Check every assertion directive in the matched packages",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide package patterns, e.g. ./...")
			os.Exit(1)
		}
		setupColor()

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := implint.New(configPath(), logger)
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}
		if ignorePaths != "" {
			for _, path := range strings.Split(ignorePaths, ",") {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}
		engine.ShowProgress(stdoutIsTerminal() && !checkJSONOutput)

		issues, err := engine.Run(ctx, args...)
		if err != nil {
			logger.Error("Error checking packages", zap.Error(err))
			os.Exit(1)
		}

		printIssues(issues, checkJSONOutput, outPath)

		if len(issues) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	checkCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output issues in JSON format")
	checkCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
}

// configPath returns the configuration file to load: the --config flag when
// given, otherwise the default file when it exists.
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if _, err := os.Stat(implint.DefaultConfigPath); err == nil {
		return implint.DefaultConfigPath
	}
	return ""
}

func printIssues(issues []tt.Issue, isJSON bool, jsonOutput string) {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	if !isJSON {
		// issues are already sorted by position; render per file
		printed := make(map[string]bool)
		for _, issue := range issues {
			filename := issue.Filename
			if printed[filename] {
				continue
			}
			printed[filename] = true

			sourceCode, err := internal.ReadSourceCode(filename)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", filename), zap.Error(err))
				continue
			}
			fmt.Println(formatter.GenerateFormattedIssue(issuesByFile[filename], sourceCode))
		}
		return
	}

	d, err := json.Marshal(issuesByFile)
	if err != nil {
		logger.Error("Error marshalling issues to JSON", zap.Error(err))
		return
	}
	if jsonOutput == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(jsonOutput, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}
