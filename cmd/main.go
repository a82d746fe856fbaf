package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yungbote/viralscript-backend/internal/app"
	"github.com/yungbote/viralscript-backend/internal/modules/persona"
	"github.com/yungbote/viralscript-backend/internal/services"
)

var rootCmd = &cobra.Command{
	Use:          "viralscript",
	Short:        "Match a company to a creator persona and generate short-form video scripts",
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the pipeline once and print the result as JSON",
	RunE:  runGenerate,
}

var (
	flagEnvFile string
	flagInput   string
	flagName    string
	flagCompany string
	flagURL     string
	flagRole    string
	flagAnswers string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Optional env file loaded before startup")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&flagInput, "input", "i", "", "JSON submission file ({user_info, answers}); - reads stdin")
	generateCmd.Flags().StringVar(&flagName, "name", "", "Submitter name")
	generateCmd.Flags().StringVar(&flagCompany, "company", "", "Company name")
	generateCmd.Flags().StringVar(&flagURL, "url", "", "Company website URL")
	generateCmd.Flags().StringVar(&flagRole, "role", "", "Submitter role")
	generateCmd.Flags().StringVar(&flagAnswers, "answers", "", "Quiz answers as id=letter pairs, e.g. 1=A,2=C,3=B")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadEnv() {
	if flagEnvFile == "" {
		return
	}
	if err := godotenv.Load(flagEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: could not load %s: %v\n", flagEnvFile, err)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	loadEnv()
	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()
	a.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(":" + a.Cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	a.Log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func runGenerate(cmd *cobra.Command, args []string) error {
	loadEnv()
	in, err := generateInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := app.New()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := a.Services.Submission.Submit(ctx, in)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func generateInput(stdin io.Reader) (services.SubmitInput, error) {
	var in services.SubmitInput
	if flagInput != "" {
		var r io.Reader = stdin
		if flagInput != "-" {
			f, err := os.Open(flagInput)
			if err != nil {
				return in, fmt.Errorf("open input: %w", err)
			}
			defer f.Close()
			r = f
		}
		if err := json.NewDecoder(r).Decode(&in); err != nil {
			return in, fmt.Errorf("decode input: %w", err)
		}
	}
	if flagName != "" {
		in.User.Name = flagName
	}
	if flagCompany != "" {
		in.User.CompanyName = flagCompany
	}
	if flagURL != "" {
		in.User.WebsiteURL = flagURL
	}
	if flagRole != "" {
		in.User.Role = flagRole
	}
	if flagAnswers != "" {
		answers, err := parseAnswers(flagAnswers)
		if err != nil {
			return in, err
		}
		in.Answers = answers
	}
	return in, nil
}

func parseAnswers(s string) ([]persona.Answer, error) {
	var out []persona.Answer
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, letter, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: want id=letter", pair)
		}
		qid, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("answer %q: bad question id: %w", pair, err)
		}
		out = append(out, persona.Answer{QuestionID: qid, Answer: strings.TrimSpace(letter)})
	}
	return out, nil
}
