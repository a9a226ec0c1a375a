package main

// Run a prompt against the configured provider and print the result:
//   go run ./cmd/prompttest -task optimize -cv cv.pdf -jd jd.txt

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jobassist-backend/internal/coverletter"
	"jobassist-backend/internal/extract"
	"jobassist-backend/internal/llm"
	"jobassist-backend/internal/llm/gemini"
	"jobassist-backend/internal/llm/openai"
	"jobassist-backend/internal/optimizer"
	"jobassist-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	task := flag.String("task", "optimize", "optimize | cover-letter | details")
	cvPath := flag.String("cv", "", "path to CV (pdf or txt)")
	jdPath := flag.String("jd", "", "path to job description text")
	outPath := flag.String("out", "", "path to write output (optional)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider (gemini | openai)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	flag.Parse()

	if strings.TrimSpace(*jdPath) == "" {
		exitErr("jd path is required")
	}
	jdBytes, err := os.ReadFile(*jdPath)
	if err != nil {
		exitErr(fmt.Sprintf("read job description: %v", err))
	}
	jobDescription := string(jdBytes)

	ctx := context.Background()
	client, err := buildClient(ctx, cfg, *provider, *model)
	if err != nil {
		exitErr(err.Error())
	}

	var out []byte
	switch *task {
	case "optimize":
		cvText := readCV(ctx, *cvPath)
		res, err := optimizer.NewService(client).Optimize(ctx, cvText, jobDescription)
		if err != nil {
			exitErr(fmt.Sprintf("optimize: %v", err))
		}
		out, err = json.MarshalIndent(res, "", "  ")
		if err != nil {
			exitErr(fmt.Sprintf("format json: %v", err))
		}
	case "cover-letter":
		cvText := readCV(ctx, *cvPath)
		letter, err := coverletter.NewService(client).Generate(ctx, cvText, jobDescription)
		if err != nil {
			exitErr(fmt.Sprintf("cover letter: %v", err))
		}
		out = letter.PDF
		if *outPath == "" {
			fmt.Printf("%s\n\n(%d pages)\n", letter.Text, letter.Pages)
			return
		}
	case "details":
		raw, err := client.Generate(ctx, llm.ApplicationDetailsPrompt(jobDescription))
		if err != nil {
			exitErr(fmt.Sprintf("details: %v", err))
		}
		out = []byte(llm.CleanJSONResponse(raw))
	default:
		exitErr(fmt.Sprintf("unsupported task: %s", *task))
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, out, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
		return
	}
	if _, err := os.Stdout.Write(out); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		_, _ = os.Stdout.Write([]byte("\n"))
	}
}

func buildClient(ctx context.Context, cfg config.Config, provider, model string) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, model, cfg.LLMTimeout)
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, model, cfg.LLMTimeout)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func readCV(ctx context.Context, path string) string {
	if strings.TrimSpace(path) == "" {
		exitErr("cv path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		exitErr(fmt.Sprintf("read cv: %v", err))
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extract.PDFText(ctx, data)
		if err != nil {
			exitErr(fmt.Sprintf("extract cv text: %v", err))
		}
		return text
	case ".txt", ".md":
		return string(data)
	default:
		exitErr(fmt.Sprintf("unsupported cv file type: %s", filepath.Ext(path)))
		return ""
	}
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
