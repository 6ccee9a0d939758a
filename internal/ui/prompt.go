package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ObiAU/freshdigest/internal/config"
)

const popularOpenAIModels = `
Popular OpenAI models:
- o1
- gpt-4o
- gpt-4o-mini
- o3-mini`

const popularOllamaModels = `
Popular Ollama models:
- deepseek-r1 (1.5B-671B)
- llama3.3
- phi4
- llama3.2 (1B-3B)`

const ollamaModelHint = "For models with multiple parameter sizes, specify as 'model:parameter' (e.g., llama3.2:1b). Not all models support non-English languages."

type line struct {
	text string
	err  error
}

// Prompter asks the start-of-run questions on a line-oriented terminal.
// Input is read on a separate goroutine so a cancelled context interrupts a
// pending question.
type Prompter struct {
	in    *bufio.Scanner
	out   io.Writer
	lines chan line
	start sync.Once
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out, lines: make(chan line)}
}

// Session asks for the language, the backend and the model, in that order.
func (p *Prompter) Session(ctx context.Context) (config.Session, error) {
	language, err := p.Language(ctx)
	if err != nil {
		return config.Session{}, err
	}

	backend, err := p.Backend(ctx)
	if err != nil {
		return config.Session{}, err
	}

	model, err := p.Model(ctx, backend)
	if err != nil {
		return config.Session{}, err
	}

	return config.Session{Language: language, Backend: backend, Model: model}, nil
}

func (p *Prompter) Language(ctx context.Context) (string, error) {
	fmt.Fprintln(p.out, PromptStyle.Render("\nType your preferred language (e.g., English, Chinese (Simplified), Spanish):"))

	language, err := p.readNonEmpty(ctx, "Enter language: ")
	if err != nil {
		return "", err
	}

	fmt.Fprintln(p.out, SuccessStyle.Render("\nLanguage set to: "+language))
	return language, nil
}

func (p *Prompter) Backend(ctx context.Context) (config.Backend, error) {
	fmt.Fprintln(p.out, PromptStyle.Render("\nChoose the LLM model source:"))
	fmt.Fprintln(p.out, "[1] OpenAI API (Requires API key and sufficient balance)")
	fmt.Fprintln(p.out, "[2] Ollama (Runs locally, requires pre-installed models)")

	for {
		choice, err := p.readLine(ctx, "\nEnter choice (1 for OpenAI, 2 for Ollama): ")
		if err != nil {
			return "", err
		}

		switch choice {
		case "1":
			fmt.Fprintln(p.out, SuccessStyle.Render("\nUsing OpenAI API..."))
			return config.BackendOpenAI, nil
		case "2":
			fmt.Fprintln(p.out, SuccessStyle.Render("\nUsing Ollama local models..."))
			return config.BackendOllama, nil
		default:
			fmt.Fprintln(p.out, ErrorStyle.Render("Invalid choice! Please enter 1 or 2."))
		}
	}
}

func (p *Prompter) Model(ctx context.Context, backend config.Backend) (string, error) {
	label := "OpenAI"
	if backend == config.BackendOllama {
		label = "Ollama"
		fmt.Fprintln(p.out, popularOllamaModels)
		fmt.Fprintln(p.out, HintStyle.Render("\n"+ollamaModelHint))
	} else {
		fmt.Fprintln(p.out, popularOpenAIModels)
	}

	return p.readNonEmpty(ctx, fmt.Sprintf("\nEnter %s model name: ", label))
}

func (p *Prompter) readNonEmpty(ctx context.Context, prompt string) (string, error) {
	for {
		value, err := p.readLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
	}
}

// readLine returns io.ErrUnexpectedEOF when input ends before an answer, and
// ctx's error when ctx is done first.
func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	p.start.Do(func() { go p.scan() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if !ok {
			return "", io.ErrUnexpectedEOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// scan feeds lines to readLine until input ends. The final send carries the
// reason input ended.
func (p *Prompter) scan() {
	defer close(p.lines)

	for p.in.Scan() {
		p.lines <- line{text: p.in.Text()}
	}

	err := io.ErrUnexpectedEOF
	if scanErr := p.in.Err(); scanErr != nil {
		err = fmt.Errorf("failed to read input: %w", scanErr)
	}
	p.lines <- line{err: err}
}
