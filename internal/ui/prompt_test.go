package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ObiAU/freshdigest/internal/config"
	"github.com/go-playground/assert/v2"
)

func TestSessionOpenAI(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("Spanish\n1\ngpt-4o-mini\n"), &out)

	session, err := p.Session(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, config.Session{Language: "Spanish", Backend: config.BackendOpenAI, Model: "gpt-4o-mini"}, session)
	assert.Equal(t, true, strings.Contains(out.String(), "Language set to: Spanish"))
	assert.Equal(t, true, strings.Contains(out.String(), "Popular OpenAI models"))
}

func TestSessionRepromptsOnInvalidInput(t *testing.T) {
	var out bytes.Buffer
	input := "\n  Chinese (Simplified)  \n3\nollama\n2\n\nllama3.2:1b\n"
	p := NewPrompter(strings.NewReader(input), &out)

	session, err := p.Session(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, "Chinese (Simplified)", session.Language)
	assert.Equal(t, config.BackendOllama, session.Backend)
	assert.Equal(t, "llama3.2:1b", session.Model)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid choice! Please enter 1 or 2."))
	assert.Equal(t, true, strings.Contains(out.String(), "model:parameter"))
	assert.Equal(t, nil, session.Validate())
}

func TestSessionEndOfInput(t *testing.T) {
	p := NewPrompter(strings.NewReader("English\n"), io.Discard)

	_, err := p.Session(context.Background())

	assert.Equal(t, true, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestSessionInterruptedWhileWaiting(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPrompter(in, io.Discard)

	errc := make(chan error, 1)
	go func() {
		_, err := p.Session(ctx)
		errc <- err
	}()

	cancel()

	select {
	case err := <-errc:
		assert.Equal(t, true, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("prompt kept waiting for input after cancel")
	}
}
