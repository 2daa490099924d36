package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Render formats the answers, they are printed as is if nil.
	Render func(string) string
}

// New creates a new Agent talking to the user through w and r, with a
// facilitator dispatching the questions to the experts.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	return &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
}

// Start creates the chat sessions of the experts, then of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range append(slices.Clone(a.Experts), a.Facilitator) {
		if err := e.Start(ctx, client); err != nil {
			return fmt.Errorf("starting %s: %w", e.Name, err)
		}
	}
	return nil
}

const prompt = "assist> "

// farewells end the session.
var farewells = []string{"bye", "exit", "quit"}

// Run answers the prompts, then the user's questions until a farewell or
// the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.w, "Welcome to fifotax assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var question string
		var err error
		question, prompts, err = a.next(prompts)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if question == "" {
			continue
		}
		if slices.Contains(farewells, strings.ToLower(question)) {
			return nil
		}

		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: question})
		if err != nil {
			return err
		}
		answer := text(content)
		if a.Render != nil {
			answer = a.Render(answer)
		}
		fmt.Fprintln(a.w, answer)
	}
}

// next returns the next question: the first pending prompt, echoed, or a
// line read from the user.
func (a *Agent) next(prompts []string) (string, []string, error) {
	if len(prompts) > 0 {
		q := strings.TrimSpace(prompts[0])
		if q != "" {
			fmt.Fprintln(a.w, q)
		}
		return q, prompts[1:], nil
	}
	line, err := a.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", nil, err
	}
	return strings.TrimSpace(line), nil, nil
}

// text joins the text parts of content.
func text(content *genai.Content) string {
	var b strings.Builder
	for _, p := range content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
