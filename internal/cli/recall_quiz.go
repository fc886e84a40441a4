// Package cli contains the interactive terminal sessions.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/worddiary/worddiary/internal/recall"
)

var errEnd = errors.New("end")

// RecallQuizCLI runs today's recall quiz in the terminal. A started session
// survives restarts: rerunning the command resumes at the stored cursor.
type RecallQuizCLI struct {
	engine       *recall.Engine
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
}

// NewRecallQuizCLI creates the interactive CLI for the given engine.
func NewRecallQuizCLI(engine *recall.Engine) *RecallQuizCLI {
	return &RecallQuizCLI{
		engine:       engine,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
	}
}

func (cli *RecallQuizCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session asks and grades a single question of today's session.
func (cli *RecallQuizCLI) Session(ctx context.Context) error {
	session, err := cli.engine.GetOrCreateTodaysSession(ctx)
	if err != nil {
		return fmt.Errorf("engine.GetOrCreateTodaysSession() > %w", err)
	}
	if session == nil {
		fmt.Fprintln(cli.stdoutWriter, "Nothing to recall today. Add a few words to your diary first!")
		return errEnd
	}
	question, ok := session.Current()
	if !ok {
		cli.printScore(session)
		return errEnd
	}

	fmt.Fprintf(cli.stdoutWriter, "Question %d of %d\n", session.Cursor+1, len(session.Questions))
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "%s\n", question.Prompt)
	for i, option := range question.Options {
		fmt.Fprintf(cli.stdoutWriter, "  %d. %s\n", i+1, option)
	}
	fmt.Fprint(cli.stdoutWriter, "> ")

	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > len(question.Options) {
		fmt.Fprintf(cli.stdoutWriter, "Answer with a number between 1 and %d.\n\n", len(question.Options))
		return nil
	}

	result, err := cli.engine.Answer(ctx, session.Cursor, question.Options[choice-1])
	if err != nil {
		if errors.Is(err, recall.ErrInvalidState) {
			// Another process advanced the session; the next loop
			// iteration re-reads it and continues from there.
			fmt.Fprintln(cli.stdoutWriter, "The session moved on, loading the next question...")
			return nil
		}
		return fmt.Errorf("engine.Answer() > %w", err)
	}

	if result.Correct {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		color.Green("It's correct.")
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		color.Red(`It's wrong. The answer is "%s"`,
			cli.italic.Sprintf("%s", result.Question.CorrectAnswer),
		)
	}
	fmt.Fprintln(cli.stdoutWriter)

	if result.Session.Completed {
		cli.printScore(result.Session)
		return errEnd
	}
	return nil
}

func (cli *RecallQuizCLI) printScore(session *recall.Session) {
	_, _ = cli.bold.Fprintf(cli.stdoutWriter, "Today's recall is done: %d/%d correct.\n",
		session.Score, len(session.Questions))
}
