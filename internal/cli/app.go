// Package cli is the interactive shell: it owns the open document, the
// extracted text and all rendering, and drives the quiz core underneath.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hvdyinv4688hbv/bookly/internal/nlp"
	"github.com/hvdyinv4688hbv/bookly/internal/pdftext"
	"github.com/hvdyinv4688hbv/bookly/internal/quiz"
	"github.com/hvdyinv4688hbv/bookly/internal/scores"
	"github.com/hvdyinv4688hbv/bookly/internal/summary"
)

const (
	maxAnswerAttempts = 3
	maxPromptDisplay  = 200
	previewLength     = 300
)

type App struct {
	analyzer nlp.Analyzer
	gen      *quiz.Generator
	store    *scores.Store
	delay    time.Duration

	doc       *pdftext.Document
	extracted pdftext.ExtractedText
}

func New(analyzer nlp.Analyzer, gen *quiz.Generator, store *scores.Store, delay time.Duration) *App {
	return &App{
		analyzer: analyzer,
		gen:      gen,
		store:    store,
		delay:    delay,
	}
}

// Run reads commands from in until EOF or quit. The open document, if
// any, is closed before Run returns.
func (a *App) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	defer a.closeDocument()

	reader := bufio.NewReader(in)
	fmt.Fprintln(out, "Bookly — load a PDF, extract pages, quiz yourself. Type 'help' for commands.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, "bookly> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "help":
			printHelp(out)
		case "load":
			a.loadCommand(out, fields[1:])
		case "extract":
			a.extractCommand(out, fields[1:])
		case "quiz":
			a.quizCommand(reader, out, fields[1:])
		case "summary":
			a.summaryCommand(out)
		case "scores":
			a.scoresCommand(out)
		case "quit", "exit":
			return nil
		default:
			fmt.Fprintf(out, "Unknown command %q. Type 'help' for commands.\n", fields[0])
		}
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  load <path>            open a PDF file")
	fmt.Fprintln(out, "  extract <start> <end>  extract text from a page range")
	fmt.Fprintln(out, "  quiz <n>               start a quiz of n questions")
	fmt.Fprintln(out, "  summary                summarize the extracted text")
	fmt.Fprintln(out, "  scores                 show score history")
	fmt.Fprintln(out, "  quit                   exit")
}

func (a *App) loadCommand(out io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(out, "Usage: load <path-to-pdf>")
		return
	}

	path := strings.Join(args, " ")
	doc, err := pdftext.Open(path)
	if err != nil {
		fmt.Fprintf(out, "Failed to read PDF: %v\n", err)
		return
	}

	a.closeDocument()
	a.doc = doc
	a.extracted = pdftext.ExtractedText{}
	fmt.Fprintf(out, "Loaded %s (%d pages). Use 'extract 1 %d' to pull text.\n",
		doc.Path(), doc.PageCount(), doc.PageCount())
}

func (a *App) extractCommand(out io.Writer, args []string) {
	if a.doc == nil {
		fmt.Fprintln(out, "Load a PDF first.")
		return
	}
	if len(args) != 2 {
		fmt.Fprintln(out, "Usage: extract <start-page> <end-page>")
		return
	}

	start, err1 := strconv.Atoi(args[0])
	end, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Fprintln(out, "Please enter valid page numbers.")
		return
	}

	extracted, err := a.doc.Extract(start, end)
	if err != nil {
		if errors.Is(err, pdftext.ErrInvalidRange) {
			fmt.Fprintf(out, "Page range must be 1-%d.\n", a.doc.PageCount())
		} else {
			fmt.Fprintf(out, "Extraction failed: %v\n", err)
		}
		return
	}

	a.extracted = extracted
	fmt.Fprintf(out, "Extracted %d characters from pages %d-%d.\n",
		len(extracted.Text), extracted.StartPage, extracted.EndPage)
	if preview := strings.TrimSpace(extracted.Text); preview != "" {
		if len(preview) > previewLength {
			preview = preview[:previewLength] + "..."
		}
		fmt.Fprintln(out, preview)
	}
}

func (a *App) quizCommand(reader *bufio.Reader, out io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(out, "Usage: quiz <number-of-questions>")
		return
	}
	target, err := strconv.Atoi(args[0])
	if err != nil || target <= 0 {
		fmt.Fprintln(out, "Please enter a valid, positive number for the quiz length.")
		return
	}

	events := make(chan quiz.Event, 8)
	session := quiz.NewSession(a.gen, quiz.Config{
		TargetCount:  target,
		SourceText:   a.extracted.Text,
		AdvanceDelay: a.delay,
		Notify:       func(event quiz.Event) { events <- event },
	})

	if err := session.Start(); err != nil {
		switch {
		case errors.Is(err, quiz.ErrInsufficientText):
			fmt.Fprintln(out, "Please extract more text for a good quiz.")
		case errors.Is(err, quiz.ErrInvalidQuizLength):
			fmt.Fprintln(out, "Please enter a valid, positive number for the quiz length.")
		default:
			fmt.Fprintf(out, "Could not start quiz: %v\n", err)
		}
		return
	}

	if high, ok := a.store.Highest(); ok {
		fmt.Fprintf(out, "High score to beat: %s\n", high)
	}

	for {
		event := <-events
		switch event.Type {
		case quiz.EventQuestionReady:
			printQuestion(out, event, target, session.Score())

			index, endQuiz, ok := readAnswer(reader, out, len(event.Question.Choices))
			if endQuiz || !ok {
				session.End()
				continue
			}

			outcome, err := session.SubmitAnswer(event.Question.Choices[index])
			if err != nil {
				continue
			}
			if outcome.Correct {
				fmt.Fprintln(out, "Correct!")
			} else {
				fmt.Fprintf(out, "Answer: %s\n", outcome.Answer)
			}

		case quiz.EventQuizFinished:
			a.finishQuiz(out, event)
			return
		}
	}
}

func (a *App) finishQuiz(out io.Writer, event quiz.Event) {
	fmt.Fprintln(out)
	switch event.Reason {
	case quiz.ReasonGoalReached:
		fmt.Fprintf(out, "Quiz complete! You reached your goal of %d questions.\n", event.Asked)
	case quiz.ReasonContentExhausted:
		fmt.Fprintf(out, "The quiz ended after %d questions: not enough unique content for more.\n", event.Asked)
	case quiz.ReasonUserEnded:
		fmt.Fprintln(out, "Quiz ended.")
	}

	if event.Record == "" {
		return
	}
	fmt.Fprintf(out, "Final score: %s\n", event.Record)
	a.store.Append(event.Record)
	if err := a.store.Flush(); err != nil {
		log.Printf("cli: saving scores: %v", err)
	}
}

func printQuestion(out io.Writer, event quiz.Event, target, score int) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Score: %d | Question %d of %d\n", score, event.Number, target)
	fmt.Fprintf(out, "%s\n\n", formatPrompt(event.Question.Prompt))
	for idx, choice := range event.Question.Choices {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, choice)
	}
	fmt.Fprintln(out)
}

// formatPrompt truncates overlong prompts while keeping the blank
// visible, then brackets the blanks so they stand out in plain text.
func formatPrompt(prompt string) string {
	if len(prompt) > maxPromptDisplay {
		if idx := strings.LastIndex(prompt, quiz.Blank); idx > maxPromptDisplay-50 {
			prompt = prompt[:idx+len(quiz.Blank)] + "..."
		} else {
			prompt = prompt[:maxPromptDisplay] + "..."
		}
	}
	return strings.ReplaceAll(prompt, quiz.Blank, "["+quiz.Blank+"]")
}

// readAnswer reads a choice letter, allowing "end" to finish the quiz
// early. A read failure or too many invalid entries also ends it.
func readAnswer(reader *bufio.Reader, out io.Writer, optionCount int) (int, bool, bool) {
	if optionCount < 1 {
		return -1, false, false
	}
	maxLetter := byte('A' + optionCount - 1)

	for attempt := 1; attempt <= maxAnswerAttempts; attempt++ {
		fmt.Fprint(out, "answer> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return -1, false, false
		}

		answer := strings.ToUpper(strings.TrimSpace(line))
		if answer == "END" {
			return -1, true, false
		}
		if len(answer) == 1 {
			letter := answer[0]
			if letter >= 'A' && letter <= maxLetter {
				return int(letter - 'A'), false, true
			}
		}

		if attempt < maxAnswerAttempts {
			fmt.Fprintf(out, "Invalid input. Enter a letter A-%c, or 'end' to stop.\n", maxLetter)
		}
	}

	fmt.Fprintln(out, "Too many invalid answers, ending the quiz.")
	return -1, true, false
}

func (a *App) summaryCommand(out io.Writer) {
	if strings.TrimSpace(a.extracted.Text) == "" {
		fmt.Fprintln(out, "No text to summarize.")
		return
	}

	result, err := summary.Summarize(a.analyzer, a.extracted.Text, summary.DefaultSentences)
	if err != nil {
		if errors.Is(err, summary.ErrNoContent) {
			fmt.Fprintln(out, "Could not generate a summary. The text may be too short.")
		} else {
			fmt.Fprintf(out, "Summarization failed: %v\n", err)
		}
		return
	}
	fmt.Fprintln(out, result)
}

func (a *App) scoresCommand(out io.Writer) {
	if high, ok := a.store.Highest(); ok {
		fmt.Fprintf(out, "Highest Score: %s\n", high)
	} else {
		fmt.Fprintln(out, "Highest Score: N/A")
	}

	recent := a.store.Recent(scores.RecentLimit)
	if len(recent) == 0 {
		fmt.Fprintln(out, "No quiz scores yet.")
		return
	}
	fmt.Fprintln(out, "Recent Quiz Scores:")
	for _, record := range recent {
		fmt.Fprintf(out, "  - Score: %s\n", record)
	}
}

func (a *App) closeDocument() {
	if a.doc == nil {
		return
	}
	if err := a.doc.Close(); err != nil {
		log.Printf("cli: closing %s: %v", a.doc.Path(), err)
	}
	a.doc = nil
}
