package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/stratiz/internal/content"
	"github.com/abhisek/stratiz/internal/quiz"
	"github.com/abhisek/stratiz/internal/session"
	"github.com/abhisek/stratiz/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the quiz in the terminal, one line per answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, err := loadPack(cmd)
		if err != nil {
			return err
		}

		rec := session.NewRecorder(nil, nil)
		if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			rec = session.NewRecorder(s.EventRepo(), s.SnapshotRepo())
		}

		lq := &lineQuiz{
			in:   bufio.NewScanner(cmd.InOrStdin()),
			out:  cmd.OutOrStdout(),
			warn: cmd.ErrOrStderr(),
			rec:  rec,
		}
		return lq.run(cmd.Context(), pack)
	},
}

func init() {
	quizCmd.Flags().Bool("no-save", false, "Do not record the attempt")
}

// lineQuiz drives a quiz session over line-oriented input.
type lineQuiz struct {
	in   *bufio.Scanner
	out  io.Writer
	warn io.Writer
	rec  *session.Recorder
}

// errQuit signals that the learner left before finishing.
var errQuit = errors.New("quit")

func (l *lineQuiz) run(ctx context.Context, pack *content.Pack) error {
	sess, err := quiz.NewSession(pack.Questions())
	if err != nil {
		return err
	}

	sess.Start()
	l.persist(l.rec.Begin(ctx, sess.QuestionCount()))
	fmt.Fprintf(l.out, "%s quiz: %d questions. Answer with a number or letter, q to quit.\n",
		pack.Title(), sess.QuestionCount())

	for sess.State() == quiz.StateInProgress {
		q, err := sess.CurrentQuestion()
		if err != nil {
			return err
		}
		l.printQuestion(sess.CurrentIndex(), sess.QuestionCount(), q)

		if err := l.choose(sess, q); err != nil {
			if errors.Is(err, errQuit) {
				l.persist(l.rec.Abandon(ctx, sess.Score(), sess.QuestionCount()))
				fmt.Fprintln(l.out, "Quiz abandoned.")
				return nil
			}
			return err
		}

		step, err := sess.Advance()
		if err != nil {
			return err
		}
		l.persist(l.rec.Answer(ctx, q, step.Answer))
		if step.Answer.IsCorrect {
			fmt.Fprintln(l.out, "Correct!")
		} else {
			fmt.Fprintf(l.out, "Incorrect. The answer was %s) %s\n",
				components.OptionLabel(q.Correct), q.CorrectOption())
		}
	}

	score, err := sess.FinalScore()
	if err != nil {
		return err
	}
	l.persist(l.rec.Complete(ctx, score, sess.QuestionCount()))
	fmt.Fprintf(l.out, "\nQuiz Completed! You scored %d out of %d\n", score, sess.QuestionCount())
	return nil
}

func (l *lineQuiz) printQuestion(i, n int, q content.Question) {
	fmt.Fprintf(l.out, "\nQuestion %d of %d\n%s\n", i+1, n, q.Prompt)
	for j, opt := range q.Options {
		fmt.Fprintf(l.out, "  %d. %s) %s\n", j+1, components.OptionLabel(j), opt)
	}
}

// choose reads lines until one selects a valid option.
func (l *lineQuiz) choose(sess *quiz.Session, q content.Question) error {
	for {
		fmt.Fprint(l.out, "> ")
		if !l.in.Scan() {
			if err := l.in.Err(); err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			return errQuit
		}
		line := strings.TrimSpace(l.in.Text())
		if strings.EqualFold(line, "q") {
			return errQuit
		}

		i, ok := parseOption(line)
		if !ok {
			fmt.Fprintf(l.out, "Choose an option between 1 and %d.\n", q.OptionCount())
			continue
		}
		err := sess.SelectOption(i)
		if errors.Is(err, quiz.ErrInvalidOptionIndex) {
			fmt.Fprintf(l.out, "Choose an option between 1 and %d.\n", q.OptionCount())
			continue
		}
		return err
	}
}

// parseOption accepts a 1-based number or an option letter and returns the
// 0-based index. Range checks are left to the session.
func parseOption(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n - 1, true
	}
	if len(s) == 1 {
		c := s[0] | 0x20 // lower case
		if c >= 'a' && c <= 'z' {
			return int(c - 'a'), true
		}
	}
	return 0, false
}

func (l *lineQuiz) persist(err error) {
	if err != nil {
		fmt.Fprintln(l.warn, "warning: progress could not be saved:", err)
	}
}
