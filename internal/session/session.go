// Package session runs the interactive question and answer game: every input
// line first reveals a new question, the next one reveals its answer.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/petuhovskiy/qsampler/internal/log"
	"github.com/petuhovskiy/qsampler/internal/models"
	"github.com/petuhovskiy/qsampler/internal/wpool"
)

// Drawer is a source of questions, usually *wpool.Pool[models.Question].
type Drawer interface {
	Draw() (wpool.Item[models.Question], error)
	Active() int
	Resets() int
}

// Recorder is notified about every question shown.
type Recorder interface {
	Record(ctx context.Context, draw *models.Draw) error
}

type Session struct {
	pool Drawer
	in   io.Reader
	out  io.Writer
	rec  Recorder

	// current is the question waiting for its answer to be revealed.
	current *models.Question
	seq     uint
}

// New creates a session. rec may be nil.
func New(pool Drawer, in io.Reader, out io.Writer, rec Recorder) *Session {
	return &Session{
		pool: pool,
		in:   in,
		out:  out,
		rec:  rec,
	}
}

// Run plays until the input ends or ctx is canceled. End of input is not an error.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(log.Into(ctx, "session"))
	defer cancel()

	s.println("Welcome to the question and answer game!")
	s.println("To exit the game, press Ctrl + D (Unix) or Ctrl + Z (Windows) and then ENTER.")
	s.println("Press ENTER to open the next question/reveal the answer to the current question.")

	lines := make(chan struct{})
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- struct{}{}:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-lines:
			if !ok {
				return s.finish(ctx, scanErr)
			}
			if err := s.Advance(ctx); err != nil {
				return err
			}
		}
	}
}

func (s *Session) finish(ctx context.Context, scanErr chan error) error {
	select {
	case err := <-scanErr:
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	default:
	}
	log.Debug(ctx, "input closed", zap.Uint("questions", s.seq))
	return nil
}

// Advance reveals the next question, or the answer if a question is shown.
func (s *Session) Advance(ctx context.Context) error {
	if s.current != nil {
		s.println("A:", s.current.Answer)
		s.current = nil
		return nil
	}

	resetsBefore := s.pool.Resets()
	item, err := s.pool.Draw()
	if err != nil {
		return fmt.Errorf("failed to draw a question: %w", err)
	}
	s.seq++
	s.current = &item.Item
	s.println("Q:", item.Item.Question)

	draw := &models.Draw{
		Seq:      s.seq,
		Question: item.Item.Question,
		Answer:   item.Item.Answer,
		Weight:   item.Weight,
		Active:   s.pool.Active(),
		Reset:    s.pool.Resets() != resetsBefore,
	}
	log.Debug(ctx, "question drawn",
		zap.Uint("seq", draw.Seq),
		zap.Float64("weight", draw.Weight),
		zap.Int("active", draw.Active),
		zap.Bool("reset", draw.Reset),
	)

	if s.rec != nil {
		if err := s.rec.Record(ctx, draw); err != nil {
			log.Warn(ctx, "failed to record draw", zap.Error(err))
		}
	}
	return nil
}

func (s *Session) println(args ...any) {
	_, _ = fmt.Fprintln(s.out, args...)
}
