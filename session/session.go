// Package session implements the interactive menu loop: mode choice,
// link prompt, fetch, and the per-video send loop.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"linksend/youtube"
)

// Notifier delivers one video summary to the configured destination.
// Implementations make exactly one attempt per call.
type Notifier interface {
	Notify(ctx context.Context, v *youtube.Video) error
}

const menu = `
===== 📺 YouTube to Telegram Bot =====

1️⃣ Single Video
2️⃣ Playlist
3️⃣ Channel (all videos)
0️⃣ Exit
`

// Session drives the prompt loop. User-facing output goes to out; the
// logger carries diagnostics only, so log records never interleave
// with prompts.
type Session struct {
	fetcher  youtube.Fetcher
	notifier Notifier
	in       io.Reader
	out      io.Writer
	logger   *slog.Logger
}

// New creates a session reading prompts from in and writing to out.
func New(fetcher youtube.Fetcher, notifier Notifier, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		fetcher:  fetcher,
		notifier: notifier,
		in:       in,
		out:      out,
		logger:   logger,
	}
}

// Run loops over the menu until the user exits, input ends, or the
// context is canceled. All three paths are normal terminations and
// return nil; collaborator failures are reported as messages and the
// menu resumes.
func (s *Session) Run(ctx context.Context) error {
	lines := make(chan string)
	go s.readInput(lines)

	for {
		fmt.Fprint(s.out, menu+"\n")

		kind, quit, err := s.promptChoice(ctx, lines)
		if err != nil {
			return s.farewell(err)
		}
		if quit {
			fmt.Fprintln(s.out, "Exiting... Bye!")
			s.logger.Info("session ended", slog.String("reason", "menu exit"))
			return nil
		}

		fmt.Fprint(s.out, linkPrompt(kind))
		link, err := s.readLine(ctx, lines)
		if err != nil {
			return s.farewell(err)
		}

		if !youtube.ValidateLink(link, kind) {
			fmt.Fprintln(s.out, "❌ Invalid YouTube link")
			continue
		}

		if err := s.runBatch(ctx, link, kind); err != nil {
			return s.farewell(err)
		}
	}
}

// readInput feeds lines from the session reader into the channel so
// prompts can select on input and cancellation at the same time. The
// channel closes on EOF or a read error.
func (s *Session) readInput(lines chan<- string) {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	close(lines)
}

// readLine returns the next trimmed input line, io.EOF when input is
// exhausted, or the context error on cancellation.
func (s *Session) readLine(ctx context.Context, lines <-chan string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// promptChoice reads menu choices until a valid one arrives. Invalid
// input re-prompts without redisplaying the menu.
func (s *Session) promptChoice(ctx context.Context, lines <-chan string) (kind youtube.LinkKind, quit bool, err error) {
	for {
		fmt.Fprint(s.out, "Enter choice (0-3): ")
		choice, err := s.readLine(ctx, lines)
		if err != nil {
			return 0, false, err
		}

		switch choice {
		case "0":
			return 0, true, nil
		case "1":
			return youtube.LinkVideo, false, nil
		case "2":
			return youtube.LinkPlaylist, false, nil
		case "3":
			return youtube.LinkChannel, false, nil
		}
		fmt.Fprintln(s.out, "❌ Invalid choice. Please enter 0, 1, 2 or 3.")
	}
}

func linkPrompt(kind youtube.LinkKind) string {
	switch kind {
	case youtube.LinkVideo:
		return "Enter YouTube video URL: "
	case youtube.LinkPlaylist:
		return "Enter YouTube playlist URL: "
	default:
		return "Enter YouTube channel URL: "
	}
}

// runBatch fetches the records for one validated link and sends each
// in listing order, skipping failed sends. A non-nil return means the
// context ended mid-batch; every other failure prints one line and the
// menu resumes.
func (s *Session) runBatch(ctx context.Context, link string, kind youtube.LinkKind) error {
	logger := s.logger.With(
		slog.String("batch", uuid.NewString()),
		slog.String("kind", kind.String()),
	)

	videos, err := s.fetcher.Fetch(ctx, link, kind)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		switch {
		case errors.Is(err, youtube.ErrInvalidLink):
			fmt.Fprintln(s.out, "❌ Invalid YouTube link")
		case errors.Is(err, youtube.ErrNoVideos):
			fmt.Fprintln(s.out, "⚠️ No videos found.")
		default:
			fmt.Fprintf(s.out, "❌ %v\n", err)
		}
		logger.Warn("fetch failed", slog.String("link", link), slog.Any("err", err))
		return nil
	}

	logger.Info("fetched videos", slog.Int("count", len(videos)))

	sent, failed := 0, 0
	for _, v := range videos {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintf(s.out, "➡️ Sending: [%s]\n", displayTitle(v))
		if err := s.notifier.Notify(ctx, v); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// One attempt per video; a failed send is final.
			fmt.Fprintln(s.out, "⚠️ Retry sending failed message.")
			logger.Warn("send failed", slog.String("video", v.ID), slog.Any("err", err))
			failed++
			continue
		}
		sent++
	}

	// The completion line prints even after partial failures; the log
	// record carries the real counts.
	fmt.Fprintln(s.out, "🎉 Done! All videos sent successfully.")
	fmt.Fprintln(s.out)
	logger.Info("batch complete", slog.Int("sent", sent), slog.Int("failed", failed))
	return nil
}

// farewell prints the interrupt/EOF goodbye. The leading newline moves
// past any pending prompt on the current line.
func (s *Session) farewell(cause error) error {
	fmt.Fprintln(s.out, "\nExiting... Bye!")
	s.logger.Info("session ended", slog.Any("reason", cause))
	return nil
}

func displayTitle(v *youtube.Video) string {
	if v.Title == "" {
		return "Unknown Title"
	}
	return v.Title
}
