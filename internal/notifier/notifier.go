// Package notifier sends one-off operational messages to Telegram and LINE.
// Each adapter makes a single attempt; failures go back to the caller.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tour-admin/internal/metrics"

	"github.com/rs/zerolog/log"
)

var ErrUnknownChannel = errors.New("notification channel not configured")

type Notifier interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// Set holds the configured notifiers by name.
type Set struct {
	byName map[string]Notifier
	order  []string
}

func NewSet(notifiers ...Notifier) *Set {
	s := &Set{byName: map[string]Notifier{}}
	for _, n := range notifiers {
		if n == nil {
			continue
		}
		if _, dup := s.byName[n.Name()]; dup {
			continue
		}
		s.byName[n.Name()] = n
		s.order = append(s.order, n.Name())
	}
	return s
}

// Names lists configured channels in registration order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Send delivers text through the named channels, or all of them when names
// is empty. Every channel is attempted once; the errors are joined.
func (s *Set) Send(ctx context.Context, text string, names ...string) error {
	if len(names) == 0 {
		names = s.order
	}
	if len(names) == 0 {
		return ErrUnknownChannel
	}

	targets := make([]Notifier, 0, len(names))
	for _, name := range names {
		n, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownChannel, name)
		}
		targets = append(targets, n)
	}

	var errs []error
	for _, n := range targets {
		err := n.Send(ctx, text)
		if err != nil {
			log.Error().Err(err).Str("channel", n.Name()).Msg("notification failed")
			metrics.IncNotification(n.Name(), "error")
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
			continue
		}
		metrics.IncNotification(n.Name(), "sent")
	}
	return errors.Join(errs...)
}
