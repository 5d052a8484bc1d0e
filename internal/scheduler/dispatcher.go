// Package scheduler delivers scheduled passages when their time of day
// comes around. A Dispatcher performs one delivery pass; a Loop drives
// passes on a ticker.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rjcarver/manna/internal/delivery"
	"github.com/rjcarver/manna/internal/devotion"
	"github.com/rjcarver/manna/internal/models"
	"github.com/rjcarver/manna/internal/scripture"
	"github.com/rjcarver/manna/internal/store"
)

// Dispatcher assembles and sends the devotional for each due schedule.
type Dispatcher struct {
	store     *store.Store
	scripture *scripture.Service
	devotion  *devotion.Service
	sender    delivery.Sender
}

// DispatcherOpts holds parameters for creating a Dispatcher.
type DispatcherOpts struct {
	Store     *store.Store
	Scripture *scripture.Service
	Devotion  *devotion.Service
	Sender    delivery.Sender
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts DispatcherOpts) (*Dispatcher, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("scheduler: store is required")
	}
	if opts.Scripture == nil {
		return nil, fmt.Errorf("scheduler: scripture service is required")
	}
	if opts.Devotion == nil {
		return nil, fmt.Errorf("scheduler: devotion service is required")
	}
	if opts.Sender == nil {
		return nil, fmt.Errorf("scheduler: sender is required")
	}
	return &Dispatcher{
		store:     opts.Store,
		scripture: opts.Scripture,
		devotion:  opts.Devotion,
		sender:    opts.Sender,
	}, nil
}

// Tick runs one delivery pass for the given local time. Failed deliveries
// are logged and left pending so the next matching tick retries them.
func (d *Dispatcher) Tick(ctx context.Context, now time.Time) {
	hhmm := now.Format("15:04")
	today := now.Format("2006-01-02")

	due, err := d.store.DuePassages(hhmm, today)
	if err != nil {
		log.Printf("scheduler: due passages: %v", err)
		return
	}

	for _, sched := range due {
		if err := d.Deliver(ctx, sched, today); err != nil {
			log.Printf("scheduler: deliver schedule %d: %v", sched.ID, err)
		}
	}
}

// Deliver sends one scheduled passage and records the outcome. The
// schedule is only marked off after both the provider send and the
// conversation log write succeed.
func (d *Dispatcher) Deliver(ctx context.Context, sched models.ScheduledPassage, today string) error {
	ref := scripture.Reference(sched.Book, sched.Chapter, sched.StartVerse, sched.EndVerse)
	verseText := d.scripture.Lookup(ctx, sched.Book, sched.Chapter, sched.StartVerse, sched.EndVerse)

	result := d.devotion.FormatVerse(ctx, verseText, ref, sched.IncludeReflection)
	if result.Fallback {
		log.Printf("scheduler: schedule %d delivered with fallback formatting", sched.ID)
	}

	receipt, err := d.sender.Send(ctx, sched.Recipient, result.Text)
	if err != nil {
		return fmt.Errorf("send %s: %w", ref, err)
	}

	if err := d.store.RecordMessage(sched.Recipient, models.Outgoing, result.Text, receipt.ProviderID); err != nil {
		return fmt.Errorf("record %s: %w", ref, err)
	}

	if sched.Recurrence == string(models.RecurDaily) {
		if err := d.store.MarkDelivered(sched.ID, today); err != nil {
			return fmt.Errorf("mark delivered %s: %w", ref, err)
		}
	} else {
		if err := d.store.MarkSent(sched.ID); err != nil {
			return fmt.Errorf("mark sent %s: %w", ref, err)
		}
	}

	log.Printf("scheduler: delivered %s to %s (schedule %d)", ref, sched.Recipient, sched.ID)
	return nil
}
