// Package events turns match and account events into queued email jobs.
package events

import (
	"context"
	"strings"
	"time"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/pkg/mailer"
	tpl "github.com/udconnect/udconnect-api/pkg/mailer/templates"
)

const publishTimeout = 3 * time.Second

// JobQueue is the queue side; EmailQueue satisfies it.
type JobQueue interface {
	Enqueue(ctx context.Context, job mailer.EmailJob) error
}

// EmailPublisher enqueues one EmailJob per event for the email worker.
type EmailPublisher struct {
	Queue       JobQueue
	AppName     string
	FrontendURL string
}

func NewEmailPublisher(q JobQueue, appName, frontendURL string) *EmailPublisher {
	return &EmailPublisher{Queue: q, AppName: appName, FrontendURL: strings.TrimRight(frontendURL, "/")}
}

// PublishMatchEvent mails the receiving side of a request, accept or reject.
func (p *EmailPublisher) PublishMatchEvent(ctx context.Context, ev entity.MatchEvent) error {
	if ev.To == nil || ev.To.Email == "" {
		return nil
	}
	fromName := ""
	if ev.From != nil {
		fromName = ev.From.Name
	}
	data := tpl.NewBaseEmailData(p.AppName, string(ev.Type), ev.To.Name, ev.To.Email,
		tpl.WithFromName(fromName),
		tpl.WithTime(ev.At),
		tpl.WithActionURL(p.FrontendURL+"/notifications"),
	)
	return p.publish(ctx, mailer.EmailJob{To: ev.To.Email, Template: tpl.Match, Data: tpl.ToMap(data)})
}

func (p *EmailPublisher) PublishWelcome(ctx context.Context, u *entity.User) error {
	if u == nil || u.Email == "" {
		return nil
	}
	data := tpl.NewBaseEmailData(p.AppName, tpl.Welcome, u.Name, u.Email,
		tpl.WithTime(u.CreatedAt),
		tpl.WithActionURL(p.FrontendURL),
	)
	return p.publish(ctx, mailer.EmailJob{To: u.Email, Template: tpl.Welcome, Data: tpl.ToMap(data)})
}

func (p *EmailPublisher) publish(ctx context.Context, job mailer.EmailJob) error {
	// the request may finish before the broker confirms
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return p.Queue.Enqueue(c, job)
}
