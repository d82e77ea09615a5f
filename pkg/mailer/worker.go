package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/udconnect/udconnect-api/pkg/mailer/templates"
)

// ErrBadJob marks a message that can never be delivered; it should not be requeued.
var ErrBadJob = errors.New("mailer: bad job")

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Prepare decodes a queued job and renders its template when one is named.
func Prepare(body []byte) (*EmailJob, error) {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	if job.To == "" {
		if v, ok := job.Data["RecipientEmail"].(string); ok {
			job.To = v
		}
	}
	if strings.TrimSpace(job.To) == "" {
		return nil, fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadJob, err)
		}
		job.Subject, job.Text, job.HTML = s, t, h
	}
	if job.Subject == "" || (job.Text == "" && job.HTML == "") {
		return nil, fmt.Errorf("%w: empty message", ErrBadJob)
	}
	return &job, nil
}

// Deliver prepares and sends a queued job.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	job, err := Prepare(body)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}
