package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/internal/domain/entity"
	"github.com/udconnect/udconnect-api/pkg/mailer"
	tpl "github.com/udconnect/udconnect-api/pkg/mailer/templates"
)

type fakeQueue struct {
	jobs []mailer.EmailJob
	err  error
}

func (q *fakeQueue) Enqueue(_ context.Context, job mailer.EmailJob) error {
	q.jobs = append(q.jobs, job)
	return q.err
}

func TestPublishMatchEvent(t *testing.T) {
	q := &fakeQueue{}
	p := NewEmailPublisher(q, "UD Connect", "https://udconnect.test/")

	ev := entity.MatchEvent{
		Type: entity.NotificationMatchAccepted,
		From: &entity.User{ID: "b", Name: "Beto"},
		To:   &entity.User{ID: "a", Name: "Ana", Email: "ana@udistrital.edu.co"},
		At:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, p.PublishMatchEvent(context.Background(), ev))
	require.Len(t, q.jobs, 1)

	job := q.jobs[0]
	assert.Equal(t, "ana@udistrital.edu.co", job.To)
	assert.Equal(t, tpl.Match, job.Template)
	assert.Equal(t, "match_accepted", job.Data["Type"])
	assert.Equal(t, "Beto", job.Data["FromName"])
	assert.Equal(t, "https://udconnect.test/notifications", job.Data["ActionURL"])

	subject, _, _, err := tpl.Render(job.Template, job.Data)
	require.NoError(t, err)
	assert.Equal(t, "Beto aceptó tu solicitud de match", subject)
}

func TestPublishMatchEvent_SkipsMissingRecipient(t *testing.T) {
	q := &fakeQueue{}
	p := NewEmailPublisher(q, "UD Connect", "")

	require.NoError(t, p.PublishMatchEvent(context.Background(), entity.MatchEvent{Type: entity.NotificationMatchRequest}))
	assert.Empty(t, q.jobs)
}

func TestPublishWelcome(t *testing.T) {
	q := &fakeQueue{err: errors.New("channel closed")}
	p := NewEmailPublisher(q, "UD Connect", "https://udconnect.test")

	err := p.PublishWelcome(context.Background(), &entity.User{Name: "Ana", Email: "ana@udistrital.edu.co"})
	assert.Error(t, err)
	require.Len(t, q.jobs, 1)
	assert.Equal(t, tpl.Welcome, q.jobs[0].Template)
	assert.Equal(t, "Ana", q.jobs[0].Data["Name"])
}
