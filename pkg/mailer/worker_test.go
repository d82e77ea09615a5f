package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/udconnect/udconnect-api/pkg/mailer/templates"
)

type sentMail struct{ to, subject, text, html string }

type fakeSender struct {
	sent []sentMail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, text, html})
	return nil
}

func encode(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestDeliver_Template(t *testing.T) {
	d := mailtpl.NewBaseEmailData("UD Connect", "match_accepted", "Luis", "luis@udistrital.edu.co", mailtpl.WithFromName("Ana"))
	body := encode(t, EmailJob{Template: mailtpl.Match, Data: mailtpl.ToMap(d)})

	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, body))
	require.Len(t, s.sent, 1)
	assert.Equal(t, "luis@udistrital.edu.co", s.sent[0].to)
	assert.Equal(t, "Ana aceptó tu solicitud de match", s.sent[0].subject)
	assert.NotEmpty(t, s.sent[0].html)
}

func TestDeliver_Raw(t *testing.T) {
	body := encode(t, EmailJob{To: "a@udistrital.edu.co", Subject: "Hola", Text: "texto"})
	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, body))
	assert.Equal(t, sentMail{"a@udistrital.edu.co", "Hola", "texto", ""}, s.sent[0])
}

func TestDeliver_BadJobs(t *testing.T) {
	cases := map[string][]byte{
		"not json":     []byte("{"),
		"no recipient": encode(t, EmailJob{Subject: "Hola", Text: "x"}),
		"no template":  encode(t, EmailJob{To: "a@b.co", Template: "nope"}),
		"empty":        encode(t, EmailJob{To: "a@b.co"}),
	}
	for name, body := range cases {
		err := Deliver(context.Background(), &fakeSender{}, body)
		assert.ErrorIs(t, err, ErrBadJob, name)
	}
}

func TestDeliver_SendFailureIsRetryable(t *testing.T) {
	body := encode(t, EmailJob{To: "a@udistrital.edu.co", Subject: "Hola", Text: "texto"})
	err := Deliver(context.Background(), &fakeSender{err: errors.New("503")}, body)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadJob)
}
