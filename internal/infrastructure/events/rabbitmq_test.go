package events

import (
	"encoding/json"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udconnect/udconnect-api/pkg/mailer"
	tpl "github.com/udconnect/udconnect-api/pkg/mailer/templates"
)

func TestEmailPublishing(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("COT", -5*3600))
	job := mailer.EmailJob{To: "ana@udistrital.edu.co", Template: tpl.Welcome, Data: map[string]any{"Name": "Ana"}}

	msg, err := emailPublishing(job, at)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, tpl.Welcome, msg.Type)
	assert.NotEmpty(t, msg.MessageId)
	assert.Equal(t, time.UTC, msg.Timestamp.Location())

	var back mailer.EmailJob
	require.NoError(t, json.Unmarshal(msg.Body, &back))
	assert.Equal(t, job, back)

	raw, err := emailPublishing(mailer.EmailJob{To: "a@b.co", Subject: "Hola", Text: "x"}, at)
	require.NoError(t, err)
	assert.Equal(t, "raw", raw.Type)
	assert.NotEqual(t, msg.MessageId, raw.MessageId)
}
