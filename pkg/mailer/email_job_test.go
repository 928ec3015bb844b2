package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/heart-api/pkg/helpers"
)

type capturePublisher struct {
	bodies []any
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	p.bodies = append(p.bodies, body)
	return nil
}

type fakeSender struct {
	err     error
	to      string
	subject string
	html    string
}

func (s *fakeSender) Send(_ context.Context, to, subject, _, html string) error {
	s.to, s.subject, s.html = to, subject, html
	return s.err
}

func TestWelcomeNotifier(t *testing.T) {
	pub := &capturePublisher{}
	n := &WelcomeNotifier{Pub: pub, AppName: "Heart"}

	require.NoError(t, n.Welcome(context.Background(), "a@b.co"))

	require.Len(t, pub.bodies, 1)
	job := pub.bodies[0].(EmailJob)
	assert.Equal(t, "a@b.co", job.To)
	assert.Equal(t, "welcome", job.Template)
}

func TestWorker_Handle(t *testing.T) {
	welcome, _ := json.Marshal(EmailJob{To: "a@b.co", Template: "welcome", Data: map[string]any{"AppName": "Heart"}})
	plain, _ := json.Marshal(EmailJob{To: "a@b.co", Subject: "Hi", Text: "body"})
	unknown, _ := json.Marshal(EmailJob{To: "a@b.co", Template: "nope"})
	noRecipient, _ := json.Marshal(EmailJob{Subject: "Hi"})

	tests := []struct {
		name    string
		body    []byte
		sendErr error
		want    Outcome
	}{
		{"welcome template", welcome, nil, Ack},
		{"preformatted", plain, nil, Ack},
		{"bad json", []byte("{"), nil, Drop},
		{"unknown template", unknown, nil, Drop},
		{"missing recipient", noRecipient, nil, Drop},
		{"send failure", plain, errors.New("mailgun down"), Requeue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.sendErr}
			w := &Worker{Sender: sender, Logger: helpers.NewDiscardLogger()}

			assert.Equal(t, tt.want, w.Handle(context.Background(), tt.body))
		})
	}
}

func TestWorker_Handle_RendersTemplate(t *testing.T) {
	body, _ := json.Marshal(EmailJob{To: "a@b.co", Template: "welcome", Data: map[string]any{"AppName": "Heart"}})
	sender := &fakeSender{}
	w := &Worker{Sender: sender, Logger: helpers.NewDiscardLogger()}

	require.Equal(t, Ack, w.Handle(context.Background(), body))
	assert.Equal(t, "Welcome to Heart", sender.subject)
	assert.Contains(t, sender.html, "a@b.co")
}

func TestMailgun_Configured(t *testing.T) {
	assert.False(t, NewMailgun("", "k", "s").Configured())
	assert.True(t, NewMailgun("d", "k", "s").Configured())
}
