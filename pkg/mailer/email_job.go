package mailer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/heart-api/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// A Template, when set, overrides Subject/Text/HTML.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// WelcomeNotifier enqueues the welcome email sent after signup.
type WelcomeNotifier struct {
	Pub        Publisher
	AppName    string
	SupportURL string
}

func (n *WelcomeNotifier) Welcome(ctx context.Context, email string) error {
	return n.Pub.PublishJSON(ctx, EmailJob{
		To:       email,
		Template: mailtpl.Welcome,
		Data: map[string]any{
			"AppName":    n.AppName,
			"SupportURL": n.SupportURL,
		},
	})
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Outcome tells the consumer loop what to do with a delivery.
type Outcome int

const (
	Ack Outcome = iota
	Drop
	Requeue
)

// Worker renders and sends queued jobs.
type Worker struct {
	Sender Sender
	Logger *logrus.Logger
}

// Handle processes one message body. Undecodable or unrenderable jobs are
// dropped; delivery failures are requeued.
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.Logger.WithError(err).Warn("bad email message")
		return Drop
	}
	if job.To == "" {
		w.Logger.Warn("email message without recipient")
		return Drop
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, templateData(job))
		if err != nil {
			w.Logger.WithError(err).WithField("template", job.Template).Warn("render email failed")
			return Drop
		}
	}

	if err := w.Sender.Send(ctx, job.To, subject, text, html); err != nil {
		w.Logger.WithError(err).WithField("to", job.To).Error("send email failed")
		return Requeue
	}
	return Ack
}

func templateData(job EmailJob) mailtpl.Data {
	str := func(k string) string {
		if v, ok := job.Data[k]; ok && v != nil {
			return fmt.Sprintf("%v", v)
		}
		return ""
	}
	return mailtpl.Data{AppName: str("AppName"), Email: job.To, SupportURL: str("SupportURL")}
}
