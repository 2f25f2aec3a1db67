package notification

import (
	"context"
	"time"

	"github.com/apex/log"

	"campusccms/models"
)

// Dispatcher renders a template and hands the result to the outbound
// channel exactly once per call. It never decides whether a failure
// aborts the surrounding operation; callers own that policy.
type Dispatcher struct {
	channel Channel
}

// NewDispatcher creates a dispatcher over the given channel.
func NewDispatcher(channel Channel) *Dispatcher {
	return &Dispatcher{channel: channel}
}

// NotifyStatus renders the status-keyed template and delivers it. A nil
// return means the channel accepted the message.
func (d *Dispatcher) NotifyStatus(
	ctx context.Context,
	recipient string,
	status models.ComplaintStatus,
	studentName, categoryName string,
) error {
	tmpl := TemplateFor(KindForStatus(status))
	subject, body := tmpl.Render(RenderData{
		StudentName:  studentName,
		CategoryName: categoryName,
	})
	return d.deliver(ctx, recipient, subject, body, tmpl.Kind)
}

// NotifyCreated renders the creation-only template and delivers it.
func (d *Dispatcher) NotifyCreated(
	ctx context.Context,
	recipient, studentName, categoryName, complaintNumber string,
	submittedAt time.Time,
) error {
	tmpl := TemplateFor(KindCreation)
	subject, body := tmpl.Render(RenderData{
		StudentName:     studentName,
		CategoryName:    categoryName,
		ComplaintNumber: complaintNumber,
		SubmittedAt:     submittedAt,
	})
	return d.deliver(ctx, recipient, subject, body, tmpl.Kind)
}

func (d *Dispatcher) deliver(ctx context.Context, recipient, subject, body string, kind TemplateKind) error {
	err := d.channel.Deliver(ctx, recipient, subject, body)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"to":       recipient,
			"template": string(kind),
		}).Warn("notification delivery failed")
		return err
	}
	log.WithFields(log.Fields{
		"to":       recipient,
		"template": string(kind),
	}).Info("notification delivered")
	return nil
}
