package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02/01/2006 15:04")
	}
}

func WithFromName(name string) Option {
	return func(d *EmailData) { d.FromName = strings.TrimSpace(name) }
}

func WithActionURL(url string) Option { return func(d *EmailData) { d.ActionURL = url } }

// NewBaseEmailData fills the common fields and applies opts.
func NewBaseEmailData(appName, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          recipient,
		RecipientEmail: recipient,
		Type:           typ,
		AppName:        appName,
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}
