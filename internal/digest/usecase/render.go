package usecase

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"aquasentry-srv/internal/model"
)

var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1a1a1a;">
  <h2>{{ .CategoryLabel }}</h2>
  <p>{{ .ItemCount }} alert(s) were recorded for this category.</p>
  <table border="1" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr>
      <th>Device</th>
      <th>Parameter</th>
      <th>Severity</th>
      <th>Value</th>
      <th>Observed At (UTC)</th>
      <th>Summary</th>
    </tr>
    {{ range .Items }}
    <tr>
      <td>{{ .DeviceName }}</td>
      <td>{{ .Parameter }}{{ .TrendMarker }}</td>
      <td>{{ .Severity }}</td>
      <td>{{ printf "%.2f" .Value }}</td>
      <td>{{ .ObservedAt.UTC.Format "2006-01-02 15:04:05" }}</td>
      <td>{{ .Summary }}</td>
    </tr>
    {{ end }}
  </table>
  <p>
    <a href="{{ .AckURL }}">Acknowledge this digest</a> to stop further reminders.
  </p>
  {{ if .ShowAttemptNotice }}
  <p style="color: #8a6d3b;">
    This is the final reminder for this digest. No further emails will be sent.
  </p>
  {{ end }}
</body>
</html>`))

type digestView struct {
	CategoryLabel     string
	ItemCount         int
	Items             []itemView
	AckURL            string
	ShowAttemptNotice bool
}

type itemView struct {
	model.DigestItem
	TrendMarker string
}

func toItemView(item model.DigestItem) itemView {
	v := itemView{DigestItem: item}
	switch item.TrendDirection {
	case model.TrendIncreasing:
		v.TrendMarker = " ↑"
	case model.TrendDecreasing:
		v.TrendMarker = " ↓"
	}
	return v
}

// render builds the subject line and HTML body for one digest email.
func (uc *implUseCase) render(rec model.DigestRecord) (subject string, body string, err error) {
	subject = fmt.Sprintf("[AquaSentry] %s: %d alert(s)", categoryLabel(rec.Category), len(rec.Items))

	items := make([]itemView, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, toItemView(item))
	}

	view := digestView{
		CategoryLabel: categoryLabel(rec.Category),
		ItemCount:     len(rec.Items),
		Items:         items,
		AckURL: fmt.Sprintf("%s/ack?digest_id=%s&token=%s",
			strings.TrimRight(uc.cfg.PublicBaseURL, "/"), url.QueryEscape(rec.ID), rec.AckToken),
		// The attempt being rendered is SendAttempts+1.
		ShowAttemptNotice: rec.RemainingAttempts() <= 1,
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, view); err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}

// categoryLabel turns a "parameter_severity" category key into a
// human-readable heading, e.g. "ph_critical" -> "pH - Critical".
func categoryLabel(category string) string {
	idx := strings.LastIndex(category, "_")
	if idx < 0 {
		return category
	}
	param, severity := category[:idx], category[idx+1:]

	var paramLabel string
	switch model.Parameter(param) {
	case model.ParameterTDS:
		paramLabel = "TDS"
	case model.ParameterPH:
		paramLabel = "pH"
	case model.ParameterTurbidity:
		paramLabel = "Turbidity"
	default:
		paramLabel = param
	}

	if severity == "" {
		return paramLabel
	}
	return paramLabel + " - " + strings.ToUpper(severity[:1]) + severity[1:]
}
