package services

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"

	"newhire-onboarding-api/config"
	"newhire-onboarding-api/models"
)

// sendMailFunc is swappable in tests.
var sendMailFunc = config.SendMail

// NotifyNewSubmission emails the fulfillment inbox a summary of a freshly
// accepted submission. Call it from a goroutine after the response is
// written: delivery is best-effort and failures are only logged.
func NotifyNewSubmission(sub *models.Submission) {
	to := os.Getenv("NOTIFY_TO")
	if to == "" {
		log.Println("notification email skipped: NOTIFY_TO not configured")
		return
	}

	subject, body := BuildNotification(sub)
	if err := sendMailFunc([]string{to}, subject, renderNotificationHTML(subject, body)); err != nil {
		log.Printf("notification email send failed (submission=%d to=%s): %v", sub.SubmissionID, to, err)
	}
}

// BuildNotification renders the request summary in the format the fulfillment
// team already receives: sectioned plain text with "None" for empty selection
// lists and an em-dash for blank optional fields.
func BuildNotification(sub *models.Submission) (subject, body string) {
	subject = fmt.Sprintf("New Hire Request: %s — %s — Start %s", sub.FullName, sub.JobTitle, sub.StartDate)

	lines := []string{
		"New Hire Request", "",
		"— Contact —",
		"Full Name: " + sub.FullName,
		"Personal Email: " + sub.PersonalEmail,
		"Start Date: " + sub.StartDate,
		"Job Title: " + sub.JobTitle,
		"Department: " + orDash(sub.Department),
		"Manager: " + orDash(sub.Manager),
		"Office: " + sub.Office, "",
		"— Role & Software —",
		"Is Manager: " + orDash(sub.IsManager),
		"Software: " + joinOrNone(sub.Software()),
	}
	if sub.OtherSoftware != "" {
		lines = append(lines, "Other Software Details: "+sub.OtherSoftware)
	}
	lines = append(lines,
		"",
		"— Equipment —",
		"Advanced Technical Config: "+orDash(sub.AdvancedConfig),
		"Equipment: "+joinOrNone(sub.Equipment()),
		"Accessories: "+joinOrNone(sub.Accessories()),
	)
	if sub.AccessoryCost != "" {
		lines = append(lines, "Accessories Total Cost: "+sub.AccessoryCost)
	}
	lines = append(lines,
		"",
		"— Notes —",
		"Systems / Access Notes: "+orDash(sub.AccessNotes),
		"Additional Notes: "+orDash(sub.Notes),
		"",
		"Submitted: "+sub.CreatedAt.Format("1/2/2006, 3:04:05 PM"),
	)

	return subject, strings.Join(lines, "\n")
}

func renderNotificationHTML(subject, body string) string {
	escaped := template.HTMLEscapeString(body)
	escaped = strings.ReplaceAll(escaped, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
<p style="font-size:14px;line-height:1.7;color:#111827;">%s</p>
</div>
</body>
</html>`, template.HTMLEscapeString(subject), escaped)
}

func orDash(value string) string {
	if value == "" {
		return "—"
	}
	return value
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
