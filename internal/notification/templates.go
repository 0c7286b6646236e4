package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
)

const signOff = "Smart-Cruiter Team"

// text strips all markup from values typed by candidates or HR before they
// are placed into an HTML body.
var text = bluemonday.StrictPolicy()

// OfferDetails are the HR-entered terms rendered into the offer email.
type OfferDetails struct {
	Salary      string
	JoiningDate string
	Notes       string
}

func jobTitle(r Recipient) string {
	if r.JobTitle == "" {
		return "the position"
	}
	return text.Sanitize(r.JobTitle)
}

func AcceptanceEmail(r Recipient) Message {
	title := jobTitle(r)
	return Message{
		Subject: fmt.Sprintf("Congratulations! You've been accepted for %s", r.JobTitle),
		HTML: fmt.Sprintf(`<h2>Congratulations %s!</h2>
<p>We are pleased to inform you that you have been accepted for the position of <strong>%s</strong>.</p>
<p>Our HR team will be in touch with you shortly regarding next steps.</p>
<p>Best regards,<br>%s</p>`, text.Sanitize(r.FirstName), title, signOff),
	}
}

func RejectionEmail(r Recipient) Message {
	title := jobTitle(r)
	return Message{
		Subject: fmt.Sprintf("Application Update: %s", r.JobTitle),
		HTML: fmt.Sprintf(`<h2>Thank you for your interest, %s</h2>
<p>We appreciate you taking the time to apply for the position of <strong>%s</strong>.</p>
<p>After careful consideration, we have decided to move forward with other candidates. We encourage you to apply for future opportunities that match your skills and experience.</p>
<p>Best regards,<br>%s</p>`, text.Sanitize(r.FirstName), title, signOff),
	}
}

func DuplicateWarningEmail(r Recipient) Message {
	return Message{
		Subject: "WARNING: Duplicate Applications Detected",
		HTML: fmt.Sprintf(`<h2>Hello %s,</h2>
<p>We noticed that you have submitted multiple applications to our system. This is a violation of our application policy.</p>
<p style="color: red; font-weight: bold;">Please do not repeat this again.</p>
<p><strong>If you continue to submit duplicate applications, you will be added to our blacklist and barred from future opportunities.</strong></p>
<p>We have merged your duplicate profiles into a single record for now.</p>
<p>Regards,<br>Smart-Cruiter Compliance Team</p>`, text.Sanitize(r.FirstName)),
	}
}

func IdentityWarningEmail(r Recipient) Message {
	return Message{
		Subject: "URGENT: Resume Identity Verification Required",
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; padding: 20px; border: 1px solid #ef4444; border-radius: 8px;">
<h2 style="color: #ef4444;">Identity Mismatch Detected</h2>
<p>Hello <strong>%s</strong>,</p>
<p>During our automated screening process, we detected that the resume you uploaded for the <strong>%s</strong> position appears to belong to another individual or contains conflicting identity information.</p>
<p style="background: #fee2e2; padding: 10px; border-radius: 4px; color: #b91c1c;"><strong>Issue:</strong> The name on the uploaded resume document does not match the name on your application profile.</p>
<p>Please log in to your portal and re-upload the correct document immediately to avoid disqualification from this and future roles.</p>
<p>If you believe this is an error, please contact our support team.</p>
<p>Regards,<br>Smart-Cruiter Security Team</p>
</div>`, text.Sanitize(r.FirstName), jobTitle(r)),
	}
}

// JobClosedEmail renders for a job that is being removed; title is taken from
// the job rather than each recipient.
func JobClosedEmail(title string) Builder {
	return func(r Recipient) Message {
		applied := ""
		if !r.AppliedAt.IsZero() {
			applied = fmt.Sprintf(" you submitted %s", humanize.Time(r.AppliedAt))
		}
		return Message{
			Subject: fmt.Sprintf("Update on your application for %s", title),
			HTML: fmt.Sprintf(`<div style="font-family: Arial, sans-serif; color: #333;">
<p>Dear %s,</p>
<p>Thank you for the application%s for the <strong>%s</strong> position.</p>
<p>We are writing to inform you that this position has been closed and is no longer available.</p>
<p>We appreciate the time you took to apply and hope you will consider future roles with us.</p>
<p>Best regards,<br>%s</p>
</div>`, text.Sanitize(r.FirstName), applied, text.Sanitize(title), signOff),
		}
	}
}

// OfferEmail links the candidate to the page where the offer is answered.
func OfferEmail(clientURL string, r Recipient, offer OfferDetails) Message {
	link := fmt.Sprintf("%s/candidate/applications/%s/status", strings.TrimRight(clientURL, "/"), r.ApplicantID)

	notes := ""
	if strings.TrimSpace(offer.Notes) != "" {
		notes = fmt.Sprintf("<h3>Benefits &amp; Notes:</h3><p>%s</p>", text.Sanitize(offer.Notes))
	}

	joining := text.Sanitize(offer.JoiningDate)
	if d, err := time.Parse("2006-01-02", offer.JoiningDate); err == nil {
		joining = d.Format("January 2, 2006")
	}

	return Message{
		Subject: "Job Offer from Smart-Cruiter",
		HTML: fmt.Sprintf(`<h2>Congratulations %s!</h2>
<p>We are thrilled to offer you the position of <strong>%s</strong> at Smart-Cruiter Inc.</p>
<h3>Offer Details:</h3>
<ul>
<li><strong>Annual Salary:</strong> %s</li>
<li><strong>Joining Date:</strong> %s</li>
</ul>
%s
<p>Please log in to your candidate dashboard to view the full offer letter and accept or reject it.</p>
<a href="%s" style="display:inline-block;padding:10px 20px;background:#6366f1;color:white;text-decoration:none;border-radius:5px;margin-top:10px;">View Offer Details</a>
<p>Best regards,<br>The %s</p>`,
			text.Sanitize(r.FirstName), jobTitle(r), text.Sanitize(offer.Salary), joining, notes, link, signOff),
	}
}
