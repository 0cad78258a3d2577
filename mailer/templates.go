package mailer

import "fmt"

// Vendor notification bodies, kept deliberately plain.

func VendorApprovedBody(firstName string) (subject, html string) {
	subject = "Your vendor account has been approved"
	html = fmt.Sprintf(
		"<p>Hi %s,</p><p>Your vendor account has been approved by our team. You can now publish listings on the platform.</p>",
		firstName,
	)
	return subject, html
}

func VendorRejectedBody(firstName, reason string) (subject, html string) {
	subject = "Your vendor account application was not approved"
	html = fmt.Sprintf(
		"<p>Hi %s,</p><p>We reviewed your vendor application and decided not to approve it at this time.</p>",
		firstName,
	)
	if reason != "" {
		html += fmt.Sprintf("<p>Reason provided: %s</p>", reason)
	}
	html += "<p>If you believe this is a mistake, please contact support.</p>"
	return subject, html
}
