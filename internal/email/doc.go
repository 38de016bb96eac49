// Package email composes and delivers the site's transactional mail. Messages
// are rendered from embedded templates, delivered through a Sender (Resend in
// production) and fanned out with Settle so one failed send never cancels
// its siblings.
package email
