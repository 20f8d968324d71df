// Package mail sends individual warm-up emails over SMTP. Bodies are
// multipart text+HTML rendered from embedded templates and carry the send
// timestamp and the current warm-up day.
package mail
