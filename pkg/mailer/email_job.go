package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue. The API publishes
// it fire-and-forget; the email worker renders nothing, the body is final.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// ConfirmationJob builds the signup confirmation-code email.
func ConfirmationJob(to, code string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Your confirmation code",
		Text:    "Your confirmation code: " + code,
	}
}
