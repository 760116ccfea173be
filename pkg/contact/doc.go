// Package contact relays user support requests to the support inbox
// through Postmark's transactional API.
//
// The relay is a one-shot sender: each message carries the user's reply
// address so the support team can answer directly. Device and tier
// context is appended to the body for triage.
//
// Usage:
//
//	relay, err := contact.NewRelay(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = relay.Send(ctx, contact.Message{
//		ReplyTo: "user@example.com",
//		Subject: "Billing question",
//		Body:    "I was charged twice.",
//	})
package contact
