package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"
)

// NotifyService sends the "photos ready" push when polling detects that the
// external photo studio finished. Best effort: a failed push is logged and
// never affects the wizard.
type NotifyService struct {
	Client   *messaging.Client
	ErrorLog *log.Logger
}

func (s *NotifyService) PhotosReady(ctx context.Context, deviceToken string) {
	if s == nil || s.Client == nil || deviceToken == "" {
		return
	}
	message := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "Photos ready",
			Body:  "Your enhanced photos are back. Your listing is almost done.",
		},
		Data: map[string]string{
			"step": "photos",
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
	if _, err := s.Client.Send(ctx, message); err != nil {
		if s.ErrorLog != nil {
			s.ErrorLog.Printf("send photos-ready push: %v", err)
		}
	}
}
