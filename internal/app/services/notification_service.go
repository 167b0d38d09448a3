package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tolgakurt/forumcore/internal/app/models"
)

// Template keys handed to the outbound sender. The delivery mechanism owns
// the actual message bodies.
const (
	TemplateNewDiscussion     = "new_discussion"
	TemplateNewDiscussionUser = "new_discussion_user"
	TemplateNewPost           = "new_post"
)

// Sender is the outbound notification contract. Delivery mechanics (SMTP,
// queue, ...) live behind it.
type Sender interface {
	Send(recipients []string, from string, subject string, templateKey string, data map[string]interface{}) error
}

// NotificationService formats forum events into messages and hands them to
// the Sender. It is best-effort by contract: failures are logged and
// swallowed, never surfaced to the write path that triggered them. Callers
// invoke it outside their transaction, typically in a goroutine.
type NotificationService struct {
	sender      Sender
	adminEmails []string
	from        string
	logger      zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(sender Sender, adminEmails []string, from string, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		sender:      sender,
		adminEmails: adminEmails,
		from:        from,
		logger:      logger,
	}
}

// NotifyNewDiscussion notifies the configured admins that a discussion was
// opened and, when the starter left a resolvable email, confirms the
// creation to them with a separate message.
func (s *NotificationService) NotifyNewDiscussion(discussion *models.Discussion, firstPost *models.Post) {
	data := map[string]interface{}{
		"discussionId": discussion.ID,
		"subject":      discussion.Subject,
		"authorName":   firstPost.AuthorName,
		"body":         firstPost.Body,
	}

	if len(s.adminEmails) > 0 {
		subject := fmt.Sprintf("New discussion: %s", discussion.Subject)
		if err := s.sender.Send(s.adminEmails, s.from, subject, TemplateNewDiscussion, data); err != nil {
			s.logger.Error().Err(err).Int64("discussionId", discussion.ID).
				Msg("Failed to send new discussion notification to admins")
		}
	}

	if firstPost.AuthorEmail != "" {
		subject := fmt.Sprintf("Your discussion was created: %s", discussion.Subject)
		if err := s.sender.Send([]string{firstPost.AuthorEmail}, s.from, subject, TemplateNewDiscussionUser, data); err != nil {
			s.logger.Error().Err(err).Int64("discussionId", discussion.ID).
				Msg("Failed to send discussion confirmation to author")
		}
	}
}

// NotifyNewReply notifies the discussion starter that somebody replied.
// Nothing is sent when the replier is the starter, or when the starter left
// no email to reach them at.
func (s *NotificationService) NotifyNewReply(discussion *models.Discussion, firstPost *models.Post, reply *models.Post) {
	if firstPost == nil || firstPost.AuthorEmail == "" {
		return
	}
	if reply.SameAuthor(firstPost) {
		return
	}

	subject := fmt.Sprintf("New reply for - %s", discussion.Subject)
	data := map[string]interface{}{
		"discussionId": discussion.ID,
		"subject":      discussion.Subject,
		"replierName":  reply.AuthorName,
		"body":         reply.Body,
		"authorName":   firstPost.AuthorName,
	}
	if err := s.sender.Send([]string{firstPost.AuthorEmail}, s.from, subject, TemplateNewPost, data); err != nil {
		s.logger.Error().Err(err).Int64("discussionId", discussion.ID).
			Msg("Failed to send reply notification")
	}
}
