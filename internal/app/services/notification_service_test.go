package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolgakurt/forumcore/internal/app/models"
)

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

// TestNotifyNewDiscussion_AdminsAndAuthor verifies both the admin broadcast
// and the author confirmation go out when an email is available.
func TestNotifyNewDiscussion_AdminsAndAuthor(t *testing.T) {
	sender := &fakeSender{}
	svc := testNotifier(sender, "admin1@example.com", "admin2@example.com")

	discussion := &models.Discussion{ID: 12, Subject: "Broken build"}
	firstPost := &models.Post{AuthorName: "Alice", AuthorEmail: "alice@example.com", Body: "It fails"}

	svc.NotifyNewDiscussion(discussion, firstPost)

	msgs := sender.messages()
	require.Len(t, msgs, 2)

	assert.Equal(t, []string{"admin1@example.com", "admin2@example.com"}, msgs[0].Recipients)
	assert.Equal(t, TemplateNewDiscussion, msgs[0].TemplateKey)
	assert.Equal(t, "forum@example.com", msgs[0].From)

	assert.Equal(t, []string{"alice@example.com"}, msgs[1].Recipients)
	assert.Equal(t, TemplateNewDiscussionUser, msgs[1].TemplateKey)
}

// TestNotifyNewDiscussion_NoAuthorEmail verifies only admins hear about
// discussions whose starter left no email.
func TestNotifyNewDiscussion_NoAuthorEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := testNotifier(sender, "admin@example.com")

	svc.NotifyNewDiscussion(&models.Discussion{ID: 3, Subject: "X"}, &models.Post{AuthorName: "Ghost"})

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, TemplateNewDiscussion, msgs[0].TemplateKey)
}

// TestNotifyNewDiscussion_NoAdmins verifies nothing breaks with an empty
// recipient configuration.
func TestNotifyNewDiscussion_NoAdmins(t *testing.T) {
	sender := &fakeSender{}
	svc := testNotifier(sender)

	svc.NotifyNewDiscussion(&models.Discussion{ID: 3, Subject: "X"}, &models.Post{AuthorName: "Ghost"})

	assert.Empty(t, sender.messages())
}

// TestNotifyNewReply_SendsToStarter verifies the starter is notified with
// the expected subject line.
func TestNotifyNewReply_SendsToStarter(t *testing.T) {
	sender := &fakeSender{}
	svc := testNotifier(sender, "admin@example.com")

	discussion := &models.Discussion{ID: 5, Subject: "Weekly sync"}
	firstPost := &models.Post{AuthorName: "Alice", AuthorEmail: "alice@example.com"}
	reply := &models.Post{AuthorName: "Bob", AuthorEmail: "bob@example.com", Body: "On it"}

	svc.NotifyNewReply(discussion, firstPost, reply)

	msgs := sender.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, []string{"alice@example.com"}, msgs[0].Recipients)
	assert.Equal(t, "New reply for - Weekly sync", msgs[0].Subject)
	assert.Equal(t, TemplateNewPost, msgs[0].TemplateKey)
}

// TestNotifyNewReply_SelfReplySkipped verifies starters are not notified
// about their own replies, for both guests and registered users.
func TestNotifyNewReply_SelfReplySkipped(t *testing.T) {
	sender := &fakeSender{}
	svc := testNotifier(sender)

	discussion := &models.Discussion{ID: 5, Subject: "Weekly sync"}

	guestFirst := &models.Post{AuthorName: "Alice", AuthorEmail: "alice@example.com"}
	guestReply := &models.Post{AuthorName: "Alice again", AuthorEmail: "alice@example.com"}
	svc.NotifyNewReply(discussion, guestFirst, guestReply)

	linkedFirst := &models.Post{AuthorType: strPtr("User"), AuthorID: i64Ptr(4), AuthorEmail: "u@example.com"}
	linkedReply := &models.Post{AuthorType: strPtr("User"), AuthorID: i64Ptr(4), AuthorEmail: "u@example.com"}
	svc.NotifyNewReply(discussion, linkedFirst, linkedReply)

	assert.Empty(t, sender.messages())
}

// TestNotifyNewReply_NoStarterEmail verifies nothing is sent when the
// starter cannot be reached.
func TestNotifyNewReply_NoStarterEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := testNotifier(sender)

	svc.NotifyNewReply(
		&models.Discussion{ID: 5, Subject: "X"},
		&models.Post{AuthorName: "Ghost"},
		&models.Post{AuthorName: "Bob", AuthorEmail: "bob@example.com"},
	)

	assert.Empty(t, sender.messages())
}

// TestNotify_DeliveryFailureSwallowed verifies sender failures never
// propagate out of the notification path.
func TestNotify_DeliveryFailureSwallowed(t *testing.T) {
	sender := &fakeSender{err: errors.New("smtp down")}
	svc := testNotifier(sender, "admin@example.com")

	discussion := &models.Discussion{ID: 9, Subject: "X"}
	firstPost := &models.Post{AuthorName: "Alice", AuthorEmail: "alice@example.com"}

	assert.NotPanics(t, func() {
		svc.NotifyNewDiscussion(discussion, firstPost)
		svc.NotifyNewReply(discussion, firstPost, &models.Post{AuthorName: "Bob", AuthorEmail: "bob@example.com"})
	})
	assert.Empty(t, sender.messages())
}
