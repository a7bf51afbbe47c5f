package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
)

const noticeTimeout = 10 * time.Second

// PresenceChecker reports whether a user has a live real-time connection.
type PresenceChecker interface {
	IsOnline(userID string) bool
}

// NoticeSender delivers a short text to an out-of-band chat.
type NoticeSender interface {
	SendNotice(ctx context.Context, chatID int64, text string) error
}

// OfflineNotifier tells users without a live connection about activity that
// concerns them. All methods are best-effort and safe on a nil receiver.
type OfflineNotifier struct {
	users    UserReader
	presence PresenceChecker
	sender   NoticeSender
	async    bool
}

func NewOfflineNotifier(users UserReader, presence PresenceChecker, sender NoticeSender) *OfflineNotifier {
	return &OfflineNotifier{
		users:    users,
		presence: presence,
		sender:   sender,
		async:    true,
	}
}

func (n *OfflineNotifier) RequestReceived(ctx context.Context, senderID, recipientID string) {
	n.notify(ctx, senderID, recipientID, "%s sent you a skill swap request.")
}

func (n *OfflineNotifier) RequestAccepted(ctx context.Context, accepterID, senderID string) {
	n.notify(ctx, accepterID, senderID, "%s accepted your skill swap request. You can chat now!")
}

func (n *OfflineNotifier) MessageReceived(ctx context.Context, senderID, receiverID string) {
	n.notify(ctx, senderID, receiverID, "New message from %s.")
}

func (n *OfflineNotifier) notify(ctx context.Context, actorID, targetID, format string) {
	if n == nil || n.sender == nil || actorID == targetID {
		return
	}
	if n.presence != nil && n.presence.IsOnline(targetID) {
		return
	}

	run := func() {
		// keeps the caller's values but not its cancellation
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), noticeTimeout)
		defer cancel()

		target, err := n.users.GetUser(ctx, targetID)
		if err != nil || target.TelegramChatID == 0 {
			return
		}
		actorName := "Someone"
		if actor, err := n.users.GetUser(ctx, actorID); err == nil {
			actorName = actor.Name
		}

		if err := n.sender.SendNotice(ctx, target.TelegramChatID, fmt.Sprintf(format, actorName)); err != nil {
			logger.Warn("Failed to send offline notice", "user_id", targetID, "error", err)
		}
	}

	if n.async {
		go run()
		return
	}
	run()
}
