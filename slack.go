package main

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// messagePoster is the part of the Slack client the dispatcher uses. Tests
// substitute a recorder.
type messagePoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// postMessage delivers one composed message to one channel, posting under the
// merged display name of the rules that routed it there.
func postMessage(ctx context.Context, poster messagePoster, channel, displayName string, msg *Message) error {
	opts := []slack.MsgOption{
		slack.MsgOptionText(msg.Text, false),
		slack.MsgOptionAttachments(msg.Attachments...),
	}
	if displayName != "" {
		opts = append(opts, slack.MsgOptionUsername(displayName))
	}

	_, _, err := poster.PostMessageContext(ctx, channel, opts...)
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", channel, err)
	}

	logger.Debug("posted message to %s as %q", channel, displayName)
	return nil
}
