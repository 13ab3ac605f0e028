package main

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// Webhook action values the composer reacts to. Every other action is
// deliberately skipped.
const (
	actionOpened   = "opened"
	actionAssigned = "assigned"
	actionCreated  = "created"
)

// Slack attachment colors. good/warning/danger are Slack aliases; the hex
// values mirror GitHub's own palette.
const (
	colorGood    = "good"
	colorWarning = "warning"
	colorDanger  = "danger"
	colorComment = "#24292F"
	colorMerged  = "#6F42C1"
	colorClosed  = "#CB2431"
)

// Message is a composed Slack notification: a header line plus one
// attachment. The same message is fanned out to every matched channel.
type Message struct {
	Text        string
	Attachments []slack.Attachment
}

// userLinks renders assignees as Slack-markup profile links, one per line.
func userLinks(users []User) string {
	links := make([]string, 0, len(users))
	for _, u := range users {
		links = append(links, fmt.Sprintf("<https://github.com/%s|%s>", u.Login, u.Login))
	}
	return strings.Join(links, "\n")
}

func userLogins(users []User) string {
	logins := make([]string, 0, len(users))
	for _, u := range users {
		logins = append(logins, u.Login)
	}
	return strings.Join(logins, ",")
}

// createMessage composes the Slack notification for an event, or decides to
// skip it. A nil message with a nil error means the action is not
// notification-worthy. It is a pure function of the event; calling it twice
// yields identical output.
func createMessage(ev Event) (*Message, error) {
	switch e := ev.(type) {
	case *IssuesEvent:
		return issuesMessage(e)
	case *PullRequestEvent:
		return pullRequestMessage(e)
	case *IssueCommentEvent:
		return issueCommentMessage(e)
	default:
		return nil, fmt.Errorf("unknown event type %T", ev)
	}
}

func issuesMessage(e *IssuesEvent) (*Message, error) {
	repo := &e.Repository
	issue := &e.Issue

	switch e.Action {
	case actionOpened:
		// GitHub is not supposed to set assignee on a fresh issue, but it
		// has been seen in the wild. Log and carry on.
		if issue.Assignee != nil {
			logger.Info("issues/opened carried assignee %s", issue.Assignee.Login)
		}

		text := fmt.Sprintf("[%s] Issue created by %s", repo.FullName, issue.User.Login)

		body := issue.Body
		if len(issue.Assignees) > 0 {
			body += "\n*Assignees*\n" + userLinks(issue.Assignees)
		}

		attach := slack.Attachment{
			Color:     colorGood,
			Title:     fmt.Sprintf("#%d %s", issue.Number, issue.Title),
			TitleLink: issue.HTMLURL,
			Fallback:  fmt.Sprintf("%s\n%s", issue.Title, issue.Body),
			Text:      body,
		}
		return &Message{Text: text, Attachments: []slack.Attachment{attach}}, nil

	case actionAssigned:
		if issue.Assignee != nil {
			logger.Info("issues/assigned carried assignee %s", issue.Assignee.Login)
		}
		if len(issue.Assignees) == 0 {
			return nil, fmt.Errorf("issues/assigned for %s#%d has no assignees", repo.FullName, issue.Number)
		}

		text := fmt.Sprintf("[%s] Issue assigned to %s", repo.FullName, userLogins(issue.Assignees))

		attach := slack.Attachment{
			Color:     colorGood,
			Title:     fmt.Sprintf("#%d %s", issue.Number, issue.Title),
			TitleLink: issue.HTMLURL,
			Fallback:  issue.Title,
			Text:      "*Assignees*\n" + userLinks(issue.Assignees),
		}
		return &Message{Text: text, Attachments: []slack.Attachment{attach}}, nil

	default:
		return nil, nil
	}
}

func pullRequestMessage(e *PullRequestEvent) (*Message, error) {
	repo := &e.Repository
	pr := &e.PullRequest

	switch e.Action {
	case actionOpened:
		text := fmt.Sprintf("[%s] Pull Request opened by %s", repo.FullName, pr.User.Login)

		body := pr.Body
		if len(pr.Assignees) > 0 {
			body += "\n*Assignees*\n" + userLinks(pr.Assignees)
		}

		attach := slack.Attachment{
			Color:     colorGood,
			Title:     fmt.Sprintf("#%d %s", pr.Number, pr.Title),
			TitleLink: pr.HTMLURL,
			Fallback:  fmt.Sprintf("%s\n%s", pr.Title, pr.Body),
			Text:      body,
		}
		return &Message{Text: text, Attachments: []slack.Attachment{attach}}, nil

	case actionAssigned:
		if len(pr.Assignees) == 0 {
			return nil, fmt.Errorf("pull_request/assigned for %s#%d has no assignees", repo.FullName, pr.Number)
		}

		text := fmt.Sprintf("[%s] Pull Request assigned to %s", repo.FullName, userLogins(pr.Assignees))

		attach := slack.Attachment{
			Color:     colorGood,
			Title:     fmt.Sprintf("#%d %s", pr.Number, pr.Title),
			TitleLink: pr.HTMLURL,
			Fallback:  pr.Title,
			Text:      "*Assignees*\n" + userLinks(pr.Assignees),
		}
		return &Message{Text: text, Attachments: []slack.Attachment{attach}}, nil

	default:
		return nil, nil
	}
}

func issueCommentMessage(e *IssueCommentEvent) (*Message, error) {
	if e.Action != actionCreated {
		return nil, nil
	}

	typ := "issue"
	if e.Issue.IsPullRequest() {
		typ = "pull request"
	}

	text := fmt.Sprintf("[%s] New comment by %s on %s <%s|#%d: %s>",
		e.Repository.FullName, e.Comment.User.Login, typ,
		e.Comment.HTMLURL, e.Issue.Number, e.Issue.Title)

	attach := slack.Attachment{
		Color:    colorComment,
		Fallback: e.Comment.Body,
		Text:     e.Comment.Body,
	}
	return &Message{Text: text, Attachments: []slack.Attachment{attach}}, nil
}
