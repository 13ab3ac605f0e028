package main

import (
	"encoding/json"
	"reflect"
	"testing"
)

const issueCommentPayload = `{
	"action": "created",
	"issue": {
		"url": "https://api.github.com/repos/acme/widgets/issues/42",
		"html_url": "https://github.com/acme/widgets/issues/42",
		"node_id": "PR_kwDOA",
		"number": 42,
		"title": "typo",
		"user": {"login": "alice"},
		"labels": [{"name": "docs"}],
		"assignees": [],
		"body": "original issue body"
	},
	"comment": {
		"url": "https://api.github.com/repos/acme/widgets/issues/comments/99",
		"html_url": "https://github.com/acme/widgets/issues/42#issuecomment-99",
		"user": {"login": "frank"},
		"body": "lgtm"
	},
	"repository": {"full_name": "acme/widgets", "topics": ["backend"]},
	"sender": {"login": "frank"}
}`

const pullRequestPayload = `{
	"action": "opened",
	"pull_request": {
		"url": "https://api.github.com/repos/acme/widgets/pulls/7",
		"html_url": "https://github.com/acme/widgets/pull/7",
		"number": 7,
		"title": "add feature",
		"user": {"login": "dave"},
		"labels": [{"name": "enhancement"}],
		"assignees": [{"login": "erin"}],
		"body": "implements the thing"
	},
	"repository": {"full_name": "acme/widgets", "topics": []},
	"sender": {"login": "dave"}
}`

func TestIssuesEventAccessors(t *testing.T) {
	var ev IssuesEvent
	if err := json.Unmarshal([]byte(issueOpenedPayload), &ev); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if ev.Repo().FullName != "acme/widgets" {
		t.Errorf("unexpected repo: %q", ev.Repo().FullName)
	}
	if ev.Sender().Login != "alice" {
		t.Errorf("unexpected sender: %q", ev.Sender().Login)
	}
	if ev.Title() != "fix crash" {
		t.Errorf("unexpected title: %q", ev.Title())
	}
	// Absent body comes back as empty string, never nil.
	if ev.Body() != "" {
		t.Errorf("expected empty body, got %q", ev.Body())
	}
	if ev.URL() != "https://api.github.com/repos/acme/widgets/issues/1" {
		t.Errorf("unexpected URL: %q", ev.URL())
	}
	if len(ev.LabelNames()) != 0 {
		t.Errorf("expected no labels, got %v", ev.LabelNames())
	}
}

func TestPullRequestEventAccessors(t *testing.T) {
	var ev PullRequestEvent
	if err := json.Unmarshal([]byte(pullRequestPayload), &ev); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if ev.Title() != "add feature" {
		t.Errorf("unexpected title: %q", ev.Title())
	}
	if ev.Body() != "implements the thing" {
		t.Errorf("unexpected body: %q", ev.Body())
	}
	if ev.URL() != "https://api.github.com/repos/acme/widgets/pulls/7" {
		t.Errorf("unexpected URL: %q", ev.URL())
	}
	if want := []string{"enhancement"}; !reflect.DeepEqual(ev.LabelNames(), want) {
		t.Errorf("expected labels %v, got %v", want, ev.LabelNames())
	}
}

func TestIssueCommentEventAccessors(t *testing.T) {
	var ev IssueCommentEvent
	if err := json.Unmarshal([]byte(issueCommentPayload), &ev); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Title comes from the issue, body and URL from the comment.
	if ev.Title() != "typo" {
		t.Errorf("unexpected title: %q", ev.Title())
	}
	if ev.Body() != "lgtm" {
		t.Errorf("unexpected body: %q", ev.Body())
	}
	if ev.URL() != "https://api.github.com/repos/acme/widgets/issues/comments/99" {
		t.Errorf("unexpected URL: %q", ev.URL())
	}
	if ev.Sender().Login != "frank" {
		t.Errorf("unexpected sender: %q", ev.Sender().Login)
	}
}

func TestIssueIsPullRequest(t *testing.T) {
	tests := []struct {
		nodeID string
		want   bool
	}{
		{"PR_kwDOA", true},
		{"I_kwDOA", false},
		{"", false},
	}

	for _, tt := range tests {
		issue := Issue{NodeID: tt.nodeID}
		if got := issue.IsPullRequest(); got != tt.want {
			t.Errorf("IsPullRequest(%q) = %v, want %v", tt.nodeID, got, tt.want)
		}
	}
}
