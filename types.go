package main

import "strings"

// User is the subset of a GitHub user object the pipeline reads.
type User struct {
	Login string `json:"login"`
}

// Repository is the subset of a GitHub repository object the pipeline reads.
type Repository struct {
	FullName string   `json:"full_name"`
	Topics   []string `json:"topics"`
}

// Label is a GitHub issue/PR label.
type Label struct {
	Name string `json:"name"`
}

// Issue is shared by the issues and issue_comment payloads. GitHub delivers
// the same shape for comments on pull requests; IsPullRequest tells them
// apart.
type Issue struct {
	URL       string  `json:"url"`
	HTMLURL   string  `json:"html_url"`
	NodeID    string  `json:"node_id"`
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	User      User    `json:"user"`
	Labels    []Label `json:"labels"`
	Assignee  *User   `json:"assignee"`
	Assignees []User  `json:"assignees"`
	Body      string  `json:"body"`
}

// IsPullRequest reports whether the issue actually backs a pull request.
// Pull request node IDs carry the PR_ prefix.
func (i *Issue) IsPullRequest() bool {
	return strings.HasPrefix(i.NodeID, "PR_")
}

// PullRequest is the subset of a GitHub pull request object the pipeline reads.
type PullRequest struct {
	URL       string  `json:"url"`
	HTMLURL   string  `json:"html_url"`
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	User      User    `json:"user"`
	Labels    []Label `json:"labels"`
	Assignees []User  `json:"assignees"`
	Body      string  `json:"body"`
}

// Comment is an issue or pull request comment.
type Comment struct {
	URL     string `json:"url"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
	Body    string `json:"body"`
}

// Event is the uniform view over the three webhook payload shapes. The rule
// matcher queries events only through this surface; accessors never panic and
// absent text fields come back as empty strings.
type Event interface {
	Repo() *Repository
	Sender() *User
	Title() string
	Body() string
	LabelNames() []string
	URL() string
}

// IssuesEvent is the payload of an "issues" webhook delivery.
type IssuesEvent struct {
	Action     string     `json:"action"`
	Issue      Issue      `json:"issue"`
	Repository Repository `json:"repository"`
	SenderUser User       `json:"sender"`
}

func (e *IssuesEvent) Repo() *Repository { return &e.Repository }
func (e *IssuesEvent) Sender() *User     { return &e.SenderUser }
func (e *IssuesEvent) Title() string     { return e.Issue.Title }
func (e *IssuesEvent) Body() string      { return e.Issue.Body }
func (e *IssuesEvent) URL() string       { return e.Issue.URL }

func (e *IssuesEvent) LabelNames() []string { return labelNames(e.Issue.Labels) }

// PullRequestEvent is the payload of a "pull_request" webhook delivery.
type PullRequestEvent struct {
	Action      string      `json:"action"`
	PullRequest PullRequest `json:"pull_request"`
	Repository  Repository  `json:"repository"`
	SenderUser  User        `json:"sender"`
}

func (e *PullRequestEvent) Repo() *Repository { return &e.Repository }
func (e *PullRequestEvent) Sender() *User     { return &e.SenderUser }
func (e *PullRequestEvent) Title() string     { return e.PullRequest.Title }
func (e *PullRequestEvent) Body() string      { return e.PullRequest.Body }
func (e *PullRequestEvent) URL() string       { return e.PullRequest.URL }

func (e *PullRequestEvent) LabelNames() []string { return labelNames(e.PullRequest.Labels) }

// IssueCommentEvent is the payload of an "issue_comment" webhook delivery,
// covering comments on both issues and pull requests.
type IssueCommentEvent struct {
	Action     string     `json:"action"`
	Issue      Issue      `json:"issue"`
	Comment    Comment    `json:"comment"`
	Repository Repository `json:"repository"`
	SenderUser User       `json:"sender"`
}

func (e *IssueCommentEvent) Repo() *Repository { return &e.Repository }
func (e *IssueCommentEvent) Sender() *User     { return &e.SenderUser }
func (e *IssueCommentEvent) Title() string     { return e.Issue.Title }
func (e *IssueCommentEvent) Body() string      { return e.Comment.Body }
func (e *IssueCommentEvent) URL() string       { return e.Comment.URL }

func (e *IssueCommentEvent) LabelNames() []string { return labelNames(e.Issue.Labels) }

func labelNames(labels []Label) []string {
	names := make([]string, 0, len(labels))
	for _, l := range labels {
		names = append(names, l.Name)
	}
	return names
}
