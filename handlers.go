package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GitHub delivery headers and the event kinds this bridge understands.
const (
	githubEventHeader = "X-GitHub-Event"
	signatureHeader   = "X-Hub-Signature-256"
	userAgentPrefix   = "GitHub-Hookshot"

	eventIssues       = "issues"
	eventPullRequest  = "pull_request"
	eventIssueComment = "issue_comment"
)

// parseEvent unmarshals a raw payload into the variant named by the
// X-GitHub-Event value.
func parseEvent(kind string, payload []byte) (Event, error) {
	var ev Event
	switch kind {
	case eventIssues:
		ev = &IssuesEvent{}
	case eventPullRequest:
		ev = &PullRequestEvent{}
	case eventIssueComment:
		ev = &IssueCommentEvent{}
	default:
		return nil, fmt.Errorf("unsupported event type %q", kind)
	}

	if err := json.Unmarshal(payload, ev); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s payload: %w", kind, err)
	}
	return ev, nil
}

// verifySignature checks the X-Hub-Signature-256 value against the HMAC-SHA256
// of the raw request body.
func verifySignature(secret, body []byte, header string) error {
	hexSig, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return fmt.Errorf("malformed signature header %q", header)
	}

	sig, err := hex.DecodeString(hexSig)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return fmt.Errorf("signature mismatch")
	}
	return nil
}

// webhookHandler is the ingestion boundary: it authenticates and parses GitHub
// deliveries before handing them to the routing pipeline.
type webhookHandler struct {
	secret []byte
	debug  bool
	rules  []*CompiledRule
	poster messagePoster
}

func (h *webhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.UserAgent(), userAgentPrefix) {
		logger.Error("user-agent mismatch: %q", r.UserAgent())
		http.Error(w, "user-agent mismatch", http.StatusBadRequest)
		return
	}

	kind := r.Header.Get(githubEventHeader)
	if kind == "" {
		logger.Error("missing %s header", githubEventHeader)
		http.Error(w, "missing event header", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Error("failed to read request body: %v", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := verifySignature(h.secret, body, r.Header.Get(signatureHeader)); err != nil {
		logger.Error("webhook authentication failed: %v", err)
		// Debug mode logs the mismatch but still processes the event.
		if !h.debug {
			http.Error(w, "signature mismatch", http.StatusBadRequest)
			return
		}
	}

	ev, err := parseEvent(kind, body)
	if err != nil {
		logger.Error("failed to parse payload: %v", err)
		http.Error(w, "failed to parse payload", http.StatusBadRequest)
		return
	}

	processEvent(r.Context(), ev, h.rules, h.poster)
	w.Write([]byte("webhook"))
}

// processEvent runs one event through the pipeline: route, compose once, then
// fan the same message out to every matched channel. A delivery failure on one
// channel never blocks the others, and the composer deciding to skip the
// action is a normal outcome.
func processEvent(ctx context.Context, ev Event, rules []*CompiledRule, poster messagePoster) {
	matches := matchRules(ev, rules)
	if len(matches) == 0 {
		logger.Debug("no rules matched, skipping event")
		return
	}

	msg, err := createMessage(ev)
	if err != nil {
		logger.Error("failed to compose message: %v", err)
		return
	}
	if msg == nil {
		logger.Debug("action not notification-worthy, skipping event")
		return
	}

	for channel, m := range matches {
		if err := postMessage(ctx, poster, channel, m.DisplayName, msg); err != nil {
			logger.Error("delivery to %s failed: %v", channel, err)
		}
	}
}
