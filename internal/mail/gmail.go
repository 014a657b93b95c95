// Package mail implements the mailscan.MailSource collaborator on the Gmail
// API.
package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"jobtrail/internal/config"
	"jobtrail/internal/mailscan"
)

// GmailSource fetches messages from the authenticated Gmail account. The
// account is fixed by the OAuth token on disk; the userID passed through the
// MailSource interface scopes storage, not the mailbox.
type GmailSource struct {
	service *gmail.Service
}

// NewGmailSource builds a Gmail client from the configured credentials and
// token files.
func NewGmailSource(ctx context.Context, cfg *config.Config) (*GmailSource, error) {
	b, err := os.ReadFile(cfg.Gmail.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("reading gmail credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing gmail credentials: %w", err)
	}

	tok, err := tokenFromFile(cfg.Gmail.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("loading gmail token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}

	return &GmailSource{service: svc}, nil
}

// ListMessages returns references for messages matching the search query.
func (g *GmailSource) ListMessages(ctx context.Context, userID, query string) ([]mailscan.MessageRef, error) {
	resp, err := g.service.Users.Messages.List("me").Q(query).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing gmail messages: %w", err)
	}

	refs := make([]mailscan.MessageRef, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		refs = append(refs, mailscan.MessageRef{ID: m.Id})
	}
	return refs, nil
}

// GetMessage fetches one message and flattens it into the pipeline's RawEmail
// view: headers, snippet, decoded text and HTML parts, internal timestamp.
func (g *GmailSource) GetMessage(ctx context.Context, userID, id string) (mailscan.RawEmail, error) {
	msg, err := g.service.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return mailscan.RawEmail{}, fmt.Errorf("fetching gmail message %s: %w", id, err)
	}

	raw := mailscan.RawEmail{
		ID:         msg.Id,
		Snippet:    msg.Snippet,
		ReceivedAt: time.UnixMilli(msg.InternalDate),
	}

	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "Subject":
				raw.Subject = h.Value
			case "From":
				raw.Sender = h.Value
			}
		}
		raw.TextBody, raw.HTMLBody = collectBodies(msg.Payload)
	}

	return raw, nil
}

// collectBodies walks the MIME tree and returns the first text/plain and
// text/html parts found.
func collectBodies(part *gmail.MessagePart) (text, html string) {
	if part == nil {
		return "", ""
	}

	if part.Body != nil && part.Body.Data != "" {
		// Gmail returns body data as unpadded base64url.
		decoded, err := base64.RawURLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			decoded, err = base64.URLEncoding.DecodeString(part.Body.Data)
		}
		if err == nil {
			switch part.MimeType {
			case "text/plain":
				return string(decoded), ""
			case "text/html":
				return "", string(decoded)
			}
		}
	}

	for _, child := range part.Parts {
		t, h := collectBodies(child)
		if text == "" {
			text = t
		}
		if html == "" {
			html = h
		}
		if text != "" && html != "" {
			break
		}
	}
	return text, html
}

// tokenFromFile loads a cached OAuth token.
func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}
