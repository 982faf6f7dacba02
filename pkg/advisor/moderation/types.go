// Package moderation screens user text, file content, image prompts and
// generated replies before they reach or leave the advisor.
package moderation

import "context"

type ContentType string

const (
	ContentMessage     ContentType = "message"
	ContentFileContent ContentType = "file_content"
	ContentImagePrompt ContentType = "dalle_prompt"
	ContentFileUpload  ContentType = "file_upload"
	// ContentReply is generated advisor output. Business policies do not apply to it.
	ContentReply       ContentType = "reply"
)

// MaxContentLength is the rune budget sent to the provider.
const MaxContentLength = 10000

const (
	// ReasonProviderUnavailable marks fail-open decisions in the audit log.
	ReasonProviderUnavailable = "moderation provider unavailable"

	MessageBlocked        = "I can't help with that request because it goes against our content guidelines. Please rephrase and try again."
	MessageFileBlocked    = "The attached file contains content that goes against our content guidelines, so it was not used to answer your question."
	MessageFinancialCrime = "I can't help with anything that involves fraud, money laundering or other financial crimes. I'm happy to help with legitimate ways to grow and run your business."
)

// typeThresholds is the score a category must exceed to block, per content type.
var typeThresholds = map[ContentType]float64{
	ContentMessage:     0.7,
	ContentReply:       0.7,
	ContentFileContent: 0.5,
	ContentFileUpload:  0.5,
	ContentImagePrompt: 0.3,
}

const alwaysBlockThreshold = 0.1

// alwaysBlock categories use alwaysBlockThreshold whatever the content type.
var alwaysBlock = map[string]bool{
	"hate":                   true,
	"hate/threatening":       true,
	"harassment/threatening": true,
	"self-harm":              true,
	"self-harm/intent":       true,
	"self-harm/instructions": true,
	"sexual/minors":          true,
	"violence":               true,
}

// Threshold returns the blocking threshold for category under contentType.
func Threshold(contentType ContentType, category string) float64 {
	if alwaysBlock[category] {
		return alwaysBlockThreshold
	}
	if t, ok := typeThresholds[contentType]; ok {
		return t
	}
	return typeThresholds[ContentMessage]
}

// Verdict is the raw provider classification.
type Verdict struct {
	Flagged    bool
	Categories map[string]bool
	Scores     map[string]float64
}

// Provider classifies text. An error means the provider could not answer.
type Provider interface {
	Classify(ctx context.Context, text string) (*Verdict, error)
}

type Result struct {
	Allowed           bool
	FlaggedCategories []string
	CategoryScores    map[string]float64
	BlockingReason    string
	UserFacingMessage string
	ProviderAvailable bool
}

// Allow is the verdict for content that needs no screening.
func Allow() *Result {
	return &Result{Allowed: true, ProviderAvailable: true, CategoryScores: map[string]float64{}}
}
