package model

import (
	"strings"
	"unicode"
)

// Default word sets and replies for the keyword responder
var (
	defaultBlocklist = []string{"hmm", "no", "tim"}
	defaultGreetings = []string{"hello", "hi", "hey"}
	defaultFarewells = []string{"okk", "thank you", "ok"}
)

const (
	defaultGreetingReply = "Hello! How can I help you today?"
	defaultFarewellReply = "It was lovely chatting with you,\nIf you need anything or just want to chat, I'll be here"
)

// Responder matches inbound text against fixed word sets and produces
// canned replies. It is pure: no side effects, no state mutation.
type Responder struct {
	blocklist     []string
	greetings     []string
	greetingReply string
	farewells     []string
	farewellReply string
}

// ResponderOption is a functional option for Responder configuration
type ResponderOption func(*Responder)

// WithBlocklist overrides the disallowed substring set
func WithBlocklist(words []string) ResponderOption {
	return func(r *Responder) {
		if len(words) > 0 {
			r.blocklist = lowerAll(words)
		}
	}
}

// WithGreetings overrides the greeting word set and its reply
func WithGreetings(words []string, reply string) ResponderOption {
	return func(r *Responder) {
		if len(words) > 0 {
			r.greetings = lowerAll(words)
		}
		if reply != "" {
			r.greetingReply = reply
		}
	}
}

// WithFarewells overrides the farewell word set and its reply
func WithFarewells(words []string, reply string) ResponderOption {
	return func(r *Responder) {
		if len(words) > 0 {
			r.farewells = lowerAll(words)
		}
		if reply != "" {
			r.farewellReply = reply
		}
	}
}

// NewResponder creates a Responder with the built-in word sets unless
// overridden by options.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		blocklist:     defaultBlocklist,
		greetings:     defaultGreetings,
		greetingReply: defaultGreetingReply,
		farewells:     defaultFarewells,
		farewellReply: defaultFarewellReply,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond returns a canned reply for the text, if any. Matching is
// case-insensitive raw substring. When both a greeting and a farewell
// match, the farewell wins (last-checked-wins).
func (r *Responder) Respond(text string) (string, bool) {
	lowered := strings.ToLower(text)

	reply := ""
	ok := false
	for _, w := range r.greetings {
		if strings.Contains(lowered, w) {
			reply, ok = r.greetingReply, true
			break
		}
	}
	for _, w := range r.farewells {
		if strings.Contains(lowered, w) {
			reply, ok = r.farewellReply, true
			break
		}
	}

	return reply, ok
}

// HasBlockedWord reports whether the text contains a blocklisted substring
// after lowercasing and stripping punctuation. Matching is raw substring,
// not word-boundary, so "hmm" matches inside "hmmm".
func (r *Responder) HasBlockedWord(text string) bool {
	normalized := stripPunct(strings.ToLower(text))
	for _, w := range r.blocklist {
		if strings.Contains(normalized, w) {
			return true
		}
	}
	return false
}

func stripPunct(s string) string {
	return strings.Map(func(c rune) rune {
		if unicode.IsPunct(c) {
			return -1
		}
		return c
	}, s)
}

func lowerAll(words []string) []string {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return lowered
}
