// Package whatsapp builds chat deep links and hands them to an opener.
package whatsapp

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/example/hamper-shop/internal/logger"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://wa.me"
	DefaultNumber  = "918007191513"
)

// componentEscaper undoes the parts of url.QueryEscape that differ from a
// browser's encodeURIComponent.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// BuildURL returns {baseURL}/{number}?text={text}, with text encoded the way
// encodeURIComponent encodes it.
func BuildURL(baseURL, number, text string) string {
	escaped := componentEscaper.Replace(url.QueryEscape(text))
	return strings.TrimRight(baseURL, "/") + "/" + number + "?text=" + escaped
}

// Opener opens a link, for example in a browser.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(ctx context.Context, link string) error

func (f OpenerFunc) Open(ctx context.Context, link string) error { return f(ctx, link) }

// WriterOpener prints each link on its own line.
type WriterOpener struct {
	W io.Writer
}

func (o WriterOpener) Open(_ context.Context, link string) error {
	_, err := fmt.Fprintln(o.W, link)
	return err
}

// Service dispatches messages to one chat destination.
type Service struct {
	baseURL string
	number  string
	opener  Opener
	log     zerolog.Logger
}

func NewService(baseURL, number string, opener Opener, log zerolog.Logger) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if number == "" {
		number = DefaultNumber
	}
	return &Service{
		baseURL: baseURL,
		number:  number,
		opener:  opener,
		log:     logger.Component(log, "whatsapp"),
	}
}

func (s *Service) Number() string { return s.number }

// Send builds the link and opens it. The open is fire-and-forget: failures
// are logged and the link is returned either way.
func (s *Service) Send(ctx context.Context, text string) string {
	link := BuildURL(s.baseURL, s.number, text)
	if s.opener == nil {
		s.log.Warn().Msg("no opener configured, link not opened")
		return link
	}
	if err := s.opener.Open(ctx, link); err != nil {
		s.log.Warn().Err(err).Msg("failed to open chat link")
		return link
	}
	s.log.Info().Int("message_bytes", len(text)).Msg("chat link opened")
	return link
}
