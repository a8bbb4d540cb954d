package chart

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures a chart.
type Option func(*settings)

type settings struct {
	palette    []string
	fontFamily string
	css        string
	title      string
	nice       bool
	logger     *log.Logger
}

func defaultSettings() settings {
	return settings{
		fontFamily: "serif",
		logger:     log.New(io.Discard),
	}
}

// WithPalette replaces the color cycle palette.
func WithPalette(colors ...string) Option {
	return func(s *settings) { s.palette = colors }
}

// WithFontFamily sets the font family of the document.
func WithFontFamily(family string) Option {
	return func(s *settings) { s.fontFamily = family }
}

// WithCSS adds a stylesheet block to the document.
func WithCSS(css string) Option {
	return func(s *settings) { s.css = css }
}

// WithTitle adds a <title> element to the document.
func WithTitle(title string) Option {
	return func(s *settings) { s.title = title }
}

// WithNiceTicks places ticks on round numbers on both axes.
func WithNiceTicks() Option {
	return func(s *settings) { s.nice = true }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
