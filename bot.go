package main

import (
	"crypto/tls"
	"fmt"
	"strings"

	irc "github.com/thoj/go-ircevent"
)

// Handler processes one inbound command message.
type Handler func(*Bot, *Message)

// Bot ties the IRC connection, config and command handlers together. It is
// the context every Message carries: the current nick, the command prefix,
// the superuser matcher and the raw line writer.
type Bot struct {
	Cfg    *Config
	Logger *Logger

	conn     *irc.Connection
	handlers map[string][]Handler

	// raw overrides the outbound line sink; tests capture lines here.
	raw func(line string)
}

func NewBot(cfg *Config, logger *Logger) *Bot {
	return &Bot{
		Cfg:      cfg,
		Logger:   logger,
		handlers: make(map[string][]Handler),
	}
}

// Nick returns the bot's current nick, which can differ from the configured
// one after a collision rename.
func (b *Bot) Nick() string {
	if b.conn != nil {
		return b.conn.GetNick()
	}
	return b.Cfg.Nick
}

// Prefix returns the configured command prefix character.
func (b *Bot) Prefix() string { return b.Cfg.Prefix }

// IsSuperuser matches the full nick!user@host sender string against the
// configured superuser patterns.
func (b *Bot) IsSuperuser(sender string) bool {
	for _, re := range b.Cfg.superusers {
		if re.MatchString(sender) {
			return true
		}
	}
	return false
}

// Writeln emits one raw outbound IRC line. Transport errors are the
// connection's problem, not the caller's.
func (b *Bot) Writeln(format string, a ...any) {
	line := fmt.Sprintf(format, a...)
	b.Logger.Debugf("> %s", line)
	if b.raw != nil {
		b.raw(line)
		return
	}
	if b.conn != nil {
		b.conn.SendRaw(line)
	}
}

// Join asks the server to join a channel.
func (b *Bot) Join(channel string) { b.Writeln("JOIN %s", channel) }

// Part leaves a channel.
func (b *Bot) Part(channel string) { b.Writeln("PART %s", channel) }

// Handle registers a handler for a command name. Handlers registered under
// "*" run for every command, after the named ones.
func (b *Bot) Handle(name string, h Handler) {
	name = strings.ToLower(name)
	b.handlers[name] = append(b.handlers[name], h)
}

// Dispatch routes a command message to its handlers.
func (b *Bot) Dispatch(m *Message) {
	for _, h := range b.handlers[m.Command()] {
		h(b, m)
	}
	for _, h := range b.handlers["*"] {
		h(b, m)
	}
}

// handlePrivmsg builds a Message from one inbound PRIVMSG and dispatches it
// when it looks like a command: carrying the prefix character, or addressing
// us by nick.
func (b *Bot) handlePrivmsg(code, sender, dest, text string) {
	m := NewMessage(b, code, sender, dest, text, false)
	if !strings.HasPrefix(text, b.Prefix()) && !m.WasAddressed() {
		return
	}
	m.ParseCommand()
	b.Logger.Debugf("command %q from %s in %s", m.Command(), sender, dest)
	b.Dispatch(m)
}

// Connect dials the configured server and wires up the IRC callbacks.
func (b *Bot) Connect() error {
	conn := irc.IRC(b.Cfg.Nick, b.Cfg.User)
	conn.RealName = b.Cfg.RealName
	conn.Password = b.Cfg.Password
	conn.UseTLS = b.Cfg.TLS
	if b.Cfg.TLS {
		conn.TLSConfig = &tls.Config{ServerName: b.Cfg.Server}
	}

	conn.AddCallback("001", func(e *irc.Event) {
		for _, ch := range b.Cfg.Channels {
			conn.Join(ch)
		}
	})
	conn.AddCallback("PRIVMSG", func(e *irc.Event) {
		if len(e.Arguments) == 0 {
			return
		}
		b.handlePrivmsg(e.Code, e.Source, e.Arguments[0], e.Message())
	})

	b.conn = conn
	return conn.Connect(fmt.Sprintf("%s:%d", b.Cfg.Server, b.Cfg.Port))
}

// Loop services the connection until it closes.
func (b *Bot) Loop() { b.conn.Loop() }
