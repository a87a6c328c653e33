package router

import (
	"testing"

	tele "gopkg.in/telebot.v4"

	"github.com/chanceofrain/spotifam/core/telegram/commands"
)

type stubContext struct {
	tele.Context
	sender *tele.User
	text   string
	sent   []string
	kv     map[string]any
}

func (c *stubContext) Sender() *tele.User { return c.sender }

func (c *stubContext) Text() string { return c.text }

func (c *stubContext) Update() tele.Update { return tele.Update{ID: 7} }

func (c *stubContext) Send(what interface{}, _ ...interface{}) error {
	if s, ok := what.(string); ok {
		c.sent = append(c.sent, s)
	}
	return nil
}

func (c *stubContext) Set(key string, v interface{}) {
	if c.kv == nil {
		c.kv = map[string]any{}
	}
	c.kv[key] = v
}

func (c *stubContext) Get(key string) interface{} { return c.kv[key] }

type commandMap map[string]commands.Command

func (m commandMap) Command(name string) (commands.Command, bool) {
	cmd, ok := m[name]
	return cmd, ok
}

func TestCommandNameParsing(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"/start", "start"},
		{"/Orders@SpotifamBot now", "orders"},
		{"  /faq  ", "faq"},
		{"hello", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := commandName(tc.text); got != tc.want {
			t.Errorf("commandName(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestCommandRouterGuardsAdminCommands(t *testing.T) {
	called := 0
	src := commandMap{
		"stats": {AdminOnly: true, Handler: func(c tele.Context) error {
			called++
			return nil
		}},
	}
	r := NewCommandRouter(src, 100, nil)

	stranger := &stubContext{sender: &tele.User{ID: 200}, text: "/stats"}
	if err := r(stranger); err != nil {
		t.Fatal(err)
	}
	if called != 0 {
		t.Fatal("non-admin reached an admin-only command")
	}
	if len(stranger.sent) != 1 {
		t.Fatalf("want one refusal, got %v", stranger.sent)
	}

	admin := &stubContext{sender: &tele.User{ID: 100}, text: "/stats"}
	if err := r(admin); err != nil {
		t.Fatal(err)
	}
	if called != 1 {
		t.Fatal("admin did not reach the command handler")
	}
}

func TestCommandRouterFallsBackOnUnknown(t *testing.T) {
	fell := false
	r := NewCommandRouter(commandMap{}, 100, func(c tele.Context) error {
		fell = true
		return nil
	})
	if err := r(&stubContext{sender: &tele.User{ID: 1}, text: "/teleport"}); err != nil {
		t.Fatal(err)
	}
	if !fell {
		t.Fatal("unknown command did not hit the fallback")
	}
}
