package testutil

import (
	tele "gopkg.in/telebot.v3"
)

// Sent records one message sent or edited through FakeContext
type Sent struct {
	What interface{}
	Opts []interface{}
}

// FakeContext is a telebot context that records replies instead of calling the API.
// Fields must not share names with tele.Context methods.
// Methods not overridden panic through the nil embedded Context.
type FakeContext struct {
	tele.Context

	User     *tele.User
	Msg      string
	CB       *tele.Callback
	EditErr  error
	Sends    []Sent
	Edits    []Sent
	Responds int
	Deletes  int
}

// NewFakeContext creates a text message context from the given user
func NewFakeContext(userID int64, text string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID, Username: "tester"},
		Msg:  text,
	}
}

// NewFakeCallback creates a button press context from the given user
func NewFakeCallback(userID int64, unique string) *FakeContext {
	return &FakeContext{
		User: &tele.User{ID: userID, Username: "tester"},
		CB:   &tele.Callback{ID: "cb", Unique: unique},
	}
}

func (c *FakeContext) Sender() *tele.User { return c.User }
func (c *FakeContext) Text() string { return c.Msg }
func (c *FakeContext) Callback() *tele.Callback { return c.CB }

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sends = append(c.Sends, Sent{What: what, Opts: opts})
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	if c.EditErr != nil {
		return c.EditErr
	}
	c.Edits = append(c.Edits, Sent{What: what, Opts: opts})
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responds++
	return nil
}

func (c *FakeContext) Delete() error {
	c.Deletes++
	return nil
}

// LastEditText returns the text of the last edited message
func (c *FakeContext) LastEditText() string {
	if len(c.Edits) == 0 {
		return ""
	}
	text, _ := c.Edits[len(c.Edits)-1].What.(string)
	return text
}

// SentTexts returns the texts of all sent messages in order
func (c *FakeContext) SentTexts() []string {
	var texts []string
	for _, s := range c.Sends {
		if text, ok := s.What.(string); ok {
			texts = append(texts, text)
		}
	}
	return texts
}
