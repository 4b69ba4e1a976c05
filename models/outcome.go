package models

type Button struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

type Reply struct {
	Text     string     `json:"text"`
	Markdown bool       `json:"markdown,omitempty"`
	Buttons  [][]Button `json:"buttons,omitempty"`
}

// Outcome tells the bot what to do with one inbound message or callback.
type Outcome struct {
	Ignored       bool    `json:"ignored"`
	DeleteInbound bool    `json:"delete_inbound"`
	Replies       []Reply `json:"replies"`
}

func (o *Outcome) Say(text string) *Outcome {
	o.Replies = append(o.Replies, Reply{Text: text})
	return o
}

func (o *Outcome) SayMarkdown(text string) *Outcome {
	o.Replies = append(o.Replies, Reply{Text: text, Markdown: true})
	return o
}

func (o *Outcome) Ask(text string, buttons [][]Button) *Outcome {
	o.Replies = append(o.Replies, Reply{Text: text, Markdown: true, Buttons: buttons})
	return o
}
