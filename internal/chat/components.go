package chat

// Component is an interactive element attached to a message. Each component
// is rendered on its own row.
type Component interface {
	componentID() string
}

// Button is a clickable primary button.
type Button struct {
	CustomID string
	Label    string
	Disabled bool
}

func (b Button) componentID() string { return b.CustomID }

// SelectMenu is a single-choice dropdown.
type SelectMenu struct {
	CustomID    string
	Placeholder string
	Options     []SelectOption
}

func (s SelectMenu) componentID() string { return s.CustomID }

// SelectOption is one choice of a SelectMenu.
type SelectOption struct {
	Label string
	Value string
	Emoji string
}

// Embed is a rich message card.
type Embed struct {
	Title       string
	Description string
	Footer      string
	Color       int
	Fields      []EmbedField
}

// EmbedField is a titled section of an Embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// File is an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ColorPurple is the embed accent used for bot cards.
const ColorPurple = 0x9B59B6
