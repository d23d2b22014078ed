package chat

// Destination says where a notification goes and which operations apply
// there.
type Destination interface {
	destination()
}

// ToChannel delivers to a guild channel, optionally mentioning a user in the
// progress notice.
type ToChannel struct {
	ChannelID     string
	MentionUserID string
}

// ToContext delivers into the channel of a command invocation. Notices reply
// to the triggering message.
type ToContext struct {
	ChannelID string
	MessageID string
	UserID    string
}

// ToUser delivers by direct message.
type ToUser struct {
	UserID string
}

func (ToChannel) destination() {}
func (ToContext) destination() {}
func (ToUser) destination()    {}
