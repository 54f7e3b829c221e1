package guildconfig

// GetChannelInput contains parameters for retrieving a guild's channel
type GetChannelInput struct {
	GuildID string
}

// GetChannelOutput contains the channel a guild is restricted to
type GetChannelOutput struct {
	ChannelID string
}

// SetChannelInput contains parameters for restricting a guild to a channel
type SetChannelInput struct {
	GuildID   string
	ChannelID string
}
