package domain

import (
	"encoding/json"
	"fmt"
)

// UnmarshalJSON accepts snowflakes written either as JSON strings or as
// bare numbers, which is how older config files stored them.
func (c *GuildConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		WelcomeChannel   json.RawMessage   `json:"welcome_channel"`
		Autorole         json.RawMessage   `json:"autorole"`
		RequiredChannels []json.RawMessage `json:"required_channels"`
		WelcomeMessage   string            `json:"welcome_message"`
		LevelChannel     json.RawMessage   `json:"level_channel"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var err error
	if c.WelcomeChannel, err = snowflake(raw.WelcomeChannel); err != nil {
		return fmt.Errorf("welcome_channel: %w", err)
	}
	if c.Autorole, err = snowflake(raw.Autorole); err != nil {
		return fmt.Errorf("autorole: %w", err)
	}
	if c.LevelChannel, err = snowflake(raw.LevelChannel); err != nil {
		return fmt.Errorf("level_channel: %w", err)
	}

	c.RequiredChannels = nil
	for _, r := range raw.RequiredChannels {
		id, err := snowflake(r)
		if err != nil {
			return fmt.Errorf("required_channels: %w", err)
		}
		if id != "" {
			c.AddRequiredChannel(id)
		}
	}
	c.WelcomeMessage = raw.WelcomeMessage
	return nil
}

func snowflake(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid snowflake %s", raw)
	}
	return n.String(), nil
}
