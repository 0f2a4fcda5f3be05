// Package notify posts organizer-facing announcements to a Discord channel.
// The whole package is optional: a nil *Discord is safe to call.
package notify

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
)

type Discord struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscord(token, channelID string) (*Discord, error) {
	if token == "" || channelID == "" {
		return nil, nil
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	if err := session.Open(); err != nil {
		return nil, err
	}
	return &Discord{session: session, channelID: channelID}, nil
}

func (d *Discord) Close() {
	if d == nil {
		return
	}
	if err := d.session.Close(); err != nil {
		log.Printf("discord close error: %v", err)
	}
}

// TeamRegistered announces a new registration. Failures are logged and
// swallowed; a Discord outage must never fail a registration.
func (d *Discord) TeamRegistered(teamName, leaderName, academicYear string) {
	if d == nil {
		return
	}
	message := fmt.Sprintf("New team registered: **%s** (leader %s, year %s)", teamName, leaderName, academicYear)
	if _, err := d.session.ChannelMessageSend(d.channelID, message); err != nil {
		log.Printf("discord announce error: %v", err)
	}
}
