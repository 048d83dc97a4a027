package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"logiq/interfaces"
	"logiq/storage"
)

// VCLobbyCommand configures the join-to-create voice lobby. Joining the
// lobby channel spawns a personal voice channel, removed when it empties.
type VCLobbyCommand struct {
	Store interfaces.DataStore
	Log   interfaces.Logger
}

func (c *VCLobbyCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:                     "vclobby",
		Description:              "Sets the join-to-create voice lobby.",
		DefaultMemberPermissions: int64Ptr(discordgo.PermissionManageChannels),
		DMPermission:             boolPtr(false),
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "lobby", Description: "Voice channel that acts as the lobby", ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildVoice}, Required: true},
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "category", Description: "Category for the created channels (defaults to the lobby's)", ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildCategory}, Required: false},
		},
	}
}

func (c *VCLobbyCommand) Handle(ctx *Context) {
	lobby := ctx.ChannelOpt("lobby")
	if lobby == nil {
		ctx.ReplyEphemeral("❌ Lobby channel not found.")
		return
	}

	categoryID := lobby.ParentID
	if ctx.Has("category") {
		if category := ctx.ChannelOpt("category"); category != nil {
			categoryID = category.ID
		}
	}

	cfg := storage.TempVCConfig{LobbyID: lobby.ID, CategoryID: categoryID}
	if err := c.Store.SaveConfig(ctx.GuildID(), "temp_vc_config", cfg); err != nil {
		c.Log.Error("Failed to save temp VC config", "error", err, "guildID", ctx.GuildID())
		ctx.ReplyEphemeral("❌ Failed to save the lobby settings.")
		return
	}

	ctx.Reply(fmt.Sprintf("✅ Joining <#%s> now creates a personal voice channel.", lobby.ID))
}

func (c *VCLobbyCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {}
func (c *VCLobbyCommand) HandleModal(s *discordgo.Session, i *discordgo.InteractionCreate)     {}
func (c *VCLobbyCommand) GetComponentIDs() []string                                            { return nil }
func (c *VCLobbyCommand) GetCategory() string                                                  { return CategoryVoice }
