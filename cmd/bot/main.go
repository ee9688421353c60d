// Package main runs an example bot: it connects the gateway, keeps the
// cache warm, and answers a handful of chat commands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/parsascontentcorner/discordlite/config"
	"github.com/parsascontentcorner/discordlite/content"
	"github.com/parsascontentcorner/discordlite/framework"
	"github.com/parsascontentcorner/discordlite/gateway"
	"github.com/parsascontentcorner/discordlite/model"
	"github.com/parsascontentcorner/discordlite/pkg/logger"
	"github.com/parsascontentcorner/discordlite/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		// Sync errors on terminals and pipes are expected.
		_ = log.Sync()
	}()

	s, err := session.New(session.Config{
		Token:       cfg.Discord.Token,
		ShardCount:  cfg.Gateway.ShardCount,
		MaxMessages: cfg.Cache.MaxMessages,
		Logger:      log,
	})
	if err != nil {
		log.Fatal("failed to create session", zap.Error(err))
	}

	f := framework.New(framework.Options{
		Prefix:     "!",
		IgnoreBots: true,
	}, s.Cache(), log.Named("framework"))

	f.AddBucket("slow", 5*time.Second)
	f.AddGroup(&framework.Group{
		Name: "General",
		Commands: []*framework.Command{
			{
				Run: func(ctx context.Context, inv *framework.Invocation) error {
					_, err := s.Rest().SendMessage(ctx, inv.Message.ChannelID, "Pong!")
					return err
				},
				Options: framework.CommandOptions{
					Names:         []string{"ping"},
					Desc:          "Checks that the bot is alive.",
					HelpAvailable: true,
					Bucket:        "slow",
				},
			},
			{
				Run: func(ctx context.Context, inv *framework.Invocation) error {
					text := content.NewBuilder().
						Push("You are ").
						User(inv.Message.Author.ID).
						String()
					_, err := s.Rest().SendMessage(ctx, inv.Message.ChannelID, text)
					return err
				},
				Options: framework.CommandOptions{
					Names:         []string{"whoami"},
					Desc:          "Mentions the invoking user.",
					HelpAvailable: true,
				},
			},
			{
				Run: func(ctx context.Context, inv *framework.Invocation) error {
					echoed := content.NewBuilder().PushSafe(inv.RawArgs).String()
					if echoed == "" {
						return framework.NewCommandError("nothing to echo")
					}
					_, err := s.Rest().SendMessage(ctx, inv.Message.ChannelID, echoed)
					return err
				},
				Options: framework.CommandOptions{
					Names:               []string{"echo", "say"},
					Desc:                "Repeats the given text, sanitized.",
					Usage:               "echo <text>",
					HelpAvailable:       true,
					OnlyIn:              framework.GuildOnly,
					RequiredPermissions: model.PermissionSendMessages,
				},
			},
		},
	})

	helpOpts := framework.DefaultHelpOptions()
	helpOpts.MaxLevenshteinDistance = 2
	helpOpts.Send = s.ReplySender()
	f.WithHelp("help", helpOpts)

	s.AttachFramework(f)

	s.OnReady(func(ctx context.Context, s *session.Session, ready gateway.Ready) {
		log.Info("gateway ready",
			zap.String("user", ready.User.Tag()),
			zap.Int("guilds", len(ready.Guilds)),
		)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		sig := <-sigChan
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := s.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("session terminated", zap.Error(err))
	}
	log.Info("shut down")
}
