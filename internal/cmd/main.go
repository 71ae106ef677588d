package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pitchside/auctionsync/internal/controller"
	"github.com/pitchside/auctionsync/internal/localstore"
	"github.com/pitchside/auctionsync/internal/models"
	"github.com/pitchside/auctionsync/internal/notify"
	"github.com/pitchside/auctionsync/internal/render"
	"github.com/pitchside/auctionsync/internal/view"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogging(config.Client.LogLevel)

	local := localstore.Open(config.Client.StatePath)

	ctrlConfig := controller.DefaultConfig(config.Server.BaseURL)
	ctrlConfig.PollInterval = config.pollInterval()
	ctrlConfig.BackoffMin = config.backoffMin()
	ctrlConfig.BackoffMax = config.backoffMax()
	ctrlConfig.OptimisticTTL = config.optimisticTTL()
	ctrlConfig.ChatRoom = config.Client.ChatRoom

	ctrl := controller.New(ctrlConfig, local, consoleSinks(), clockwork.NewRealClock())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ensureLogin(ctx, ctrl, local); err != nil {
		log.Fatal().Err(err).Msg("login failed")
	}

	ctrl.Views().OnChange(func(kind view.Kind) {
		renderSection(ctrl, kind)
	})

	if err := ctrl.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start session")
	}
	defer ctrl.Stop()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case <-ctrl.SessionExpired():
		fmt.Println("Session expired. Please log in again.")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// ensureLogin reuses persisted credentials when present, otherwise logs
// in with credentials from the environment.
func ensureLogin(ctx context.Context, ctrl *controller.Controller, local *localstore.Store) error {
	if st := local.Get(); st.AccessToken != "" {
		return nil
	}

	if username := os.Getenv("AUCTION_TEAM_USERNAME"); username != "" {
		result, err := ctrl.API().TeamLogin(ctx, username, os.Getenv("AUCTION_TEAM_PASSWORD"))
		if err != nil {
			return err
		}
		ctrl.SetTeamID(result.TeamID)
		log.Info().Str("team", result.TeamName).Msg("logged in as team")
		return nil
	}

	email := os.Getenv("AUCTION_EMAIL")
	if email == "" {
		return fmt.Errorf("no stored session and no AUCTION_EMAIL/AUCTION_TEAM_USERNAME set")
	}
	result, err := ctrl.API().Login(ctx, email, os.Getenv("AUCTION_PASSWORD"))
	if err != nil {
		return err
	}
	if result.User != nil {
		log.Info().Str("email", result.User.Email).Bool("admin", result.User.IsAdmin).Msg("logged in")
	}
	return nil
}

// consoleSinks routes feedback to the terminal: toasts to stdout, cues
// to the terminal bell.
func consoleSinks() notify.Sinks {
	return notify.Sinks{
		Toast: func(toast notify.Toast) {
			fmt.Printf("[%s] %s\n", toast.Level, toast.Message)
		},
		Beep: func(frequencyHz float64, duration time.Duration) error {
			_, err := fmt.Fprint(os.Stdout, "\a")
			return err
		},
	}
}

// renderSection prints the section that changed.
func renderSection(ctrl *controller.Controller, kind view.Kind) {
	views := ctrl.Views()

	switch kind {
	case view.KindStatus:
		status, _ := view.Get[*models.AuctionStatus](views, kind)
		fmt.Println(render.StatusLine(status, ctrl.Connected()))
	case view.KindLivePlayer:
		player, _ := view.Get[*models.Player](views, kind)
		fmt.Print(render.LivePlayerBanner(player))
	case view.KindPlayers:
		players, _ := view.Get[[]models.Player](views, kind)
		fmt.Print(render.PlayersTable(players))
	case view.KindTeams:
		teams, _ := view.Get[[]models.Team](views, kind)
		fmt.Print(render.TeamsTable(teams))
	case view.KindRoster:
		roster, _ := view.Get[*models.TeamDetail](views, kind)
		fmt.Print(render.RosterTable(roster))
	case view.KindChat:
		messages, _ := view.Get[[]models.ChatMessage](views, kind)
		fmt.Print(render.ChatLog(messages, 10))
	}
}
