package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pactly/internal/cli"
	"github.com/julianstephens/pactly/internal/cli/account"
	"github.com/julianstephens/pactly/internal/cli/backups"
	"github.com/julianstephens/pactly/internal/cli/feed"
	"github.com/julianstephens/pactly/internal/cli/pacts"
	"github.com/julianstephens/pactly/internal/cli/rooms"
	"github.com/julianstephens/pactly/internal/cli/system"
	"github.com/julianstephens/pactly/internal/config"
	"github.com/julianstephens/pactly/internal/constants"
	"github.com/julianstephens/pactly/internal/errors"
	"github.com/julianstephens/pactly/internal/logger"
)

type app struct {
	Version  kong.VersionFlag
	Config   string `help:"Store location: a .db (SQLite) or .json file, a postgres:// or redis:// URL, or keyring[:name]. PostgreSQL URLs must not embed a password." env:"PACTLY_CONFIG" default:"${default_config}"`
	AgentURL string `help:"Planning agent endpoint." env:"PACTLY_AGENT_URL" default:"${default_agent_url}"`
	Debug    bool   `help:"Log debug output to stderr." env:"PACTLY_DEBUG"`

	Login    account.LoginCmd    `cmd:"" help:"Sign in, creating the account on first use."`
	Register account.RegisterCmd `cmd:"" help:"Create an account."`
	Logout   account.LogoutCmd   `cmd:"" help:"Sign out."`
	Whoami   account.WhoamiCmd   `cmd:"" help:"Show the signed-in user."`
	Profile  account.ProfileCmd  `cmd:"" help:"Update your profile."`

	Pact struct {
		List      pacts.ListCmd       `cmd:"" help:"List your pacts." default:"1"`
		Create    pacts.CreateCmd     `cmd:"" help:"Create a pact."`
		Show      pacts.ShowCmd       `cmd:"" help:"Show a pact."`
		Status    pacts.StatusCmd     `cmd:"" help:"Change a pact's status."`
		Delete    pacts.DeleteCmd     `cmd:"" help:"Delete a pact."`
		Checkin   pacts.CheckInCmd    `cmd:"" help:"Record a daily check-in."`
		Goal      pacts.GoalToggleCmd `cmd:"" help:"Toggle a micro-goal."`
		Day       pacts.DayToggleCmd  `cmd:"" help:"Toggle a day of the weekly plan."`
		Verify    pacts.VerifyCmd     `cmd:"" help:"Submit proof for verification."`
		Confirm   pacts.ConfirmCmd    `cmd:"" help:"Confirm a pending verification."`
		Reflect   pacts.ReflectCmd    `cmd:"" help:"Write a weekly reflection."`
		Plan      pacts.PlanCmd       `cmd:"" help:"Ask the planning agent for goals, nudges and a weekly plan."`
		Card      struct {
			Generate pacts.CardGenerateCmd `cmd:"" help:"Generate a progress card."`
			List     pacts.CardListCmd     `cmd:"" help:"List progress cards."`
			Share    pacts.CardShareCmd    `cmd:"" help:"Mark a progress card as shared."`
		} `cmd:"" help:"Manage progress cards."`
		Supporter struct {
			Add pacts.SupporterAddCmd `cmd:"" help:"Add a supporter to a pact."`
		} `cmd:"" help:"Manage supporters."`
	} `cmd:"" help:"Manage pacts."`

	Room struct {
		List      rooms.ListCmd   `cmd:"" help:"List rooms." default:"1"`
		Show      rooms.ShowCmd   `cmd:"" help:"Show a room."`
		Create    rooms.CreateCmd `cmd:"" help:"Create a room."`
		Join      rooms.JoinCmd   `cmd:"" help:"Join a room."`
		Leave     rooms.LeaveCmd  `cmd:"" help:"Leave a room."`
		Post      rooms.PostCmd   `cmd:"" help:"Post to a room."`
		Like      rooms.LikeCmd   `cmd:"" help:"Like or unlike a post."`
		Challenge struct {
			Add      rooms.ChallengeAddCmd      `cmd:"" help:"Add a challenge to a room."`
			Join     rooms.ChallengeJoinCmd     `cmd:"" help:"Join a challenge."`
			Progress rooms.ChallengeProgressCmd `cmd:"" help:"Report challenge progress."`
		} `cmd:"" help:"Manage room challenges."`
	} `cmd:"" help:"Manage rooms."`

	Feed struct {
		List feed.ListCmd `cmd:"" help:"Show supporter activity." default:"1"`
		Add  feed.AddCmd  `cmd:"" help:"Record supporter activity."`
	} `cmd:"" help:"Supporter activity feed."`

	Init   system.InitCmd   `cmd:"" help:"Initialize pactly storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Data   struct {
		Export system.ExportCmd `cmd:"" help:"Export your data to a JSON file."`
		Import system.ImportCmd `cmd:"" help:"Import a JSON export."`
		Clear  system.ClearCmd  `cmd:"" help:"Delete all data."`
	} `cmd:"" help:"Export, import or clear data."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage connection strings in the OS keyring."`
}

// commands that open the store themselves, or never touch it
var skipLoad = []string{"init", "doctor", "keyring"}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Accountability pacts, supporters and rooms"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":           constants.Version,
			"default_config":    constants.DefaultConfigPath,
			"default_agent_url": constants.DefaultAgentURL,
		},
	}
}

func main() {
	if err := config.LoadEnv(); err != nil {
		errors.Fatal(err)
	}

	var a app
	parser := kong.Must(&a, options()...)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	errors.Fatal(run(&a, kctx, os.Stdout))
	logger.Close()
}

// run opens the selected store and dispatches the parsed command.
func run(a *app, kctx *kong.Context, out io.Writer) error {
	target, err := config.Resolve(a.Config)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.Config{Debug: a.Debug, ConfigDir: target.Dir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	backend, err := cli.OpenBackend(target)
	if err != nil {
		return err
	}
	appCtx := cli.NewContext(target, backend, a.AgentURL)
	appCtx.Out = out

	if needsLoad(kctx.Command()) {
		if err := backend.Load(); err != nil {
			return err
		}
	}

	err = kctx.Run(appCtx)
	if cerr := backend.Close(); cerr != nil {
		logger.Warn("failed to close store", "error", cerr)
	}
	return err
}

func needsLoad(command string) bool {
	for _, name := range skipLoad {
		if command == name || strings.HasPrefix(command, name+" ") {
			return false
		}
	}
	return true
}
