package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mkuznecov/nutritrack/internal/client/config"
	"github.com/mkuznecov/nutritrack/internal/client/estimator"
	"github.com/mkuznecov/nutritrack/internal/client/localstore"
	"github.com/mkuznecov/nutritrack/internal/client/services"
	"github.com/mkuznecov/nutritrack/internal/datex"
	"github.com/mkuznecov/nutritrack/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOnline Mode = "online"
	ModeLocal  Mode = "local"
)

type App struct {
	config    *config.Config
	log       logging.Logger
	db        *sql.DB
	clock     *datex.Clock
	estimator estimator.Estimator
	reader    *bufio.Reader

	session  *services.Session
	username string
	Mode     Mode
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := localstore.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	clock, err := datex.NewClock(c.Timezone)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	est := estimator.NewGemini(c.GeminiAPIKey, c.GeminiModel, nil)

	return &App{
		config:    c,
		log:       log,
		db:        db,
		clock:     clock,
		estimator: est,
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Println("NutriTrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	s := ""
	if a.username != "" {
		s = a.username + " "
	}
	if a.Mode != "" {
		s = s + string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
