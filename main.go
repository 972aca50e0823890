package main

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/moneydash/moneydash/internal/api"
	"github.com/moneydash/moneydash/internal/dashboard"
	"github.com/moneydash/moneydash/internal/session"
	"github.com/moneydash/moneydash/internal/storage"
	"github.com/moneydash/moneydash/internal/types"
)

func main() {
	_ = godotenv.Load()

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable.
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stderr)
	if !ok || logFormat == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("LOG_LEVEL") == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	baseURL, ok := os.LookupEnv("MONEYDASH_BASE_URL")
	if !ok {
		baseURL = "http://localhost:8082/api/v1.0"
	}

	sessionFile, ok := os.LookupEnv("MONEYDASH_SESSION_FILE")
	if !ok {
		sessionFile = "moneydash-session.db"
	}

	store, err := storage.NewSQLiteStore(sessionFile)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	sess := session.NewManager(store, log.Logger)
	client, err := api.New(sess, api.Options{BaseURL: baseURL, Logger: log.Logger})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := login(ctx, client, sess); err != nil {
		log.Fatal().Msg(err.Error())
	}

	now := time.Now()
	snapshot, err := dashboard.Load(ctx, client, types.MonthOf(now))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	render(dashboard.BuildOverview(snapshot, now), sess)
}

// login resumes a stored session when one exists and its token is still
// usable, and falls back to credentials from the environment.
func login(ctx context.Context, client *api.Client, sess *session.Manager) error {
	err := sess.Resume()
	if err == nil && sess.Authenticated() && !sess.ExpiresWithin(time.Minute) {
		log.Debug().Str("user", sess.User().Email).Msg("resuming stored session")
		return nil
	}
	if err != nil && !errors.Is(err, storage.ErrNoSession) {
		return err
	}

	email, emailSet := os.LookupEnv("MONEYDASH_EMAIL")
	password, passwordSet := os.LookupEnv("MONEYDASH_PASSWORD")
	if !emailSet || !passwordSet {
		return errors.New("no stored session; set MONEYDASH_EMAIL and MONEYDASH_PASSWORD")
	}

	resp, err := client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	log.Info().Str("user", resp.User.Email).Msg("logged in")
	return nil
}

func render(overview dashboard.Overview, sess *session.Manager) {
	p := message.NewPrinter(language.English)

	p.Printf("Dashboard for %s\n\n", sess.User().FullName)
	p.Printf("  Income this month:  %v\n", overview.ThisMonthIncome)
	p.Printf("  Expenses this month: %v\n", overview.ThisMonthExpense)
	p.Printf("  Spending vs last month: %v%% (%s)\n", overview.SpendingChange.Round(1), overview.Trend)

	if overview.HasHighest {
		p.Printf("  Top category: %s %s (%v)\n", overview.HighestCategory.Icon, overview.HighestCategory.Name, overview.HighestCategory.Amount)
	}

	p.Printf("\nSpending trend:\n")
	for _, bucket := range overview.SpendingTrend {
		p.Printf("  %s  %v\n", bucket.Month.Label(), bucket.Total)
	}

	if len(overview.Budgets) > 0 {
		p.Printf("\nBudgets:\n")
		for _, b := range overview.Budgets {
			p.Printf("  %-20s %v/%v (%v%%, %s)\n", b.Budget.CategoryName, b.Budget.SpentAmount, b.Budget.BudgetAmount, b.Progress.Percentage.Round(1), b.Progress.Severity)
		}
	}

	if len(overview.Goals) > 0 {
		p.Printf("\nSavings goals:\n")
		for _, g := range overview.Goals {
			p.Printf("  %-20s %v/%v (%v%%, %s)\n", g.Goal.GoalName, g.Goal.SavedAmount, g.Goal.TargetAmount, g.Progress.Percentage.Round(1), g.Progress.Status)
		}
	}
}
