// Command planit is a thin front-end over the ledger core: it wires the
// stores to a persistence backend and maps subcommands onto the store
// operations and aggregation functions.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"planit/internal/amqp"
	"planit/internal/cli"
	"planit/internal/core"
	"planit/internal/ledger"
	"planit/internal/log"
	"planit/internal/settings"
	"planit/internal/voice"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	result := cli.InitBackend(cfg, logger)
	defer cli.RunCleanup(logger, cfg.ShutdownTimeout, result.Cleanup)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	// Change events are optional; without a broker the ledger simply
	// does not publish.
	var events ledger.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to connect to AMQP, continuing without change events", log.FieldError, err)
		} else {
			defer client.Close()
			events = client
		}
	}

	cfgStore := settings.NewStore(ctx, result.Store)
	users := settings.NewUserStore(ctx, result.Store)
	led := ledger.NewStore(ctx, result.Store, cfgStore, events)

	if _, ok := users.Current(); !ok {
		fmt.Println("Welcome to planit! Run 'planit login -name <you>' to personalize.")
	}

	args := os.Args[1:]
	if len(args) == 0 {
		args = []string{"summary"}
	}

	var err error
	switch args[0] {
	case "summary":
		err = runSummary(led, cfgStore)
	case "add":
		err = runAdd(ctx, args[1:], led)
	case "delete":
		err = runDelete(ctx, args[1:], led)
	case "list":
		err = runList(led, cfgStore)
	case "category":
		err = runCategory(ctx, args[1:], cfgStore)
	case "goal":
		err = runGoal(ctx, args[1:], led, cfgStore)
	case "login":
		err = runLogin(ctx, args[1:], users)
	case "voice":
		err = runVoice(ctx, args[1:], cfgStore)
	default:
		err = fmt.Errorf("unknown command %q (want summary, add, delete, list, category, goal, login, or voice)", args[0])
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "planit:", err)
		os.Exit(1)
	}
}

func runSummary(led *ledger.Store, cfg *settings.Store) error {
	cur := cfg.Currency()
	s := core.Summarize(led.Transactions(), cfg.Categories(), cur)

	fmt.Printf("Total income:   %s%.2f\n", cur.Symbol, s.TotalIncome)
	fmt.Printf("Total expenses: %s%.2f\n", cur.Symbol, s.TotalExpense)
	fmt.Printf("Balance:        %s%.2f\n", cur.Symbol, s.Balance)
	fmt.Printf("Avg expense:    %s%.2f\n", cur.Symbol, s.AverageExpense)
	if len(s.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, ct := range s.ByCategory {
			fmt.Printf("  %-24s %s%.2f\n", ct.Category, cur.Symbol, ct.Total)
		}
	}

	views := core.GoalProgress(led.Goals(), cfg.Categories(), time.Now())
	if len(views) > 0 {
		fmt.Println("\nSpending goals:")
		for _, v := range views {
			fmt.Printf("  %-24s %s%.2f, %d days left\n", v.CategoryName, cur.Symbol, v.Amount, v.DaysLeft)
		}
	}
	return nil
}

func runAdd(ctx context.Context, args []string, led *ledger.Store) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	amount := fs.Float64("amount", 0, "transaction amount")
	category := fs.String("category", "", "category id")
	description := fs.String("description", "", "free-text description")
	kind := fs.String("kind", string(core.Expense), "expense or income")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tx, err := led.AddTransaction(ctx, *amount, *category, *description, core.Kind(*kind))
	if err != nil {
		return err
	}
	fmt.Printf("Added %s %v (%s)\n", tx.Kind, tx.Amount, tx.ID)
	return nil
}

func runDelete(ctx context.Context, args []string, led *ledger.Store) error {
	if len(args) != 1 {
		return errors.New("usage: planit delete <transaction-id>")
	}
	led.DeleteTransaction(ctx, args[0])
	return nil
}

func runList(led *ledger.Store, cfg *settings.Store) error {
	cats := cfg.Categories()
	cur := cfg.Currency()
	for _, tx := range led.Transactions() {
		fmt.Printf("%s  %-7s %10.2f%s  %-20s %s  %s\n",
			tx.Date.Format("2006-01-02"),
			tx.Kind,
			tx.Amount, cur.Symbol,
			core.ResolveCategoryName(cats, tx.Category),
			tx.Description,
			tx.ID)
	}
	return nil
}

func runCategory(ctx context.Context, args []string, cfg *settings.Store) error {
	if len(args) == 0 {
		return errors.New("usage: planit category [add|delete|list]")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("category add", flag.ContinueOnError)
		name := fs.String("name", "", "display name")
		kind := fs.String("kind", string(core.Expense), "expense or income")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		c, err := cfg.AddCategory(ctx, *name, core.Kind(*kind))
		if err != nil {
			return err
		}
		fmt.Printf("Added category %s (%s)\n", c.Name, c.ID)
		return nil
	case "delete":
		if len(args) != 2 {
			return errors.New("usage: planit category delete <id>")
		}
		cfg.DeleteCategory(ctx, args[1])
		return nil
	case "list":
		for _, c := range cfg.Categories() {
			fmt.Printf("%-36s %-7s %s\n", c.ID, c.Kind, c.Name)
		}
		return nil
	default:
		return fmt.Errorf("unknown category command %q", args[0])
	}
}

func runGoal(ctx context.Context, args []string, led *ledger.Store, cfg *settings.Store) error {
	if len(args) == 0 {
		return errors.New("usage: planit goal [add|delete|list]")
	}
	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("goal add", flag.ContinueOnError)
		category := fs.String("category", "", "expense category id")
		amount := fs.Float64("amount", 0, "target amount")
		date := fs.String("date", "", "target date (2006-01-02)")
		description := fs.String("description", "", "optional description")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		g, err := led.AddGoal(ctx, *category, *amount, *date, *description)
		if err != nil {
			return err
		}
		fmt.Printf("Added goal %s\n", g.ID)
		return nil
	case "delete":
		if len(args) != 2 {
			return errors.New("usage: planit goal delete <id>")
		}
		led.DeleteGoal(ctx, args[1])
		return nil
	case "list":
		for _, v := range core.GoalProgress(led.Goals(), cfg.Categories(), time.Now()) {
			fmt.Printf("%-36s %-20s %10.2f  %d days left\n", v.ID, v.CategoryName, v.Amount, v.DaysLeft)
		}
		return nil
	default:
		return fmt.Errorf("unknown goal command %q", args[0])
	}
}

func runLogin(ctx context.Context, args []string, users *settings.UserStore) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "optional email")
	phone := fs.String("phone", "", "optional phone")
	if err := fs.Parse(args); err != nil {
		return err
	}
	u, err := users.Login(ctx, *name, *email, *phone)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome, %s\n", u.Name)
	return nil
}

// runVoice parses an utterance into a transaction draft. With an
// -utterance flag it exercises the parser directly; without one it goes
// through the capture guard, which reports the capability as unavailable
// since no recognizer backend is wired into this binary.
func runVoice(ctx context.Context, args []string, cfg *settings.Store) error {
	fs := flag.NewFlagSet("voice", flag.ContinueOnError)
	utterance := fs.String("utterance", "", "transcript to parse (skips capture)")
	kind := fs.String("kind", string(core.Expense), "expense or income")
	if err := fs.Parse(args); err != nil {
		return err
	}

	candidates := cfg.CategoriesByKind(core.Kind(*kind))

	var draft voice.Draft
	var ok bool
	if *utterance != "" {
		draft, ok = voice.ParseDraft(*utterance, candidates)
	} else {
		capture := voice.NewCapture(nil)
		var err error
		draft, ok, err = capture.Listen(ctx, candidates)
		if errors.Is(err, voice.ErrUnavailable) {
			return fmt.Errorf("voice input: %w", err)
		}
		if err != nil {
			return fmt.Errorf("voice input failed: %w", err)
		}
	}

	if !ok {
		fmt.Println("No draft: utterance contains no amount.")
		return nil
	}
	fmt.Printf("Draft: amount=%v description=%q category=%q\n",
		draft.Amount, draft.Description, draft.Category)
	if draft.Category == "" {
		fmt.Println("(no category matched; pick one before submitting)")
	} else {
		fmt.Printf("(matched %s)\n", core.ResolveCategoryName(cfg.Categories(), draft.Category))
	}
	return nil
}
