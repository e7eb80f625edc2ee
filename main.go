package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gdamore/tcell/v2"

	"roomforge/config"
	"roomforge/data"
	"roomforge/generation"
	"roomforge/logging"
	"roomforge/overlay/terminal"
	"roomforge/overlay/window"
	"roomforge/persistence"
	"roomforge/rules"
	"roomforge/run"
	"roomforge/server"
	"roomforge/session"
)

const appName = "roomforge"

type options struct {
	settingsPath string
	rulesPath    string
	prefabDir    string

	tier      int
	maxTier   int
	seed      int64
	fixedSeed bool
	progress  bool

	out       string
	saveAs    string
	storePath string
	dbURL     string

	view      bool
	term      bool
	serveAddr string

	schema    bool
	dumpRules bool
	verbose   bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.settingsPath, "settings", "", "generator settings YAML (defaults when empty)")
	flag.StringVar(&o.rulesPath, "rules", "", "difficulty table YAML or JSON (built-in table when empty)")
	flag.StringVar(&o.prefabDir, "prefabs", "", "directory of prefab JSON files (built-in prefabs when empty)")

	flag.IntVar(&o.tier, "tier", 1, "dungeon index to start at")
	flag.IntVar(&o.maxTier, "max", 10, "last dungeon index of the run")
	flag.Int64Var(&o.seed, "seed", 0, "fixed seed base, used with -fixed")
	flag.BoolVar(&o.fixedSeed, "fixed", false, "seed from -seed instead of the clock")
	flag.BoolVar(&o.progress, "progress", false, "persist run progress in the user data directory")

	flag.StringVar(&o.out, "out", "", "write the snapshot JSON to this file ('-' for stdout)")
	flag.StringVar(&o.saveAs, "save", "", "archive the snapshot in the layout store under this name")
	flag.StringVar(&o.storePath, "store", "layouts.json", "JSON layout store file")
	flag.StringVar(&o.dbURL, "db", os.Getenv("DATABASE_URL"), "PostgreSQL connection string; overrides -store")

	flag.BoolVar(&o.view, "view", false, "open the diagnostic window")
	flag.BoolVar(&o.term, "term", false, "show the room in the terminal")
	flag.StringVar(&o.serveAddr, "serve", "", "serve the websocket API on this address, e.g. :8080")

	flag.BoolVar(&o.schema, "schema", false, "print the difficulty table JSON schema and exit")
	flag.BoolVar(&o.dumpRules, "dump-rules", false, "print the effective difficulty table as YAML and exit")
	flag.BoolVar(&o.verbose, "v", false, "mirror generation messages to stderr")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	if o.schema {
		out, err := rules.SchemaJSON()
		if err != nil {
			log.Fatalf("Failed to build schema: %v", err)
		}
		fmt.Println(string(out))
		return
	}

	settings, table, prefabs, err := loadInputs(o)
	if err != nil {
		log.Fatal(err)
	}

	if o.dumpRules {
		out, err := table.Encode()
		if err != nil {
			log.Fatalf("Failed to encode difficulty table: %v", err)
		}
		fmt.Print(string(out))
		return
	}

	messages := logging.NewMessageLog(200)
	if o.verbose {
		messages.SetMirror(log.New(os.Stderr, "", log.LstdFlags))
	}

	sessionOptions := session.Options{
		Settings: settings,
		Rules:    table,
		Prefabs:  prefabs,
		Run: run.Options{
			DungeonIndex: o.tier,
			MaxDungeon:   o.maxTier,
			UseFixedSeed: o.fixedSeed,
			FixedSeed:    o.seed,
		},
		Log: messages,
	}

	if o.serveAddr != "" {
		serve(o, sessionOptions)
		return
	}

	if o.progress {
		store, err := run.OpenProgressStore(appName)
		if err != nil {
			log.Printf("Warning: %v; progress will not be saved", err)
		} else {
			sessionOptions.Progress = store
		}
	}

	sess, err := session.New(sessionOptions)
	if err != nil {
		log.Fatal(err)
	}
	if err := sess.Regenerate(); err != nil {
		log.Fatalf("Failed to generate room: %v", err)
	}

	switch {
	case o.view:
		viewer := window.NewViewer(sess, prefabs, settings, messages)
		if err := viewer.Run(); err != nil {
			log.Fatal(err)
		}
	case o.term:
		if err := runTerminal(sess, prefabs); err != nil {
			log.Fatal(err)
		}
	}

	if err := export(o, sess.Snapshot()); err != nil {
		log.Fatal(err)
	}
}

func loadInputs(o options) (config.Settings, *rules.Table, *data.PrefabLibrary, error) {
	settings := config.Default()
	if o.settingsPath != "" {
		var err error
		if settings, err = config.Load(o.settingsPath); err != nil {
			return settings, nil, nil, err
		}
	}

	table := rules.DefaultTable()
	if o.rulesPath != "" {
		var err error
		if table, err = rules.LoadTable(o.rulesPath); err != nil {
			return settings, nil, nil, err
		}
	}

	prefabs := data.DefaultPrefabs()
	if o.prefabDir != "" {
		if err := prefabs.LoadFromDirectory(o.prefabDir); err != nil {
			return settings, nil, nil, fmt.Errorf("failed to load prefabs: %w", err)
		}
	}
	return settings, table, prefabs, nil
}

func openStore(o options) (persistence.Storage, error) {
	if o.dbURL != "" {
		log.Println("Using PostgreSQL layout store")
		return persistence.NewPostgresStore(o.dbURL)
	}
	log.Printf("Using JSON layout store %s", o.storePath)
	return persistence.NewJSONStore(o.storePath)
}

func serve(o options, sessionOptions session.Options) {
	store, err := openStore(o)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}
	defer store.Close()

	handler := server.NewHandler(func() (*session.Session, error) {
		opts := sessionOptions
		opts.Log = sessionOptions.Log.Fork(0)
		return session.New(opts)
	}, server.HandlerConfig{Store: store})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.Handle)

	log.Printf("Server starting on %s", o.serveAddr)
	if err := http.ListenAndServe(o.serveAddr, mux); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}

func runTerminal(sess *session.Session, prefabs *data.PrefabLibrary) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	return terminal.Run(screen, sess, prefabs)
}

func export(o options, snap *generation.Snapshot) error {
	if o.out != "" {
		raw, err := snap.MarshalIndent()
		if err != nil {
			return err
		}
		if o.out == "-" {
			fmt.Println(string(raw))
		} else if err := os.WriteFile(o.out, raw, 0o644); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
	}

	if o.saveAs != "" {
		store, err := openStore(o)
		if err != nil {
			return fmt.Errorf("failed to initialize persistence: %w", err)
		}
		defer store.Close()
		if err := store.SaveLayout(o.saveAs, snap); err != nil {
			return err
		}
		log.Printf("Saved layout %q", o.saveAs)
	}

	if o.out == "" && o.saveAs == "" {
		s := snap.Stats
		fmt.Printf("tier %d/%d seed %d: %dx%d room, %d walls, %d/%d obstacles, %d/%d enemies (%d stars), %d/%d currency\n",
			snap.Tier, snap.MaxTier, snap.Seed, snap.Size.Width, snap.Size.Height, s.Walls,
			s.ObstaclesPlaced, s.ObstaclesRolled, s.EnemiesPlaced, s.EnemiesRolled, s.StarsPlaced,
			s.CurrencyPlaced, s.CurrencyRolled)
	}
	return nil
}
