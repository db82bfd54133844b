package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"simpledata/internal/config"
	"simpledata/internal/host"
	"simpledata/internal/loader/builder"
	"simpledata/internal/loader/schema"
	"simpledata/internal/logger"
)

const usage = `usage:
  simpledata build [-o dir] file.simpledata...
  simpledata run [-root dir] [-project game.yaml] -collection main.collection [-script main.lua] [-ticks n] [-profile cpu|mem]
  simpledata schema
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "build":
		err = build(os.Args[2:])
	case "run":
		err = run(os.Args[2:])
	case "schema":
		err = printSchema()
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "simpledata: %v\n", err)
		os.Exit(1)
	}
}

func build(args []string) error {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	outDir := fs.String("o", "", "output directory (defaults to the source directory)")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return errors.New("build: no source files")
	}

	log, err := logger.NewLoggerFromEnv()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	b := builder.New()
	var errs []error
	for _, in := range fs.Args() {
		out, err := b.BuildFile(in, *outDir)
		if err != nil {
			log.Error("build failed", logger.F("source", in), logger.F("error", err))
			errs = append(errs, err)
			continue
		}
		log.Info("built", logger.F("source", in), logger.F("output", out))
	}
	return errors.Join(errs...)
}

func run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	root := fs.String("root", ".", "directory compiled resources and the collection are read from")
	project := fs.String("project", "", "project settings file")
	collection := fs.String("collection", "", "collection manifest, relative to -root")
	script := fs.String("script", "", "Lua script to run in the app loop")
	ticks := fs.Int("ticks", 60, "number of updates to run")
	tps := fs.Float64("tps", 60, "ticks per second, used as the script's dt")
	profileMode := fs.String("profile", "", "write a cpu or mem profile to the working directory")
	_ = fs.Parse(args)

	if *collection == "" {
		return errors.New("run: -collection is required")
	}

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("run: unknown profile mode %q", *profileMode)
	}

	cfg, err := config.FromEnv()
	if *project != "" {
		cfg, err = config.Load(*project)
	}
	if err != nil {
		return err
	}

	log, err := logger.NewLoggerWithComponent(cfg.Logging, "simpledata")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	fsys := os.DirFS(*root)
	c, err := host.LoadCollection(fsys, *collection)
	if err != nil {
		return err
	}

	rt := host.NewRuntime(cfg, fsys, log)
	defer rt.Close()

	if _, err := rt.Spawn(c); err != nil {
		log.Warn("collection spawned with errors", logger.F("error", err))
	}

	var systems []host.System
	var scriptSystem *host.ScriptSystem
	if *script != "" {
		src, err := os.ReadFile(*script)
		if err != nil {
			return err
		}
		scriptSystem = host.NewScriptSystem(*script, string(src), 1 / *tps, rt, log)
		systems = append(systems, scriptSystem)
	}

	rt.Run(*ticks, systems...)

	if scriptSystem != nil {
		return scriptSystem.Err()
	}
	return nil
}

func printSchema() error {
	data, err := json.MarshalIndent(schema.JSONSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}
